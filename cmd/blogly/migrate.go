package main

import (
	"github.com/blogly/blogly/internal/db"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the users, posts, tags and posts_tags tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close(gdb)
		logger.Info("schema migrated", zap.String("dialect", gdb.Dialector.Name()))
		return nil
	},
}
