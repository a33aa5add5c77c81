package main

import (
	"github.com/blogly/blogly/internal/db"
	"github.com/blogly/blogly/internal/seed"
	"github.com/blogly/blogly/internal/store"

	"github.com/spf13/cobra"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo users, posts and tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close(gdb)
		return seed.Run(cmd.Context(), store.New(gdb), seedForce, logger)
	},
}
