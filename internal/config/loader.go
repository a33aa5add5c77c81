package config

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// ProjectConfigFile is looked up in the working directory when no path is given
const ProjectConfigFile = "blogly.yaml"

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *zap.Logger
	lookup func(string) (string, bool)
}

// NewLoader creates a new configuration loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger, lookup: os.LookupEnv}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. YAML file (path, or blogly.yaml in the working directory)
// 3. Environment variables
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = ProjectConfigFile
	}

	fileConfig, err := LoadFromFile(path)
	switch {
	case err == nil:
		l.logger.Debug("Loaded config file", zap.String("path", path))
		config = fileConfig
	case !explicit && errors.Is(err, fs.ErrNotExist):
		l.logger.Debug("No config file found", zap.String("path", path))
	default:
		return nil, err
	}

	if err := config.ApplyEnv(l.lookup); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Session.SecretKey == DefaultSecretKey {
		l.logger.Warn("Using the development secret key; set SECRET_KEY in production")
	}

	return config, nil
}
