package todo

import "errors"

// Error variables for configuration and bootstrap.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDataDirEmpty       = errors.New("data_dir cannot be empty")
	ErrAlreadyInitialized = errors.New("directories tasks and/or templates already exist")
	ErrNotInitialized     = errors.New("data directory is not initialized (run td init)")
	ErrNotDirectory       = errors.New("not a directory")
	ErrIDSpaceExhausted   = errors.New("no record ids left")
	ErrUnexpectedID       = errors.New("template produced an unexpected id")
)
