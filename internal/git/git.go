package git

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

const defaultDirPerms = 0755

// Client provides Git operations.
type Client struct {
	logger *zap.Logger
}

// NewClient creates a new Git client.
func NewClient(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger: logger,
	}
}

// Init creates a repository in dir, creating dir if needed. An existing
// repository is left untouched and reported with created set to false.
func (c *Client) Init(ctx context.Context, dir string) (created bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.logger.Debug("initializing repository", zap.String("dir", dir))

	if err := os.MkdirAll(dir, defaultDirPerms); err != nil {
		return false, fmt.Errorf("failed to create repository directory: %w", err)
	}

	_, err = git.PlainInit(dir, false)
	switch {
	case errors.Is(err, git.ErrRepositoryAlreadyExists):
		c.logger.Debug("repository already exists", zap.String("dir", dir))
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to init repository: %w", err)
	}

	c.logger.Debug("repository initialized", zap.String("dir", dir))
	return true, nil
}

// Status represents the Git status of a directory.
type Status string

const (
	// StatusValid indicates a valid Git repository.
	StatusValid Status = "valid"
	// StatusInvalid indicates an invalid Git repository.
	StatusInvalid Status = "invalid"
	// StatusNotGit indicates the directory is not a Git repository.
	StatusNotGit Status = "not a git"
)

// Status returns the Git status of dir.
func (c *Client) Status(dir string) Status {
	_, err := git.PlainOpen(dir)
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		return StatusNotGit
	case err == nil:
		return StatusValid
	default:
		c.logger.Debug("unable to open repository", zap.String("dir", dir), zap.Error(err))
		return StatusInvalid
	}
}
