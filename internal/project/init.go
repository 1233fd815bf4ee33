package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gfanton/hatch/internal/framework"
	"github.com/gfanton/hatch/internal/git"
	"go.uber.org/zap"
)

// Initializer creates projects on the local filesystem: the directory, a git
// repository and the manifest.
type Initializer struct {
	Base   string
	Git    *git.Client
	Logger *zap.Logger

	now func() time.Time
}

// NewInitializer creates an initializer resolving relative directories
// under base.
func NewInitializer(base string, client *git.Client, logger *zap.Logger) *Initializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = git.NewClient(logger)
	}

	return &Initializer{
		Base:   base,
		Git:    client,
		Logger: logger,
		now:    time.Now,
	}
}

// Path returns the directory a project would be created in.
func (i *Initializer) Path(directory string) string {
	if filepath.IsAbs(directory) {
		return filepath.Clean(directory)
	}
	return filepath.Join(i.Base, directory)
}

// InitializeLocally creates the project name in directory.
func (i *Initializer) InitializeLocally(ctx context.Context, name, directory string, fw framework.Framework) error {
	if name == "" {
		return errors.New("project name is required")
	}
	if directory == "" {
		return errors.New("project directory is required")
	}
	if !fw.IsSet() {
		return fmt.Errorf("%w: no framework selected", framework.ErrUnknown)
	}

	dir := i.Path(directory)
	if HasManifest(dir) {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, dir)
	}

	created, err := i.Git.Init(ctx, dir)
	if err != nil {
		return err
	}

	m := Manifest{
		Name:      name,
		Framework: fw,
		Created:   i.now().UTC().Truncate(time.Second),
	}
	if err := writeManifest(dir, m); err != nil {
		return err
	}

	i.Logger.Info("project initialized",
		zap.String("name", name),
		zap.String("path", dir),
		zap.Stringer("framework", fw),
		zap.Bool("new_repository", created),
	)
	return nil
}

func writeManifest(dir string, m Manifest) error {
	path := filepath.Join(dir, ManifestFile)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrAlreadyInitialized, dir)
		}
		return fmt.Errorf("failed to create manifest: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
