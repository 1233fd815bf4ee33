package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gfanton/hatch/internal/framework"
)

const (
	// ManifestFile is the file marking a directory as an initialized project.
	ManifestFile = "Hatch.toml"
	// WalkDepth is the deepest level below the root where projects are
	// looked up (name or org/name).
	WalkDepth = 1
)

var (
	// ErrNoManifest is returned by Load when the directory holds no manifest.
	ErrNoManifest = errors.New("no project manifest")
	// ErrAlreadyInitialized is returned when the target directory already
	// holds a manifest.
	ErrAlreadyInitialized = errors.New("project already initialized")
)

// Manifest is the content of a Hatch.toml file.
type Manifest struct {
	Name      string              `toml:"name"`
	Framework framework.Framework `toml:"framework"`
	Created   time.Time           `toml:"created"`
}

// Project is an initialized project on disk.
type Project struct {
	Path     string
	Manifest Manifest
}

// Load reads the project manifest found in dir.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, ManifestFile)

	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoManifest, dir)
		}
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("invalid manifest %s: name is required", path)
	}

	return &Project{
		Path:     dir,
		Manifest: m,
	}, nil
}

// HasManifest reports whether dir holds a manifest file.
func HasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFile))
	return err == nil && !info.IsDir()
}

func (p *Project) String() string {
	return p.Manifest.Name
}

// WalkFunc is the function called for each project during traversal.
type WalkFunc func(p *Project) error

// Walk traverses rootDir and calls fn for each project found at most
// WalkDepth levels below it. Dot directories are skipped and so are
// directories whose manifest cannot be read. Symlinks to directories are
// followed one level.
func Walk(rootDir string, fn WalkFunc) error {
	return filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == rootDir {
			return nil
		}

		isDir := d.IsDir()
		isLink := !isDir && d.Type()&fs.ModeSymlink != 0
		if isLink {
			info, err := os.Stat(path)
			if err != nil {
				return nil
			}
			isDir = info.IsDir()
		}

		if !isDir {
			return nil
		}

		// SkipDir on a non directory entry would skip its siblings
		skip := fs.SkipDir
		if isLink {
			skip = nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return skip
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}

		if strings.Count(relPath, string(os.PathSeparator)) > WalkDepth {
			return skip
		}

		if !HasManifest(path) {
			return nil
		}

		p, err := Load(path)
		if err != nil {
			return skip
		}

		if err := fn(p); err != nil {
			return err
		}
		return skip
	})
}
