// Package platform is the local stand-in for the hosting platform. It
// answers login, name availability and provisioning requests without any
// network access.
package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/gfanton/hatch/internal/project"
	"go.uber.org/zap"
)

// ErrEmptyCredential is returned by Authenticate for a blank credential.
var ErrEmptyCredential = errors.New("empty credential")

var errFound = errors.New("found")

// Options configure a Client.
type Options struct {
	Domain   string
	RootDir  string
	Reserved []string
	Logger   *zap.Logger
	Out      io.Writer
}

// Client implements the platform side of the onboarding flow.
type Client struct {
	domain   string
	rootDir  string
	reserved map[string]struct{}
	logger   *zap.Logger
	out      io.Writer
}

// NewClient creates a platform client.
func NewClient(opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	reserved := make(map[string]struct{}, len(opts.Reserved))
	for _, name := range opts.Reserved {
		reserved[strings.ToLower(name)] = struct{}{}
	}

	return &Client{
		domain:   opts.Domain,
		rootDir:  opts.RootDir,
		reserved: reserved,
		logger:   opts.Logger,
		out:      opts.Out,
	}
}

// Authenticate accepts any non blank credential. The credential is never
// stored.
func (c *Client) Authenticate(ctx context.Context, credential string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.TrimSpace(credential) == "" {
		return ErrEmptyCredential
	}

	c.logger.Debug("authenticated", zap.String("credential", mask(credential)))
	return nil
}

// CheckNameAvailable reports whether name can be used for a new project.
// Empty and reserved names are never available, and neither are names of
// projects already initialized under the workspace root.
func (c *Client) CheckNameAvailable(ctx context.Context, name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return false
	}

	if _, ok := c.reserved[key]; ok {
		c.logger.Debug("name is reserved", zap.String("name", name))
		return false
	}

	if c.rootDir == "" {
		return true
	}

	err := project.Walk(c.rootDir, func(p *project.Project) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.ToLower(p.Manifest.Name) == key {
			c.logger.Debug("name used by existing project",
				zap.String("name", name),
				zap.String("path", p.Path),
			)
			return errFound
		}
		return nil
	})

	switch {
	case err == nil:
		return true
	case errors.Is(err, errFound):
		return false
	case errors.Is(err, fs.ErrNotExist):
		c.logger.Debug("workspace root does not exist", zap.String("root", c.rootDir))
		return true
	default:
		c.logger.Warn("unable to look up existing projects", zap.String("root", c.rootDir), zap.Error(err))
		return true
	}
}

// ProvisionEnvironment creates the hosting environment of name.
func (c *Client) ProvisionEnvironment(ctx context.Context, name string) {
	host := c.Host(name)
	c.logger.Info("provisioning environment", zap.String("name", name), zap.String("host", host))
	fmt.Fprintf(c.out, "Project environment created at %s\n", host)
}

// Host returns the public host name of a project.
func (c *Client) Host(name string) string {
	return fmt.Sprintf("%s.%s", name, c.domain)
}

func mask(s string) string {
	const visible = 4
	if len(s) <= 2*visible {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-visible) + s[len(s)-visible:]
}
