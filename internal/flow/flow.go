package flow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gfanton/hatch/internal/framework"
	"go.uber.org/zap"
)

// DefaultPath is the base path used when none is given on the command line.
const DefaultPath = "."

// Args holds the invocation inputs, captured once at startup.
// Empty strings mean the value was not supplied.
type Args struct {
	Name      string
	Framework framework.Framework
	New       bool
	APIKey    string
	Path      string
}

// NewArgs builds Args from raw flag values, rejecting conflicting framework
// flags before any resolution happens.
func NewArgs(name string, axum, rocket, tide, isNew bool, apiKey, path string) (Args, error) {
	fw, err := framework.FromFlags(axum, rocket, tide)
	if err != nil {
		return Args{}, err
	}

	if path == "" {
		path = DefaultPath
	}

	return Args{
		Name:      name,
		Framework: fw,
		New:       isNew,
		APIKey:    apiKey,
		Path:      path,
	}, nil
}

// Interactive reports whether a run with these arguments needs the operator.
// The answer is computed once and holds for the whole run.
func Interactive(args Args) bool {
	return args.Name == "" ||
		!args.Framework.IsSet() ||
		(args.New && args.APIKey == "")
}

// Plan is the fully resolved outcome of a run.
type Plan struct {
	ProjectName          string
	Directory            string
	Framework            framework.Framework
	ProvisionEnvironment bool
}

// Session carries the platform login state across a run.
type Session struct {
	LoggedIn bool
}

// Result is returned by a successful run.
type Result struct {
	Plan        Plan
	Session     Session
	Interactive bool
}

// Authenticator logs the operator in to the hosting platform.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) error
}

// NameChecker reports whether a project name is still free on the platform.
type NameChecker interface {
	CheckNameAvailable(ctx context.Context, name string) bool
}

// Initializer creates the project on the local filesystem.
type Initializer interface {
	InitializeLocally(ctx context.Context, name, directory string, fw framework.Framework) error
}

// Provisioner creates the remote hosting environment of a project.
type Provisioner interface {
	ProvisionEnvironment(ctx context.Context, name string)
}

// Prompter asks the operator for values. Implementations return an error
// when the interaction is interrupted or the input stream fails.
type Prompter interface {
	Password(ctx context.Context, message string) (string, error)
	Input(ctx context.Context, message, initial string) (string, error)
	FuzzySelect(ctx context.Context, message string, items []string, defaultIdx int) (int, error)
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)
}

// Collaborators groups the side-effecting dependencies of a run.
type Collaborators struct {
	Auth        Authenticator
	Names       NameChecker
	Initializer Initializer
	Provisioner Provisioner
}

func (c Collaborators) validate() error {
	switch {
	case c.Auth == nil:
		return errors.New("missing authenticator")
	case c.Names == nil:
		return errors.New("missing name checker")
	case c.Initializer == nil:
		return errors.New("missing initializer")
	case c.Provisioner == nil:
		return errors.New("missing provisioner")
	}
	return nil
}

// Options configure a Resolver.
type Options struct {
	Logger  *zap.Logger
	Out     io.Writer
	Domain  string
	Session Session
}

// DefaultDomain is the hosting domain projects are served under.
const DefaultDomain = "shuttleapp.rs"

// NewResolver creates a resolver for a single run.
func NewResolver(args Args, prompter Prompter, collab Collaborators, opts Options) (*Resolver, error) {
	if prompter == nil {
		return nil, errors.New("missing prompter")
	}

	if err := collab.validate(); err != nil {
		return nil, fmt.Errorf("invalid collaborators: %w", err)
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Domain == "" {
		opts.Domain = DefaultDomain
	}

	return &Resolver{
		args:     args,
		prompter: prompter,
		collab:   collab,
		logger:   opts.Logger,
		out:      opts.Out,
		domain:   opts.Domain,
		session:  opts.Session,
	}, nil
}
