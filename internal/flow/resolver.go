package flow

import (
	"context"
	"fmt"
	"io"

	"github.com/gfanton/hatch/internal/framework"
	"go.uber.org/zap"
)

// Resolver turns Args and operator answers into a Plan, calling the
// collaborators along the way. A Resolver is meant for a single run.
type Resolver struct {
	args     Args
	prompter Prompter
	collab   Collaborators
	logger   *zap.Logger
	out      io.Writer
	domain   string
	session  Session
}

// Run resolves every plan field in order: login, name, directory, framework,
// local initialization, then the provisioning decision. The first failing
// step aborts the run; steps already done are not undone.
func (r *Resolver) Run(ctx context.Context) (*Result, error) {
	interactive := Interactive(r.args)
	r.logger.Debug("starting flow",
		zap.Bool("interactive", interactive),
		zap.Bool("logged_in", r.session.LoggedIn),
		zap.Bool("new", r.args.New),
		zap.String("path", r.args.Path),
	)

	session, err := r.login(ctx, interactive)
	if err != nil {
		return nil, err
	}

	var plan Plan

	if plan.ProjectName, err = r.resolveName(ctx); err != nil {
		return nil, err
	}

	if plan.Directory, err = r.resolveDirectory(ctx, interactive, plan.ProjectName); err != nil {
		return nil, err
	}

	if plan.Framework, err = r.resolveFramework(ctx); err != nil {
		return nil, err
	}

	r.logger.Debug("initializing project locally",
		zap.String("name", plan.ProjectName),
		zap.String("directory", plan.Directory),
		zap.Stringer("framework", plan.Framework),
	)
	if err := r.collab.Initializer.InitializeLocally(ctx, plan.ProjectName, plan.Directory, plan.Framework); err != nil {
		return nil, fmt.Errorf("failed to initialize project: %w", err)
	}

	if plan.ProvisionEnvironment, err = r.resolveProvision(ctx, interactive); err != nil {
		return nil, err
	}

	if plan.ProvisionEnvironment {
		r.logger.Debug("provisioning environment", zap.String("name", plan.ProjectName))
		r.collab.Provisioner.ProvisionEnvironment(ctx, plan.ProjectName)
	}

	return &Result{
		Plan:        plan,
		Session:     session,
		Interactive: interactive,
	}, nil
}

func (r *Resolver) login(ctx context.Context, interactive bool) (Session, error) {
	session := r.session
	if !interactive || session.LoggedIn {
		r.logger.Debug("skipping login", zap.Bool("interactive", interactive))
		return session, nil
	}

	// an --api-key given alongside a missing field is not used here, the
	// operator is always asked for the credential
	if r.args.APIKey != "" {
		r.logger.Debug("api key supplied but login is interactive")
	}

	fmt.Fprintln(r.out, "First, let's log in to your account.")
	credential, err := r.prompter.Password(ctx, "API key")
	if err != nil {
		return session, fmt.Errorf("failed to read api key: %w", err)
	}

	if err := r.collab.Auth.Authenticate(ctx, credential); err != nil {
		return session, fmt.Errorf("failed to log in: %w", err)
	}
	fmt.Fprintln(r.out)

	session.LoggedIn = true
	return session, nil
}

func (r *Resolver) resolveName(ctx context.Context) (string, error) {
	if r.args.Name != "" {
		return r.args.Name, nil
	}

	fmt.Fprintf(r.out, "How do you want to name your project? It will be hosted at ${project_name}.%s.\n", r.domain)
	for {
		name, err := r.prompter.Input(ctx, "Project name", "")
		if err != nil {
			return "", fmt.Errorf("failed to read project name: %w", err)
		}

		if r.collab.Names.CheckNameAvailable(ctx, name) {
			fmt.Fprintln(r.out)
			return name, nil
		}

		r.logger.Debug("project name rejected", zap.String("name", name))
		fmt.Fprintln(r.out, "Unfortunately, that name is already taken. Please try a different name.")
	}
}

func (r *Resolver) resolveDirectory(ctx context.Context, interactive bool, name string) (string, error) {
	if !interactive {
		return name, nil
	}

	fmt.Fprintln(r.out, "Where should we create this project?")
	dir, err := r.prompter.Input(ctx, "Directory", name)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}
	fmt.Fprintln(r.out)

	return dir, nil
}

func (r *Resolver) resolveFramework(ctx context.Context) (framework.Framework, error) {
	if r.args.Framework.IsSet() {
		return r.args.Framework, nil
	}

	fmt.Fprintln(r.out, "Which web framework do you want to use?")
	all := framework.All()
	idx, err := r.prompter.FuzzySelect(ctx, "Framework", framework.Labels(), 0)
	if err != nil {
		return framework.None, fmt.Errorf("failed to select framework: %w", err)
	}

	if idx < 0 || idx >= len(all) {
		return framework.None, fmt.Errorf("invalid framework selection: %d", idx)
	}
	fmt.Fprintln(r.out)

	return all[idx], nil
}

func (r *Resolver) resolveProvision(ctx context.Context, interactive bool) (bool, error) {
	switch {
	case !interactive:
		return r.args.New, nil
	case r.args.New:
		return true, nil
	}

	ok, err := r.prompter.Confirm(ctx, "Do you want to create the project environment on the platform?", true)
	if err != nil {
		return false, fmt.Errorf("failed to confirm environment creation: %w", err)
	}

	return ok, nil
}
