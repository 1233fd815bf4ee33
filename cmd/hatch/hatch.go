package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/gfanton/hatch/internal/flow"
	"github.com/gfanton/hatch/internal/git"
	"github.com/gfanton/hatch/internal/platform"
	"github.com/gfanton/hatch/internal/project"
	"github.com/gfanton/hatch/internal/prompt"
	"github.com/gfanton/hatch/pkg/template"
	"go.uber.org/zap"
)

type hatchConfig struct {
	name   string
	axum   bool
	rocket bool
	tide   bool
	isNew  bool
	apiKey string
}

func (c *hatchConfig) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "project name")
	fs.BoolVar(&c.axum, "axum", false, "use the axum framework")
	fs.BoolVar(&c.rocket, "rocket", false, "use the rocket framework")
	fs.BoolVar(&c.tide, "tide", false, "use the tide framework")
	fs.BoolVar(&c.isNew, "new", false, "create the hosting environment without asking")
	fs.StringVar(&c.apiKey, "api-key", "", "platform api key")
}

func runHatch(ctx context.Context, rc *rootConfig, cfg hatchConfig, args []string) error {
	if len(args) > 1 {
		for _, arg := range args[1:] {
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("flags must come before the path: %q follows %q", arg, args[0])
			}
		}
		return fmt.Errorf("too many arguments: expected at most one path, got %d", len(args))
	}

	path := flow.DefaultPath
	if len(args) == 1 {
		path = args[0]
	}

	if err := rc.setup(); err != nil {
		return err
	}
	logger := rc.logger

	flowArgs, err := flow.NewArgs(cfg.name, cfg.axum, cfg.rocket, cfg.tide, cfg.isNew, cfg.apiKey, path)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	client := platform.NewClient(platform.Options{
		Domain:   rc.config.Domain,
		RootDir:  rc.config.RootDir,
		Reserved: rc.config.Reserved,
		Logger:   logger.Named("platform"),
		Out:      rc.env.out,
	})

	initializer := project.NewInitializer(flowArgs.Path, git.NewClient(logger.Named("git")), logger.Named("project"))

	resolver, err := flow.NewResolver(flowArgs,
		prompt.New(rc.env.in, rc.env.errOut, rc.config.Plain),
		flow.Collaborators{
			Auth:        client,
			Names:       client,
			Initializer: initializer,
			Provisioner: client,
		},
		flow.Options{
			Logger: logger.Named("flow"),
			Out:    rc.env.out,
			Domain: rc.config.Domain,
		},
	)
	if err != nil {
		return fmt.Errorf("unable to create resolver: %w", err)
	}

	result, err := resolver.Run(ctx)
	if err != nil {
		return err
	}

	plan := result.Plan
	logger.Debug("flow completed",
		zap.String("name", plan.ProjectName),
		zap.Bool("interactive", result.Interactive),
		zap.Bool("provisioned", plan.ProvisionEnvironment),
	)

	summary, err := template.Render("summary", template.Data{
		Name:        plan.ProjectName,
		Directory:   initializer.Path(plan.Directory),
		Framework:   plan.Framework.String(),
		Host:        client.Host(plan.ProjectName),
		Provisioned: plan.ProvisionEnvironment,
	})
	if err != nil {
		return fmt.Errorf("unable to render summary: %w", err)
	}

	fmt.Fprintln(rc.env.out)
	fmt.Fprint(rc.env.out, summary)
	return nil
}
