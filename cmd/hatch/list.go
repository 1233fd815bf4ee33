package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gfanton/hatch/internal/git"
	"github.com/gfanton/hatch/internal/project"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"
)

type listConfig struct {
	all bool
}

func newListCommand(rc *rootConfig) *ffcli.Command {
	var listCfg listConfig

	fs := flag.NewFlagSet("hatch list", flag.ContinueOnError)
	fs.SetOutput(rc.env.errOut)
	fs.BoolVar(&listCfg.all, "all", false, "display all projects (including non-Git directories)")

	return &ffcli.Command{
		Name:       "list",
		ShortUsage: "hatch list [flags] [prefix]",
		ShortHelp:  "List the projects found under the workspace root",
		LongHelp: `List the projects initialized by hatch under the configured root directory.
Their names are never available for new projects.

Optionally provide a prefix to filter projects by name.

By default, only Git repositories are shown. Use --all to show all projects.`,
		FlagSet: fs,
		Exec: func(ctx context.Context, args []string) error {
			var prefix string
			if len(args) > 0 {
				prefix = args[0]
			}
			return runList(ctx, rc, listCfg, prefix)
		},
	}
}

func runList(ctx context.Context, rc *rootConfig, listCfg listConfig, prefix string) error {
	if err := rc.setup(); err != nil {
		return err
	}

	rc.logger.Debug("listing projects", zap.String("root", rc.config.RootDir), zap.String("prefix", prefix))

	client := git.NewClient(rc.logger.Named("git"))
	err := project.Walk(rc.config.RootDir, func(p *project.Project) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Skip if prefix is provided and project doesn't match
		if prefix != "" && !hasPrefix(p.String(), prefix) {
			return nil
		}

		status := client.Status(p.Path)

		// Skip non-Git directories unless --all is specified
		if status == git.StatusNotGit && !listCfg.all {
			return nil
		}

		fmt.Fprintf(rc.env.out, "%s - %s - [%s] %s\n", p, p.Manifest.Framework, status, p.Path)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		rc.logger.Debug("root directory does not exist", zap.String("root", rc.config.RootDir))
		return nil
	}
	return err
}

func hasPrefix(projectName, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(projectName), strings.ToLower(prefix))
}
