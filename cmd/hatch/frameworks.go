package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/gfanton/hatch/internal/framework"
	"github.com/gfanton/hatch/pkg/template"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func newFrameworksCommand(rc *rootConfig) *ffcli.Command {
	fs := flag.NewFlagSet("hatch frameworks", flag.ContinueOnError)
	fs.SetOutput(rc.env.errOut)

	return &ffcli.Command{
		Name:       "frameworks",
		ShortUsage: "hatch frameworks",
		ShortHelp:  "List the supported web frameworks",
		LongHelp:   "List the supported web frameworks. The first one is the default menu choice.",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			out, err := template.Render("frameworks", template.Data{
				Frameworks: framework.Labels(),
			})
			if err != nil {
				return fmt.Errorf("unable to render frameworks: %w", err)
			}

			fmt.Fprint(rc.env.out, out)
			return nil
		},
	}
}
