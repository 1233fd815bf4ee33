package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gfanton/hatch/internal/config"
	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"
)

// environment holds the process streams, replaced in tests.
type environment struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

type rootConfig struct {
	config *config.Config
	env    environment
	logger *zap.Logger
}

// setup finalizes the configuration once flags are parsed and builds the
// logger. It is called by every command Exec.
func (rc *rootConfig) setup() error {
	if rc.logger != nil {
		return nil
	}

	if err := rc.config.Resolve(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	rc.logger = rc.config.Logger()
	return nil
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create config: %v\n", err)
		os.Exit(1)
	}

	env := environment{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}

	if err := execute(context.Background(), cfg, env, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(rc *rootConfig) *ffcli.Command {
	var hatchCfg hatchConfig

	fs := flag.NewFlagSet("hatch", flag.ContinueOnError)
	fs.SetOutput(rc.env.errOut)
	rc.config.RegisterFlags(fs)
	hatchCfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "hatch",
		ShortUsage: "hatch [flags] [path]",
		ShortHelp:  "Create a new hosted web service project",
		LongHelp: `hatch walks through the creation of a new project: it logs in to the
hosting platform, picks a free project name, a directory and a web framework,
initializes the project locally and optionally creates its hosting environment.

Every value given as a flag skips the matching question. With --name and a
framework flag (and --api-key when --new is set) nothing is asked at all.

path is the base directory the project directory is created in. Flags must
come before it: "hatch --name blog ./work", not "hatch ./work --name blog".`,
		FlagSet: fs,
		Options: rc.config.Options(),
		Exec: func(ctx context.Context, args []string) error {
			return runHatch(ctx, rc, hatchCfg, args)
		},
		Subcommands: []*ffcli.Command{
			newListCommand(rc),
			newFrameworksCommand(rc),
			newVersionCommand(rc),
		},
	}
}

func execute(ctx context.Context, cfg *config.Config, env environment, args []string) error {
	rc := &rootConfig{
		config: cfg,
		env:    env,
	}
	defer func() {
		if rc.logger != nil {
			_ = rc.logger.Sync()
		}
	}()

	root := newRootCommand(rc)

	// create process context
	processCtx, processCancel := context.WithCancel(ctx)
	defer processCancel()

	var process run.Group
	{
		// handle interrupt signals
		execute, interrupt := run.SignalHandler(processCtx, os.Interrupt)
		process.Add(execute, interrupt)

		// add root command to process
		process.Add(func() error {
			return root.ParseAndRun(processCtx, args)
		}, func(error) {
			processCancel()
		})
	}

	err := process.Run()

	var sigErr run.SignalError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return nil
	case errors.As(err, &sigErr):
		return fmt.Errorf("interrupted: %s", sigErr.Signal)
	default:
		return err
	}
}
