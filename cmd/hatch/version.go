package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/peterbourgon/ff/v3/ffcli"
)

// version overrides the module version, set with
// -ldflags "-X main.version=v1.2.3".
var version string

type buildInfo struct {
	Version   string
	Revision  string
	Time      string
	Modified  bool
	GoVersion string
}

func readBuildInfo() buildInfo {
	info := buildInfo{Version: "devel", GoVersion: runtime.Version()}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Revision = s.Value
			case "vcs.time":
				info.Time = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if version != "" {
		info.Version = version
	}
	return info
}

func newVersionCommand(rc *rootConfig) *ffcli.Command {
	var verbose bool
	fs := flag.NewFlagSet("hatch version", flag.ContinueOnError)
	fs.SetOutput(rc.env.errOut)
	fs.BoolVar(&verbose, "v", false, "include build details")
	fs.BoolVar(&verbose, "verbose", false, "include build details")

	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "hatch version [-v]",
		ShortHelp:  "Print the hatch version",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			info := readBuildInfo()
			if !verbose {
				fmt.Fprintln(rc.env.out, info.Version)
				return nil
			}
			return printBuildInfo(rc, info)
		},
	}
}

func printBuildInfo(rc *rootConfig, info buildInfo) error {
	out := rc.env.out
	fmt.Fprintf(out, "hatch %s\n", info.Version)
	if info.Revision != "" {
		rev := info.Revision
		if info.Modified {
			rev += " (modified)"
		}
		fmt.Fprintf(out, "revision: %s\n", rev)
	}
	if info.Time != "" {
		fmt.Fprintf(out, "time: %s\n", info.Time)
	}
	_, err := fmt.Fprintf(out, "go: %s %s/%s\n", info.GoVersion, runtime.GOOS, runtime.GOARCH)
	return err
}
