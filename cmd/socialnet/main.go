// Package main implements the socialnet command: it serves the social
// network over HTTP or plays a scripted session against it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the command line application. Command output goes to out;
// logs go to errOut unless a command configures otherwise.
func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "socialnet",
		Usage:     "a small social network of users, posts and notifications",
		Writer:    out,
		ErrWriter: errOut,
		Commands: []*cli.Command{
			serveCommand(),
			demoCommand(),
		},
	}
}
