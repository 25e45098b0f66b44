// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"kreads/internal/cli"

	"github.com/pkg/errors"
)

// RunContext executes the command line and returns the process exit
// code: 0 on success, 2 for configuration errors caught before any
// resource was created, 1 for everything else.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCmd()
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	if errors.Is(err, cli.ErrUsage) {
		return 2
	}
	return 1
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
