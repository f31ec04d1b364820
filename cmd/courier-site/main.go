// Package main provides the courier-site binary.
//
// Usage:
//
//	courier-site [serve]                 - Run the HTTP server (default)
//	courier-site seed --file site.yaml   - Validate a content bundle and store it
//	courier-site smtp-check              - Verify SMTP connectivity and auth
//	courier-site version                 - Show version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "courier-site: %v\n", err)
		return exitCode(err)
	}
	return ExitSuccess
}

// exitCode maps an error to the process exit status. Errors without a
// *ServerError (flag and usage errors) are configuration errors.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var sErr *ServerError
	if errors.As(err, &sErr) {
		return sErr.ExitCode
	}
	return ExitConfigError
}
