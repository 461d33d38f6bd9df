// Package main implements fitload-admin, the operator CLI for inspecting and
// resetting free-tier usage, issuing access tokens, running migrations and
// computing energy estimates offline.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd(newEnv(os.Stdout, os.Stderr))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
