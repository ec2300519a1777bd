// Package main provides the CLI entrypoint for dispatch-generator.
//
// dispatch-generator is a static codegen tool that:
//   - Parses Go packages (AST + go/types) to find tagged container types
//   - Derives a declaration-ordered dispatch plan per entry point
//   - Synthesizes each entry point's dispatch body into a generated file
package main

import (
	"fmt"
	"os"

	"dispatch-generator/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
