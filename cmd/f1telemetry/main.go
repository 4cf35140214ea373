// Package main is the entry point for the f1telemetry command line tool.
package main

import "github.com/sebasr/f1-telemetry-viewer/internal/cli"

func main() {
	cli.Execute()
}
