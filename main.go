// Package main is the entry point for the csreplay CLI tool, which rebuilds
// match models from CS2 demo files and drives 2D playback.
package main

import "github.com/pable/go-cs-replay/cmd"

func main() {
	cmd.Execute()
}
