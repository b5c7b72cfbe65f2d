// Package main provides the entrypoint for webtask.
package main

import (
	"os"

	"github.com/ramaditya/webtask/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
