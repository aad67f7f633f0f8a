// Package main provides the entrypoint for cakto-webhook-app.
package main

import (
	"os"

	"github.com/isometry/cakto-webhook-app/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
