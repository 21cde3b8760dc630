// Entrypoint for the Cobra CLI; delegates to the root command in cmd/root.go.

package main

import (
	"github.com/elastic-optical/rsa-sim/cmd"
)

func main() {
	cmd.Execute()
}
