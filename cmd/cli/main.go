package main

import (
	"fmt"
	"os"

	"github.com/assetorbit/engine/pkg/services/rules"
	"github.com/assetorbit/engine/pkg/services/transform"
	"github.com/assetorbit/engine/pkg/services/transform/excel"
	"github.com/assetorbit/engine/pkg/services/transform/ninjaone"
	"github.com/assetorbit/engine/pkg/services/transform/telus"
	"github.com/assetorbit/engine/pkg/terminal"
)

func main() {
	registry, err := transform.NewRegistry(
		transform.Config{},
		ninjaone.New(),
		telus.New(),
		excel.New(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		Engine:   rules.NewEngine(),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
