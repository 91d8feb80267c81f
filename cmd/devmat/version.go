package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the devmat version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("devmat %s\n", version)

			return nil
		},
	}
}
