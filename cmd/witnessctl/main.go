// Command witnessctl is the operational shell wrapped around the witness
// authorization core: a fixture-driven verifier plus an optional metrics
// and live-decision-streaming surface, in the same spirit as the
// teacher's cli/server node command wraps its consensus and network
// packages. None of it is consensus-critical.
package main

import (
	"fmt"
	"os"

	"github.com/nan01ab/neo/cmd/witnessctl/internal/serve"
	"github.com/nan01ab/neo/cmd/witnessctl/internal/verifycmd"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "witnessctl: logger init:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	app := cli.NewApp()
	app.Name = "witnessctl"
	app.Usage = "inspect and exercise the witness authorization core"
	app.Commands = []cli.Command{
		verifycmd.Command(log),
		serve.Command(log),
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
