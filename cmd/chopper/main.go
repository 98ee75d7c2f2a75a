// Command chopper drives the graph execution core over CSV or DC inputs:
// one or more ordered row streams are merged, filtered, and written back
// out in time order.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/snaar/chopper/cmd/chopper/commands"
	"github.com/snaar/chopper/cmn"
)

var version = "0.1.0"

func main() {
	app := cli.NewApp()
	app.Name = "chopper"
	app.Usage = "stream, filter and merge time-ordered CSV/DC data"
	app.Version = version
	app.ArgsUsage = "[input...]"
	app.Flags = commands.RunFlags
	app.Action = commands.Run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmn.ExitCode(err))
	}
}
