// Package commands provides the chopper CLI's flag set and run action,
// concretizing the external-collaborator CLI surface from spec §6.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package commands

import "github.com/urfave/cli"

var (
	outputFlag = cli.StringFlag{
		Name:  "output, o",
		Usage: "output file path (default: stdout)",
	}
	beginFlag = cli.StringFlag{
		Name:  "begin, b",
		Usage: "inclusive start of the timestamp range, as an ISO date/datetime string",
	}
	endFlag = cli.StringFlag{
		Name:  "end, e",
		Usage: "exclusive end of the timestamp range, as an ISO date/datetime string",
	}
	timezoneFlag = cli.StringFlag{
		Name:  "timezone, z",
		Usage: "IANA timezone name used to interpret zoneless timestamp strings",
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Value: "auto",
		Usage: "input format: auto|csv|dc",
	}
	outputFormatFlag = cli.StringFlag{
		Name:  "output-format",
		Value: "csv",
		Usage: "output format: csv|dc",
	}
	delimiterFlag = cli.StringFlag{
		Name:  "delimiter",
		Value: ",",
		Usage: "csv field delimiter",
	}
	headerFlag = cli.BoolFlag{
		Name:  "header",
		Usage: "treat the first csv record as column names (default)",
	}
	noHeaderFlag = cli.BoolFlag{
		Name:  "no-header",
		Usage: "treat csv input as headerless; columns are named col_0, col_1, ...",
	}
	tsColFlag = cli.StringFlag{
		Name:  "ts-col",
		Usage: "name of the csv timestamp column (default: first column)",
	}
	tsFormatFlag = cli.StringFlag{
		Name:  "ts-format",
		Usage: "timestamp layout: epoch|epoch-ms|epoch-ns|auto|a Go time.Parse layout",
		Value: "epoch",
	}
	outputTimeFlag = cli.StringFlag{
		Name:  "output-time",
		Value: "epoch",
		Usage: "output timestamp representation: epoch|human",
	}
	deleteColumnFlag = cli.StringSliceFlag{
		Name:  "delete-column",
		Usage: "drop a named column from the merged stream (repeatable)",
	}
	filterEqFlag = cli.StringSliceFlag{
		Name:  "filter-eq",
		Usage: "keep only rows where col=value (repeatable, string-compares the column)",
	}
	filterGtFlag = cli.StringSliceFlag{
		Name:  "filter-gt",
		Usage: "keep only rows where col>value (repeatable, string-compares the column)",
	}
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "log each source header, and the error of a failed run, via glog",
	}

	RunFlags = []cli.Flag{
		outputFlag,
		beginFlag,
		endFlag,
		timezoneFlag,
		formatFlag,
		outputFormatFlag,
		delimiterFlag,
		headerFlag,
		noHeaderFlag,
		tsColFlag,
		tsFormatFlag,
		outputTimeFlag,
		deleteColumnFlag,
		filterEqFlag,
		filterGtFlag,
		debugFlag,
	}
)
