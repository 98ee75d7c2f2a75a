// Package source defines the Source external-collaborator interface (spec
// §6) and the concrete sources the CLI wires up: CSV, DC, and their
// directory/stdin providers.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package source

import "github.com/snaar/chopper/cmn"

// Source is a single timestamp-ordered stream of rows sharing one header.
// NextRow returns (nil, nil) at end-of-stream, matching the DC reader's
// treatment of a failed/missing timestamp read as EOF rather than an error.
type Source interface {
	Header() cmn.Header
	NextRow() (*cmn.Row, error)
}
