/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package source

import (
	"io"

	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/dc"
)

// DC is a Source reading the DC binary columnar format (spec §4.7) via a
// dc.Reader.
type DC struct {
	r *dc.Reader
}

// NewDC opens a DC source over r, decoding its fixed header eagerly.
func NewDC(r io.Reader) (*DC, error) {
	reader, err := dc.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &DC{r: reader}, nil
}

func (d *DC) Header() cmn.Header { return d.r.Header() }

func (d *DC) NextRow() (*cmn.Row, error) { return d.r.NextRow() }
