/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package source

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/snaar/chopper/cmn"
)

// TimestampUnit is the granularity an epoch-form timestamp column is
// expressed in.
type TimestampUnit int

const (
	UnitSeconds TimestampUnit = iota
	UnitMillis
	UnitNanos
)

// CSVConfig describes how to read a delimited stream into rows: the
// timestamp column is special-cased (parsed per Epoch/Unit/TimestampLayout),
// every other column is carried as a String field -- CSV has no schema, and
// the core does not attempt to auto-type numeric-looking text (SPEC_FULL.md §4.8).
type CSVConfig struct {
	Delimiter       rune
	HasHeader       bool
	TimestampCol    string // column name; empty means column 0
	TimestampLayout string // time.Parse layout or "auto"; ignored when Epoch is set, empty means epoch
	Epoch           bool
	Unit            TimestampUnit
	TZ              cmn.TZ // required when TimestampLayout is set and non-epoch
}

// CSV is a Source reading delimited rows, one designated column providing
// the row timestamp and the rest carried as String fields.
type CSV struct {
	r          *csv.Reader
	header     cmn.Header
	tsColIndex int
	cfg        CSVConfig
	pending    []string // one record consumed while detecting column count
}

// NewCSV builds a CSV source over r. If cfg.HasHeader, the first record is
// consumed as column names; otherwise default names (col_0, col_1, ...)
// are synthesized once the first data record's width is known.
func NewCSV(r io.Reader, cfg CSVConfig) (*CSV, error) {
	cr := csv.NewReader(r)
	if cfg.Delimiter != 0 {
		cr.Comma = cfg.Delimiter
	}
	cr.FieldsPerRecord = -1

	c := &CSV{r: cr, cfg: cfg}

	var names []string
	if cfg.HasHeader {
		rec, err := cr.Read()
		if err != nil {
			return nil, cmn.Wrap(cmn.ErrCsv, err, "reading csv header row")
		}
		names = rec
	} else {
		peeked, err := cr.Read()
		if err == io.EOF {
			names = cmn.GenerateDefaultFieldNames(0)
		} else if err != nil {
			return nil, cmn.Wrap(cmn.ErrCsv, err, "reading first csv row")
		} else {
			names = cmn.GenerateDefaultFieldNames(len(peeked))
			c.pending = peeked
		}
	}

	types := make([]cmn.FieldType, len(names))
	for i := range types {
		types[i] = cmn.FieldString
	}
	c.header = cmn.NewHeader(names, types)

	tsIdx := 0
	if cfg.TimestampCol != "" {
		idx, err := c.header.GetFieldIndex(cfg.TimestampCol)
		if err != nil {
			return nil, err
		}
		tsIdx = idx
	}
	c.tsColIndex = tsIdx

	return c, nil
}

func (c *CSV) Header() cmn.Header { return c.header }

// NextRow reads and parses one CSV record. Malformed records surface as Csv
// errors; a timestamp the designated column can't be parsed into surfaces
// as TimeParsing or NumParseInt depending on the configured form.
func (c *CSV) NextRow() (*cmn.Row, error) {
	var rec []string
	if c.pending != nil {
		rec, c.pending = c.pending, nil
	} else {
		r, err := c.r.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, cmn.Wrap(cmn.ErrCsv, err, "reading csv row")
		}
		rec = r
	}

	ts, err := c.parseTimestamp(rec[c.tsColIndex])
	if err != nil {
		return nil, err
	}

	values := make([]cmn.FieldValue, len(rec))
	for i, field := range rec {
		values[i] = cmn.NewString(field)
	}
	return &cmn.Row{Timestamp: ts, FieldValues: values}, nil
}

func (c *CSV) parseTimestamp(s string) (uint64, error) {
	if c.cfg.Epoch || c.cfg.TimestampLayout == "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, cmn.Wrap(cmn.ErrNumParseInt, err, "parsing epoch timestamp %q", s)
		}
		switch c.cfg.Unit {
		case UnitMillis:
			return uint64(n) * uint64(time.Millisecond), nil
		case UnitNanos:
			return uint64(n), nil
		default:
			return uint64(n) * uint64(time.Second), nil
		}
	}

	var t time.Time
	var err error
	if c.cfg.TimestampLayout == "auto" {
		t, err = dateparse.ParseAny(s)
	} else {
		t, err = time.Parse(c.cfg.TimestampLayout, s)
	}
	if err != nil {
		return 0, cmn.Wrap(cmn.ErrTimeParsing, err, "parsing timestamp %q", s)
	}
	// t's clock fields are naive (dateparse/time.Parse default to UTC
	// absent an explicit zone); reinterpret them in the configured zone.
	return c.cfg.TZ.LocalToNanos(t)
}
