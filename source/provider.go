/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package source

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/transport"
)

// Format selects how a byte stream is decoded into rows.
type Format int

const (
	FormatAuto Format = iota
	FormatCSV
	FormatDC
)

// Open wraps r (already unwrapped of any compression) as a Source of the
// requested format, autodetecting CSV vs DC from the DC magic when format
// is FormatAuto.
func Open(r io.Reader, format Format, csvCfg CSVConfig) (Source, error) {
	if format == FormatAuto {
		br := bufio.NewReader(r)
		detected, err := transport.DetectFormat(br)
		if err != nil {
			return nil, err
		}
		if detected == transport.FormatDC {
			return NewDC(br)
		}
		return NewCSV(br, csvCfg)
	}
	if format == FormatDC {
		return NewDC(r)
	}
	return NewCSV(r, csvCfg)
}

// OpenPath opens path (or stdin when path is "-" or empty), transparently
// unwrapping any detected compression before decoding rows.
func OpenPath(path string, format Format, csvCfg CSVConfig) (Source, error) {
	var raw io.Reader
	if path == "" || path == "-" {
		raw = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, cmn.Wrap(cmn.ErrIO, err, "opening %q", path)
		}
		raw = f
	}
	unwrapped, _, err := transport.Unwrap(raw)
	if err != nil {
		return nil, err
	}
	return Open(unwrapped, format, csvCfg)
}

// OpenInput opens a single input path, or -- when path names a directory --
// a deterministic lexical walk of its immediate files concatenated in name
// order, as one logical stream (SPEC_FULL.md §4.8).
func OpenInput(path string, format Format, csvCfg CSVConfig) (Source, error) {
	if path == "" || path == "-" {
		return OpenPath(path, format, csvCfg)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, cmn.Wrap(cmn.ErrIO, err, "stat %q", path)
	}
	if !info.IsDir() {
		return OpenPath(path, format, csvCfg)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, cmn.Wrap(cmn.ErrIO, err, "reading directory %q", path)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return newConcatSource(files, format, csvCfg)
}

// concatSource presents a sequence of files as a single Source: each file
// opens lazily, in lexical order, and every file's rows are expected to
// share one header (the first file's header is the source's header).
type concatSource struct {
	paths  []string
	next   int
	format Format
	csvCfg CSVConfig
	header cmn.Header
	cur    Source
}

func newConcatSource(paths []string, format Format, csvCfg CSVConfig) (*concatSource, error) {
	cs := &concatSource{paths: paths, format: format, csvCfg: csvCfg}
	if len(paths) == 0 {
		return cs, nil
	}
	first, err := OpenPath(paths[0], format, csvCfg)
	if err != nil {
		return nil, err
	}
	cs.cur = first
	cs.header = first.Header()
	cs.next = 1
	return cs, nil
}

func (cs *concatSource) Header() cmn.Header { return cs.header }

func (cs *concatSource) NextRow() (*cmn.Row, error) {
	for cs.cur != nil {
		row, err := cs.cur.NextRow()
		if err != nil {
			return nil, err
		}
		if row != nil {
			return row, nil
		}
		if cs.next >= len(cs.paths) {
			cs.cur = nil
			return nil, nil
		}
		next, err := OpenPath(cs.paths[cs.next], cs.format, cs.csvCfg)
		if err != nil {
			return nil, err
		}
		if !next.Header().Equal(cs.header) {
			return nil, cmn.Custom("concatenated input %q has a header differing from %q", cs.paths[cs.next], cs.paths[0])
		}
		cs.cur = next
		cs.next++
	}
	return nil, nil
}
