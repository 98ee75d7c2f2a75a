/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package commands

import (
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/araddon/dateparse"
	"github.com/golang/glog"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli"

	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/driver"
	"github.com/snaar/chopper/filter"
	"github.com/snaar/chopper/graph"
	"github.com/snaar/chopper/sink"
	"github.com/snaar/chopper/source"
)

// Run is the chopper CLI's single action: it assembles a HeaderGraph from
// the given inputs, filters and output, resolves it, and drives the
// resulting DataGraph to completion (spec §4.2-§4.6, concretized for the
// CLI by SPEC_FULL.md §4.11).
func Run(c *cli.Context) error {
	defer glog.Flush()

	tz, err := resolveTZ(c.String(timezoneFlag.Name))
	if err != nil {
		return err
	}

	csvCfg, err := buildCSVConfig(c, tz)
	if err != nil {
		return err
	}
	inFormat, err := parseInputFormat(c.String(formatFlag.Name))
	if err != nil {
		return err
	}

	inputs := c.Args()
	if len(inputs) == 0 {
		inputs = []string{""}
	}

	sources := make([]source.Source, 0, len(inputs))
	for _, path := range inputs {
		src, err := source.OpenInput(path, inFormat, csvCfg)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	out, closeOut, err := openOutput(c.String(outputFlag.Name))
	if err != nil {
		return err
	}
	if closeOut != nil {
		defer closeOut()
	}

	outputSink, err := buildOutputSink(c, out, tz)
	if err != nil {
		return err
	}

	hg, chainIDs, outputChain, err := buildHeaderGraph(len(sources))
	if err != nil {
		return err
	}

	filters, err := buildFilters(c)
	if err != nil {
		return err
	}
	for _, f := range filters {
		if err := hg.AddNode(outputChain, &graph.HeaderSinkNode{Sink: f}); err != nil {
			return err
		}
	}
	if err := hg.AddNode(outputChain, &graph.HeaderSinkNode{Sink: outputSink}); err != nil {
		return err
	}

	sourceHeaders := make([]cmn.Header, len(sources))
	for i, src := range sources {
		sourceHeaders[i] = src.Header()
	}
	if c.Bool(debugFlag.Name) {
		debugDumpHeaders(sourceHeaders)
	}

	dg, err := graph.Resolve(hg, sourceHeaders)
	if err != nil {
		return err
	}

	rng, err := buildRange(c, tz)
	if err != nil {
		return err
	}

	scs := make([]driver.SourceChain, len(sources))
	for i, src := range sources {
		scs[i] = driver.SourceChain{Source: src, ChainID: chainIDs[i]}
	}

	drv, err := driver.New(dg, scs, rng)
	if err != nil {
		return err
	}
	if err := drv.Run(); err != nil {
		if isBrokenPipe(err) {
			return nil
		}
		if c.Bool(debugFlag.Name) {
			glog.Errorf("run failed: %+v", err)
		}
		return err
	}
	return nil
}

// buildHeaderGraph wires one chain per source. A single source needs no
// merge: its own chain carries the filters and output directly. Multiple
// sources fan into a MergeJoin on one extra chain, which then carries the
// filters and output.
func buildHeaderGraph(numSources int) (*graph.HeaderGraph, []cmn.ChainID, cmn.ChainID, error) {
	if numSources == 1 {
		hg := graph.NewHeaderGraph(1)
		return hg, []cmn.ChainID{0}, cmn.ChainID(0), nil
	}

	hg := graph.NewHeaderGraph(numSources + 1)
	mergeChain := cmn.ChainID(numSources)
	chainIDs := make([]cmn.ChainID, numSources)
	for i := 0; i < numSources; i++ {
		chainIDs[i] = cmn.ChainID(i)
		if err := hg.AddNode(chainIDs[i], &graph.HeaderMergeNode{TargetChainID: mergeChain, PinID: cmn.PinID(i)}); err != nil {
			return nil, nil, 0, err
		}
	}
	if err := hg.AddNode(mergeChain, graph.NewMergeHeaderSinkNode(sink.NewMergeJoin(numSources))); err != nil {
		return nil, nil, 0, err
	}
	return hg, chainIDs, mergeChain, nil
}

func buildFilters(c *cli.Context) ([]sink.HeaderSink, error) {
	var filters []sink.HeaderSink
	for _, col := range c.StringSlice(deleteColumnFlag.Name) {
		filters = append(filters, filter.NewColumnFilterDeleteColumn(col))
	}
	for _, expr := range c.StringSlice(filterEqFlag.Name) {
		col, val, err := splitColValue(expr, filterEqFlag.Name)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter.NewRowFilterEqualValue(col, cmn.NewString(val)))
	}
	for _, expr := range c.StringSlice(filterGtFlag.Name) {
		col, val, err := splitColValue(expr, filterGtFlag.Name)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter.NewRowFilterGreaterValue(col, cmn.NewString(val)))
	}
	return filters, nil
}

func splitColValue(expr, flagName string) (col, val string, err error) {
	i := strings.IndexByte(expr, '=')
	if i < 0 {
		return "", "", cmn.NewError(cmn.ErrCliParsing, "--%s expects col=value, got %q", flagName, expr)
	}
	return expr[:i], expr[i+1:], nil
}

func buildCSVConfig(c *cli.Context, tz cmn.TZ) (source.CSVConfig, error) {
	delim := c.String(delimiterFlag.Name)
	if len(delim) != 1 {
		return source.CSVConfig{}, cmn.NewError(cmn.ErrCliParsing, "--%s must be exactly one character, got %q", delimiterFlag.Name, delim)
	}

	cfg := source.CSVConfig{
		Delimiter:    rune(delim[0]),
		HasHeader:    !c.Bool(noHeaderFlag.Name),
		TimestampCol: c.String(tsColFlag.Name),
		TZ:           tz,
	}

	switch ts := c.String(tsFormatFlag.Name); ts {
	case "epoch", "":
		cfg.Epoch = true
		cfg.Unit = source.UnitSeconds
	case "epoch-ms":
		cfg.Epoch = true
		cfg.Unit = source.UnitMillis
	case "epoch-ns":
		cfg.Epoch = true
		cfg.Unit = source.UnitNanos
	case "auto":
		cfg.TimestampLayout = "auto"
	default:
		cfg.TimestampLayout = ts
	}
	return cfg, nil
}

func parseInputFormat(s string) (source.Format, error) {
	switch s {
	case "auto", "":
		return source.FormatAuto, nil
	case "csv":
		return source.FormatCSV, nil
	case "dc":
		return source.FormatDC, nil
	default:
		return 0, cmn.NewError(cmn.ErrCliParsing, "--format must be one of auto|csv|dc, got %q", s)
	}
}

func buildOutputSink(c *cli.Context, w io.Writer, tz cmn.TZ) (sink.HeaderSink, error) {
	switch f := c.String(outputFormatFlag.Name); f {
	case "dc":
		return sink.NewDCOutput(w), nil
	case "csv", "":
		repr := sink.TimeEpoch
		if c.String(outputTimeFlag.Name) == "human" {
			repr = sink.TimeHuman
		}
		cfg := sink.CSVOutputConfig{WithHeader: !c.Bool(noHeaderFlag.Name), TimeRepr: repr, TZ: tz}
		return sink.NewCSVOutput(w, cfg), nil
	default:
		return nil, cmn.NewError(cmn.ErrCliParsing, "--output-format must be one of csv|dc, got %q", f)
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, cmn.Wrap(cmn.ErrIO, err, "creating output file %q", path)
	}
	return f, func() { _ = f.Close() }, nil
}

func resolveTZ(name string) (cmn.TZ, error) {
	if name == "" {
		return cmn.NoTZ(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return cmn.TZ{}, cmn.Wrap(cmn.ErrTimeParsing, err, "loading timezone %q", name)
	}
	return cmn.NewTZ(loc), nil
}

// explicitZone matches a trailing Z or +hh:mm/-hh:mm offset, the signal
// that a begin/end boundary string already names its own zone and does
// not need -z/--timezone to be interpreted.
var explicitZone = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)

func buildRange(c *cli.Context, tz cmn.TZ) (driver.Range, error) {
	var rng driver.Range
	if s := c.String(beginFlag.Name); s != "" {
		ns, err := parseBoundary(s, tz)
		if err != nil {
			return rng, err
		}
		rng.Begin, rng.HasBegin = ns, true
	}
	if s := c.String(endFlag.Name); s != "" {
		ns, err := parseBoundary(s, tz)
		if err != nil {
			return rng, err
		}
		rng.End, rng.HasEnd = ns, true
	}
	return rng, nil
}

func parseBoundary(s string, tz cmn.TZ) (uint64, error) {
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return 0, cmn.Wrap(cmn.ErrTimeParsing, err, "parsing %q", s)
	}
	if explicitZone.MatchString(s) {
		return uint64(t.UnixNano()), nil
	}
	return tz.LocalToNanos(t)
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}

// debugDumpHeaders logs the schema of each input source before the header
// graph is resolved, so --debug runs can be inspected without a
// separate header-only mode.
func debugDumpHeaders(headers []cmn.Header) {
	type fieldDump struct {
		Name string        `json:"name"`
		Type cmn.FieldType `json:"type"`
	}
	dump := make([][]fieldDump, len(headers))
	for i, h := range headers {
		fields := make([]fieldDump, h.Len())
		for j, name := range h.FieldNames {
			fields[j] = fieldDump{Name: name, Type: h.FieldTypes[j]}
		}
		dump[i] = fields
	}
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(dump)
	if err != nil {
		glog.Errorf("debug: marshaling source headers: %v", err)
		return
	}
	glog.Infof("debug: resolved source headers: %s", b)
}
