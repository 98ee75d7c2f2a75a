/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package sink

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/dc"
)

// TimeRepr selects how the output timestamp column is rendered.
type TimeRepr int

const (
	TimeEpoch TimeRepr = iota
	TimeHuman
)

// CSVOutputConfig controls the terminal CSV sink's dialect.
type CSVOutputConfig struct {
	Delimiter  rune
	WithHeader bool
	TimeRepr   TimeRepr
	TZ         cmn.TZ // required when TimeRepr is TimeHuman
}

// csvOutputConfig is the HeaderSink half: it writes the header row (if
// configured) and hands back the row-writing DataSink.
type csvOutputConfig struct {
	w   *csv.Writer
	cfg CSVOutputConfig
}

// NewCSVOutput builds a HeaderSink writing CSV to w.
func NewCSVOutput(w io.Writer, cfg CSVOutputConfig) HeaderSink {
	cw := csv.NewWriter(w)
	if cfg.Delimiter != 0 {
		cw.Comma = cfg.Delimiter
	}
	return &csvOutputConfig{w: cw, cfg: cfg}
}

func (c *csvOutputConfig) ProcessHeader(h *cmn.Header) (DataSink, error) {
	if c.cfg.WithHeader {
		record := append([]string{"timestamp"}, h.FieldNames...)
		if err := c.w.Write(record); err != nil {
			return nil, cmn.Wrap(cmn.ErrIO, err, "writing csv header")
		}
	}
	return &csvOutputSink{w: c.w, timeRepr: c.cfg.TimeRepr, tz: c.cfg.TZ}, nil
}

type csvOutputSink struct {
	w        *csv.Writer
	timeRepr TimeRepr
	tz       cmn.TZ
}

func (s *csvOutputSink) WriteRowToPin(_ cmn.PinID, ioRows *[]cmn.Row) error {
	for _, row := range *ioRows {
		tsField, err := s.formatTimestamp(row.Timestamp)
		if err != nil {
			return err
		}
		record := make([]string, 0, len(row.FieldValues)+1)
		record = append(record, tsField)
		for _, v := range row.FieldValues {
			record = append(record, formatFieldValue(v))
		}
		if err := s.w.Write(record); err != nil {
			return cmn.Wrap(cmn.ErrIO, err, "writing csv row")
		}
	}
	return nil
}

func (s *csvOutputSink) formatTimestamp(ts uint64) (string, error) {
	if s.timeRepr == TimeHuman {
		t, err := s.tz.NanosToLocal(ts)
		if err != nil {
			return "", err
		}
		return t.Format(time.RFC3339Nano), nil
	}
	return strconv.FormatUint(ts, 10), nil
}

func (s *csvOutputSink) Flush() error {
	s.w.Flush()
	return s.w.Error()
}

// formatFieldValue renders a field's value as CSV text, independent of
// cmn.FieldValue.String()'s debug-oriented default (which prints the type
// name for non-string values rather than their value).
func formatFieldValue(v cmn.FieldValue) string {
	if v.None {
		return ""
	}
	switch v.Type {
	case cmn.FieldBoolean:
		return strconv.FormatBool(v.Bool())
	case cmn.FieldByte:
		return strconv.FormatUint(uint64(v.Byte()), 10)
	case cmn.FieldChar:
		return string(rune(v.Char()))
	case cmn.FieldDouble:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case cmn.FieldFloat:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case cmn.FieldInt:
		return strconv.FormatInt(int64(v.Int()), 10)
	case cmn.FieldLong:
		return strconv.FormatInt(v.Long(), 10)
	case cmn.FieldShort:
		return strconv.FormatInt(int64(v.Short()), 10)
	case cmn.FieldString:
		return v.StringVal()
	default:
		return v.String()
	}
}

// dcOutputConfig is the HeaderSink half of the DC terminal sink: it builds
// the dc.Writer and emits the fixed header exactly once (spec §4.7).
type dcOutputConfig struct {
	w io.Writer
}

// NewDCOutput builds a HeaderSink writing the DC binary format to w.
func NewDCOutput(w io.Writer) HeaderSink {
	return &dcOutputConfig{w: w}
}

func (c *dcOutputConfig) ProcessHeader(h *cmn.Header) (DataSink, error) {
	writer := dc.NewWriter(c.w)
	if err := writer.WriteHeader(*h); err != nil {
		return nil, err
	}
	return &dcOutputSink{w: writer}, nil
}

type dcOutputSink struct {
	w *dc.Writer
}

func (s *dcOutputSink) WriteRowToPin(_ cmn.PinID, ioRows *[]cmn.Row) error {
	for _, row := range *ioRows {
		if err := s.w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *dcOutputSink) Flush() error { return nil }
