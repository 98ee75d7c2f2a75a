// Package driver implements the Phase 2 runtime: the k-way timestamp merge
// over a DataGraph's source chains, the per-row walk through sinks,
// Merge and Split nodes, and the termination-time flush pass (spec §4.6).
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package driver

import (
	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/graph"
	"github.com/snaar/chopper/source"
)

// Driver owns one row buffer per active source and the data graph they
// feed. It is single-threaded and cooperative: Run blocks until every
// source is exhausted or a sink/source/flush returns an error.
type Driver struct {
	dataGraph      *graph.DataGraph
	buffers        []*rowBuffer
	sourceChainIDs []cmn.ChainID
	rng            Range
	flushed        map[cmn.ChainID]bool
}

// SourceChain pairs a Source with the chain id its rows enter the data graph on.
type SourceChain struct {
	Source  source.Source
	ChainID cmn.ChainID
}

// New builds a Driver over dg, reading one initial row from each of
// sources. A source that is empty (or whose rows all fail the range before
// one can be written) contributes no row buffer, but its chain is still
// recorded so Run flushes it like any other source (spec §9, open question
// (b): an empty source still flushes its chain).
func New(dg *graph.DataGraph, sources []SourceChain, rng Range) (*Driver, error) {
	d := &Driver{dataGraph: dg, rng: rng, flushed: make(map[cmn.ChainID]bool)}
	for _, sc := range sources {
		d.sourceChainIDs = append(d.sourceChainIDs, sc.ChainID)
		rb, ok, err := newRowBuffer(sc.Source, sc.ChainID, rng)
		if err != nil {
			return nil, err
		}
		if ok {
			d.buffers = append(d.buffers, rb)
		}
	}
	return d, nil
}

// Run drives the k-way merge loop to completion. Flushing is deferred until
// every source has drained: a chain's downstream sinks may still be fed by
// a sibling source that hasn't finished yet, so flushing as soon as the
// first feeder exhausts would cut off rows the other feeders still have to
// write (e.g. a shared terminal sink in a multi-source merge). Once all
// buffers are drained, every source chain is flushed exactly once, guarded
// by the flushed set so a downstream chain shared by several source chains
// is not flushed more than once.
func (d *Driver) Run() error {
	for len(d.buffers) > 0 {
		i := d.selectMin()
		buf := d.buffers[i]
		row := buf.row
		chainID := buf.chainID

		if err := d.processRow(chainID, 0, 0, row); err != nil {
			return err
		}

		ok, err := buf.advance(d.rng)
		if err != nil {
			return err
		}
		if !ok {
			d.buffers = append(d.buffers[:i], d.buffers[i+1:]...)
		}
	}

	for _, chainID := range d.sourceChainIDs {
		if err := d.flush(chainID); err != nil {
			return err
		}
	}
	return nil
}

// selectMin finds the row buffer with the smallest timestamp, ties broken
// by position order (the first minimum encountered wins).
func (d *Driver) selectMin() int {
	min := 0
	for i := 1; i < len(d.buffers); i++ {
		if d.buffers[i].timestamp < d.buffers[min].timestamp {
			min = i
		}
	}
	return min
}

// processRow walks chainID from nodeIndex forward, handling DataSink,
// Merge and Split nodes per spec §4.6. pinID is only honored at the first
// sink encountered; emitted rows walking the rest of the chain and rows
// fanned out by a Split use pin 0, while a Merge node restarts the walk on
// its target chain with its own PinID.
func (d *Driver) processRow(chainID cmn.ChainID, nodeIndex int, pinID cmn.PinID, row cmn.Row) error {
	chain, err := d.dataGraph.GetChain(chainID)
	if err != nil {
		return err
	}
	for nodeIndex < len(chain) {
		switch n := chain[nodeIndex].(type) {
		case *graph.DataSinkNode:
			rows := []cmn.Row{row}
			if err := n.Sink.WriteRowToPin(pinID, &rows); err != nil {
				return err
			}
			for _, r := range rows {
				if err := d.processRow(chainID, nodeIndex+1, 0, r); err != nil {
					return err
				}
			}
			return nil

		case *graph.DataMergeNode:
			return d.processRow(n.TargetChainID, 0, n.PinID, row)

		case *graph.DataSplitNode:
			for _, target := range n.TargetChainIDs {
				if err := d.processRow(target, 0, 0, row.Clone()); err != nil {
					return err
				}
			}
			return nil

		default:
			return cmn.Custom("driver: chain %d has unrecognized node type at position %d", chainID, nodeIndex)
		}
	}
	return nil
}

// flush walks chainID from node 0, calling Flush on every DataSink reached
// and descending into Merge/Split targets, skipping any chain already
// flushed so a shared downstream sink is never flushed twice.
func (d *Driver) flush(chainID cmn.ChainID) error {
	if d.flushed[chainID] {
		return nil
	}
	d.flushed[chainID] = true

	chain, err := d.dataGraph.GetChain(chainID)
	if err != nil {
		return err
	}
	for _, node := range chain {
		switch n := node.(type) {
		case *graph.DataSinkNode:
			if err := n.Sink.Flush(); err != nil {
				return err
			}
		case *graph.DataMergeNode:
			if err := d.flush(n.TargetChainID); err != nil {
				return err
			}
		case *graph.DataSplitNode:
			for _, target := range n.TargetChainIDs {
				if err := d.flush(target); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
