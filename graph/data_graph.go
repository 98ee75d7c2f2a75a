/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package graph

import (
	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/sink"
)

// DataNode is one of DataSinkNode, DataMergeNode or DataSplitNode.
type DataNode interface {
	isDataNode()
}

// DataSinkNode wraps a runtime sink that rows are routed through.
type DataSinkNode struct {
	Sink sink.DataSink
}

func (*DataSinkNode) isDataNode() {}

// DataMergeNode redirects a row to node 0 of TargetChainID, on PinID. Per
// the spec's note 9(c), PinID is consumed only by the first sink entered
// on the target chain -- the driver resets pin to 0 after that first hop.
type DataMergeNode struct {
	TargetChainID cmn.ChainID
	PinID         cmn.PinID
}

func (*DataMergeNode) isDataNode() {}

// DataSplitNode fans a row out, in order, to node 0 of every listed
// target chain. It only ever appears at the end of a data chain.
type DataSplitNode struct {
	TargetChainIDs []cmn.ChainID
}

func (*DataSplitNode) isDataNode() {}

// DataChain is an ordered, index-stable list of DataNodes.
type DataChain []DataNode

// DataGraph is a runtime DAG of data sinks and routing nodes, isomorphic
// in chain count to the HeaderGraph it was resolved from.
type DataGraph struct {
	Chains []DataChain
}

// NewDataGraph builds a DataGraph with n empty chains -- chain count is
// fixed at construction, per spec §4.5.
func NewDataGraph(n int) *DataGraph {
	return &DataGraph{Chains: make([]DataChain, n)}
}

// AddNode appends node to the end of chain id.
func (g *DataGraph) AddNode(id cmn.ChainID, node DataNode) error {
	if int(id) < 0 || int(id) >= len(g.Chains) {
		return cmn.Custom("data graph: chain index %d out of bounds (have %d chains)", id, len(g.Chains))
	}
	g.Chains[id] = append(g.Chains[id], node)
	return nil
}

// GetChain returns the node list for chain id.
func (g *DataGraph) GetChain(id cmn.ChainID) (DataChain, error) {
	if int(id) < 0 || int(id) >= len(g.Chains) {
		return nil, cmn.Custom("data graph: chain index %d out of bounds (have %d chains)", id, len(g.Chains))
	}
	return g.Chains[id], nil
}

// GetChainNodeCount returns the number of nodes in chain id.
func (g *DataGraph) GetChainNodeCount(id cmn.ChainID) int {
	if int(id) < 0 || int(id) >= len(g.Chains) {
		return 0
	}
	return len(g.Chains[id])
}
