// Package ioformat implements §6's external I/O shapes: topology,
// client, guard, and country-map readers, and the JSON/text writers
// for resilience, predicted-path, and risk-aggregation output.
package ioformat

import (
	"io"

	"github.com/inspire-group/tempest/topology"
)

// LoadTopology parses a CAIDA-style relationship stream into a Graph,
// per §4.1/§6. It is a thin re-export of topology.Load kept here so
// every I/O entry point a CLI binary touches lives in one package.
func LoadTopology(r io.Reader) (*topology.Graph, topology.LoadStats, error) {
	return topology.Load(r)
}
