package valhalla

import (
	"github.com/overture-tools/valhallaconv/pkg"
	"github.com/overture-tools/valhallaconv/pkg/geo"
)

// ResolvedVertex ties one polyline vertex to its graph node index. Vertices
// matched to a connector share the connector's index across segments.
type ResolvedVertex struct {
	Index uint64
	Coord geo.Coordinate
}

// DirectedEdge is one directed traversal of a segment's vertex sequence.
// Every kept segment yields a forward/backward pair, the tile builder rejects
// single-direction micro-edges for some topologies.
type DirectedEdge struct {
	ID           uint64
	NameRef      uint32
	Nodes        []ResolvedVertex
	Access       pkg.Access
	RoadClass    pkg.RoadClass
	Surface      pkg.Surface
	Use          pkg.Use
	Speed        uint8
	SpeedLimit   uint8
	DriveOnRight bool
}
