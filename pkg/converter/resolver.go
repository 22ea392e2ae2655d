package converter

import (
	"math"

	"github.com/overture-tools/valhallaconv/pkg/geo"
	"github.com/overture-tools/valhallaconv/pkg/overture"
	"github.com/overture-tools/valhallaconv/pkg/valhalla"
)

// CoordinateTolerance is the per-axis match window between a segment vertex
// and a referenced connector, about 11 cm at the equator. Strict less-than: a
// vertex exactly 1e-6 degrees away does not match.
const CoordinateTolerance = 1e-6

// NodeAllocator hands out graph node indices. The C connectors own indices
// [0, C) in table order; vertices that resolve to no connector mint fresh
// indices starting at C, strictly increasing in first-encounter order and
// never reused. Minting is stateful and must run on a single goroutine.
type NodeAllocator struct {
	connectorIndex map[string]uint64
	connectorCoord []geo.Coordinate
	next           uint64
	unresolvedRefs int
}

func NewNodeAllocator(connectors []overture.Connector) *NodeAllocator {
	a := &NodeAllocator{
		connectorIndex: make(map[string]uint64, len(connectors)),
		connectorCoord: make([]geo.Coordinate, len(connectors)),
		next:           uint64(len(connectors)),
	}
	for i, c := range connectors {
		a.connectorIndex[c.ID] = uint64(i)
		a.connectorCoord[i] = c.Coordinate
	}
	return a
}

// ResolveSegment assigns a node index to every vertex of the segment. Only
// the segment's own connector refs are scanned, in list order, first match
// wins. Two vertices at identical coordinates that never resolve to a
// connector are not unified, connector-declared sharing is the only sharing.
func (a *NodeAllocator) ResolveSegment(seg *overture.Segment) []valhalla.ResolvedVertex {
	out := make([]valhalla.ResolvedVertex, len(seg.Points))
	for i, v := range seg.Points {
		index, matched := a.matchConnector(v, seg.ConnectorRefs)
		if !matched {
			index = a.next
			a.next++
		}
		out[i] = valhalla.ResolvedVertex{
			Index: index,
			Coord: v,
		}
	}
	return out
}

func (a *NodeAllocator) matchConnector(v geo.Coordinate, refs []overture.ConnectorRef) (uint64, bool) {
	for _, ref := range refs {
		index, known := a.connectorIndex[ref.ConnectorID]
		if !known {
			// a ref naming an id absent from the connector table is never
			// fatal, the vertex falls through to minting
			a.unresolvedRefs++
			continue
		}
		c := a.connectorCoord[index]
		if math.Abs(v.Lat-c.Lat) < CoordinateTolerance && math.Abs(v.Lon-c.Lon) < CoordinateTolerance {
			return index, true
		}
	}
	return 0, false
}

// ConnectorCount is C, the number of reserved connector indices.
func (a *NodeAllocator) ConnectorCount() int {
	return len(a.connectorCoord)
}

// NextIndex is the next index that will be minted.
func (a *NodeAllocator) NextIndex() uint64 {
	return a.next
}

// MintedNodes is the number of non-connector indices handed out so far.
func (a *NodeAllocator) MintedNodes() uint64 {
	return a.next - uint64(len(a.connectorCoord))
}

// UnresolvedRefs counts connector-ref lookups that named an unknown id.
func (a *NodeAllocator) UnresolvedRefs() int {
	return a.unresolvedRefs
}
