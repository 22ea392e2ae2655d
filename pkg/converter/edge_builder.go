package converter

import (
	"math"

	"github.com/overture-tools/valhallaconv/pkg"
	"github.com/overture-tools/valhallaconv/pkg/overture"
	"github.com/overture-tools/valhallaconv/pkg/util"
	"github.com/overture-tools/valhallaconv/pkg/valhalla"
)

const mphToKmh = 1.609344

// BuildEdgePair turns one kept segment into its forward/backward directed
// edge pair. The duplication is deliberate: the tile builder rejects
// single-direction micro-edges for some topologies, so every segment ships as
// a matched pair sharing class, surface, speed and access. ordinal is the
// kept-segment position, edge ids are 2*ordinal+1 and 2*ordinal+2 so id 0
// never appears in the output.
func BuildEdgePair(ordinal int, seg *overture.Segment, vertices []valhalla.ResolvedVertex,
	access pkg.Access, nameRef uint32, driveOnRight bool) (valhalla.DirectedEdge, valhalla.DirectedEdge, error) {

	if len(vertices) < 2 {
		return valhalla.DirectedEdge{}, valhalla.DirectedEdge{}, util.WrapErrorf(nil, util.ErrDegenerateEdge,
			"segment %s has %d vertices", seg.ID, len(vertices))
	}

	class := pkg.GetRoadClass(seg.Class)
	speed, speedLimit := effectiveSpeed(seg, class)

	forward := valhalla.DirectedEdge{
		ID:           uint64(2*ordinal + 1),
		NameRef:      nameRef,
		Nodes:        vertices,
		Access:       access,
		RoadClass:    class,
		Surface:      pkg.GetSurface(seg.Surface),
		Use:          pkg.GetUse(seg.Class),
		Speed:        speed,
		SpeedLimit:   speedLimit,
		DriveOnRight: driveOnRight,
	}

	backward := forward
	backward.ID = uint64(2*ordinal + 2)
	backward.Nodes = make([]valhalla.ResolvedVertex, len(vertices))
	for i, v := range vertices {
		backward.Nodes[len(vertices)-1-i] = v
	}

	return forward, backward, nil
}

// effectiveSpeed prefers the first posted maximum speed, normalized to km/h,
// and falls back to the class default. The posted value is also reported as
// the record's speed limit; without one the limit field stays zero.
func effectiveSpeed(seg *overture.Segment, class pkg.RoadClass) (uint8, uint8) {
	for _, limit := range seg.SpeedLimits {
		if limit.MaxSpeed <= 0 {
			continue
		}
		kmh := limit.MaxSpeed
		if limit.Unit == "mph" {
			kmh = limit.MaxSpeed * mphToKmh
		}
		posted := clampSpeed(kmh)
		return posted, posted
	}
	return pkg.DefaultSpeed(class), 0
}

func clampSpeed(kmh float64) uint8 {
	rounded := math.Round(kmh)
	if rounded < 1 {
		return 1
	}
	if rounded > 255 {
		return 255
	}
	return uint8(rounded)
}
