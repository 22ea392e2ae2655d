package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overture-tools/valhallaconv/pkg"
	"github.com/overture-tools/valhallaconv/pkg/geo"
	"github.com/overture-tools/valhallaconv/pkg/overture"
	"github.com/overture-tools/valhallaconv/pkg/util"
	"github.com/overture-tools/valhallaconv/pkg/valhalla"
)

func threeVertices() []valhalla.ResolvedVertex {
	return []valhalla.ResolvedVertex{
		{Index: 0, Coord: geo.NewCoordinate(47.60000, -122.30000)},
		{Index: 5, Coord: geo.NewCoordinate(47.60020, -122.30020)},
		{Index: 1, Coord: geo.NewCoordinate(47.60050, -122.30050)},
	}
}

func TestBuildEdgePairIDs(t *testing.T) {
	seg := &overture.Segment{ID: "seg-1", Class: "residential", HasClass: true}

	for _, ordinal := range []int{0, 1, 7} {
		forward, backward, err := BuildEdgePair(ordinal, seg, threeVertices(), pkg.AllAccess, 0, true)
		require.NoError(t, err)
		assert.Equal(t, uint64(2*ordinal+1), forward.ID)
		assert.Equal(t, uint64(2*ordinal+2), backward.ID)
	}
}

func TestBuildEdgePairBackwardReversed(t *testing.T) {
	seg := &overture.Segment{ID: "seg-1", Class: "residential", HasClass: true}
	vertices := threeVertices()

	forward, backward, err := BuildEdgePair(0, seg, vertices, pkg.AllAccess, 0, true)
	require.NoError(t, err)

	require.Len(t, backward.Nodes, len(vertices))
	for i := range vertices {
		assert.Equal(t, forward.Nodes[i], backward.Nodes[len(vertices)-1-i])
	}
	// reversal must not mutate the forward sequence
	assert.Equal(t, vertices, forward.Nodes)
}

func TestBuildEdgePairSharedAttributes(t *testing.T) {
	seg := &overture.Segment{
		ID:       "seg-1",
		Name:     "Pine Street",
		Class:    "secondary",
		HasClass: true,
		Surface:  "unpaved",
	}
	access := pkg.Access{Pedestrian: true, Bicycle: true, Auto: true}

	forward, backward, err := BuildEdgePair(3, seg, threeVertices(), access, 42, true)
	require.NoError(t, err)

	assert.Equal(t, uint32(42), forward.NameRef)
	assert.Equal(t, forward.NameRef, backward.NameRef)
	assert.Equal(t, forward.Access, backward.Access)
	assert.Equal(t, forward.RoadClass, backward.RoadClass)
	assert.Equal(t, forward.Surface, backward.Surface)
	assert.Equal(t, forward.Use, backward.Use)
	assert.Equal(t, forward.Speed, backward.Speed)
	assert.Equal(t, forward.SpeedLimit, backward.SpeedLimit)
}

func TestBuildEdgePairDegenerate(t *testing.T) {
	seg := &overture.Segment{ID: "seg-short", Class: "residential", HasClass: true}
	single := threeVertices()[:1]

	_, _, err := BuildEdgePair(0, seg, single, pkg.AllAccess, 0, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrDegenerateEdge)
	assert.Contains(t, err.Error(), "seg-short")
}

func TestEffectiveSpeed(t *testing.T) {
	testCases := []struct {
		name      string
		seg       *overture.Segment
		wantSpeed uint8
		wantLimit uint8
	}{
		{
			name:      "posted kmh",
			seg:       &overture.Segment{Class: "residential", SpeedLimits: []overture.SpeedLimit{{MaxSpeed: 40, Unit: "km/h"}}},
			wantSpeed: 40,
			wantLimit: 40,
		},
		{
			name:      "posted mph converts",
			seg:       &overture.Segment{Class: "residential", SpeedLimits: []overture.SpeedLimit{{MaxSpeed: 25, Unit: "mph"}}},
			wantSpeed: 40, // 25 * 1.609344 = 40.23
			wantLimit: 40,
		},
		{
			name:      "first valid posting wins",
			seg:       &overture.Segment{Class: "residential", SpeedLimits: []overture.SpeedLimit{{MaxSpeed: 0}, {MaxSpeed: 30, Unit: "km/h"}, {MaxSpeed: 80, Unit: "km/h"}}},
			wantSpeed: 30,
			wantLimit: 30,
		},
		{
			name:      "no posting falls back to class default",
			seg:       &overture.Segment{Class: "motorway"},
			wantSpeed: 120,
			wantLimit: 0,
		},
		{
			name:      "residential default",
			seg:       &overture.Segment{Class: "residential"},
			wantSpeed: 30,
			wantLimit: 0,
		},
		{
			name:      "huge posting clamps",
			seg:       &overture.Segment{Class: "motorway", SpeedLimits: []overture.SpeedLimit{{MaxSpeed: 900, Unit: "km/h"}}},
			wantSpeed: 255,
			wantLimit: 255,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			speed, limit := effectiveSpeed(tt.seg, pkg.GetRoadClass(tt.seg.Class))
			assert.Equal(t, tt.wantSpeed, speed)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
