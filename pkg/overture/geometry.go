package overture

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"

	"github.com/overture-tools/valhallaconv/pkg/geo"
	"github.com/overture-tools/valhallaconv/pkg/util"
)

// DecodePoint decodes a WKB geometry column expected to hold a single point.
func DecodePoint(data []byte) (geo.Coordinate, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrGeometryTypeMismatch, "decode wkb point")
	}

	point, ok := g.(orb.Point)
	if !ok {
		return geo.Coordinate{}, util.WrapErrorf(nil, util.ErrGeometryTypeMismatch,
			"expected point geometry, got %s", g.GeoJSONType())
	}
	return geo.NewCoordinate(point.Lat(), point.Lon()), nil
}

// DecodeLineString decodes a WKB geometry column expected to hold a polyline.
func DecodeLineString(data []byte) ([]geo.Coordinate, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrGeometryTypeMismatch, "decode wkb linestring")
	}

	line, ok := g.(orb.LineString)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrGeometryTypeMismatch,
			"expected linestring geometry, got %s", g.GeoJSONType())
	}

	points := make([]geo.Coordinate, len(line))
	for i, p := range line {
		points[i] = geo.NewCoordinate(p.Lat(), p.Lon())
	}
	return points, nil
}
