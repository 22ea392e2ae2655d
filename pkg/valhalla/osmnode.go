package valhalla

import (
	"encoding/binary"
	"math"
)

// The way-node record mirrors mjolnir's OSMWayNode: a 48-byte OSMNode followed
// by the owning way's positional index and the vertex position within the way.
const WayNodeRecordSize = 56

const (
	offNodeID        = 0  // osmid_, uint64: the graph node index
	offNodeFlags     = 24 // access/type/intersection bitfield, uint32
	offNodeLng7      = 36 // lng7_, uint32 fixed-point
	offNodeLat7      = 40 // lat7_, uint32 fixed-point
	offWayIndex      = 48 // way_index, uint32
	offWayShapeIndex = 52 // way_shape_node_index, uint32
)

// node flag bitfield (offset 24): access_ occupies bits 0..11, type_ 12..15,
// intersection_ is bit 16.
const (
	nodeAccessAll       = 2047 // all 11 travel-mode bits
	nodeIntersectionBit = 1 << 16
)

// EncodeLatLon converts decimal degrees to the engine's unsigned 7-digit
// fixed-point encoding: round((deg + offset) * 1e7), offset 90 for latitude
// and 180 for longitude.
func EncodeLatLon(lat, lon float64) (uint32, uint32) {
	encLat := uint32(math.Round((lat + 90.0) * 1e7))
	encLon := uint32(math.Round((lon + 180.0) * 1e7))
	return encLat, encLon
}

// EncodeWayNode writes one vertex record into dst, which must be
// WayNodeRecordSize bytes. wayIndex is the positional index of the owning way
// in the emitted ways file, shapeIndex the vertex position within that way.
func EncodeWayNode(dst []byte, v ResolvedVertex, wayIndex, shapeIndex uint32) {
	_ = dst[WayNodeRecordSize-1]
	for i := range dst[:WayNodeRecordSize] {
		dst[i] = 0
	}

	binary.LittleEndian.PutUint64(dst[offNodeID:], v.Index)
	binary.LittleEndian.PutUint32(dst[offNodeFlags:], nodeAccessAll|nodeIntersectionBit)

	encLat, encLon := EncodeLatLon(v.Coord.Lat, v.Coord.Lon)
	binary.LittleEndian.PutUint32(dst[offNodeLng7:], encLon)
	binary.LittleEndian.PutUint32(dst[offNodeLat7:], encLat)

	binary.LittleEndian.PutUint32(dst[offWayIndex:], wayIndex)
	binary.LittleEndian.PutUint32(dst[offWayShapeIndex:], shapeIndex)
}
