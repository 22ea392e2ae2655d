package valhalla

import (
	"encoding/binary"
)

// The way record mirrors the tile builder's mjolnir OSMWay struct: 320 bytes,
// little endian, bitfields packed LSB-first within each storage unit. The
// layout is the engine's published wire format, every offset below is fixed.
const WayRecordSize = 320

const (
	offWayID          = 0   // osm way id, uint64
	offNameIndex      = 56  // name_index_, 13th of the uint32 name/ref slots
	offAttributes     = 292 // way attribute bitfield, uint32
	offClassification = 296 // classification bitfield, uint32
	offAccess         = 300 // per-mode forward/backward access bits, uint16
	offBike           = 302 // bike attribute bitfield, uint16
	offNodeCount      = 304 // nodecount_, uint16
	offSpeedLimit     = 306 // speed_limit_, uint8
	offSpeed          = 307 // speed_, uint8
)

// attribute bitfield (offset 292): bits 0..6 are one-bit flags
// (destination_only .. rail), surface sits at bits 7..9, then
// tunnel/toll/bridge/seasonal at 10..13 and drive_on_right at 14.
const (
	attrSurfaceShift    = 7
	attrDriveOnRightBit = 1 << 14
)

// classification bitfield (offset 296): road_class bits 0..2, link bit 3,
// use bits 4..9, lane counts 10..21, then single-bit flags up to
// pedestrian_forward/backward at bits 30/31.
const (
	classUseShift              = 4
	classPedestrianForwardBit  = 1 << 30
	classPedestrianBackwardBit = 1 << 31
)

// access bitfield (offset 300): forward bits 0..7, backward bits 8..15 in the
// order auto, bus, taxi, truck, motorcycle, emergency, hov, moped.
const (
	accessAutoForwardBit   = 1 << 0
	accessBusForwardBit    = 1 << 1
	accessTruckForwardBit  = 1 << 3
	accessAutoBackwardBit  = 1 << 8
	accessBusBackwardBit   = 1 << 9
	accessTruckBackwardBit = 1 << 11
)

// bike bitfield (offset 302): cycle lane and shoulder bits occupy 0..9,
// bike_forward/backward sit at bits 10/11.
const (
	bikeForwardBit  = 1 << 10
	bikeBackwardBit = 1 << 11
)

// EncodeWay writes the edge's fixed-size way record into dst, which must be
// WayRecordSize bytes. Unset fields stay zero, same as the engine's own
// zero-initialized records.
func EncodeWay(dst []byte, e *DirectedEdge) {
	_ = dst[WayRecordSize-1]
	for i := range dst[:WayRecordSize] {
		dst[i] = 0
	}

	binary.LittleEndian.PutUint64(dst[offWayID:], e.ID)
	binary.LittleEndian.PutUint32(dst[offNameIndex:], e.NameRef)

	attrs := uint32(e.Surface) << attrSurfaceShift
	if e.DriveOnRight {
		attrs |= attrDriveOnRightBit
	}
	binary.LittleEndian.PutUint32(dst[offAttributes:], attrs)

	classification := uint32(e.RoadClass) | uint32(e.Use)<<classUseShift
	if e.Access.Pedestrian {
		classification |= classPedestrianForwardBit | classPedestrianBackwardBit
	}
	binary.LittleEndian.PutUint32(dst[offClassification:], classification)

	access := uint16(0)
	if e.Access.Auto {
		access |= accessAutoForwardBit | accessAutoBackwardBit
	}
	if e.Access.Bus {
		access |= accessBusForwardBit | accessBusBackwardBit
	}
	if e.Access.Truck {
		access |= accessTruckForwardBit | accessTruckBackwardBit
	}
	binary.LittleEndian.PutUint16(dst[offAccess:], access)

	bike := uint16(0)
	if e.Access.Bicycle {
		bike |= bikeForwardBit | bikeBackwardBit
	}
	binary.LittleEndian.PutUint16(dst[offBike:], bike)

	binary.LittleEndian.PutUint16(dst[offNodeCount:], uint16(len(e.Nodes)))
	dst[offSpeedLimit] = e.SpeedLimit
	dst[offSpeed] = e.Speed
}
