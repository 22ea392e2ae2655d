package pkg

// RoadClass is the valhalla road classification code (3 bit field in the way record).
type RoadClass uint8

const (
	MOTORWAY      RoadClass = 0
	TRUNK         RoadClass = 1
	PRIMARY       RoadClass = 2
	SECONDARY     RoadClass = 3
	TERTIARY      RoadClass = 4
	RESIDENTIAL   RoadClass = 5
	UNCLASSIFIED  RoadClass = 6
	SERVICE_OTHER RoadClass = 7
)

// GetRoadClass maps an overture segment class to the valhalla road class code.
// every footpath-like class collapses into SERVICE_OTHER, same as unknown classes.
func GetRoadClass(class string) RoadClass {
	switch class {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "residential":
		return RESIDENTIAL
	case "unclassified":
		return UNCLASSIFIED
	default:
		return SERVICE_OTHER
	}
}

// Surface is the valhalla surface code (3 bit field in the way record).
type Surface uint8

const (
	PAVED_SMOOTH Surface = 0
	PAVED        Surface = 1
	PAVED_ROUGH  Surface = 2
	COMPACTED    Surface = 3
	DIRT         Surface = 4
	GRAVEL       Surface = 5
	PATH         Surface = 6
	IMPASSABLE   Surface = 7
)

func GetSurface(surface string) Surface {
	switch surface {
	case "metal", "rubber":
		return PAVED_SMOOTH
	case "paved", "asphalt":
		return PAVED
	case "bricks", "wood":
		return PAVED_ROUGH
	case "paving_stones", "cobblestone", "tiles":
		return COMPACTED
	case "dirt", "unpaved":
		return DIRT
	case "gravel", "shells", "rock":
		return GRAVEL
	case "service":
		return IMPASSABLE
	default:
		return PATH
	}
}

// Use is the valhalla way use / form code (6 bit field in the way record).
type Use uint8

const (
	USE_ROAD          Use = 0
	USE_LIVING_STREET Use = 10
	USE_CYCLEWAY      Use = 20
	USE_FOOTWAY       Use = 25
	USE_STEPS         Use = 26
	USE_PATH          Use = 27
	USE_PEDESTRIAN    Use = 28
)

func GetUse(class string) Use {
	switch class {
	case "footway", "sidewalk", "crosswalk":
		return USE_FOOTWAY
	case "steps":
		return USE_STEPS
	case "path", "track":
		return USE_PATH
	case "pedestrian":
		return USE_PEDESTRIAN
	case "cycleway":
		return USE_CYCLEWAY
	case "living_street":
		return USE_LIVING_STREET
	default:
		return USE_ROAD
	}
}

// DefaultSpeed returns the fallback speed (km/h) for segments without a posted
// speed limit, keyed by road class.
func DefaultSpeed(class RoadClass) uint8 {
	switch class {
	case MOTORWAY:
		return 120
	case TRUNK:
		return 100
	case PRIMARY:
		return 80
	case SECONDARY:
		return 60
	case TERTIARY:
		return 50
	case RESIDENTIAL:
		return 30
	case UNCLASSIFIED:
		return 50
	default:
		return 20
	}
}

// Access holds the resolved allow/deny flag per travel mode for one segment.
// Pedestrian and Auto drive the keep/drop decision; the remaining modes only
// feed the access bits of the emitted way record.
type Access struct {
	Pedestrian bool
	Bicycle    bool
	Bus        bool
	Truck      bool
	Auto       bool
}

// AllAccess is the default when no restriction applies.
var AllAccess = Access{
	Pedestrian: true,
	Bicycle:    true,
	Bus:        true,
	Truck:      true,
	Auto:       true,
}

// Routable reports whether the segment stays in the output graph. A segment
// that allows neither pedestrians nor autos contributes no edges and no
// way nodes.
func (a Access) Routable() bool {
	return a.Pedestrian || a.Auto
}
