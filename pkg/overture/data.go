package overture

import (
	"github.com/overture-tools/valhallaconv/pkg/geo"
)

// Connector is a routable junction or segment endpoint. One per connector
// table row, immutable after import.
type Connector struct {
	ID         string
	Coordinate geo.Coordinate
}

// ConnectorRef is a segment's claim that the polyline vertex nearest
// fractional position At coincides with the named connector.
type ConnectorRef struct {
	ConnectorID string
	At          float64
}

// AccessRestriction carries one access rule. AccessType encodes both a travel
// mode (foot, bicycle, bus, hgv, car, motor_vehicle) and a qualifier prefix
// (designated_, denied_, default allowed).
type AccessRestriction struct {
	AccessType string
}

// SpeedLimit is a posted speed limit. Unit is "km/h" or "mph".
type SpeedLimit struct {
	MaxSpeed float64
	Unit     string
}

// Segment is one transportation way: a decoded polyline plus the attributes
// the graph builder consumes. Read-only after import.
type Segment struct {
	ID                 string
	Name               string
	Class              string // empty when the class column is absent
	HasClass           bool
	Surface            string
	Points             []geo.Coordinate
	ConnectorRefs      []ConnectorRef
	AccessRestrictions []AccessRestriction
	SpeedLimits        []SpeedLimit
}

// LengthKM is the great-circle polyline length, used only for run summaries.
func (s *Segment) LengthKM() float64 {
	return geo.PolylineLengthKM(s.Points)
}

// Data holds the full connector and segment tables for one conversion run.
// Everything is materialized in memory for the duration of the run.
type Data struct {
	Connectors []Connector
	Segments   []*Segment
}
