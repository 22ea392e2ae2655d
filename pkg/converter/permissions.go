package converter

import (
	"fmt"
	"strings"

	"github.com/overture-tools/valhallaconv/pkg"
	"github.com/overture-tools/valhallaconv/pkg/overture"
)

// PermissionResolver derives the per-mode access flags of one segment. Two
// strategies exist: the coarse classification table and the fine-grained
// access-restriction rules. Which one is authoritative for production output
// is still a product decision, the caller selects via NewPermissionResolver.
type PermissionResolver interface {
	Resolve(seg *overture.Segment) pkg.Access
}

func NewPermissionResolver(strategy string) (PermissionResolver, error) {
	switch strategy {
	case "class":
		return NewClassResolver(), nil
	case "rules":
		return NewRuleResolver(), nil
	default:
		return nil, fmt.Errorf("unknown permission strategy %q (want class or rules)", strategy)
	}
}

// ClassResolver derives access from the segment class alone. Pedestrians are
// denied only on motor-only infrastructure, autos on non-motor infrastructure
// and on segments without a class.
type ClassResolver struct {
	pedestrianDenied map[string]struct{}
	autoDenied       map[string]struct{}
}

func NewClassResolver() *ClassResolver {
	return &ClassResolver{
		pedestrianDenied: map[string]struct{}{
			"motorway": {},
			"trunk":    {},
			"cycleway": {},
			"rail":     {},
		},
		autoDenied: map[string]struct{}{
			"steps":         {},
			"path":          {},
			"living_street": {},
			"pedestrian":    {},
			"footway":       {},
			"cycleway":      {},
			"rail":          {},
		},
	}
}

func (r *ClassResolver) Resolve(seg *overture.Segment) pkg.Access {
	pedestrian := true
	if _, denied := r.pedestrianDenied[seg.Class]; denied {
		pedestrian = false
	}

	auto := seg.HasClass
	if _, denied := r.autoDenied[seg.Class]; denied {
		auto = false
	}

	// the class table has no per-mode detail beyond pedestrian/auto: bus and
	// truck ride with auto, bicycles additionally keep bike infrastructure
	bicycle := auto || seg.Class == "cycleway"
	return pkg.Access{
		Pedestrian: pedestrian,
		Bicycle:    bicycle,
		Bus:        auto,
		Truck:      auto,
		Auto:       auto,
	}
}

// qualifier precedence, higher wins. Equal precedence: the later rule
// overwrites the earlier one.
type accessQualifier uint8

const (
	qualifierUnset      accessQualifier = 0
	qualifierAllowed    accessQualifier = 1
	qualifierDenied     accessQualifier = 2
	qualifierDesignated accessQualifier = 3
)

type modeState struct {
	allowed bool
	setBy   accessQualifier
}

func (m *modeState) apply(q accessQualifier, allow bool) {
	if q >= m.setBy {
		m.allowed = allow
		m.setBy = q
	}
}

// RuleResolver applies the segment's access-restriction rules. Each rule's
// access type string encodes a qualifier prefix (designated_, denied_,
// default allowed) and a travel mode. The mode match order is fixed, foot
// before bicycle before bus before hgv before car/motor_vehicle/vehicle, so a
// rule updates exactly one mode; each mode's flag resolves independently.
// No rules means all modes allowed.
type RuleResolver struct{}

func NewRuleResolver() *RuleResolver {
	return &RuleResolver{}
}

func (r *RuleResolver) Resolve(seg *overture.Segment) pkg.Access {
	var foot, bicycle, bus, truck, auto modeState
	foot.allowed = true
	bicycle.allowed = true
	bus.allowed = true
	truck.allowed = true
	auto.allowed = true

	for _, rule := range seg.AccessRestrictions {
		q, allow := parseQualifier(rule.AccessType)
		switch {
		case strings.Contains(rule.AccessType, "foot"):
			foot.apply(q, allow)
		case strings.Contains(rule.AccessType, "bicycle"):
			bicycle.apply(q, allow)
		case strings.Contains(rule.AccessType, "bus"):
			bus.apply(q, allow)
		case strings.Contains(rule.AccessType, "hgv"):
			truck.apply(q, allow)
		case strings.Contains(rule.AccessType, "car"),
			strings.Contains(rule.AccessType, "motor_vehicle"),
			strings.Contains(rule.AccessType, "vehicle"):
			auto.apply(q, allow)
		}
	}

	return pkg.Access{
		Pedestrian: foot.allowed,
		Bicycle:    bicycle.allowed,
		Bus:        bus.allowed,
		Truck:      truck.allowed,
		Auto:       auto.allowed,
	}
}

func parseQualifier(accessType string) (accessQualifier, bool) {
	switch {
	case strings.HasPrefix(accessType, "designated_"):
		return qualifierDesignated, true
	case strings.HasPrefix(accessType, "denied_"):
		return qualifierDenied, false
	default:
		return qualifierAllowed, true
	}
}
