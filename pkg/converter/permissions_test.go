package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overture-tools/valhallaconv/pkg"
	"github.com/overture-tools/valhallaconv/pkg/overture"
)

func classSegment(class string, hasClass bool) *overture.Segment {
	return &overture.Segment{
		ID:       "seg",
		Class:    class,
		HasClass: hasClass,
	}
}

func TestClassResolver(t *testing.T) {
	r := NewClassResolver()

	testCases := []struct {
		class          string
		hasClass       bool
		wantPedestrian bool
		wantAuto       bool
	}{
		{class: "residential", hasClass: true, wantPedestrian: true, wantAuto: true},
		{class: "motorway", hasClass: true, wantPedestrian: false, wantAuto: true},
		{class: "trunk", hasClass: true, wantPedestrian: false, wantAuto: true},
		{class: "footway", hasClass: true, wantPedestrian: true, wantAuto: false},
		{class: "steps", hasClass: true, wantPedestrian: true, wantAuto: false},
		{class: "path", hasClass: true, wantPedestrian: true, wantAuto: false},
		{class: "living_street", hasClass: true, wantPedestrian: true, wantAuto: false},
		{class: "pedestrian", hasClass: true, wantPedestrian: true, wantAuto: false},
		{class: "cycleway", hasClass: true, wantPedestrian: false, wantAuto: false},
		{class: "rail", hasClass: true, wantPedestrian: false, wantAuto: false},
		{class: "", hasClass: false, wantPedestrian: true, wantAuto: false},
	}

	for _, tt := range testCases {
		name := tt.class
		if !tt.hasClass {
			name = "absent class"
		}
		t.Run(name, func(t *testing.T) {
			access := r.Resolve(classSegment(tt.class, tt.hasClass))
			assert.Equal(t, tt.wantPedestrian, access.Pedestrian, "pedestrian")
			assert.Equal(t, tt.wantAuto, access.Auto, "auto")
		})
	}
}

func TestClassResolverDropRule(t *testing.T) {
	r := NewClassResolver()
	assert.False(t, r.Resolve(classSegment("cycleway", true)).Routable())
	assert.False(t, r.Resolve(classSegment("rail", true)).Routable())
	assert.True(t, r.Resolve(classSegment("motorway", true)).Routable())
	assert.True(t, r.Resolve(classSegment("footway", true)).Routable())
}

func TestClassResolverBicycleKeepsBikeInfra(t *testing.T) {
	r := NewClassResolver()
	assert.True(t, r.Resolve(classSegment("cycleway", true)).Bicycle)
	assert.True(t, r.Resolve(classSegment("residential", true)).Bicycle)
	assert.False(t, r.Resolve(classSegment("footway", true)).Bicycle)
}

func ruleSegment(types ...string) *overture.Segment {
	seg := &overture.Segment{ID: "seg"}
	for _, at := range types {
		seg.AccessRestrictions = append(seg.AccessRestrictions, overture.AccessRestriction{AccessType: at})
	}
	return seg
}

func TestRuleResolverDefaultAllAllowed(t *testing.T) {
	r := NewRuleResolver()
	access := r.Resolve(ruleSegment())
	assert.Equal(t, pkg.AllAccess, access)
}

func TestRuleResolverDenied(t *testing.T) {
	r := NewRuleResolver()
	access := r.Resolve(ruleSegment("denied_car"))
	assert.False(t, access.Auto)
	assert.True(t, access.Pedestrian)
	assert.True(t, access.Bicycle)
	assert.True(t, access.Bus)
	assert.True(t, access.Truck)
}

func TestRuleResolverQualifierPrecedence(t *testing.T) {
	r := NewRuleResolver()

	testCases := []struct {
		name  string
		rules []string
		want  bool // final auto flag
	}{
		{name: "designated beats denied", rules: []string{"denied_car", "designated_car"}, want: true},
		{name: "designated beats later denied", rules: []string{"designated_car", "denied_car"}, want: true},
		{name: "denied beats allowed", rules: []string{"allowed_car", "denied_car"}, want: false},
		{name: "denied beats later allowed", rules: []string{"denied_car", "allowed_car"}, want: false},
		{name: "equal precedence last wins", rules: []string{"denied_car", "denied_car"}, want: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			access := r.Resolve(ruleSegment(tt.rules...))
			assert.Equal(t, tt.want, access.Auto)
		})
	}
}

func TestRuleResolverEqualPrecedenceLastApplies(t *testing.T) {
	r := NewRuleResolver()
	// both designated, the later one also allows: final state comes from the
	// last rule at the winning precedence level
	access := r.Resolve(ruleSegment("designated_foot", "designated_foot"))
	assert.True(t, access.Pedestrian)
}

func TestRuleResolverModesIndependent(t *testing.T) {
	r := NewRuleResolver()
	access := r.Resolve(ruleSegment("denied_foot", "denied_hgv", "designated_bus"))
	assert.False(t, access.Pedestrian)
	assert.False(t, access.Truck)
	assert.True(t, access.Bus)
	assert.True(t, access.Bicycle)
	assert.True(t, access.Auto)
}

func TestRuleResolverMotorVehicleMatchesAuto(t *testing.T) {
	r := NewRuleResolver()
	assert.False(t, r.Resolve(ruleSegment("denied_motor_vehicle")).Auto)
	assert.False(t, r.Resolve(ruleSegment("denied_vehicle")).Auto)
}

func TestRuleResolverUnknownModeIgnored(t *testing.T) {
	r := NewRuleResolver()
	access := r.Resolve(ruleSegment("denied_horse"))
	assert.Equal(t, pkg.AllAccess, access)
}

func TestNewPermissionResolver(t *testing.T) {
	r, err := NewPermissionResolver("class")
	require.NoError(t, err)
	assert.IsType(t, &ClassResolver{}, r)

	r, err = NewPermissionResolver("rules")
	require.NoError(t, err)
	assert.IsType(t, &RuleResolver{}, r)

	_, err = NewPermissionResolver("bogus")
	assert.Error(t, err)
}
