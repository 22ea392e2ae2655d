package admin

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/overture-tools/valhallaconv/pkg/util"
)

// AccessMode is one travel mode of the engine's 11-bit node/edge access mask.
// The numeric order fixes each mode's bit position and must not change.
type AccessMode uint8

const (
	ModeAuto AccessMode = iota
	ModePedestrian
	ModeBicycle
	ModeTruck
	ModeEmergency
	ModeTaxi
	ModeBus
	ModeHov
	ModeWheelchair
	ModeMoped
	ModeMotorcycle
)

func (m AccessMode) Bit() uint32 {
	return 1 << m
}

func (m AccessMode) String() string {
	names := [...]string{"auto", "pedestrian", "bicycle", "truck", "emergency",
		"taxi", "bus", "hov", "wheelchair", "moped", "motorcycle"}
	if int(m) < len(names) {
		return names[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

func ParseAccessMode(s string) (AccessMode, error) {
	for m := ModeAuto; m <= ModeMotorcycle; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown access mode %q", s)
}

// rawConfig is the on-disk shape: mode lists stay strings so the file stays
// hand-editable, Load parses them into AccessMode values.
type rawConfig struct {
	AllowIntersectionNames map[string]bool                `mapstructure:"allow_intersection_names"`
	AdminAccess            map[string]map[string][]string `mapstructure:"admin_access" validate:"dive,dive,dive,oneof=auto pedestrian bicycle truck emergency taxi bus hov wheelchair moped motorcycle"`
}

// Config carries per-country routing policy: which countries label
// intersections by the crossing street names, and per-country overrides of the
// access mask for specific road classes.
type Config struct {
	allowIntersectionNames map[string]bool
	adminAccess            map[string]map[string][]AccessMode
}

// Default mirrors the policy shipped with the converter when no config file is
// given. The country list is not exhaustive, a config file extends it.
func Default() *Config {
	return &Config{
		allowIntersectionNames: map[string]bool{
			"JP": true,
			"KP": true,
			"KR": true,
			"NI": true,
		},
		adminAccess: map[string]map[string][]AccessMode{
			"AU": {
				"footway": {ModePedestrian, ModeWheelchair, ModeBicycle},
			},
			"AT": {
				"trunk": {ModeAuto, ModeTruck, ModeBus, ModeHov, ModeTaxi, ModeMotorcycle},
				"path":  {ModePedestrian, ModeWheelchair},
			},
			"BE": {
				"trunk":      {ModeAuto, ModeTruck, ModeBus, ModeHov, ModeTaxi, ModeMotorcycle},
				"track":      {ModePedestrian, ModeWheelchair, ModeBicycle, ModeMoped},
				"pedestrian": {ModePedestrian, ModeWheelchair, ModeBicycle},
				"cycleway":   {ModePedestrian, ModeWheelchair, ModeBicycle, ModeMoped},
				"path":       {ModePedestrian, ModeWheelchair, ModeBicycle, ModeMoped},
			},
			"FR": {
				"trunk":      {ModeAuto, ModeTruck, ModeBus, ModeHov, ModeTaxi, ModeMotorcycle},
				"pedestrian": {ModePedestrian, ModeWheelchair, ModeBicycle},
				"path":       {ModePedestrian, ModeWheelchair},
			},
			"GB": {
				"bridleway": {ModePedestrian, ModeWheelchair},
				"cycleway":  {ModePedestrian, ModeWheelchair, ModeBicycle},
				"path":      {ModePedestrian, ModeWheelchair, ModeBicycle},
			},
		},
	}
}

// Load reads a YAML policy file and validates it. An empty path returns the
// built-in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrIoFailure, "read admin config %s", path)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, util.WrapErrorf(err, util.ErrMissingRequiredField, "decode admin config %s", path)
	}
	if err := validator.New().Struct(&raw); err != nil {
		return nil, util.WrapErrorf(err, util.ErrMissingRequiredField, "validate admin config %s", path)
	}

	// viper lowercases map keys, country codes are stored uppercase
	cfg := &Config{
		allowIntersectionNames: make(map[string]bool, len(raw.AllowIntersectionNames)),
		adminAccess:            make(map[string]map[string][]AccessMode, len(raw.AdminAccess)),
	}
	for country, allow := range raw.AllowIntersectionNames {
		cfg.allowIntersectionNames[strings.ToUpper(country)] = allow
	}
	for country, classes := range raw.AdminAccess {
		parsed := make(map[string][]AccessMode, len(classes))
		for class, modeNames := range classes {
			modes := make([]AccessMode, 0, len(modeNames))
			for _, name := range modeNames {
				mode, err := ParseAccessMode(name)
				if err != nil {
					return nil, util.WrapErrorf(err, util.ErrMissingRequiredField,
						"admin config %s, country %s class %s", path, country, class)
				}
				modes = append(modes, mode)
			}
			parsed[class] = modes
		}
		cfg.adminAccess[strings.ToUpper(country)] = parsed
	}
	return cfg, nil
}

// Save writes the policy as YAML, the inverse of Load. Used to seed a config
// file from the built-in defaults for hand editing.
func (c *Config) Save(path string) error {
	access := make(map[string]map[string][]string, len(c.adminAccess))
	for country, classes := range c.adminAccess {
		out := make(map[string][]string, len(classes))
		for class, modes := range classes {
			names := make([]string, len(modes))
			for i, m := range modes {
				names[i] = m.String()
			}
			out[class] = names
		}
		access[country] = out
	}

	v := viper.New()
	v.Set("allow_intersection_names", c.allowIntersectionNames)
	v.Set("admin_access", access)
	if err := v.WriteConfigAs(path); err != nil {
		return util.WrapErrorf(err, util.ErrIoFailure, "write admin config %s", path)
	}
	return nil
}

// Countries is the number of countries with access overrides.
func (c *Config) Countries() int {
	return len(c.adminAccess)
}

// AccessMask returns the country's access override for one road class as a
// bitmask. ok is false when no override exists and the caller keeps the
// segment's own access.
func (c *Config) AccessMask(country, class string) (uint32, bool) {
	classes, found := c.adminAccess[country]
	if !found {
		return 0, false
	}
	modes, found := classes[class]
	if !found {
		return 0, false
	}
	var mask uint32
	for _, m := range modes {
		mask |= m.Bit()
	}
	return mask, true
}

// AllowsIntersectionNames reports whether the country names intersections by
// the crossing streets.
func (c *Config) AllowsIntersectionNames(country string) bool {
	return c.allowIntersectionNames[country]
}

// DriveOnRight maps a driving_side value to a handedness flag. ok is false for
// unknown values, the caller falls back to the enclosing region.
func DriveOnRight(drivingSide string) (driveOnRight, ok bool) {
	switch drivingSide {
	case "right":
		return true, true
	case "left":
		return false, true
	default:
		return false, false
	}
}
