package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r2"

	"github.com/jlmcmchl/TrajoptLib/trajopt"
)

func pointOf(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

// rawConfig is the TOML document shape: a bumper polygon, the drivetrain
// limits, an ordered list of waypoints, and a list of constraints applying
// to the path as a whole (trajopt.Path.GlobalConstraints) — the only way a
// TOML file can express an ObstacleConstraint, since obstacles are not
// attached to a particular waypoint. Constraints are decoded generically
// (map[string]interface{}) because their Go representation is a tagged
// union (trajopt.Constraint / trajopt.Set2d) that TOML has no native
// notion of; decodeConstraint below resolves the "kind" field by hand via
// mapstructure. Supported kinds: "heading", "translation_rectangular",
// "translation_linear", "translation_elliptical", "translation_cone",
// "pose", and "obstacle".
type rawConfig struct {
	Bumpers           rawPolygon               `toml:"bumpers"`
	Drivetrain        rawDrivetrain            `toml:"drivetrain"`
	Waypoints         []rawWaypoint            `toml:"waypoint"`
	GlobalConstraints []map[string]interface{} `toml:"global_constraints"`
}

type rawPolygon struct {
	SafetyDistance float64      `toml:"safety_distance"`
	Points         [][2]float64 `toml:"points"`
}

type rawDrivetrain struct {
	MaxVelocity        float64 `toml:"max_velocity"`
	MaxAngularVelocity float64 `toml:"max_angular_velocity"`
	MaxAcceleration    float64 `toml:"max_acceleration"`
}

type rawWaypoint struct {
	ControlIntervalCount int                      `toml:"control_interval_count"`
	InitialGuessPoints   [][3]float64             `toml:"initial_guess_points"`
	WaypointConstraints  []map[string]interface{} `toml:"waypoint_constraints"`
	SegmentConstraints   []map[string]interface{} `toml:"segment_constraints"`
}

// LoadPath parses a TOML trajectory configuration file into a trajopt.Path
// and its accompanying trajopt.Drivetrain.
func LoadPath(path string) (trajopt.Path, trajopt.Drivetrain, error) {
	var raw rawConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return trajopt.Path{}, trajopt.Drivetrain{}, fmt.Errorf("trajopt: decoding %s: %w", path, err)
	}

	p := trajopt.Path{
		Bumpers: toPolygon(raw.Bumpers),
	}

	for i, rw := range raw.Waypoints {
		wp := trajopt.Waypoint{
			ControlIntervalCount: rw.ControlIntervalCount,
			InitialGuessPoints:   toGuessPoints(rw.InitialGuessPoints),
		}
		for _, c := range rw.WaypointConstraints {
			constraint, err := decodeConstraint(c)
			if err != nil {
				return trajopt.Path{}, trajopt.Drivetrain{}, fmt.Errorf("waypoint %d: %w", i, err)
			}
			wp.WaypointConstraints = append(wp.WaypointConstraints, constraint)
		}
		for _, c := range rw.SegmentConstraints {
			constraint, err := decodeConstraint(c)
			if err != nil {
				return trajopt.Path{}, trajopt.Drivetrain{}, fmt.Errorf("waypoint %d: %w", i, err)
			}
			wp.SegmentConstraints = append(wp.SegmentConstraints, constraint)
		}
		p.Waypoints = append(p.Waypoints, wp)
	}

	for _, c := range raw.GlobalConstraints {
		constraint, err := decodeConstraint(c)
		if err != nil {
			return trajopt.Path{}, trajopt.Drivetrain{}, fmt.Errorf("global constraints: %w", err)
		}
		p.GlobalConstraints = append(p.GlobalConstraints, constraint)
	}

	drivetrain := trajopt.Drivetrain{
		MaxVelocity:        raw.Drivetrain.MaxVelocity,
		MaxAngularVelocity: raw.Drivetrain.MaxAngularVelocity,
		MaxAcceleration:    raw.Drivetrain.MaxAcceleration,
	}

	return p, drivetrain, nil
}

func toPolygon(rp rawPolygon) trajopt.Polygon {
	poly := trajopt.Polygon{SafetyDistance: rp.SafetyDistance}
	for _, pt := range rp.Points {
		poly.Points = append(poly.Points, pointOf(pt[0], pt[1]))
	}
	return poly
}

func toGuessPoints(pts [][3]float64) []trajopt.InitialGuessPoint {
	out := make([]trajopt.InitialGuessPoint, len(pts))
	for i, pt := range pts {
		out[i] = trajopt.InitialGuessPoint{X: pt[0], Y: pt[1], Heading: pt[2]}
	}
	return out
}

// directionOf maps a TOML "direction" string to a trajopt.Direction, per
// trajopt.Direction.String()'s inverse.
func directionOf(s string) (trajopt.Direction, error) {
	switch s {
	case "inside":
		return trajopt.Inside, nil
	case "centered":
		return trajopt.Centered, nil
	case "outside":
		return trajopt.Outside, nil
	default:
		return 0, fmt.Errorf("trajopt: unknown direction %q", s)
	}
}

// decodeSet2d resolves a translation bound's "kind" discriminator
// (rectangular, linear, elliptical, or cone) and mapstructure-decodes the
// remaining fields into the matching trajopt.Set2d variant. Shared by the
// top-level "translation_*" constraint kinds and by "pose"'s nested
// translation bound.
func decodeSet2d(kind string, raw map[string]interface{}) (trajopt.Set2d, error) {
	switch kind {
	case "translation_rectangular":
		var body struct {
			XLower float64 `mapstructure:"x_lower"`
			XUpper float64 `mapstructure:"x_upper"`
			YLower float64 `mapstructure:"y_lower"`
			YUpper float64 `mapstructure:"y_upper"`
		}
		if err := mapstructure.Decode(raw, &body); err != nil {
			return nil, err
		}
		return trajopt.Rectangular{
			XBound: trajopt.NewIntervalSet1d(body.XLower, body.XUpper),
			YBound: trajopt.NewIntervalSet1d(body.YLower, body.YUpper),
		}, nil

	case "translation_linear":
		var body struct {
			Theta float64 `mapstructure:"theta"`
		}
		if err := mapstructure.Decode(raw, &body); err != nil {
			return nil, err
		}
		return trajopt.Linear{Theta: body.Theta}, nil

	case "translation_elliptical":
		var body struct {
			XRadius   float64 `mapstructure:"x_radius"`
			YRadius   float64 `mapstructure:"y_radius"`
			Direction string  `mapstructure:"direction"`
		}
		if err := mapstructure.Decode(raw, &body); err != nil {
			return nil, err
		}
		direction, err := directionOf(body.Direction)
		if err != nil {
			return nil, err
		}
		return trajopt.Elliptical{
			XRadius:   body.XRadius,
			YRadius:   body.YRadius,
			Direction: direction,
		}, nil

	case "translation_cone":
		var body struct {
			BearingLower float64 `mapstructure:"bearing_lower"`
			BearingUpper float64 `mapstructure:"bearing_upper"`
		}
		if err := mapstructure.Decode(raw, &body); err != nil {
			return nil, err
		}
		return trajopt.Cone{Bearing: trajopt.NewIntervalSet1d(body.BearingLower, body.BearingUpper)}, nil

	default:
		return nil, fmt.Errorf("trajopt: unknown translation bound kind %q", kind)
	}
}

// decodeConstraint resolves a constraint's "kind" discriminator and
// mapstructure-decodes the remaining fields into the matching
// trajopt.Constraint variant.
func decodeConstraint(raw map[string]interface{}) (trajopt.Constraint, error) {
	kind, _ := raw["kind"].(string)
	switch kind {
	case "heading":
		var body struct {
			Lower float64 `mapstructure:"lower"`
			Upper float64 `mapstructure:"upper"`
		}
		if err := mapstructure.Decode(raw, &body); err != nil {
			return nil, err
		}
		return trajopt.HeadingConstraint{Bound: trajopt.NewIntervalSet1d(body.Lower, body.Upper)}, nil

	case "translation_rectangular", "translation_linear", "translation_elliptical", "translation_cone":
		bound, err := decodeSet2d(kind, raw)
		if err != nil {
			return nil, err
		}
		return trajopt.TranslationConstraint{Bound: bound}, nil

	case "pose":
		var body struct {
			Translation  map[string]interface{} `mapstructure:"translation"`
			HeadingLower float64                 `mapstructure:"heading_lower"`
			HeadingUpper float64                 `mapstructure:"heading_upper"`
		}
		if err := mapstructure.Decode(raw, &body); err != nil {
			return nil, err
		}
		translationKind, _ := body.Translation["kind"].(string)
		translation, err := decodeSet2d(translationKind, body.Translation)
		if err != nil {
			return nil, err
		}
		return trajopt.PoseConstraint{
			Translation: translation,
			Heading:     trajopt.NewIntervalSet1d(body.HeadingLower, body.HeadingUpper),
		}, nil

	case "obstacle":
		var body struct {
			SafetyDistance float64      `mapstructure:"safety_distance"`
			Points         [][2]float64 `mapstructure:"points"`
		}
		if err := mapstructure.Decode(raw, &body); err != nil {
			return nil, err
		}
		obstacle := trajopt.Obstacle{SafetyDistance: body.SafetyDistance}
		for _, pt := range body.Points {
			obstacle.Points = append(obstacle.Points, pointOf(pt[0], pt[1]))
		}
		return trajopt.ObstacleConstraint{Obstacle: obstacle}, nil

	default:
		return nil, fmt.Errorf("trajopt: unknown constraint kind %q", kind)
	}
}
