package trajopt

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/jlmcmchl/TrajoptLib/solver"
)

func TestGenerateRejectsInvalidPath(t *testing.T) {
	b := &Builder{}
	r := solver.NewRecorder()
	err := b.Generate(r, Drivetrain{}, Path{})
	test.That(t, err, test.ShouldNotBeNil)
}

// Scenario 6 end to end through Generate: a straight 2-waypoint path with
// one segment of N=4 control intervals and a single guess point allocates
// 5 samples of (x, y, theta) plus one dtSegment and installs an objective.
// The seeded sample values are checked in TestSeedInitialGuessScenario6.
func TestGenerateScenario6(t *testing.T) {
	path := Path{
		Waypoints: []Waypoint{
			{InitialGuessPoints: []InitialGuessPoint{{X: 0}}},
			{ControlIntervalCount: 4, InitialGuessPoints: []InitialGuessPoint{{X: 4}}},
		},
	}

	b := &Builder{}
	r := solver.NewRecorder()
	err := b.Generate(r, Drivetrain{}, path)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, len(r.Variables), test.ShouldEqual, 5*3+1) // 5 samples x,y,theta + 1 dtSegment
	test.That(t, r.Objective, test.ShouldNotBeNil)
}

func TestGenerateWaypointConstraintAtOwnSampleOnly(t *testing.T) {
	path := Path{
		Waypoints: []Waypoint{
			{InitialGuessPoints: []InitialGuessPoint{{X: 0}}},
			{
				ControlIntervalCount: 2,
				InitialGuessPoints:   []InitialGuessPoint{{X: 2}},
				WaypointConstraints:  []Constraint{HeadingConstraint{Bound: Exactly(0)}},
			},
		},
	}

	b := &Builder{}
	r := solver.NewRecorder()
	err := b.Generate(r, Drivetrain{}, path)
	test.That(t, err, test.ShouldBeNil)

	// One dt >= 0 constraint plus one waypoint heading equality.
	test.That(t, len(r.Constraints), test.ShouldEqual, 2)
}

func TestGenerateSegmentConstraintAppliesToInteriorSamplesOnly(t *testing.T) {
	path := Path{
		Waypoints: []Waypoint{
			{InitialGuessPoints: []InitialGuessPoint{{X: 0}}},
			{
				ControlIntervalCount: 3,
				InitialGuessPoints:   []InitialGuessPoint{{X: 3}},
				SegmentConstraints:   []Constraint{HeadingConstraint{Bound: Exactly(0)}},
			},
		},
	}

	b := &Builder{}
	r := solver.NewRecorder()
	err := b.Generate(r, Drivetrain{}, path)
	test.That(t, err, test.ShouldBeNil)

	// N=3 -> samples 1,2,3 owned by the segment; waypoint 0 owns sample 0
	// and waypoint 1 owns sample 3, so the interior samples are 1 and 2.
	// Plus one dt >= 0 constraint.
	test.That(t, len(r.Constraints), test.ShouldEqual, 3)
}

func TestGenerateGlobalConstraintAppliesToEverySample(t *testing.T) {
	path := Path{
		Waypoints: []Waypoint{
			{InitialGuessPoints: []InitialGuessPoint{{X: 0}}},
			{ControlIntervalCount: 2, InitialGuessPoints: []InitialGuessPoint{{X: 2}}},
		},
		GlobalConstraints: []Constraint{HeadingConstraint{Bound: Exactly(0)}},
	}

	b := &Builder{}
	r := solver.NewRecorder()
	err := b.Generate(r, Drivetrain{}, path)
	test.That(t, err, test.ShouldBeNil)

	// 3 samples total, one heading equality each, plus one dt >= 0.
	test.That(t, len(r.Constraints), test.ShouldEqual, 4)
}

func TestGenerateObstacleConstraintDeduplicatedPerSample(t *testing.T) {
	path := Path{
		Waypoints: []Waypoint{
			{InitialGuessPoints: []InitialGuessPoint{{X: 0}}},
			{ControlIntervalCount: 1, InitialGuessPoints: []InitialGuessPoint{{X: 1}}},
		},
		Bumpers: Polygon{Points: []r2.Point{{X: 0, Y: 0}}},
		GlobalConstraints: []Constraint{ObstacleConstraint{Obstacle: Obstacle{
			Points: []r2.Point{{X: 10, Y: 0}},
		}}},
	}

	b := &Builder{}
	r := solver.NewRecorder()
	err := b.Generate(r, Drivetrain{}, path)
	test.That(t, err, test.ShouldBeNil)

	// 2 samples x 1 point-vs-point obstacle constraint, plus 1 dt >= 0.
	test.That(t, len(r.Constraints), test.ShouldEqual, 3)
}

func TestResultTimesAndDuration(t *testing.T) {
	result := Result{Dt: []float64{0, 1, 2, 3}}
	times := result.Times()
	test.That(t, times, test.ShouldResemble, []float64{0, 1, 3, 6})
	test.That(t, result.Duration(), test.ShouldAlmostEqual, 6.0)
}
