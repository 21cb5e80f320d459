package trajopt

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/jlmcmchl/TrajoptLib/solver"
)

// Scenario 4: point bumper at origin, point obstacle at (1, 0), combined
// safety distance 0.5 -> one constraint (1-x)^2 + (0-y)^2 >= 0.25.
func TestApplyObstacleConstraintPointPoint(t *testing.T) {
	r := solver.NewRecorder()
	xs, ys, thetas := r.Variable(), r.Variable(), r.Variable()
	r.SetInitial(xs, 0)
	r.SetInitial(ys, 0)
	r.SetInitial(thetas, 0)

	bumpers := Polygon{SafetyDistance: 0.2, Points: []r2.Point{{X: 0, Y: 0}}}
	obstacle := Obstacle{SafetyDistance: 0.3, Points: []r2.Point{{X: 1, Y: 0}}}

	applyObstacleConstraint(r, xs, ys, thetas, bumpers, obstacle)

	test.That(t, len(r.Constraints), test.ShouldEqual, 1)
	c := r.Constraints[0]
	test.That(t, c.Op, test.ShouldEqual, solver.OpGeq)
	test.That(t, r.SolutionValue(c.Right), test.ShouldAlmostEqual, 0.25)
	test.That(t, r.SolutionValue(c.Left), test.ShouldAlmostEqual, 1.0)
}

// Scenario 5: triangle bumper (3 corners), square obstacle (4 corners):
// 3 bumper-edges x 4 obstacle-corners + 4 obstacle-edges x 3 bumper-corners
// = 24 constraints.
func TestApplyObstacleConstraintTriangleSquare(t *testing.T) {
	r := solver.NewRecorder()
	xs, ys, thetas := r.Variable(), r.Variable(), r.Variable()
	r.SetInitial(xs, 0)
	r.SetInitial(ys, 0)
	r.SetInitial(thetas, 0)

	bumpers := Polygon{Points: []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}
	obstacle := Obstacle{Points: []r2.Point{
		{X: 5, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 1}, {X: 5, Y: 1},
	}}

	applyObstacleConstraint(r, xs, ys, thetas, bumpers, obstacle)
	test.That(t, len(r.Constraints), test.ShouldEqual, 24)
	for _, c := range r.Constraints {
		test.That(t, c.Op, test.ShouldEqual, solver.OpGeq)
	}
}

func TestApplyObstacleConstraintSegmentVsSegment(t *testing.T) {
	r := solver.NewRecorder()
	xs, ys, thetas := r.Variable(), r.Variable(), r.Variable()
	r.SetInitial(xs, 0)
	r.SetInitial(ys, 0)
	r.SetInitial(thetas, 0)

	bumpers := Polygon{Points: []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	obstacle := Obstacle{Points: []r2.Point{{X: 5, Y: 0}, {X: 5, Y: 1}}}

	applyObstacleConstraint(r, xs, ys, thetas, bumpers, obstacle)
	// 1 bumper edge x 2 obstacle corners + 1 obstacle edge x 2 bumper corners.
	test.That(t, len(r.Constraints), test.ShouldEqual, 4)
}

func TestWorldBumperCornerOrigin(t *testing.T) {
	r := solver.NewRecorder()
	xs, ys, thetas := r.Variable(), r.Variable(), r.Variable()
	r.SetInitial(xs, 3)
	r.SetInitial(ys, 4)
	r.SetInitial(thetas, 1.2)

	pt := worldBumperCorner(r, xs, ys, thetas, r2.Point{X: 0, Y: 0})
	test.That(t, r.SolutionValue(pt.X), test.ShouldAlmostEqual, 3.0)
	test.That(t, r.SolutionValue(pt.Y), test.ShouldAlmostEqual, 4.0)
}

func TestWorldBumperCornerRotated(t *testing.T) {
	r := solver.NewRecorder()
	xs, ys, thetas := r.Variable(), r.Variable(), r.Variable()
	r.SetInitial(xs, 0)
	r.SetInitial(ys, 0)
	r.SetInitial(thetas, 0)

	// At theta=0, a corner at (1, 0) stays at (1, 0) in world frame.
	pt := worldBumperCorner(r, xs, ys, thetas, r2.Point{X: 1, Y: 0})
	test.That(t, r.SolutionValue(pt.X), test.ShouldAlmostEqual, 1.0)
	test.That(t, r.SolutionValue(pt.Y), test.ShouldAlmostEqual, 0.0)

	r.SetInitial(thetas, 1.5707963267948966) // pi/2
	pt = worldBumperCorner(r, xs, ys, thetas, r2.Point{X: 1, Y: 0})
	test.That(t, r.SolutionValue(pt.X), test.ShouldAlmostEqual, 0.0)
	test.That(t, r.SolutionValue(pt.Y), test.ShouldAlmostEqual, 1.0)
}

func TestLegacyEdgeSweepBugToggle(t *testing.T) {
	defer func() { PreserveLegacyEdgeSweepBug = false }()

	bumpers := Polygon{SafetyDistance: 1, Points: []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	obstacle := Obstacle{SafetyDistance: 1, Points: []r2.Point{{X: 5, Y: 0}, {X: 5, Y: 1}}}

	PreserveLegacyEdgeSweepBug = true
	r := solver.NewRecorder()
	xs, ys, thetas := r.Variable(), r.Variable(), r.Variable()
	applyObstacleConstraint(r, xs, ys, thetas, bumpers, obstacle)
	// Sweep 2 (obstacle edge vs bumper corner) uses the legacy threshold d = 2.
	test.That(t, r.SolutionValue(r.Constraints[len(r.Constraints)-1].Right), test.ShouldAlmostEqual, 2.0)

	PreserveLegacyEdgeSweepBug = false
	r2rec := solver.NewRecorder()
	xs2, ys2, thetas2 := r2rec.Variable(), r2rec.Variable(), r2rec.Variable()
	applyObstacleConstraint(r2rec, xs2, ys2, thetas2, bumpers, obstacle)
	test.That(t, r2rec.SolutionValue(r2rec.Constraints[len(r2rec.Constraints)-1].Right), test.ShouldAlmostEqual, 4.0)
}
