package trajopt

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/jlmcmchl/TrajoptLib/solver"
)

// PreserveLegacyEdgeSweepBug restores the source's dimensionally
// inconsistent obstacle-edge-vs-bumper-corner sweep (>= d instead of
// >= d^2), per Open Question 2 in spec.md §9. Left false, every collision
// constraint this package emits uses the dimensionally consistent
// >= d^2. Flip it only to reproduce the legacy behavior for parity
// testing against the original source.
var PreserveLegacyEdgeSweepBug = false

// point2 is a 2D point whose coordinates are tracked as solver
// expressions. A fixed (obstacle) point has both coordinates built from
// p.Const; a point that depends on the robot's pose (a bumper corner's
// world position) has symbolic coordinates built from the pose variables.
// Representing both uniformly lets segDistSq below be written once.
type point2 struct {
	X, Y solver.Expr
}

func constPoint(p solver.Problem, pt r2.Point) point2 {
	return point2{X: p.Const(pt.X), Y: p.Const(pt.Y)}
}

// worldBumperCorner computes the world-frame position of a bumper corner
// given the robot's symbolic pose (xs, ys, thetas), per spec.md §4.C. The
// origin corner is a special case: its world position is simply the
// robot's position, independent of heading.
func worldBumperCorner(p solver.Problem, xs, ys, thetas solver.Expr, corner r2.Point) point2 {
	r, phi := CornerPolar(corner)
	if r == 0 {
		return point2{X: xs, Y: ys}
	}
	cosTheta := p.Cos(thetas)
	sinTheta := p.Sin(thetas)
	// cos(phi + thetas) = cos(phi)*cos(thetas) - sin(phi)*sin(thetas)
	cosSum := p.Sub(p.Scale(cosTheta, math.Cos(phi)), p.Scale(sinTheta, math.Sin(phi)))
	// sin(phi + thetas) = sin(phi)*cos(thetas) + cos(phi)*sin(thetas)
	sinSum := p.Add(p.Scale(cosTheta, math.Sin(phi)), p.Scale(sinTheta, math.Cos(phi)))
	return point2{
		X: p.Add(xs, p.Scale(cosSum, r)),
		Y: p.Add(ys, p.Scale(sinSum, r)),
	}
}

// worldBumperEdge transforms both endpoints of a local-frame bumper edge
// into world-frame symbolic points.
func worldBumperEdge(p solver.Problem, xs, ys, thetas solver.Expr, e Edge) (a, b point2) {
	return worldBumperCorner(p, xs, ys, thetas, e.A), worldBumperCorner(p, xs, ys, thetas, e.B)
}

// segDistSq computes the squared distance from pt to the infinite line
// through a and b, projected (unclamped) onto that line. This
// deliberately does not clamp t into [0, 1] to a true segment distance:
// it reproduces the source's line-infinite projection per Open Question 1
// in spec.md §9. lengthSq is the edge's precomputed squared length (a
// rigid-body invariant of the polygon the edge came from, so it is always
// a compile-time constant even when the edge's endpoints are symbolic).
func segDistSq(p solver.Problem, a, b, pt point2, lengthSq float64) solver.Expr {
	lx := p.Sub(b.X, a.X)
	ly := p.Sub(b.Y, a.Y)
	vx := p.Sub(pt.X, a.X)
	vy := p.Sub(pt.Y, a.Y)

	if lengthSq == 0 {
		// Degenerate edge (a == b): foot == a.
		dx := p.Sub(a.X, pt.X)
		dy := p.Sub(a.Y, pt.Y)
		return p.Add(p.Mul(dx, dx), p.Mul(dy, dy))
	}

	dot := p.Add(p.Mul(vx, lx), p.Mul(vy, ly))
	// t = dot/lengthSq. lengthSq is a compile-time constant (edge length
	// is rigid-body invariant), so this is a scalar multiply, never a
	// symbolic division.
	tExpr := p.Scale(dot, 1/lengthSq)
	footX := p.Add(a.X, p.Mul(tExpr, lx))
	footY := p.Add(a.Y, p.Mul(tExpr, ly))

	dx := p.Sub(footX, pt.X)
	dy := p.Sub(footY, pt.Y)
	return p.Add(p.Mul(dx, dx), p.Mul(dy, dy))
}

// applyObstacleConstraint emits the collision-avoidance constraints
// between bumpers (at the symbolic pose xs, ys, thetas) and obstacle, per
// spec.md §4.C.
func applyObstacleConstraint(p solver.Problem, xs, ys, thetas solver.Expr, bumpers Polygon, obstacle Obstacle) {
	d := bumpers.SafetyDistance + obstacle.SafetyDistance
	bigD := d * d

	// Case 1: point vs point.
	if len(bumpers.Points) == 1 && len(obstacle.Points) == 1 {
		worldCorner := worldBumperCorner(p, xs, ys, thetas, bumpers.Points[0])
		obstaclePoint := constPoint(p, obstacle.Points[0])
		dx := p.Sub(obstaclePoint.X, worldCorner.X)
		dy := p.Sub(obstaclePoint.Y, worldCorner.Y)
		distSq := p.Add(p.Mul(dx, dx), p.Mul(dy, dy))
		p.SubjectTo(p.Geq(distSq, p.Const(bigD)))
		return
	}

	// Sweep 1: every bumper edge against every obstacle corner.
	for _, e := range bumpers.Edges() {
		a, b := worldBumperEdge(p, xs, ys, thetas, e)
		lengthSq := e.LengthSquared()
		for _, op := range obstacle.Points {
			pt := constPoint(p, op)
			distSq := segDistSq(p, a, b, pt, lengthSq)
			p.SubjectTo(p.Geq(distSq, p.Const(bigD)))
		}
	}

	// Sweep 2: every obstacle edge against every bumper corner.
	threshold := bigD
	if PreserveLegacyEdgeSweepBug {
		threshold = d
	}
	for _, e := range obstacle.Edges() {
		a, b := constPoint(p, e.A), constPoint(p, e.B)
		lengthSq := e.LengthSquared()
		for _, bc := range bumpers.Points {
			pt := worldBumperCorner(p, xs, ys, thetas, bc)
			distSq := segDistSq(p, a, b, pt, lengthSq)
			p.SubjectTo(p.Geq(distSq, p.Const(threshold)))
		}
	}
}
