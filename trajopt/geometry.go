package trajopt

import (
	"math"

	"github.com/golang/geo/r2"
)

// Polygon is a convex-or-not 2D shape used for both the robot's bumper
// footprint and an Obstacle: one point is a point obstacle, two points are
// a line segment, and three or more form a closed polygon (an edge closes
// from the last corner back to the first). SafetyDistance is additive
// Euclidean padding applied whenever this polygon is checked for
// collision against another.
type Polygon struct {
	SafetyDistance float64
	Points         []r2.Point
}

// Obstacle is a Polygon placed in the world; bumpers and obstacles share
// exactly the same representation per spec.md §3.
type Obstacle = Polygon

// Edge is one side of a Polygon, in its local (unrotated, untranslated)
// frame.
type Edge struct {
	A, B r2.Point
}

// LengthSquared returns the squared length of the edge, a rigid-body
// invariant independent of any later rotation/translation applied to the
// polygon it came from.
func (e Edge) LengthSquared() float64 {
	dx := e.B.X - e.A.X
	dy := e.B.Y - e.A.Y
	return dx*dx + dy*dy
}

// Edges enumerates the polygon's sides: no edges for a single point, one
// edge for a segment (no closing edge), and len(Points) edges - including
// the closing edge from the last corner back to the first - for three or
// more points.
func (p Polygon) Edges() []Edge {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	edges := make([]Edge, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{A: p.Points[i], B: p.Points[i+1]})
	}
	if n >= 3 {
		edges = append(edges, Edge{A: p.Points[n-1], B: p.Points[0]})
	}
	return edges
}

// CornerPolar returns the radius and bearing (atan2(y, x)) of a bumper
// corner in its local frame, as used by the world-position transform in
// collision.go. The origin corner (0, 0) has radius 0 and an undefined
// (reported as 0) bearing; callers must special-case r == 0 rather than
// relying on the bearing in that case, matching spec.md §4.C.
func CornerPolar(c r2.Point) (r, phi float64) {
	if c.X == 0 && c.Y == 0 {
		return 0, 0
	}
	return math.Hypot(c.X, c.Y), math.Atan2(c.Y, c.X)
}
