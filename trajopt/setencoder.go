package trajopt

import (
	"fmt"
	"math"

	"github.com/jlmcmchl/TrajoptLib/solver"
)

// apply1D emits the scalar (in)equalities bounding s per spec.md §4.B:
// an equality if the interval is exact, otherwise independent lower and/or
// upper inequalities for whichever sides are bounded.
func apply1D(p solver.Problem, s solver.Expr, bound IntervalSet1d) {
	if bound.IsExact() {
		p.SubjectTo(p.Eq(s, p.Const(bound.Lower())))
		return
	}
	if bound.IsLowerBounded() {
		p.SubjectTo(p.Geq(s, p.Const(bound.Lower())))
	}
	if bound.IsUpperBounded() {
		p.SubjectTo(p.Leq(s, p.Const(bound.Upper())))
	}
}

// apply2D emits the scalar (in)equalities bounding the 2D point (sx, sy)
// per spec.md §4.B, dispatching on the Set2d variant.
func apply2D(p solver.Problem, sx, sy solver.Expr, bound Set2d) {
	switch b := bound.(type) {
	case Rectangular:
		apply1D(p, sx, b.XBound)
		apply1D(p, sy, b.YBound)

	case Linear:
		// sx*sin(theta) == sy*cos(theta): (sx, sy) lies on the line
		// through the origin at angle theta.
		lhs := p.Scale(sx, math.Sin(b.Theta))
		rhs := p.Scale(sy, math.Cos(b.Theta))
		p.SubjectTo(p.Eq(lhs, rhs))

	case Elliptical:
		// L = sx^2/xRadius^2 + sy^2/yRadius^2
		sx2 := p.Mul(sx, sx)
		sy2 := p.Mul(sy, sy)
		l := p.Add(p.Scale(sx2, 1/(b.XRadius*b.XRadius)), p.Scale(sy2, 1/(b.YRadius*b.YRadius)))
		one := p.Const(1)
		switch b.Direction {
		case Inside:
			p.SubjectTo(p.Leq(l, one))
		case Centered:
			p.SubjectTo(p.Eq(l, one))
		case Outside:
			p.SubjectTo(p.Geq(l, one))
		default:
			panic(fmt.Sprintf("trajopt: unknown elliptical direction %v", b.Direction))
		}

	case Cone:
		// Confine bearing(sx, sy) to [lower, upper] via the standard
		// half-plane-per-bound encoding: sx*sin(u) >= sy*cos(u) and
		// sx*sin(l) <= sy*cos(l).
		u, l := b.Bearing.Upper(), b.Bearing.Lower()
		upperLHS := p.Scale(sx, math.Sin(u))
		upperRHS := p.Scale(sy, math.Cos(u))
		p.SubjectTo(p.Geq(upperLHS, upperRHS))

		lowerLHS := p.Scale(sx, math.Sin(l))
		lowerRHS := p.Scale(sy, math.Cos(l))
		p.SubjectTo(p.Leq(lowerLHS, lowerRHS))

	default:
		panic(fmt.Sprintf("trajopt: unknown Set2d variant %T", bound))
	}
}
