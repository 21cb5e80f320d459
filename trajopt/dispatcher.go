package trajopt

import (
	"fmt"

	"github.com/jlmcmchl/TrajoptLib/solver"
)

// dispatchConstraint routes a tagged Constraint to the appropriate encoder
// for the sample at symbolic pose (xs, ys, thetas), per spec.md §4.D.
func dispatchConstraint(p solver.Problem, xs, ys, thetas solver.Expr, bumpers Polygon, c Constraint) {
	switch v := c.(type) {
	case TranslationConstraint:
		apply2D(p, xs, ys, v.Bound)

	case HeadingConstraint:
		apply1D(p, thetas, v.Bound)

	case PoseConstraint:
		apply2D(p, xs, ys, v.Translation)
		apply1D(p, thetas, v.Heading)

	case ObstacleConstraint:
		applyObstacleConstraint(p, xs, ys, thetas, bumpers, v.Obstacle)

	default:
		panic(fmt.Sprintf("trajopt: unknown Constraint variant %T", c))
	}
}
