package trajopt

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jlmcmchl/TrajoptLib/solver"
)

// Result is the solved trajectory: one pose plus timestep per sample.
type Result struct {
	X, Y, Theta []float64
	Dt          []float64 // Dt[0] is always 0 (no transition into sample 0).
}

// Times returns the cumulative time at each sample, Times[0] == 0.
func (r Result) Times() []float64 {
	times := make([]float64, len(r.Dt))
	for i := 1; i < len(r.Dt); i++ {
		times[i] = times[i-1] + r.Dt[i]
	}
	return times
}

// Duration returns the total trajectory time, the sum of every Dt.
func (r Result) Duration() float64 {
	total := 0.0
	for _, dt := range r.Dt {
		total += dt
	}
	return total
}

// Builder assembles a solver.Problem from a Path, per spec.md §4. A
// logger, if set, receives structured progress events; a nil logger is
// valid and silences logging entirely.
type Builder struct {
	Logger *zap.SugaredLogger
}

func (b *Builder) logInfow(msg string, keysAndValues ...interface{}) {
	if b.Logger == nil {
		return
	}
	b.Logger.Infow(msg, keysAndValues...)
}

// Generate builds the full NLP problem for path against p: it validates
// path, lays out the pose and timestep variables (component E), seeds the
// piecewise-linear initial guess (component F), and walks every sample
// dispatching its constraints (component D), including bumper-vs-obstacle
// collision constraints and the path's GlobalConstraints at every sample.
// drivetrain is accepted for API completeness but is not read: drivetrain
// dynamics feasibility is out of scope per spec.md §1.
func (b *Builder) Generate(p solver.Problem, drivetrain Drivetrain, path Path) error {
	_ = drivetrain
	if err := path.Validate(); err != nil {
		return fmt.Errorf("trajopt: invalid path: %w", err)
	}

	b.logInfow("building layout", "samples", path.SampleCount(), "waypoints", len(path.Waypoints))
	vars, views := buildLayout(p, path)
	seedInitialGuess(p, path, vars)

	// GlobalConstraints (including any ObstacleConstraint) apply at every
	// sample in the grid, exactly once.
	for k := 0; k < path.SampleCount(); k++ {
		for _, c := range path.GlobalConstraints {
			dispatchConstraint(p, vars.x[k], vars.y[k], vars.theta[k], path.Bumpers, c)
		}
	}

	for i, wp := range path.Waypoints {
		view := views[i]
		wpSample := view.hi - 1

		// WaypointConstraints apply only at this waypoint's own sample.
		for _, c := range wp.WaypointConstraints {
			dispatchConstraint(p, vars.x[wpSample], vars.y[wpSample], vars.theta[wpSample], path.Bumpers, c)
		}

		// SegmentConstraints apply at every interior sample of the segment
		// leading up to this waypoint: view.lo .. wpSample-1. For waypoint
		// 0, view.lo == wpSample, so this never executes (spec.md §3:
		// SegmentConstraints are not used for waypoint 0).
		for k := view.lo; k < wpSample; k++ {
			for _, c := range wp.SegmentConstraints {
				dispatchConstraint(p, vars.x[k], vars.y[k], vars.theta[k], path.Bumpers, c)
			}
		}
	}

	b.logInfow("problem built")
	return nil
}

