package trajopt

import (
	"github.com/jlmcmchl/TrajoptLib/solver"
)

// sampleVars holds the per-sample decision variables for the whole grid,
// per spec.md §4.E: S = K + 1 pose samples (x, y, theta) and one dt per
// segment, shared by every sample that segment owns.
type sampleVars struct {
	x, y, theta []solver.Expr

	// dtSegment holds one Expr per segment (index 1..W-1, index 0 unused),
	// the single symbolic timestep shared by every sample in that segment.
	dtSegment []solver.Expr

	// dt is the flat, per-sample timestep array: dt[k] is the dtSegment
	// Expr for whichever segment owns sample k (sample 0 has no dt and is
	// left nil). Expr handles are cheap, backend-opaque references, so
	// repeating the same segment's handle N times here does not duplicate
	// the underlying decision variable: every repeated entry still reads
	// back the one variable SubjectTo/Minimize constrained.
	dt []solver.Expr
}

// segmentView is a half-open window [lo, hi) of sample indices owned by one
// waypoint: for waypoint 0, just its own sample (0); for waypoint i >= 1,
// the samples (prevWpSample+1) .. wpSample inclusive (length N_i), per
// spec.md §4.E bullet 4 and §3. The shared boundary sample at a segment's
// start belongs to the previous waypoint's view, not this one.
type segmentView struct {
	lo, hi int
}

// buildLayout allocates the pose and timestep variables for path and seeds
// each dtSegment_i with 5.0/N_i, per spec.md §4.E; the pose variables are
// seeded separately by seedInitialGuess. It also installs the minimization
// objective T = sum(N_i * dtSegment_i) and the dtSegment_i >= 0 constraints.
func buildLayout(p solver.Problem, path Path) (sampleVars, []segmentView) {
	s := path.SampleCount()
	w := len(path.Waypoints)

	vars := sampleVars{
		x:         make([]solver.Expr, s),
		y:         make([]solver.Expr, s),
		theta:     make([]solver.Expr, s),
		dtSegment: make([]solver.Expr, w),
		dt:        make([]solver.Expr, s),
	}

	for k := 0; k < s; k++ {
		vars.x[k] = p.Variable()
		vars.y[k] = p.Variable()
		vars.theta[k] = p.Variable()
	}

	objectiveTerms := make([]solver.Expr, 0, w-1)
	sampleIdx := path.waypointSampleIndices()
	views := make([]segmentView, w)

	for i := 1; i < w; i++ {
		n := path.Waypoints[i].ControlIntervalCount
		dt := p.Variable()
		p.SetInitial(dt, 5.0/float64(n))
		p.SubjectTo(p.Geq(dt, p.Const(0)))
		vars.dtSegment[i] = dt

		lo := sampleIdx[i-1] + 1
		hi := sampleIdx[i] + 1
		views[i] = segmentView{lo: lo, hi: hi}

		for k := lo; k < hi; k++ {
			vars.dt[k] = dt
		}

		objectiveTerms = append(objectiveTerms, p.Scale(dt, float64(n)))
	}
	views[0] = segmentView{lo: 0, hi: 1}

	p.Minimize(solver.Sum(p, objectiveTerms))

	return vars, views
}
