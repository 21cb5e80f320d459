package trajopt

import (
	"fmt"

	"go.uber.org/multierr"
)

// InitialGuessPoint is one (x, y, heading) sample of a waypoint's guess
// skeleton, used to seed the optimizer per spec.md §4.F.
type InitialGuessPoint struct {
	X       float64
	Y       float64
	Heading float64
}

// Waypoint is one user-specified pose the trajectory must pass through (or
// near), plus the constraints and guess skeleton attached to it and to the
// segment leading up to it.
type Waypoint struct {
	// ControlIntervalCount is the number of control intervals (N) in the
	// segment ending at this waypoint. Unused for waypoint 0.
	ControlIntervalCount int

	// InitialGuessPoints seed the piecewise-linear interpolation for this
	// waypoint's segment; must contain at least one point.
	InitialGuessPoints []InitialGuessPoint

	// WaypointConstraints apply only at the single sample this waypoint
	// owns.
	WaypointConstraints []Constraint

	// SegmentConstraints apply at every interior sample of the segment
	// leading up to this waypoint (not at the waypoint's own sample, and
	// not used for waypoint 0).
	SegmentConstraints []Constraint
}

// Drivetrain carries physical limits for a wheeled base. The core problem
// builder does not read it: drivetrain dynamics feasibility is out of
// scope per spec.md §1 (the source's own dynamics hook is commented out).
// It is threaded through Generate purely for API shape parity with a
// complete trajectory-optimization library.
type Drivetrain struct {
	MaxVelocity        float64
	MaxAngularVelocity float64
	MaxAcceleration    float64
}

// Path is an ordered sequence of waypoints sharing a robot footprint and a
// set of constraints that apply everywhere along the path.
type Path struct {
	Waypoints         []Waypoint
	Bumpers           Polygon
	GlobalConstraints []Constraint
}

// Validate checks the data-model invariants spec.md §3 and §7 otherwise
// leave as "programmer error", collecting every violation via multierr
// instead of failing on the first one, so a caller gets one combined
// diagnostic before attempting construction.
func (p Path) Validate() error {
	var errs error
	if len(p.Waypoints) < 2 {
		errs = multierr.Append(errs, fmt.Errorf("path must have at least 2 waypoints, got %d", len(p.Waypoints)))
	}
	for i, wp := range p.Waypoints {
		if len(wp.InitialGuessPoints) < 1 {
			errs = multierr.Append(errs, fmt.Errorf("waypoint %d: must have at least 1 initial guess point", i))
		}
		if i == 0 {
			continue
		}
		if wp.ControlIntervalCount < 1 {
			errs = multierr.Append(errs, fmt.Errorf("waypoint %d: controlIntervalCount must be >= 1, got %d", i, wp.ControlIntervalCount))
		}
	}
	return errs
}

// TotalIntervals returns K, the sum of every non-zeroth waypoint's
// ControlIntervalCount.
func (p Path) TotalIntervals() int {
	k := 0
	for i := 1; i < len(p.Waypoints); i++ {
		k += p.Waypoints[i].ControlIntervalCount
	}
	return k
}

// SampleCount returns S = K + 1, the number of samples in the grid.
func (p Path) SampleCount() int {
	return p.TotalIntervals() + 1
}

// waypointSampleIndices returns, for each waypoint index i, the sample
// index that waypoint occupies: 0 for waypoint 0, and the cumulative sum
// of control interval counts otherwise.
func (p Path) waypointSampleIndices() []int {
	idx := make([]int, len(p.Waypoints))
	for i := 1; i < len(p.Waypoints); i++ {
		idx[i] = idx[i-1] + p.Waypoints[i].ControlIntervalCount
	}
	return idx
}
