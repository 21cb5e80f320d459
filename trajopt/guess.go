package trajopt

import (
	"github.com/jlmcmchl/TrajoptLib/solver"
)

// fillGuessSegment computes the piecewise-linear initial guess for the n
// samples owned by one segment, given the value the previous segment ended
// on (prevEnd) and the segment's ordered guess points (gp), per spec.md
// §4.F and the Interpolation Law in §8.
//
// The n samples are divided into len(gp) blocks. Block j runs from control
// point v[j] to v[j+1], where v[0] = prevEnd and v[1:] = gp. Blocks have
// length q = n / len(gp) (floor division) except the last, which absorbs
// the remainder so the block lengths sum to exactly n. Within a block of
// length length, sample k (0-indexed within the block) gets
// v0 + (k+1)/length*(v1-v0), so the block's last sample lands exactly on
// v1.
func fillGuessSegment(prevEnd float64, gp []float64, n int) []float64 {
	out := make([]float64, n)
	if len(gp) == 0 || n == 0 {
		return out
	}

	g := len(gp)
	q := n / g
	v0 := prevEnd
	pos := 0
	for j := 0; j < g; j++ {
		length := q
		if j == g-1 {
			length = n - (g-1)*q
		}
		v1 := gp[j]
		for k := 0; k < length; k++ {
			out[pos+k] = v0 + float64(k+1)/float64(length)*(v1-v0)
		}
		pos += length
		v0 = v1
	}
	return out
}

// guessAxis returns f applied to every InitialGuessPoint of a waypoint, in
// order, used to project out the x, y, or heading component before calling
// fillGuessSegment.
func guessAxis(points []InitialGuessPoint, f func(InitialGuessPoint) float64) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = f(pt)
	}
	return out
}

// seedInitialGuess walks path segment by segment, filling vars.x, vars.y,
// and vars.theta with the piecewise-linear guess derived from each
// waypoint's InitialGuessPoints, and calls p.SetInitial on every sample
// variable with the computed value.
func seedInitialGuess(p solver.Problem, path Path, vars sampleVars) {
	sampleIdx := path.waypointSampleIndices()

	start := path.Waypoints[0].InitialGuessPoints[0]
	p.SetInitial(vars.x[0], start.X)
	p.SetInitial(vars.y[0], start.Y)
	p.SetInitial(vars.theta[0], start.Heading)

	prevX, prevY, prevHeading := start.X, start.Y, start.Heading

	for i := 1; i < len(path.Waypoints); i++ {
		wp := path.Waypoints[i]
		n := wp.ControlIntervalCount
		lo := sampleIdx[i-1]

		xs := fillGuessSegment(prevX, guessAxis(wp.InitialGuessPoints, func(pt InitialGuessPoint) float64 { return pt.X }), n)
		ys := fillGuessSegment(prevY, guessAxis(wp.InitialGuessPoints, func(pt InitialGuessPoint) float64 { return pt.Y }), n)
		hs := fillGuessSegment(prevHeading, guessAxis(wp.InitialGuessPoints, func(pt InitialGuessPoint) float64 { return pt.Heading }), n)

		for k := 0; k < n; k++ {
			idx := lo + 1 + k
			p.SetInitial(vars.x[idx], xs[k])
			p.SetInitial(vars.y[idx], ys[k])
			p.SetInitial(vars.theta[idx], hs[k])
		}

		last := wp.InitialGuessPoints[len(wp.InitialGuessPoints)-1]
		prevX, prevY, prevHeading = last.X, last.Y, last.Heading
	}
}
