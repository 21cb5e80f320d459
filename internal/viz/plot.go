// Package viz renders a path's bumper footprint, swept along its
// piecewise-linear initial guess, to a PNG for visual sanity-checking
// before a trajectory is handed to a solver. It only ever touches numeric
// (non-symbolic) poses: nothing here participates in problem construction.
package viz

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jlmcmchl/TrajoptLib/trajopt"
)

// centerlineLength returns the total arc length of the swept guess
// centerline, the sum of the Euclidean distance between consecutive
// samples.
func centerlineLength(guess []trajopt.InitialGuessPoint) float64 {
	total := 0.0
	for i := 1; i < len(guess); i++ {
		total += floats.Distance([]float64{guess[i].X, guess[i].Y}, []float64{guess[i-1].X, guess[i-1].Y}, 2)
	}
	return total
}

// footprintAt returns the bumper polygon's corners transformed into the
// world frame at pose (x, y, heading), closing the loop back to the first
// corner so it renders as an outline.
func footprintAt(bumpers trajopt.Polygon, x, y, heading float64) plotter.XYs {
	rot := mgl64.Rotate2D(heading)
	pts := make(plotter.XYs, 0, len(bumpers.Points)+1)
	for _, c := range bumpers.Points {
		world := rot.Mul2x1(mgl64.Vec2{c.X, c.Y})
		pts = append(pts, plotter.XY{X: world.X() + x, Y: world.Y() + y})
	}
	if len(bumpers.Points) > 0 {
		first := bumpers.Points[0]
		world := rot.Mul2x1(mgl64.Vec2{first.X, first.Y})
		pts = append(pts, plotter.XY{X: world.X() + x, Y: world.Y() + y})
	}
	return pts
}

// sweepGuess numerically replays the same piecewise-linear interpolation
// the problem builder seeds, without going through a solver.Problem at
// all, so it can run before (or instead of) a solve.
func sweepGuess(path trajopt.Path) []trajopt.InitialGuessPoint {
	if len(path.Waypoints) == 0 {
		return nil
	}
	start := path.Waypoints[0].InitialGuessPoints[0]
	out := []trajopt.InitialGuessPoint{start}
	prev := start
	for i := 1; i < len(path.Waypoints); i++ {
		wp := path.Waypoints[i]
		n := wp.ControlIntervalCount
		g := len(wp.InitialGuessPoints)
		if g == 0 || n == 0 {
			continue
		}
		q := n / g
		v0 := prev
		for j := 0; j < g; j++ {
			length := q
			if j == g-1 {
				length = n - (g-1)*q
			}
			v1 := wp.InitialGuessPoints[j]
			for k := 0; k < length; k++ {
				frac := float64(k+1) / float64(length)
				out = append(out, trajopt.InitialGuessPoint{
					X:       v0.X + frac*(v1.X-v0.X),
					Y:       v0.Y + frac*(v1.Y-v0.Y),
					Heading: v0.Heading + frac*(v1.Heading-v0.Heading),
				})
			}
			v0 = v1
		}
		prev = wp.InitialGuessPoints[g-1]
	}
	return out
}

// RenderFootprint draws the bumper polygon swept along path's initial
// guess, plus the guess centerline, to outFile as a PNG.
func RenderFootprint(path trajopt.Path, outFile string) error {
	guess := sweepGuess(path)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("trajopt initial guess sweep (%.2f units)", centerlineLength(guess))
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	centerline := make(plotter.XYs, len(guess))
	for i, g := range guess {
		centerline[i] = plotter.XY{X: g.X, Y: g.Y}
	}
	line, err := plotter.NewLine(centerline)
	if err != nil {
		return fmt.Errorf("viz: building centerline: %w", err)
	}
	p.Add(line)

	if len(path.Bumpers.Points) > 0 {
		for _, g := range guess {
			outline := footprintAt(path.Bumpers, g.X, g.Y, g.Heading)
			fl, err := plotter.NewLine(outline)
			if err != nil {
				return fmt.Errorf("viz: building footprint outline: %w", err)
			}
			p.Add(fl)
		}
	}

	for _, c := range path.GlobalConstraints {
		oc, ok := c.(trajopt.ObstacleConstraint)
		if !ok {
			continue
		}
		ol, err := plotter.NewLine(obstacleOutline(oc.Obstacle))
		if err != nil {
			return fmt.Errorf("viz: building obstacle outline: %w", err)
		}
		p.Add(ol)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, outFile); err != nil {
		return fmt.Errorf("viz: saving %s: %w", outFile, err)
	}
	return nil
}

// obstacleOutline returns an obstacle's corners as a closed XY polyline
// (the first corner repeated at the end), which RenderFootprint overlays
// on the plot for every ObstacleConstraint in path.GlobalConstraints.
func obstacleOutline(o trajopt.Obstacle) plotter.XYs {
	pts := make(plotter.XYs, 0, len(o.Points)+1)
	for _, c := range o.Points {
		pts = append(pts, plotter.XY{X: c.X, Y: c.Y})
	}
	if len(o.Points) > 0 {
		pts = append(pts, plotter.XY{X: o.Points[0].X, Y: o.Points[0].Y})
	}
	return pts
}
