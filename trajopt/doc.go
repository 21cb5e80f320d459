// Package trajopt builds time-optimal trajectory NLP problems for a
// wheeled mobile robot: waypoints, translation/heading/pose/obstacle
// constraints, bumper-polygon collision avoidance, and a piecewise-linear
// initial guess, all expressed against the solver.Problem boundary so the
// same Path compiles against either the in-memory recorder used in tests
// or a real NLopt-backed adapter.
package trajopt
