// Package solver defines the narrow boundary between TrajoptLib's problem
// builder and the external nonlinear optimization backend that eventually
// solves it. Nothing in this package implements an NLP solver: Problem is an
// abstract expression factory and constraint sink that a concrete adapter
// (a thin wrapper around a real solver, or an in-memory recorder for tests)
// must satisfy.
package solver

// Expr is an opaque handle to a scalar arithmetic expression tracked by a
// Problem. Concrete types are backend-specific; callers never inspect an
// Expr directly, they only pass it back into the Problem that produced it.
type Expr interface {
	isExpr()
}

// BoolExpr is an opaque handle to a scalar (in)equality produced by a
// Problem's comparison methods and consumed by SubjectTo.
type BoolExpr interface {
	isBoolExpr()
}

// Problem is the only interface the core problem builder imports from its
// environment. A Problem is both an expression factory (Variable, Const,
// and the arithmetic combinators) and a constraint sink (SubjectTo,
// Minimize). Implementations own the lifetime of every Expr and BoolExpr
// they hand out; none of them may be used with a different Problem.
type Problem interface {
	// Variable allocates a fresh decision variable.
	Variable() Expr

	// Const wraps a compile-time-known scalar as an Expr so it can be
	// combined with decision variables using the arithmetic below.
	Const(c float64) Expr

	// SubjectTo registers a constraint that must hold at the solution.
	SubjectTo(BoolExpr)

	// SetInitial seeds a decision variable with a starting guess.
	// Behavior is undefined if e was not produced by Variable() on this
	// Problem.
	SetInitial(e Expr, value float64)

	// Minimize installs the objective to minimize. The last call wins.
	Minimize(Expr)

	// SolutionValue reads back the solved value of an expression.
	// Precondition: the backend's solve has already completed
	// successfully.
	SolutionValue(Expr) float64

	// Arithmetic. Expr supports +, -, * with another Expr, + and * with a
	// float64 (AddConst, Scale), plus sin/cos of an Expr (needed to
	// express bumper-corner rotation by a symbolic heading). Angles that
	// are compile-time constants, as in the set encoders, are evaluated
	// with math.Sin/math.Cos and applied through Scale.
	Add(a, b Expr) Expr
	AddConst(a Expr, c float64) Expr
	Sub(a, b Expr) Expr
	Scale(a Expr, c float64) Expr
	Mul(a, b Expr) Expr
	Sin(a Expr) Expr
	Cos(a Expr) Expr

	// Comparisons produce a BoolExpr for SubjectTo.
	Eq(a, b Expr) BoolExpr
	Leq(a, b Expr) BoolExpr
	Geq(a, b Expr) BoolExpr
}

// Sum folds Add over a slice of expressions, seeded with zero. Returns
// p.Const(0) for an empty slice.
func Sum(p Problem, terms []Expr) Expr {
	acc := p.Const(0)
	for _, t := range terms {
		acc = p.Add(acc, t)
	}
	return acc
}
