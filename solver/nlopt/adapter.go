//go:build nlopt

// Package nlopt provides a concrete solver.Problem backed by the NLopt C
// library (via github.com/go-nlopt/nlopt), the external nonlinear
// optimization backend that spec.md §1 treats as an opaque collaborator.
// TrajoptLib's expressions are built as evaluatable closures rather than
// symbolic/autodiff trees, so this adapter drives NLopt with a
// derivative-free algorithm (COBYLA) that only ever needs function values.
//
// Building this package requires the system NLopt library and the "nlopt"
// build tag; the rest of the module does not depend on it.
package nlopt

import (
	"fmt"
	"math"

	golopt "github.com/go-nlopt/nlopt"

	"github.com/jlmcmchl/TrajoptLib/solver"
)

// closure is the Expr representation used by Adapter: a function of the
// full decision vector. Arithmetic composes closures rather than building
// a symbolic tree, since NLopt only ever needs to evaluate the result at a
// point.
type closure struct {
	eval func(x []float64) float64
	// varIndex is the decision-vector index this closure reads directly,
	// or -1 if it is a derived (constant or composite) expression.
	// SetInitial only accepts closures produced directly by Variable().
	varIndex int
}

func (*closure) isExpr() {}

func (*closure) isBoolExpr() {}

// predicate pairs a closure with the comparison that must hold; it
// implements solver.BoolExpr but is translated into an NLopt equality or
// inequality constraint when Solve is called rather than evaluated directly.
type predicate struct {
	kind kind
	lhs  func(x []float64) float64
}

func (*predicate) isExpr() {}

func (*predicate) isBoolExpr() {}

type kind int

const (
	kindEq kind = iota
	kindLeq
	kindGeq
)

// Adapter implements solver.Problem. Variables are indices into a flat
// decision vector; constraints and the objective are recorded as closures
// and only realized into an *golopt.NLopt optimizer when Solve is called.
type Adapter struct {
	numVars      int
	initial      []float64
	inequalities []func(x []float64) float64 // must be <= 0
	equalities   []func(x []float64) float64 // must be == 0
	objective    func(x []float64) float64
	solution     []float64
}

// NewAdapter constructs an empty Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Variable() solver.Expr {
	idx := a.numVars
	a.numVars++
	a.initial = append(a.initial, 0)
	return &closure{varIndex: idx, eval: func(x []float64) float64 { return x[idx] }}
}

func (a *Adapter) Const(c float64) solver.Expr {
	return &closure{varIndex: -1, eval: func([]float64) float64 { return c }}
}

func (a *Adapter) SubjectTo(b solver.BoolExpr) {
	p := b.(*predicate)
	switch p.kind {
	case kindEq:
		a.equalities = append(a.equalities, p.lhs)
	case kindLeq, kindGeq:
		a.inequalities = append(a.inequalities, p.lhs)
	}
}

func (a *Adapter) SetInitial(e solver.Expr, value float64) {
	c, ok := e.(*closure)
	if !ok || c.varIndex < 0 {
		panic("nlopt: SetInitial called on a non-variable expression")
	}
	a.initial[c.varIndex] = value
}

func (a *Adapter) Minimize(e solver.Expr) {
	c := e.(*closure)
	a.objective = c.eval
}

// Solve runs COBYLA to a local optimum starting from the accumulated
// initial guess and returns the solved decision vector alongside the
// objective value at that point. Equality constraints are registered with
// NLopt's AddEqualityConstraint and inequalities with
// AddInequalityConstraint, each with a tolerance of 1e-8.
func (a *Adapter) Solve(maxEval int) ([]float64, float64, error) {
	if a.objective == nil {
		return nil, 0, fmt.Errorf("nlopt: no objective installed")
	}
	opt, err := golopt.NewNLopt(golopt.LN_COBYLA, uint(a.numVars))
	if err != nil {
		return nil, 0, fmt.Errorf("nlopt: create optimizer: %w", err)
	}
	defer opt.Destroy()

	objective := a.objective
	if err := opt.SetMinObjective(func(x, gradient []float64) float64 {
		return objective(x)
	}); err != nil {
		return nil, 0, err
	}
	for _, ineq := range a.inequalities {
		ineq := ineq
		if err := opt.AddInequalityConstraint(func(x, gradient []float64) float64 {
			return ineq(x)
		}, 1e-8); err != nil {
			return nil, 0, err
		}
	}
	for _, eq := range a.equalities {
		eq := eq
		if err := opt.AddEqualityConstraint(func(x, gradient []float64) float64 {
			return eq(x)
		}, 1e-8); err != nil {
			return nil, 0, err
		}
	}
	if maxEval > 0 {
		if err := opt.SetMaxEval(maxEval); err != nil {
			return nil, 0, err
		}
	}
	if err := opt.SetXtolRel(1e-6); err != nil {
		return nil, 0, err
	}

	x0 := append([]float64(nil), a.initial...)
	xopt, minf, err := opt.Optimize(x0)
	if err != nil {
		return nil, 0, fmt.Errorf("nlopt: optimize: %w", err)
	}
	a.solution = xopt
	return xopt, minf, nil
}

func (a *Adapter) SolutionValue(e solver.Expr) float64 {
	c := e.(*closure)
	if a.solution == nil {
		panic("nlopt: SolutionValue called before a successful Solve")
	}
	return c.eval(a.solution)
}

func (a *Adapter) Add(x, y solver.Expr) solver.Expr {
	cx, cy := x.(*closure), y.(*closure)
	return &closure{varIndex: -1, eval: func(v []float64) float64 { return cx.eval(v) + cy.eval(v) }}
}

func (a *Adapter) AddConst(x solver.Expr, c float64) solver.Expr {
	cx := x.(*closure)
	return &closure{varIndex: -1, eval: func(v []float64) float64 { return cx.eval(v) + c }}
}

func (a *Adapter) Sub(x, y solver.Expr) solver.Expr {
	cx, cy := x.(*closure), y.(*closure)
	return &closure{varIndex: -1, eval: func(v []float64) float64 { return cx.eval(v) - cy.eval(v) }}
}

func (a *Adapter) Scale(x solver.Expr, c float64) solver.Expr {
	cx := x.(*closure)
	return &closure{varIndex: -1, eval: func(v []float64) float64 { return cx.eval(v) * c }}
}

func (a *Adapter) Mul(x, y solver.Expr) solver.Expr {
	cx, cy := x.(*closure), y.(*closure)
	return &closure{varIndex: -1, eval: func(v []float64) float64 { return cx.eval(v) * cy.eval(v) }}
}

func (a *Adapter) Sin(x solver.Expr) solver.Expr {
	cx := x.(*closure)
	return &closure{varIndex: -1, eval: func(v []float64) float64 { return math.Sin(cx.eval(v)) }}
}

func (a *Adapter) Cos(x solver.Expr) solver.Expr {
	cx := x.(*closure)
	return &closure{varIndex: -1, eval: func(v []float64) float64 { return math.Cos(cx.eval(v)) }}
}

func (a *Adapter) Eq(x, y solver.Expr) solver.BoolExpr {
	cx, cy := x.(*closure), y.(*closure)
	return &predicate{kind: kindEq, lhs: func(v []float64) float64 { return cx.eval(v) - cy.eval(v) }}
}

func (a *Adapter) Leq(x, y solver.Expr) solver.BoolExpr {
	cx, cy := x.(*closure), y.(*closure)
	return &predicate{kind: kindLeq, lhs: func(v []float64) float64 { return cx.eval(v) - cy.eval(v) }}
}

func (a *Adapter) Geq(x, y solver.Expr) solver.BoolExpr {
	cx, cy := x.(*closure), y.(*closure)
	return &predicate{kind: kindGeq, lhs: func(v []float64) float64 { return cy.eval(v) - cx.eval(v) }}
}
