package stjpv

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Coeffs is a fitted polynomial coefficient vector in whichever basis
// produced it. An empty (nil) vector means "no jet": either the finite
// support was empty or the least-squares solve hit a numeric singularity
// (§4.2 failure mode).
type Coeffs []float64

// Basis is one member of the {chebyshev, legendre, monomial} dispatch
// table named in §9's Design Notes: a basis knows how to fit a
// least-squares coefficient vector, evaluate it, and evaluate its first
// derivative, all without falling back to numerical differencing.
type Basis interface {
	Name() string
	// Fit minimises sum((y - P(x;c))^2) over c, degree deg. NaNs in y are
	// dropped from the fit (their x is dropped too) before the solve.
	Fit(x, y []float64, deg int) Coeffs
	// Eval evaluates P(x;c).
	Eval(c Coeffs, x float64) float64
	// EvalDeriv evaluates P(x;c) and P'(x;c) together, using the basis's
	// own three-term recurrence differentiated term-by-term rather than a
	// finite-difference approximation.
	EvalDeriv(c Coeffs, x float64) (val, deriv float64)
}

// BasisByName resolves the `poly` configuration key (§6) to a Basis. An
// unrecognised name is a configuration error (§7), never guessed.
func BasisByName(name string) (Basis, error) {
	switch strings.ToLower(name) {
	case "chebyshev", "cheby", "cby", "cheb":
		return chebyshevBasis{}, nil
	case "legendre", "leg", "legen":
		return legendreBasis{}, nil
	case "polynomial", "poly", "monomial", "power":
		return monomialBasis{}, nil
	default:
		return nil, fmt.Errorf("stjpv: unknown polynomial basis %q", name)
	}
}

// fitLeastSquares builds the (n x (deg+1)) design matrix from valuesAt and
// solves the least-squares problem with gonum/mat. Returns a nil Coeffs
// on empty finite support or numeric singularity, per §4.2's failure mode.
func fitLeastSquares(x, y []float64, deg int, valuesAt func(x float64, deg int) []float64) Coeffs {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if !math.IsNaN(y[i]) && !math.IsNaN(x[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	if len(xs) == 0 || len(xs) < deg+1 {
		return nil
	}
	n := len(xs)
	m := deg + 1
	a := mat.NewDense(n, m, nil)
	for i, xi := range xs {
		row := valuesAt(xi, deg)
		a.SetRow(i, row)
	}
	b := mat.NewDense(n, 1, ys)
	var c mat.Dense
	if err := c.Solve(a, b); err != nil {
		return nil
	}
	coeffs := make(Coeffs, m)
	for i := 0; i < m; i++ {
		coeffs[i] = c.At(i, 0)
	}
	return coeffs
}

// --- Monomial (power) basis ---

type monomialBasis struct{}

func (monomialBasis) Name() string { return "polynomial" }

func monomialRow(x float64, deg int) []float64 {
	row := make([]float64, deg+1)
	p := 1.0
	for i := 0; i <= deg; i++ {
		row[i] = p
		p *= x
	}
	return row
}

func (b monomialBasis) Fit(x, y []float64, deg int) Coeffs {
	return fitLeastSquares(x, y, deg, monomialRow)
}

func (monomialBasis) Eval(c Coeffs, x float64) float64 {
	if len(c) == 0 {
		return 0
	}
	v := c[len(c)-1]
	for i := len(c) - 2; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}

func (monomialBasis) EvalDeriv(c Coeffs, x float64) (val, deriv float64) {
	if len(c) == 0 {
		return 0, 0
	}
	val = c[len(c)-1]
	deriv = 0
	for i := len(c) - 2; i >= 0; i-- {
		deriv = deriv*x + val
		val = val*x + c[i]
	}
	return val, deriv
}

// --- Chebyshev basis (first kind, T_n) ---

type chebyshevBasis struct{}

func (chebyshevBasis) Name() string { return "chebyshev" }

func chebyshevRow(x float64, deg int) []float64 {
	row := make([]float64, deg+1)
	row[0] = 1
	if deg >= 1 {
		row[1] = x
	}
	for n := 2; n <= deg; n++ {
		row[n] = 2*x*row[n-1] - row[n-2]
	}
	return row
}

func (b chebyshevBasis) Fit(x, y []float64, deg int) Coeffs {
	return fitLeastSquares(x, y, deg, chebyshevRow)
}

func (chebyshevBasis) Eval(c Coeffs, x float64) float64 {
	row := chebyshevRow(x, len(c)-1)
	return dotProduct(c, row)
}

// EvalDeriv computes T_n(x) and T_n'(x) together via the recurrence
// obtained by differentiating T_{n+1} = 2x T_n - T_{n-1} term by term:
//
//	T_{n+1}'(x) = 2 T_n(x) + 2x T_n'(x) - T_{n-1}'(x)
//
// avoiding the (1-x^2) singularity of the closed-form ODE relation.
func (chebyshevBasis) EvalDeriv(c Coeffs, x float64) (val, deriv float64) {
	if len(c) == 0 {
		return 0, 0
	}
	deg := len(c) - 1
	t := make([]float64, deg+1)
	dt := make([]float64, deg+1)
	t[0] = 1
	dt[0] = 0
	if deg >= 1 {
		t[1] = x
		dt[1] = 1
	}
	for n := 2; n <= deg; n++ {
		t[n] = 2*x*t[n-1] - t[n-2]
		dt[n] = 2*t[n-1] + 2*x*dt[n-1] - dt[n-2]
	}
	return dotProduct(c, t), dotProduct(c, dt)
}

// --- Legendre basis (P_n) ---

type legendreBasis struct{}

func (legendreBasis) Name() string { return "legendre" }

func legendreRow(x float64, deg int) []float64 {
	row := make([]float64, deg+1)
	row[0] = 1
	if deg >= 1 {
		row[1] = x
	}
	for n := 1; n < deg; n++ {
		row[n+1] = ((2*float64(n)+1)*x*row[n] - float64(n)*row[n-1]) / float64(n+1)
	}
	return row
}

func (b legendreBasis) Fit(x, y []float64, deg int) Coeffs {
	return fitLeastSquares(x, y, deg, legendreRow)
}

func (legendreBasis) Eval(c Coeffs, x float64) float64 {
	row := legendreRow(x, len(c)-1)
	return dotProduct(c, row)
}

// EvalDeriv differentiates the Legendre recurrence
// (n+1) P_{n+1}(x) = (2n+1) x P_n(x) - n P_{n-1}(x) term by term:
//
//	(n+1) P_{n+1}'(x) = (2n+1) (P_n(x) + x P_n'(x)) - n P_{n-1}'(x)
func (legendreBasis) EvalDeriv(c Coeffs, x float64) (val, deriv float64) {
	if len(c) == 0 {
		return 0, 0
	}
	deg := len(c) - 1
	p := make([]float64, deg+1)
	dp := make([]float64, deg+1)
	p[0] = 1
	dp[0] = 0
	if deg >= 1 {
		p[1] = x
		dp[1] = 1
	}
	for n := 1; n < deg; n++ {
		fn := float64(n)
		p[n+1] = ((2*fn+1)*x*p[n] - fn*p[n-1]) / (fn + 1)
		dp[n+1] = ((2*fn+1)*(p[n]+x*dp[n]) - fn*dp[n-1]) / (fn + 1)
	}
	return dotProduct(c, p), dotProduct(c, dp)
}

func dotProduct(c Coeffs, row []float64) float64 {
	n := len(c)
	if len(row) < n {
		n = len(row)
	}
	var s float64
	for i := 0; i < n; i++ {
		s += c[i] * row[i]
	}
	return s
}
