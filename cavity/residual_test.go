package cavity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorDecisions(t *testing.T) {
	m := Monitor{Tol: 1.0e-7, MaxIterations: 1000}
	res := func(tot float64) Residual { return Residual{ErrTot: tot} }
	assert.Equal(t, Continue, m.Decide(1, res(1.0e-3)))
	assert.Equal(t, Converged, m.Decide(1, res(1.0e-8)))
	assert.Equal(t, Converged, m.Decide(1, res(1.0e-7))) // at tolerance counts
	assert.Equal(t, Diverged, m.Decide(1, res(math.NaN())))
	assert.Equal(t, MaxIterationsExceeded, m.Decide(1000, res(1.0e-3)))
	// divergence wins over the iteration cap
	assert.Equal(t, Diverged, m.Decide(1000, res(math.NaN())))
	assert.Equal(t, "Converged", Converged.String())
	assert.Equal(t, "Diverged", Diverged.String())
}

func TestFinalizeResidual(t *testing.T) {
	var (
		N = 16
		c = NewCavity(NewParameters(100, N), 1)
	)
	s := residualSums{U: 4.0, V: 1.0, P: 0.25, D: -3.0}
	r := c.FinalizeResidual(s)
	scale := c.Params.DtDxDy
	assert.InDelta(t, math.Sqrt(4.0*scale), r.ErrU, 1e-15)
	assert.InDelta(t, math.Sqrt(1.0*scale), r.ErrV, 1e-15)
	assert.InDelta(t, math.Sqrt(0.25*scale), r.ErrP, 1e-15)
	// the divergence residual is signed and not square rooted
	assert.Equal(t, -3.0, r.ErrD)
	assert.Equal(t, math.Max(r.ErrU, math.Max(r.ErrV, r.ErrP)), r.ErrTot)
	// NaN anywhere in the sums surfaces in ErrTot
	r = c.FinalizeResidual(residualSums{U: math.NaN()})
	assert.True(t, math.IsNaN(r.ErrTot))
}

func TestResidualSumsCombine(t *testing.T) {
	a := residualSums{1, 2, 3, 4}
	b := residualSums{10, 20, 30, -40}
	got := a.add(b)
	assert.Equal(t, residualSums{11, 22, 33, -36}, got)
	// order independent
	assert.Equal(t, got, b.add(a))
}
