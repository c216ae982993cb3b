package cavity

import "math"

// State is the per-iteration verdict of the convergence monitor.
type State int

const (
	Continue State = iota
	Converged
	Diverged
	MaxIterationsExceeded
)

func (s State) String() string {
	switch s {
	case Continue:
		return "Continue"
	case Converged:
		return "Converged"
	case Diverged:
		return "Diverged"
	case MaxIterationsExceeded:
		return "MaxIterationsExceeded"
	}
	return "Unknown"
}

// Residual holds the finalized per-iteration norms. ErrU/ErrV/ErrP are
// L2 norms of the change between next and current buffers; ErrD is the
// signed sum of the local divergence of the new velocity field, so near
// zero means good mass conservation. ErrTot drives the decision.
type Residual struct {
	ErrU, ErrV, ErrP, ErrD float64
	ErrTot                 float64
}

// residualSums are the raw interior-point accumulations before scaling,
// the quantity exchanged in partial-sum reductions across partitions.
// Addition of sums is associative, so combination order only moves the
// last bits.
type residualSums struct {
	U, V, P, D float64
}

func (s residualSums) add(o residualSums) residualSums {
	return residualSums{s.U + o.U, s.V + o.V, s.P + o.P, s.D + o.D}
}

// residualPartial accumulates this block's interior contribution over the
// global row range [jlo, jhi). The velocity and pressure terms square the
// new-minus-old delta; the divergence term is a signed plain sum over the
// new velocities only, never squared.
func (c *Cavity) residualPartial(fs *FieldSet, jlo, jhi int) (s residualSums) {
	var (
		p   = &c.Params
		off = fs.RowOff
	)
	for j := jlo; j < jhi; j++ {
		var (
			u0, un = fs.U.Row(j - off), fs.UN.Row(j - off)
			v0, vn = fs.V.Row(j - off), fs.VN.Row(j - off)
			p0, pn = fs.P.Row(j - off), fs.PN.Row(j - off)
			vnm    = fs.VN.Row(j - 1 - off)
		)
		for i := 1; i < p.N-1; i++ {
			du, dv, dp := un[i]-u0[i], vn[i]-v0[i], pn[i]-p0[i]
			s.U += du * du
			s.V += dv * dv
			s.P += dp * dp
			s.D += (un[i]-un[i-1])*p.Dtdx + (vn[i]-vnm[i])*p.Dtdy
		}
	}
	return
}

// FinalizeResidual scales the globally combined sums into norms.
func (c *Cavity) FinalizeResidual(s residualSums) (r Residual) {
	r.ErrU = math.Sqrt(c.Params.DtDxDy * s.U)
	r.ErrV = math.Sqrt(c.Params.DtDxDy * s.V)
	r.ErrP = math.Sqrt(c.Params.DtDxDy * s.P)
	r.ErrD = s.D
	r.ErrTot = math.Max(math.Max(r.ErrU, r.ErrV), math.Max(r.ErrP, r.ErrD))
	return
}

// Monitor turns a residual and iteration count into a terminal decision.
type Monitor struct {
	Tol           float64
	MaxIterations int
}

func (m Monitor) Decide(itr int, r Residual) State {
	switch {
	case math.IsNaN(r.ErrTot):
		return Diverged
	case r.ErrTot <= m.Tol:
		return Converged
	case itr >= m.MaxIterations:
		return MaxIterationsExceeded
	}
	return Continue
}
