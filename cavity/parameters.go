package cavity

import "math"

/*
Parameters carries everything derived once at startup from the Reynolds
number and grid resolution. The cavity is the unit square with the lid
moving at LidVelocity, so dx = L/(N-1), dt follows the CFL condition on
the lid speed and nu = U*L/Re. Values are computed once and shared
read-only by every component; nothing in the solver mutates them.
*/
type Parameters struct {
	Re          float64 // Reynolds number
	N           int     // Grid points per direction, default 128
	Length      float64 // Cavity side length
	LidVelocity float64

	CFL float64 // Courant number, chosen per Reynolds regime
	C2  float64 // Artificial compressibility speed squared

	Dx, Dy float64
	Dt     float64
	Nu     float64

	Tol           float64
	MaxIterations int

	// Loop-invariant products of the above
	Dtdx, Dtdy   float64
	Dtdxx, Dtdyy float64
	DtDxDy       float64
}

const (
	DefaultN             = 128
	DefaultTol           = 1.0e-7
	DefaultMaxIterations = 1000000
)

// NewParameters picks the CFL / artificial sound speed pairing for the
// Reynolds regime and derives the grid and time step constants.
func NewParameters(Re float64, N int) (p Parameters) {
	p = Parameters{
		Re:            Re,
		N:             N,
		Length:        1.0,
		LidVelocity:   1.0,
		Tol:           DefaultTol,
		MaxIterations: DefaultMaxIterations,
	}
	switch {
	case Re < 500:
		p.CFL, p.C2 = 0.15, 5.0
	case Re < 2000:
		p.CFL, p.C2 = 0.20, 5.8
	default:
		p.CFL, p.C2 = 0.05, 5.8
	}
	p.Derive()
	return
}

// Derive recomputes the dependent constants. Call it again after
// overriding CFL or C2 directly, before handing the parameters to a solver.
func (p *Parameters) Derive() {
	p.Dx = p.Length / float64(p.N-1)
	p.Dy = p.Dx
	p.Dt = p.CFL * math.Min(p.Dx, p.Dy) / p.LidVelocity
	p.Nu = p.LidVelocity * p.Length / p.Re

	p.Dtdx = p.Dt / p.Dx
	p.Dtdy = p.Dt / p.Dy
	p.Dtdxx = p.Dt / (p.Dx * p.Dx)
	p.Dtdyy = p.Dt / (p.Dy * p.Dy)
	p.DtDxDy = p.Dt * p.Dx * p.Dy
}
