package cavity

import (
	"github.com/acsolve/cavity/utils"
)

/*
Boundary passes mutate the given buffers in place. They run once at
initialization on the current buffers and after every update on the next
buffers; skipping either pass leaves a drifting, non-physical boundary.

Velocity gets Dirichlet values on all four edges. Pressure gets a
zero-gradient condition: each boundary ring cell mirrors its nearest
interior neighbor, offset by dx or dy times the configured edge gradient
(zero for the cavity). Edge rows are written before the side columns so
corner cells stay consistent with the side values.

bottom and top select whether this block of rows touches the physical
bottom/top wall; a partition interior to the domain applies only the side
columns, its horizontal edges being ghost rows owned by neighbors.
*/

func (c *Cavity) ApplyVelocityBC(u, v utils.Matrix, rowOff int, bottom, top bool) {
	var (
		N      = c.Params.N
		nrU, _ = u.Dims()
		nrV, _ = v.Dims()
	)
	if bottom {
		fill(u.Row(0-rowOff), c.UBC.Bottom)
		fill(v.Row(0-rowOff), c.VBC.Bottom)
	}
	if top {
		fill(u.Row(N-rowOff), c.UBC.Top)
		fill(v.Row(N-1-rowOff), c.VBC.Top)
	}
	for jl := 0; jl < nrU; jl++ {
		row := u.Row(jl)
		row[0] = c.UBC.Left
		row[N-1] = c.UBC.Right
	}
	for jl := 0; jl < nrV; jl++ {
		row := v.Row(jl)
		row[0] = c.VBC.Left
		row[N] = c.VBC.Right
	}
}

func (c *Cavity) ApplyPressureBC(p utils.Matrix, rowOff int, bottom, top bool) {
	var (
		N      = c.Params.N
		dx, dy = c.Params.Dx, c.Params.Dy
		nr, _  = p.Dims()
	)
	if bottom {
		edge, interior := p.Row(0-rowOff), p.Row(1-rowOff)
		for i := 0; i <= N; i++ {
			edge[i] = interior[i] - dy*c.PBC.Bottom
		}
	}
	if top {
		edge, interior := p.Row(N-rowOff), p.Row(N-1-rowOff)
		for i := 0; i <= N; i++ {
			edge[i] = interior[i] + dy*c.PBC.Top
		}
	}
	for jl := 0; jl < nr; jl++ {
		row := p.Row(jl)
		row[0] = row[1] - dx*c.PBC.Left
		row[N] = row[N-1] + dx*c.PBC.Right
	}
}

func fill(row []float64, val float64) {
	for i := range row {
		row[i] = val
	}
}
