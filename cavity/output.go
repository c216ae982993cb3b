package cavity

import (
	"fmt"
	"io"

	"github.com/acsolve/cavity/utils"
)

/*
CellCenteredFields interpolates the staggered current fields onto cell
centers for output and plotting: u averages the two
bounding vertical faces in y, v the two horizontal faces in x, and p the
four surrounding pressure nodes. Each result is an NxN matrix in row
(y), column (x) order.
*/
func (c *Cavity) CellCenteredFields() (ug, vg, pg utils.Matrix) {
	var (
		N  = c.Params.N
		fs = c.Fields
	)
	ug = utils.NewMatrix(N, N)
	vg = utils.NewMatrix(N, N)
	pg = utils.NewMatrix(N, N)
	for j := 0; j < N; j++ {
		var (
			ugr = ug.Row(j)
			vgr = vg.Row(j)
			pgr = pg.Row(j)
			u0  = fs.U.Row(j)
			up  = fs.U.Row(j + 1)
			v0  = fs.V.Row(j)
			p0  = fs.P.Row(j)
			pp  = fs.P.Row(j + 1)
		)
		for i := 0; i < N; i++ {
			ugr[i] = 0.5 * (up[i] + u0[i])
			vgr[i] = 0.5 * (v0[i+1] + v0[i])
			pgr[i] = 0.25 * (p0[i] + p0[i+1] + pp[i] + pp[i+1])
		}
	}
	return
}

// WriteFields dumps the cell-centered fields with their grid coordinates,
// one point per line, tab separated.
func (c *Cavity) WriteFields(w io.Writer) (err error) {
	var (
		N      = c.Params.N
		dx, dy = c.Params.Dx, c.Params.Dy
	)
	ug, vg, pg := c.CellCenteredFields()
	if _, err = fmt.Fprintf(w, "# %d \t %.8f \t %.8f\n", N, dx, dy); err != nil {
		return
	}
	for j := 0; j < N; j++ {
		var (
			ugr, vgr, pgr = ug.Row(j), vg.Row(j), pg.Row(j)
			y             = float64(j) * dy
		)
		for i := 0; i < N; i++ {
			x := float64(i) * dx
			if _, err = fmt.Fprintf(w, "%.8f \t %.8f \t %.8f \t %.8f \t %.8f\n",
				x, y, ugr[i], vgr[i], pgr[i]); err != nil {
				return
			}
		}
	}
	return
}
