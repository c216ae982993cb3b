package cavity

/*
One pseudo-time update of the artificial compressibility system

	P_t + c^2 div[u] = 0
	u_t + u . grad[u] = - grad[P] + nu div[grad[u]]

discretized with second order central differences on the staggered grid.
The convective terms use the divergence form with (a+b)^2 face averages,
which keeps the discretization conservative. Each kernel updates the
global row range [jlo, jhi) of the next buffers, reading only current
buffers. The continuity update is the exception: it must read the
velocities already produced this iteration. Boundary cells are never
touched here; the boundary passes own them.
*/

// UpdateU solves the x-momentum equation into fs.UN.
func (c *Cavity) UpdateU(fs *FieldSet, jlo, jhi int) {
	var (
		p   = &c.Params
		off = fs.RowOff
	)
	for j := jlo; j < jhi; j++ {
		var (
			un = fs.UN.Row(j - off)
			u0 = fs.U.Row(j - off)
			up = fs.U.Row(j + 1 - off)
			um = fs.U.Row(j - 1 - off)
			v0 = fs.V.Row(j - off)
			vm = fs.V.Row(j - 1 - off)
			pr = fs.P.Row(j - off)
		)
		for i := 1; i < p.N-1; i++ {
			ae, aw := u0[i+1]+u0[i], u0[i]+u0[i-1]
			un[i] = u0[i] -
				0.25*p.Dtdx*(ae*ae-aw*aw) -
				0.25*p.Dtdy*((up[i]+u0[i])*(v0[i+1]+v0[i])-
					(u0[i]+um[i])*(vm[i+1]+vm[i])) -
				p.Dtdx*(pr[i+1]-pr[i]) +
				p.Nu*(p.Dtdxx*(u0[i+1]-2.0*u0[i]+u0[i-1])+
					p.Dtdyy*(up[i]-2.0*u0[i]+um[i]))
		}
	}
}

// UpdateV solves the y-momentum equation into fs.VN.
func (c *Cavity) UpdateV(fs *FieldSet, jlo, jhi int) {
	var (
		p   = &c.Params
		off = fs.RowOff
	)
	for j := jlo; j < jhi; j++ {
		var (
			vn  = fs.VN.Row(j - off)
			v0  = fs.V.Row(j - off)
			vp  = fs.V.Row(j + 1 - off)
			vm  = fs.V.Row(j - 1 - off)
			u0  = fs.U.Row(j - off)
			up  = fs.U.Row(j + 1 - off)
			pr  = fs.P.Row(j - off)
			prp = fs.P.Row(j + 1 - off)
		)
		for i := 1; i < p.N; i++ {
			an, as := vp[i]+v0[i], v0[i]+vm[i]
			vn[i] = v0[i] -
				0.25*p.Dtdx*((up[i]+u0[i])*(v0[i+1]+v0[i])-
					(up[i-1]+u0[i-1])*(v0[i]+v0[i-1])) -
				0.25*p.Dtdy*(an*an-as*as) -
				p.Dtdy*(prp[i]-pr[i]) +
				p.Nu*(p.Dtdxx*(v0[i+1]-2.0*v0[i]+v0[i-1])+
					p.Dtdyy*(vp[i]-2.0*v0[i]+vm[i]))
		}
	}
}

// UpdateP solves the continuity equation into fs.PN. The divergence is
// taken of the velocities computed this iteration (fs.UN, fs.VN), a
// sequential dependency on the momentum updates.
func (c *Cavity) UpdateP(fs *FieldSet, jlo, jhi int) {
	var (
		p   = &c.Params
		off = fs.RowOff
	)
	for j := jlo; j < jhi; j++ {
		var (
			pn  = fs.PN.Row(j - off)
			p0  = fs.P.Row(j - off)
			un  = fs.UN.Row(j - off)
			vn  = fs.VN.Row(j - off)
			vnm = fs.VN.Row(j - 1 - off)
		)
		for i := 1; i < p.N; i++ {
			pn[i] = p0[i] - p.C2*((un[i]-un[i-1])*p.Dtdx+
				(vn[i]-vnm[i])*p.Dtdy)
		}
	}
}
