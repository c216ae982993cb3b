package cavity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scramble(data []float64, rnd *rand.Rand) {
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
}

func TestVelocityBC(t *testing.T) {
	var (
		N   = 16
		c   = NewCavity(NewParameters(100, N), 1)
		fs  = c.Fields
		rnd = rand.New(rand.NewSource(1))
	)
	c.UBC = BoundaryCondition{Top: 1.0, Left: -2.0, Bottom: 3.0, Right: 4.0}
	c.VBC = BoundaryCondition{Top: 5.0, Left: 6.0, Bottom: -7.0, Right: 8.0}
	scramble(fs.U.DataP, rnd)
	scramble(fs.V.DataP, rnd)
	c.ApplyVelocityBC(fs.U, fs.V, fs.RowOff, true, true)
	// horizontal edges carry the configured Dirichlet values exactly
	for i := 1; i < N-1; i++ {
		assert.Equal(t, 3.0, fs.U.Row(0)[i])
		assert.Equal(t, 1.0, fs.U.Row(N)[i])
	}
	for i := 1; i < N; i++ {
		assert.Equal(t, -7.0, fs.V.Row(0)[i])
		assert.Equal(t, 5.0, fs.V.Row(N-1)[i])
	}
	// side columns over the full extent, corners included
	for j := 0; j <= N; j++ {
		assert.Equal(t, -2.0, fs.U.Row(j)[0])
		assert.Equal(t, 4.0, fs.U.Row(j)[N-1])
	}
	for j := 0; j < N; j++ {
		assert.Equal(t, 6.0, fs.V.Row(j)[0])
		assert.Equal(t, 8.0, fs.V.Row(j)[N])
	}
}

func TestPressureBC(t *testing.T) {
	var (
		N   = 16
		c   = NewCavity(NewParameters(100, N), 1)
		fs  = c.Fields
		rnd = rand.New(rand.NewSource(2))
	)
	scramble(fs.P.DataP, rnd)
	c.ApplyPressureBC(fs.P, fs.RowOff, true, true)
	// zero gradient: every boundary ring cell mirrors its interior neighbor
	for i := 1; i < N; i++ {
		assert.Equal(t, fs.P.Row(1)[i], fs.P.Row(0)[i])
		assert.Equal(t, fs.P.Row(N-1)[i], fs.P.Row(N)[i])
	}
	for j := 0; j <= N; j++ {
		assert.Equal(t, fs.P.Row(j)[1], fs.P.Row(j)[0])
		assert.Equal(t, fs.P.Row(j)[N-1], fs.P.Row(j)[N])
	}
}

func TestBCAfterEveryPass(t *testing.T) {
	// The boundary must hold after an update+BC cycle, not just at init
	var (
		N = 16
		c = NewCavity(NewParameters(100, N), 1)
	)
	fs := c.Fields
	c.UpdateU(fs, 1, N)
	c.UpdateV(fs, 1, N-1)
	c.ApplyVelocityBC(fs.UN, fs.VN, fs.RowOff, true, true)
	c.UpdateP(fs, 1, N)
	c.ApplyPressureBC(fs.PN, fs.RowOff, true, true)
	for i := 1; i < N-1; i++ {
		assert.Equal(t, c.Params.LidVelocity, fs.UN.Row(N)[i])
		assert.Equal(t, 0., fs.UN.Row(0)[i])
	}
	for j := 0; j <= N; j++ {
		assert.Equal(t, fs.PN.Row(j)[1], fs.PN.Row(j)[0])
	}
}
