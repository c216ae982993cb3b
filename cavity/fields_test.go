package cavity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestFieldSetExtents(t *testing.T) {
	var (
		N  = 16
		fs = NewFieldSet(N)
	)
	checkDims := func(m interface{ Dims() (int, int) }, nr, nc int) {
		r, c := m.Dims()
		assert.Equal(t, nr, r)
		assert.Equal(t, nc, c)
	}
	// u on vertical faces, v on horizontal faces, p at centers plus halo
	checkDims(fs.U, N+1, N)
	checkDims(fs.V, N, N+1)
	checkDims(fs.P, N+1, N+1)
	// current and next always share extents
	checkDims(fs.UN, N+1, N)
	checkDims(fs.VN, N, N+1)
	checkDims(fs.PN, N+1, N+1)
}

func TestFieldSetInit(t *testing.T) {
	var (
		N   = 16
		lid = 2.5
		fs  = NewFieldSet(N)
	)
	fs.Init(lid)
	for _, j := range []int{N - 1, N} {
		row := fs.U.Row(j)
		for i := 1; i < N-1; i++ {
			assert.Equal(t, lid, row[i])
		}
	}
	// rest of the fluid starts at rest
	for j := 0; j < N-1; j++ {
		for _, val := range fs.U.Row(j) {
			assert.Equal(t, 0., val)
		}
	}
	assert.Equal(t, 0., floats.Sum(fs.V.DataP))
	assert.Equal(t, 0., floats.Sum(fs.P.DataP))
}

func TestFieldSetSwap(t *testing.T) {
	var (
		N  = 8
		fs = NewFieldSet(N)
	)
	fs.Init(1.0)
	fs.P.Set(3, 3, 42.)
	var (
		uPtr, unPtr = &fs.U.DataP[0], &fs.UN.DataP[0]
		uSum        = floats.Sum(fs.U.DataP)
		pSum        = floats.Sum(fs.P.DataP)
	)
	fs.Swap()
	// handles exchanged, no data moved
	assert.Equal(t, unPtr, &fs.U.DataP[0])
	assert.Equal(t, uPtr, &fs.UN.DataP[0])
	fs.Swap()
	// double swap restores the original buffer identities and contents
	assert.Equal(t, uPtr, &fs.U.DataP[0])
	assert.Equal(t, unPtr, &fs.UN.DataP[0])
	assert.Equal(t, uSum, floats.Sum(fs.U.DataP))
	assert.Equal(t, pSum, floats.Sum(fs.P.DataP))
}

func TestFieldBlockExtents(t *testing.T) {
	var (
		N = 16
	)
	{ // interior block: band plus one ghost row each side
		fs := NewFieldBlock(N, 4, 8, false)
		assert.Equal(t, 3, fs.RowOff)
		nr, _ := fs.U.Dims()
		assert.Equal(t, 6, nr)
		nr, _ = fs.V.Dims()
		assert.Equal(t, 6, nr)
	}
	{ // top block carries the extra staggered u and p row
		fs := NewFieldBlock(N, 12, N, true)
		nr, nc := fs.U.Dims()
		assert.Equal(t, N-12+3, nr)
		assert.Equal(t, N, nc)
		nr, nc = fs.V.Dims()
		assert.Equal(t, N-12+2, nr)
		assert.Equal(t, N+1, nc)
		// lid seeding lands in the owned top rows
		fs.Init(1.0)
		for i := 1; i < N-1; i++ {
			assert.Equal(t, 1.0, fs.row(fs.U, N)[i])
			assert.Equal(t, 1.0, fs.row(fs.U, N-1)[i])
		}
	}
	{ // bottom block never seeds the lid
		fs := NewFieldBlock(N, 0, 4, false)
		fs.Init(1.0)
		assert.Equal(t, 0., floats.Sum(fs.U.DataP))
	}
}
