package cavity

import (
	"github.com/acsolve/cavity/utils"
)

// BoundaryCondition holds one scalar per cavity edge for a physical
// quantity. Set once from the lid configuration, never mutated afterward.
type BoundaryCondition struct {
	Top, Left, Bottom, Right float64
}

// LidBoundaryConditions builds the standard lid-driven cavity set: the lid
// moves at speed lid in +x, every other wall is no-slip, pressure carries a
// zero normal gradient everywhere.
func LidBoundaryConditions(lid float64) (ubc, vbc, pbc BoundaryCondition) {
	ubc = BoundaryCondition{Top: lid}
	return
}

/*
FieldSet owns the staggered Arakawa-C storage for the three fields, each
double buffered. Rows are y indices and columns x indices so that a grid
row is contiguous in memory:

	u lives on vertical cell faces:   (N+1) x N     rows x cols
	v lives on horizontal cell faces: N     x (N+1)
	p lives at cell centers + halo:   (N+1) x (N+1)

Current and next buffers of a quantity always have identical extents. The
integrator writes only the next buffers; Swap exchanges the handles with
no copying.

For the partitioned variant a FieldSet covers only a band of global rows
plus one ghost row on each side. RowOff is the global index of local row
zero, so global row j lives at local row j-RowOff.
*/
type FieldSet struct {
	N      int // Grid points per direction
	RowOff int

	rowLo, rowHi int // Owned cell row band [rowLo, rowHi); [0, N) for the full grid
	last         bool

	U, V, P    utils.Matrix // Current
	UN, VN, PN utils.Matrix // Next
}

// NewFieldSet allocates the full-grid field storage, zero filled.
func NewFieldSet(N int) (fs *FieldSet) {
	fs = &FieldSet{
		N:     N,
		rowLo: 0,
		rowHi: N,
		last:  true,
		U:     utils.NewMatrix(N+1, N),
		UN:    utils.NewMatrix(N+1, N),
		V:     utils.NewMatrix(N, N+1),
		VN:    utils.NewMatrix(N, N+1),
		P:     utils.NewMatrix(N+1, N+1),
		PN:    utils.NewMatrix(N+1, N+1),
	}
	return
}

/*
NewFieldBlock allocates the storage one partition owns: the cell row band
[rowLo, rowHi) plus one ghost row below and above. The last partition also
owns the extra staggered row of u and p at the global top. Rows outside
the global extents are allocated but never touched, which keeps the local
row offset identical across all three fields.
*/
func NewFieldBlock(N, rowLo, rowHi int, last bool) (fs *FieldSet) {
	var (
		extra = 0
	)
	if last {
		extra = 1
	}
	nrUP := (rowHi + extra) - rowLo + 2 // owned rows + 2 ghost/phantom rows
	nrV := rowHi - rowLo + 2
	fs = &FieldSet{
		N:      N,
		RowOff: rowLo - 1,
		rowLo:  rowLo,
		rowHi:  rowHi,
		last:   last,
		U:      utils.NewMatrix(nrUP, N),
		UN:     utils.NewMatrix(nrUP, N),
		V:      utils.NewMatrix(nrV, N+1),
		VN:     utils.NewMatrix(nrV, N+1),
		P:      utils.NewMatrix(nrUP, N+1),
		PN:     utils.NewMatrix(nrUP, N+1),
	}
	return
}

// Init seeds the initial condition: fluid at rest with the lid already
// moving, i.e. the top two u rows carry the lid velocity before the first
// boundary pass. Rows not present in this block are skipped.
func (fs *FieldSet) Init(lid float64) {
	var (
		N     = fs.N
		nr, _ = fs.U.Dims()
	)
	for _, j := range []int{N - 1, N} {
		jl := j - fs.RowOff
		if jl < 0 || jl >= nr {
			continue
		}
		row := fs.U.Row(jl)
		for i := 1; i < N-1; i++ {
			row[i] = lid
		}
	}
}

// Swap exchanges the current and next buffer handles for all three
// quantities. Ownership transfers, nothing is copied.
func (fs *FieldSet) Swap() {
	fs.U, fs.UN = fs.UN, fs.U
	fs.V, fs.VN = fs.VN, fs.V
	fs.P, fs.PN = fs.PN, fs.P
}

// Release drops the buffer handles so the backing arrays can be collected
// even while the FieldSet itself is still referenced.
func (fs *FieldSet) Release() {
	fs.U, fs.UN = utils.Matrix{}, utils.Matrix{}
	fs.V, fs.VN = utils.Matrix{}, utils.Matrix{}
	fs.P, fs.PN = utils.Matrix{}, utils.Matrix{}
}

// row maps a global row index into m's local storage.
func (fs *FieldSet) row(m utils.Matrix, j int) []float64 {
	return m.Row(j - fs.RowOff)
}
