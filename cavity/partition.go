package cavity

import (
	"sync"
	"time"

	"github.com/acsolve/cavity/utils"
)

/*
The partitioned variant splits the y extent into contiguous cell row
bands, one worker per band, each owning local double-buffered storage
plus one ghost row per internal boundary. Workers exchange boundary
adjacent rows with their neighbors once per field update and combine
residual partial sums through a collective reduction, so every worker
observes the identical convergence decision and the bands stay in
lockstep. Within its band each worker shards the update loops across
goroutines the same way the shared-memory path does, so the two
parallelism layers compose. Partitioning changes the execution strategy
only: the kernels and their operand values are the same as the
shared-memory path.
*/

// Partition describes one worker's contiguous band of global cell rows.
// Computed once at startup, immutable afterward; only the ghost row
// contents of the worker's FieldSet change, refreshed each exchange.
type Partition struct {
	ID, NP       int
	RowLo, RowHi int // Owned cell rows [RowLo, RowHi)
	Prev, Next   int // Neighbor ids, -1 at the domain edges
}

// NewPartitions splits N cell rows into NP bands with the same
// max-imbalance-one split used for the shared-memory shards.
func NewPartitions(NP, N int) (parts []Partition) {
	pm := utils.NewPartitionMap(NP, N)
	parts = make([]Partition, NP)
	for n := 0; n < NP; n++ {
		lo, hi := pm.GetBucketRange(n)
		parts[n] = Partition{
			ID:    n,
			NP:    NP,
			RowLo: lo,
			RowHi: hi,
			Prev:  n - 1,
			Next:  n + 1,
		}
		if n == NP-1 {
			parts[n].Next = -1
		}
	}
	parts[0].Prev = -1
	return
}

// rowLink joins partition n to partition n+1. Capacity one in each
// direction: a send never blocks, the matching receive is the
// synchronization point of the pairwise exchange.
type rowLink struct {
	up, down chan []float64
}

func newRowLink() *rowLink {
	return &rowLink{
		up:   make(chan []float64, 1),
		down: make(chan []float64, 1),
	}
}

type worker struct {
	c            *Cavity
	part         Partition
	fs           *FieldSet
	np           int // Goroutine shards within this worker's band
	shards       *utils.PartitionMap
	below, above *rowLink
	reduce       *utils.AllReduce[residualSums]
}

/*
exchangeRows refreshes m's ghost rows from the neighbors and hands the
neighbors this worker's boundary-adjacent owned rows. The sent slices
alias local storage without copying: the receiver copies them into its
ghost slot before reaching the iteration's reduction barrier, and the
sender does not write those rows again until after the same barrier, so
the rows are effectively read-only for the rest of the iteration.
*/
func (wk *worker) exchangeRows(m utils.Matrix) {
	var (
		off = wk.fs.RowOff
		p   = wk.part
	)
	if wk.above != nil {
		wk.above.up <- m.Row(p.RowHi - 1 - off)
	}
	if wk.below != nil {
		wk.below.down <- m.Row(p.RowLo - off)
	}
	if wk.below != nil {
		copy(m.Row(p.RowLo-1-off), <-wk.below.up)
	}
	if wk.above != nil {
		copy(m.Row(p.RowHi-off), <-wk.above.down)
	}
}

// shard runs f over this worker's owned row band, split across the
// worker's goroutine shards, and waits for all of them. n is the shard
// index, [kmin, kmax) its global cell rows.
func (wk *worker) shard(f func(n, kmin, kmax int)) {
	if wk.np == 1 {
		f(0, wk.part.RowLo, wk.part.RowHi)
		return
	}
	var wg sync.WaitGroup
	for n := 0; n < wk.np; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			k1, k2 := wk.shards.GetBucketRange(n)
			f(n, wk.part.RowLo+k1, wk.part.RowLo+k2)
		}(n)
	}
	wg.Wait()
}

func (wk *worker) run() (res Result) {
	var (
		c      = wk.c
		fs     = wk.fs
		p      = wk.part
		N      = c.Params.N
		bottom = p.Prev < 0
		top    = p.Next < 0
		parts  = make([]residualSums, wk.np)
	)
	fs.Init(c.Params.LidVelocity)
	c.ApplyVelocityBC(fs.U, fs.V, fs.RowOff, bottom, top)
	c.ApplyPressureBC(fs.P, fs.RowOff, bottom, top)
	// Fill the halo before the first stencil pass
	wk.exchangeRows(fs.U)
	wk.exchangeRows(fs.V)
	wk.exchangeRows(fs.P)

	var (
		itr   int
		state State
		rsd   Residual
	)
	start := time.Now()
	for state == Continue {
		itr++
		wk.shard(func(n, kmin, kmax int) {
			ulo, uhi := bandRows(kmin, kmax, N)
			c.UpdateU(fs, ulo, uhi)
			vlo, vhi := bandRows(kmin, kmax, N-1)
			c.UpdateV(fs, vlo, vhi)
		})
		c.ApplyVelocityBC(fs.UN, fs.VN, fs.RowOff, bottom, top)
		wk.exchangeRows(fs.UN)
		wk.exchangeRows(fs.VN)
		wk.shard(func(n, kmin, kmax int) {
			plo, phi := bandRows(kmin, kmax, N)
			c.UpdateP(fs, plo, phi)
		})
		c.ApplyPressureBC(fs.PN, fs.RowOff, bottom, top)
		wk.exchangeRows(fs.PN)
		wk.shard(func(n, kmin, kmax int) {
			rlo, rhi := bandRows(kmin, kmax, N-1)
			parts[n] = c.residualPartial(fs, rlo, rhi)
		})
		// fold shard partials in shard order before the global reduction
		// so the result does not depend on goroutine scheduling
		local := parts[0]
		for n := 1; n < wk.np; n++ {
			local = local.add(parts[n])
		}
		total := wk.reduce.Reduce(p.ID, local)
		rsd = c.FinalizeResidual(total)
		if p.ID == 0 {
			c.logResidual(itr, rsd)
		}
		fs.Swap()
		state = c.Monitor.Decide(itr, rsd)
	}
	wk.gather()
	res = Result{
		State:      state,
		Iterations: itr,
		Residual:   rsd,
		Elapsed:    time.Since(start),
	}
	return
}

// gather copies this worker's owned current rows into the solver's global
// fields. Bands are disjoint, so the workers write without coordination.
func (wk *worker) gather() {
	var (
		c    = wk.c
		fs   = wk.fs
		p    = wk.part
		hiUP = p.RowHi
	)
	if p.Next < 0 {
		hiUP++ // the top partition owns the extra staggered u and p row
	}
	for j := p.RowLo; j < hiUP; j++ {
		copy(c.Fields.U.Row(j), fs.row(fs.U, j))
		copy(c.Fields.P.Row(j), fs.row(fs.P, j))
	}
	for j := p.RowLo; j < p.RowHi; j++ {
		copy(c.Fields.V.Row(j), fs.row(fs.V, j))
	}
}

/*
SolvePartitioned runs the distributed variant: NP workers, each with its
own partitioned storage, coupled only through the pairwise row exchange
and the residual reduction. All workers finish with the same state and
iteration count; the converged global fields are gathered into c.Fields.
*/
func (c *Cavity) SolvePartitioned(NP int) (res Result) {
	var (
		N     = c.Params.N
		wg    sync.WaitGroup
		parts = NewPartitions(NP, N)
		links = make([]*rowLink, NP-1)
	)
	for n := range links {
		links[n] = newRowLink()
	}
	reduce := utils.NewAllReduce[residualSums](NP, residualSums.add)
	results := make([]Result, NP)
	c.PrintInitialization()
	for n := 0; n < NP; n++ {
		// split the configured parallel degree across the workers, at
		// least one shard each, never more shards than band rows
		np := c.ParallelDegree / NP
		rows := parts[n].RowHi - parts[n].RowLo
		if np < 1 {
			np = 1
		}
		if np > rows {
			np = rows
		}
		wk := &worker{
			c:      c,
			part:   parts[n],
			fs:     NewFieldBlock(N, parts[n].RowLo, parts[n].RowHi, parts[n].Next < 0),
			np:     np,
			shards: utils.NewPartitionMap(np, rows),
			reduce: reduce,
		}
		if parts[n].Prev >= 0 {
			wk.below = links[n-1]
		}
		if parts[n].Next >= 0 {
			wk.above = links[n]
		}
		wg.Add(1)
		go func(n int, wk *worker) {
			defer wg.Done()
			results[n] = wk.run()
		}(n, wk)
	}
	wg.Wait()
	res = results[0]
	c.PrintFinal(res)
	return
}
