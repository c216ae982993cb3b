package cavity

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/acsolve/cavity/utils"
)

/*
Cavity drives the steady incompressible lid-driven cavity solution by
explicit pseudo-time marching. Each iteration:

	momentum updates (current -> next)
	velocity boundary pass on next
	continuity update (reads next velocities)
	pressure boundary pass on next
	residual norms, convergence decision
	swap current/next

The three update loops and the residual accumulation are sharded across
goroutines by grid row band, one band per partition of the PartitionMap.
Every stencil reads only current values and writes only disjoint next
cells, so the bands need no locks; the WaitGroup barrier between phases
is the only synchronization.
*/
type Cavity struct {
	Params        Parameters
	UBC, VBC, PBC BoundaryCondition

	Fields         *FieldSet
	Partitions     *utils.PartitionMap
	ParallelDegree int

	Monitor   Monitor
	LogWriter io.Writer // Optional per-iteration residual history
	Verbose   bool
	PrintStep int // Iterations between console updates when Verbose
}

// Result reports how a run ended.
type Result struct {
	State      State
	Iterations int
	Residual   Residual
	Elapsed    time.Duration
}

// NewCavity builds a solver for the given parameters. procLimit caps the
// number of goroutines used for the row-sharded loops; zero means one per
// available CPU.
func NewCavity(params Parameters, procLimit int) (c *Cavity) {
	np := procLimit
	if np <= 0 {
		np = runtime.NumCPU()
	}
	if np > params.N {
		np = params.N
	}
	c = &Cavity{
		Params:         params,
		ParallelDegree: np,
		Partitions:     utils.NewPartitionMap(np, params.N),
		Monitor:        Monitor{Tol: params.Tol, MaxIterations: params.MaxIterations},
		PrintStep:      5000,
	}
	c.UBC, c.VBC, c.PBC = LidBoundaryConditions(params.LidVelocity)
	c.Fields = NewFieldSet(params.N)
	c.Fields.Init(params.LidVelocity)
	c.ApplyVelocityBC(c.Fields.U, c.Fields.V, 0, true, true)
	c.ApplyPressureBC(c.Fields.P, 0, true, true)
	return
}

// bandRows clamps a partition's cell row band to the interior update rows
// of one index space, [1, jmax).
func bandRows(kmin, kmax, jmax int) (lo, hi int) {
	lo, hi = kmin, kmax
	if lo < 1 {
		lo = 1
	}
	if hi > jmax {
		hi = jmax
	}
	return
}

// Solve marches until the monitor returns a terminal state.
func (c *Cavity) Solve() (res Result) {
	var (
		NP     = c.ParallelDegree
		fs     = c.Fields
		N      = c.Params.N
		wg     sync.WaitGroup
		partsU = make([]float64, NP)
		partsV = make([]float64, NP)
		partsP = make([]float64, NP)
		partsD = make([]float64, NP)
	)
	c.PrintInitialization()
	var (
		itr   int
		state State
		rsd   Residual
	)
	start := time.Now()
	for state == Continue {
		itr++
		for np := 0; np < NP; np++ {
			wg.Add(1)
			go func(np int) {
				defer wg.Done()
				kmin, kmax := c.Partitions.GetBucketRange(np)
				ulo, uhi := bandRows(kmin, kmax, N)
				c.UpdateU(fs, ulo, uhi)
				vlo, vhi := bandRows(kmin, kmax, N-1)
				c.UpdateV(fs, vlo, vhi)
			}(np)
		}
		wg.Wait()
		c.ApplyVelocityBC(fs.UN, fs.VN, 0, true, true)
		for np := 0; np < NP; np++ {
			wg.Add(1)
			go func(np int) {
				defer wg.Done()
				kmin, kmax := c.Partitions.GetBucketRange(np)
				plo, phi := bandRows(kmin, kmax, N)
				c.UpdateP(fs, plo, phi)
			}(np)
		}
		wg.Wait()
		c.ApplyPressureBC(fs.PN, 0, true, true)
		for np := 0; np < NP; np++ {
			wg.Add(1)
			go func(np int) {
				defer wg.Done()
				kmin, kmax := c.Partitions.GetBucketRange(np)
				rlo, rhi := bandRows(kmin, kmax, N-1)
				s := c.residualPartial(fs, rlo, rhi)
				partsU[np], partsV[np], partsP[np], partsD[np] = s.U, s.V, s.P, s.D
			}(np)
		}
		wg.Wait()
		rsd = c.FinalizeResidual(residualSums{
			U: floats.Sum(partsU),
			V: floats.Sum(partsV),
			P: floats.Sum(partsP),
			D: floats.Sum(partsD),
		})
		c.logResidual(itr, rsd)
		fs.Swap()
		state = c.Monitor.Decide(itr, rsd)
		if c.Verbose && (itr%c.PrintStep == 0 || state != Continue) {
			c.PrintUpdate(itr, rsd)
		}
	}
	res = Result{
		State:      state,
		Iterations: itr,
		Residual:   rsd,
		Elapsed:    time.Since(start),
	}
	c.PrintFinal(res)
	return
}

func (c *Cavity) logResidual(itr int, rsd Residual) {
	if c.LogWriter == nil {
		return
	}
	fmt.Fprintf(c.LogWriter, "%d \t %.8f \t %.8f \t %.8f \t %.8f \t %.8f\n",
		itr, rsd.ErrTot, rsd.ErrU, rsd.ErrV, rsd.ErrP, rsd.ErrD)
}

func (c *Cavity) PrintInitialization() {
	if !c.Verbose {
		return
	}
	p := c.Params
	fmt.Printf("Lid-Driven Cavity, artificial compressibility method\n")
	fmt.Printf("Re = %v, grid %dx%d, CFL = %.2f, c2 = %.2f\n", p.Re, p.N, p.N, p.CFL, p.C2)
	fmt.Printf("Using %d go routines in parallel\n", c.ParallelDegree)
	fmt.Printf("    iter    err_tot      err_u      err_v      err_p      err_d\n")
}

func (c *Cavity) PrintUpdate(itr int, rsd Residual) {
	fmt.Printf("%8d%11.4e%11.4e%11.4e%11.4e%11.4e\n",
		itr, rsd.ErrTot, rsd.ErrU, rsd.ErrV, rsd.ErrP, rsd.ErrD)
}

func (c *Cavity) PrintFinal(res Result) {
	if !c.Verbose {
		return
	}
	switch res.State {
	case Converged:
		fmt.Printf("Converged after %d iterations\n", res.Iterations)
	case Diverged:
		fmt.Printf("Solution Diverged after %d iterations!\n", res.Iterations)
	case MaxIterationsExceeded:
		fmt.Printf("Maximum number of iterations, %d, exceeded\n", res.Iterations)
	}
	nodes := c.Params.N * c.Params.N
	rate := float64(res.Elapsed.Microseconds()) / (float64(nodes) * float64(res.Iterations))
	fmt.Printf("\nRate of execution = %8.5f us/(node*iteration) over %d iterations\n",
		rate, res.Iterations)
}
