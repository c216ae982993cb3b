/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/acsolve/cavity/InputParameters"
	"github.com/acsolve/cavity/cavity"
)

type ModelSolve struct {
	Re             float64
	GridSize       int
	ParallelDegree int
	Partitions     int
	ICFile         string
	ResidualFile   string
	FieldFile      string
	Profile        bool
}

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve [Re]",
	Short: "Run the lid-driven cavity case to steady state",
	Long: `Run the lid-driven cavity case to steady state

The single optional argument is the Reynolds number (default 100). The
CFL number and artificial sound speed are chosen from the Reynolds regime
unless overridden in the YAML case file.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ms  = &ModelSolve{}
		)
		ms.Re, _ = cmd.Flags().GetFloat64("re")
		if len(args) == 1 {
			if ms.Re, err = strconv.ParseFloat(args[0], 64); err != nil {
				fmt.Printf("error: bad Reynolds number %q\n", args[0])
				os.Exit(1)
			}
		}
		ms.GridSize, _ = cmd.Flags().GetInt("gridSize")
		ms.ParallelDegree, _ = cmd.Flags().GetInt("procs")
		ms.Partitions, _ = cmd.Flags().GetInt("partitions")
		ms.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		ms.ResidualFile, _ = cmd.Flags().GetString("residualFile")
		ms.FieldFile, _ = cmd.Flags().GetString("fieldFile")
		ms.Profile, _ = cmd.Flags().GetBool("profile")
		var prof interface{ Stop() }
		if ms.Profile {
			prof = profile.Start()
		}
		res := RunSolve(ms, processInput(ms))
		if prof != nil {
			prof.Stop()
		}
		// success (0) on convergence, failure on divergence or hitting the cap
		if res.State != cavity.Converged {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().Float64P("re", "r", 100, "Reynolds number")
	solveCmd.Flags().IntP("gridSize", "n", cavity.DefaultN, "grid points per direction")
	solveCmd.Flags().IntP("procs", "p", 0, "number of goroutines for the row-sharded loops, 0 = all CPUs")
	solveCmd.Flags().IntP("partitions", "w", 1, "number of domain partitions (distributed variant when > 1)")
	solveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for case parameters like:\n\t- Re\n\t- CFL\n\t- GridSize")
	solveCmd.Flags().StringP("residualFile", "o", "residual.dat", "residual history output file")
	solveCmd.Flags().StringP("fieldFile", "f", "fields.dat", "cell-centered field output file")
	solveCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

func processInput(ms *ModelSolve) (ip *InputParameters.CavityParameters) {
	var (
		err error
	)
	ip = &InputParameters.CavityParameters{}
	if len(ms.ICFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(ms.ICFile); err != nil {
			panic(err)
		}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
		ip.Print()
	}
	if ip.Re != 0 {
		ms.Re = ip.Re
	}
	if ip.GridSize != 0 {
		ms.GridSize = ip.GridSize
	}
	if ip.ParallelDegree != 0 {
		ms.ParallelDegree = ip.ParallelDegree
	}
	if ip.Partitions != 0 {
		ms.Partitions = ip.Partitions
	}
	return
}

func RunSolve(ms *ModelSolve, ip *InputParameters.CavityParameters) (res cavity.Result) {
	fmt.Printf("Re number is set to %d\n", int(ms.Re))
	params := cavity.NewParameters(ms.Re, ms.GridSize)
	if ip.CFL != 0 {
		params.CFL = ip.CFL
	}
	if ip.C2 != 0 {
		params.C2 = ip.C2
	}
	if ip.LidVelocity != 0 {
		params.LidVelocity = ip.LidVelocity
	}
	if ip.Tolerance != 0 {
		params.Tol = ip.Tolerance
	}
	if ip.MaxIterations != 0 {
		params.MaxIterations = ip.MaxIterations
	}
	params.Derive()

	flog, err := os.Create(ms.ResidualFile)
	if err != nil {
		panic(err)
	}
	defer flog.Close()

	c := cavity.NewCavity(params, ms.ParallelDegree)
	c.LogWriter = flog
	c.Verbose = true

	if ms.Partitions > 1 {
		res = c.SolvePartitioned(ms.Partitions)
	} else {
		res = c.Solve()
	}

	if res.State == cavity.Converged {
		ffield, err := os.Create(ms.FieldFile)
		if err != nil {
			panic(err)
		}
		defer ffield.Close()
		if err = c.WriteFields(ffield); err != nil {
			panic(err)
		}
	}
	c.Fields.Release()
	return
}
