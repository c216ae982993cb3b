package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML case file. Zero values mean "use the
// default derived from the Reynolds number regime".
type CavityParameters struct {
	Title          string  `yaml:"Title"`
	Re             float64 `yaml:"Re"`
	GridSize       int     `yaml:"GridSize"`
	CFL            float64 `yaml:"CFL"`
	C2             float64 `yaml:"C2"`
	LidVelocity    float64 `yaml:"LidVelocity"`
	Tolerance      float64 `yaml:"Tolerance"`
	MaxIterations  int     `yaml:"MaxIterations"`
	ParallelDegree int     `yaml:"ParallelDegree"`
	Partitions     int     `yaml:"Partitions"`
}

func (ip *CavityParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *CavityParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= Re\n", ip.Re)
	fmt.Printf("[%d]\t\t\t= Grid Size\n", ip.GridSize)
	if ip.CFL != 0 {
		fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	}
	if ip.C2 != 0 {
		fmt.Printf("%8.5f\t\t= C2\n", ip.C2)
	}
	if ip.Tolerance != 0 {
		fmt.Printf("%8.1e\t\t= Tolerance\n", ip.Tolerance)
	}
	if ip.MaxIterations != 0 {
		fmt.Printf("[%d]\t\t= Max Iterations\n", ip.MaxIterations)
	}
	fmt.Printf("[%d]\t\t\t= Parallel Degree\n", ip.ParallelDegree)
	fmt.Printf("[%d]\t\t\t= Partitions\n", ip.Partitions)
}
