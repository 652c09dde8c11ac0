// Command qsearch synthesizes an approximate circuit for a target
// unitary described by a YAML job file.
//
// Usage:
//
//	qsearch synthesize -c job.yaml [--threshold 1e-10] [--max-depth -1]
//	                   [--beams 0] [--solver leastsquares] [--seed 0] [-v]
//
// The job file carries the target matrix as rows of [re, im] pairs plus
// any of the flag values; flags override the file.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/qsearch/pkg/circuits"
	"github.com/gitrdm/qsearch/pkg/compiler"
	"github.com/gitrdm/qsearch/pkg/gatesets"
	"github.com/gitrdm/qsearch/pkg/solvers"
	"github.com/gitrdm/qsearch/pkg/squaremat"
)

const version = "0.1.0"

// job is the YAML synthesis description.
type job struct {
	// Target is the unitary as rows of [re, im] element pairs.
	Target [][][2]float64 `yaml:"target"`

	GateSet   string  `yaml:"gateset"`
	Threshold float64 `yaml:"threshold"`
	MaxDepth  *int    `yaml:"max_depth"`
	Beams     int     `yaml:"beams"`
	Solver    string  `yaml:"solver"`
	Seed      int64   `yaml:"seed"`
}

func loadJob(path string) (*job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	j := &job{
		GateSet:   "linear-cnot",
		Threshold: 1e-10,
		Solver:    "leastsquares",
	}
	if err := yaml.Unmarshal(raw, j); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	return j, nil
}

func (j *job) matrix() (*squaremat.Matrix, error) {
	n := len(j.Target)
	if n == 0 {
		return nil, fmt.Errorf("job has no target matrix")
	}
	data := make([]complex128, 0, n*n)
	for i, row := range j.Target {
		if len(row) != n {
			return nil, fmt.Errorf("target row %d has %d elements, want %d", i, len(row), n)
		}
		for _, e := range row {
			data = append(data, complex(e[0], e[1]))
		}
	}
	return squaremat.New(data, n), nil
}

func (j *job) gateSet() (gatesets.GateSet, error) {
	switch j.GateSet {
	case "linear-cnot", "":
		return gatesets.NewLinearCNOT(), nil
	case "linear-qutrit":
		return gatesets.NewLinearQutrit(), nil
	default:
		return nil, fmt.Errorf("unknown gate set %q", j.GateSet)
	}
}

func (j *job) solverFactory() (compiler.SolverFactory, error) {
	switch j.Solver {
	case "leastsquares", "":
		return func(seed int64) solvers.Solver {
			return solvers.NewLeastSquares(1e-6, 1e-10, seed)
		}, nil
	case "bfgs":
		return func(seed int64) solvers.Solver {
			return solvers.NewBFGS(seed)
		}, nil
	default:
		return nil, fmt.Errorf("unknown solver %q", j.Solver)
	}
}

// describe renders a gate tree as a one-line structure summary.
func describe(g circuits.Gate) string {
	switch t := g.(type) {
	case circuits.Identity:
		return "I"
	case circuits.ConstantUnitary:
		return fmt.Sprintf("U(const:%d)", t.Index)
	case circuits.CNOT:
		return "CNOT"
	case circuits.U1:
		return "U1"
	case circuits.U2:
		return "U2"
	case circuits.U3:
		return "U3"
	case circuits.X:
		return "Rx"
	case circuits.Y:
		return "Ry"
	case circuits.Z:
		return "Rz"
	case circuits.RXX:
		return "Rxx"
	case circuits.RYY:
		return "Ryy"
	case circuits.RZZ:
		return "Rzz"
	case circuits.XZXZ:
		return "XZXZ"
	case circuits.ZXZXZ:
		return "ZXZXZ"
	case circuits.SingleQutrit:
		return "Qutrit"
	case circuits.Kronecker:
		s := "Kron("
		for i, sub := range t.Substeps {
			if i > 0 {
				s += ", "
			}
			s += describe(sub)
		}
		return s + ")"
	case circuits.Product:
		s := "Prod("
		for i, sub := range t.Substeps {
			if i > 0 {
				s += ", "
			}
			s += describe(sub)
		}
		return s + ")"
	default:
		return fmt.Sprintf("%T", g)
	}
}

func main() {
	var (
		jobPath   string
		threshold float64
		maxDepth  int
		beams     int
		solver    string
		seed      int64
		verbose   bool
		quiet     bool
	)

	root := &cobra.Command{
		Use:           "qsearch",
		Short:         "Approximate quantum circuit synthesis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	synth := &cobra.Command{
		Use:   "synthesize",
		Short: "Synthesize a circuit for a target unitary",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			if quiet {
				level = zerolog.ErrorLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()

			j, err := loadJob(jobPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				j.Threshold = threshold
			}
			if cmd.Flags().Changed("max-depth") {
				j.MaxDepth = &maxDepth
			}
			if cmd.Flags().Changed("beams") {
				j.Beams = beams
			}
			if cmd.Flags().Changed("solver") {
				j.Solver = solver
			}
			if cmd.Flags().Changed("seed") {
				j.Seed = seed
			}

			u, err := j.matrix()
			if err != nil {
				return err
			}
			gs, err := j.gateSet()
			if err != nil {
				return err
			}
			factory, err := j.solverFactory()
			if err != nil {
				return err
			}

			sc := compiler.NewSearchCompiler(j.Threshold, gs)
			sc.Beams = j.Beams
			sc.Seed = j.Seed
			sc.Logger = logger
			sc.NewSolver = factory

			depth := -1
			if j.MaxDepth != nil {
				depth = *j.MaxDepth
			}
			result, err := sc.Compile(u, depth)
			if err != nil {
				return err
			}

			fmt.Printf("circuit:  %s\n", describe(result.Circuit))
			fmt.Printf("depth:    %d\n", result.Depth)
			fmt.Printf("distance: %e\n", result.Distance)
			fmt.Printf("params:   %v\n", result.Params)
			return nil
		},
	}
	synth.Flags().StringVarP(&jobPath, "config", "c", "", "path to the YAML job file")
	synth.Flags().Float64Var(&threshold, "threshold", 1e-10, "squared-distance acceptance threshold")
	synth.Flags().IntVar(&maxDepth, "max-depth", -1, "maximum search depth (-1 for unbounded)")
	synth.Flags().IntVar(&beams, "beams", 0, "frontier nodes expanded per step (0 for auto)")
	synth.Flags().StringVar(&solver, "solver", "leastsquares", "inner solver: leastsquares or bfgs")
	synth.Flags().Int64Var(&seed, "seed", 0, "RNG seed for initial parameter sampling")
	synth.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	synth.Flags().BoolVar(&quiet, "quiet", false, "log errors only")
	_ = synth.MarkFlagRequired("config")

	root.AddCommand(synth)
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the qsearch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
