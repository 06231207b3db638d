package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/heliofit/heliofit/internal/config"
	"github.com/heliofit/heliofit/internal/optimization"
	"github.com/heliofit/heliofit/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "optimize":
		cmdOptimize(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	case "sensitivity":
		cmdSensitivity(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  heliofit optimize --scenario examples/madrid.yaml --method golden_section [--plot out.png]")
	fmt.Println("  heliofit compare --scenario examples/madrid.yaml")
	fmt.Println("  heliofit sensitivity --scenario examples/madrid.yaml --window 5 --samples 21 [--plot out.png]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - the scenario YAML describes the panel and the search interval")
	fmt.Println("  - methods: brute_force, ternary_search, golden_section, gradient_ascent")
}

func cmdOptimize(args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	scenarioPath := fs.String("scenario", "", "Path to YAML scenario")
	method := fs.String("method", "golden_section", "Search method")
	plotPath := fs.String("plot", "", "Optional: write a convergence PNG here")
	_ = fs.Parse(args)

	scenario, bounds := loadScenario(fs, *scenarioPath)
	f := buildObjective(scenario)

	searcher, err := buildSearcher(*method, scenario)
	if err != nil {
		fatal(err)
	}

	res, err := searcher.Search(f, bounds)
	if err != nil {
		var nce *optimization.NonConvergenceError
		if !errors.As(err, &nce) || res == nil {
			fatal(err)
		}
		fmt.Printf("warning: %v\n", nce)
	}

	fmt.Printf("method:        %s\n", res.Method)
	fmt.Printf("optimal tilt:  %.2f deg\n", res.OptimalAngleDeg)
	fmt.Printf("energy:        %.2f %s\n", res.OptimalEnergy, energyUnit(scenario))
	fmt.Printf("evaluations:   %d\n", res.Evaluations)

	if *plotPath != "" {
		png, err := report.ConvergencePNG(res)
		if err != nil {
			fatal(err)
		}
		writeFile(*plotPath, png)
		fmt.Printf("wrote %s\n", *plotPath)
	}
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	scenarioPath := fs.String("scenario", "", "Path to YAML scenario")
	_ = fs.Parse(args)

	scenario, bounds := loadScenario(fs, *scenarioPath)
	f := buildObjective(scenario)

	cmp, err := optimization.CompareMethods(f, bounds, optimization.CompareOptions{
		BruteForceStepDeg: scenario.Search.StepDeg,
		ToleranceDeg:      scenario.Search.ToleranceDeg,
		LearningRate:      scenario.Search.LearningRate,
		GradientTolerance: scenario.Search.GradientTolerance,
		MaxIterations:     scenario.Search.MaxIterations,
	})
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-16s %-12s %-12s %-12s %-10s\n", "method", "tilt(deg)", "energy", "deviation", "evals")
	for _, rank := range cmp.Ranking {
		res := cmp.Results[rank.Method]
		note := ""
		if !rank.Converged {
			note = " (did not converge)"
		}
		fmt.Printf("%-16s %-12.2f %-12.2f %-12.4f %-10d%s\n",
			rank.Method,
			res.OptimalAngleDeg,
			res.OptimalEnergy,
			rank.AngleDeviationDeg,
			rank.Evaluations,
			note,
		)
	}
}

func cmdSensitivity(args []string) {
	fs := flag.NewFlagSet("sensitivity", flag.ExitOnError)
	scenarioPath := fs.String("scenario", "", "Path to YAML scenario")
	window := fs.Float64("window", 5.0, "Half-width of the sweep around the optimum, in degrees")
	samples := fs.Int("samples", 21, "Number of sample angles")
	plotPath := fs.String("plot", "", "Optional: write a sensitivity PNG here")
	_ = fs.Parse(args)

	scenario, bounds := loadScenario(fs, *scenarioPath)
	f := buildObjective(scenario)

	// Locate the optimum first, then sweep around it.
	res, err := optimization.GoldenSection{ToleranceDeg: toleranceOrDefault(scenario)}.Search(f, bounds)
	if err != nil {
		fatal(err)
	}

	records, err := optimization.SensitivityAnalysis(f, res.OptimalAngleDeg, *window, *samples)
	if err != nil {
		fatal(err)
	}
	losses := optimization.LossPercent(records, res.OptimalEnergy)

	fmt.Printf("optimum: %.2f deg, %.2f %s\n\n", res.OptimalAngleDeg, res.OptimalEnergy, energyUnit(scenario))
	fmt.Printf("%-12s %-14s %-10s\n", "tilt(deg)", "energy", "loss(%)")
	for i, rec := range records {
		fmt.Printf("%-12.2f %-14.2f %-10.2f\n", rec.AngleDeg, rec.Energy, losses[i])
	}

	if *plotPath != "" {
		png, err := report.SensitivityPNG(records, res.OptimalAngleDeg)
		if err != nil {
			fatal(err)
		}
		writeFile(*plotPath, png)
		fmt.Printf("\nwrote %s\n", *plotPath)
	}
}

func loadScenario(fs *flag.FlagSet, path string) (*config.Scenario, optimization.Bounds) {
	if path == "" {
		fmt.Println("--scenario is required")
		fs.Usage()
		os.Exit(2)
	}
	scenario, err := config.LoadScenario(path)
	if err != nil {
		fatal(err)
	}
	bounds := optimization.Bounds{
		MinDeg: scenario.Search.MinAngleDeg,
		MaxDeg: scenario.Search.MaxAngleDeg,
	}
	if err := bounds.Validate(); err != nil {
		fatal(err)
	}
	return scenario, bounds
}

func buildObjective(scenario *config.Scenario) optimization.Objective {
	m, err := scenario.Model()
	if err != nil {
		fatal(err)
	}
	if scenario.Search.Mode == "daily" {
		return optimization.DailyObjective(m, scenario.Search.DayOfYear)
	}
	return optimization.AnnualObjective(m)
}

func buildSearcher(method string, scenario *config.Scenario) (optimization.Searcher, error) {
	s := scenario.Search
	switch method {
	case "brute_force":
		step := s.StepDeg
		if step == 0 {
			step = 1.0
		}
		return optimization.BruteForce{StepDeg: step}, nil
	case "ternary_search":
		return optimization.Ternary{ToleranceDeg: toleranceOrDefault(scenario)}, nil
	case "golden_section":
		return optimization.GoldenSection{ToleranceDeg: toleranceOrDefault(scenario)}, nil
	case "gradient_ascent":
		g := optimization.GradientAscent{
			LearningRate:      s.LearningRate,
			GradientTolerance: s.GradientTolerance,
			MaxIterations:     s.MaxIterations,
			InitialAngleDeg:   (s.MinAngleDeg + s.MaxAngleDeg) / 2,
		}
		if g.LearningRate == 0 {
			g.LearningRate = 0.1
		}
		if g.GradientTolerance == 0 {
			g.GradientTolerance = 0.01
		}
		if g.MaxIterations == 0 {
			g.MaxIterations = 1000
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unsupported method: %q", method)
	}
}

func toleranceOrDefault(scenario *config.Scenario) float64 {
	if scenario.Search.ToleranceDeg > 0 {
		return scenario.Search.ToleranceDeg
	}
	return 0.01
}

func energyUnit(scenario *config.Scenario) string {
	if scenario.Search.Mode == "daily" {
		return "Wh"
	}
	return "kWh"
}

func writeFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
