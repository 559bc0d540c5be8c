package main

import (
	"fmt"
	"os"
	"strings"

	"constraintlab/pkg/config"
	"constraintlab/pkg/kernel"
	"constraintlab/pkg/solver"
	"constraintlab/pkg/statsstore"
)

const cliToolVersion = "solvecheck 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runRun(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func runRun(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "solvecheck run requires a type-universe config path")
		return 1
	}
	configPath := args[0]

	doc, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	k, conformances, members := doc.Build()

	sf := &kernel.Simplify{K: k, Conformances: conformances, Members: members}

	var tracer solver.Tracer
	if os.Getenv("SOLVECHECK_VERBOSE") != "" {
		tracer = solver.NewVerboseTracer(os.Stderr)
	}
	sys := solver.New(k, sf.Func(), tracer)

	protocol := "IntegerLiteral"
	if len(args) > 1 {
		protocol = args[1]
	}
	v := sys.NewVar(false)
	sys.AddConstraint(solver.Constraint{Kind: solver.KindConformsTo, First: kernel.VarRef{ID: v}, Protocol: protocol})

	solutions, err := sys.Solve(solver.Allow)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no solution: %v\n", err)
		return 1
	}

	for _, sol := range solutions {
		ty, ok := sol.TypeOf(v)
		if !ok {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s -> %s (score %s)\n", protocol, ty.String(), sol.Score)
	}

	if statsPath := os.Getenv("SOLVECHECK_STATS_DB"); statsPath != "" {
		if err := recordStats(statsPath, solutions); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record stats: %v\n", err)
		}
	}

	return 0
}

func recordStats(path string, solutions []solver.Solution) error {
	store, err := statsstore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	for _, sol := range solutions {
		if err := store.Record(sol.Stats); err != nil {
			return err
		}
	}
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  solvecheck run <config.yaml> [protocol]")
	fmt.Fprintln(os.Stderr, "  solvecheck version")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Environment:")
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
  SOLVECHECK_VERBOSE     if set, trace every search event to stderr
  SOLVECHECK_STATS_DB    if set, persist search stats to this bbolt file
`))
}
