package main

import (
	"fmt"
	"os"
	"path/filepath"

	"constraintlab/pkg/corpussync"
)

const cliToolVersion = "corpussync 0.0.0-dev"

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
	case "fetch":
		return runFetch(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func runFetch(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "corpussync fetch requires a git URL and a rev/tag/branch")
		return 1
	}
	url := args[0]
	revisionArg := args[1]

	cacheDir, err := resolveCacheDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve cache directory: %v\n", err)
		return 1
	}

	dir, commit, err := corpussync.Sync(cacheDir, corpussync.Source{URL: url, Rev: revisionArg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sync failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stdout, "synced %s@%s\n", url, commit)
	fmt.Fprintf(os.Stdout, "checkout: %s\n", dir)
	return 0
}

func resolveCacheDir() (string, error) {
	if dir := os.Getenv("CORPUSSYNC_HOME"); dir != "" {
		return filepath.Abs(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".constraintlab", "corpus"), nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  corpussync fetch <git-url> <rev>")
	fmt.Fprintln(os.Stderr, "  corpussync version")
}
