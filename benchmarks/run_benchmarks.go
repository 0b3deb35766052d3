// Package main runs the hartool benchmarks and writes the results as JSON and
// Markdown.
// Run with: go run benchmarks/run_benchmarks.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BenchmarkResults holds all benchmark data
type BenchmarkResults struct {
	Timestamp   string           `json:"timestamp"`
	Environment Environment      `json:"environment"`
	Groups      map[string]Group `json:"groups"`
	Summary     Summary          `json:"summary"`
}

type Environment struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	CPU       string `json:"cpu"`
	NumCPU    int    `json:"num_cpu"`
	GoVersion string `json:"go_version"`
}

type Group struct {
	Benchmarks []Benchmark `json:"benchmarks"`
}

type Benchmark struct {
	Name        string  `json:"name"`
	NsPerOp     float64 `json:"ns_per_op"`
	OpsPerSec   float64 `json:"ops_per_sec"`
	MBPerSec    float64 `json:"mb_per_sec,omitempty"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op"`
}

// Summary picks the headline numbers for a 5000 entry capture.
type Summary struct {
	ParseMBPerSec     float64 `json:"parse_mb_per_sec"`
	IgnoreFilterNs    float64 `json:"ignore_filter_ns"`
	IncludeFilterNs   float64 `json:"include_filter_ns"`
	PrettySerializeNs float64 `json:"pretty_serialize_ns"`
}

var groups = []struct {
	name    string
	pattern string
}{
	{"parse", "BenchmarkParse"},
	{"filter", "BenchmarkFilter"},
	{"patterns", "BenchmarkPatternMatch"},
	{"serialize", "BenchmarkSerialize"},
}

const resultsDir = "benchmarks/results"

func main() {
	fmt.Println("==========================================")
	fmt.Println("   HARTOOL BENCHMARK SUITE")
	fmt.Println("==========================================")
	fmt.Println()

	results := BenchmarkResults{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Environment: Environment{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			CPU:       getCPUInfo(),
			NumCPU:    runtime.NumCPU(),
			GoVersion: runtime.Version(),
		},
		Groups: make(map[string]Group),
	}

	for _, g := range groups {
		fmt.Printf("Running %s benchmarks...\n", g.name)
		benches, err := runBenchmarks(g.pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s benchmarks: %v\n", g.name, err)
			os.Exit(1)
		}
		results.Groups[g.name] = Group{Benchmarks: benches}
	}
	results.Summary = calculateSummary(results.Groups)

	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", resultsDir, err)
		os.Exit(1)
	}

	jsonPath := filepath.Join(resultsDir, "latest.json")
	if err := writeJSON(results, jsonPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", jsonPath, err)
		os.Exit(1)
	}
	fmt.Printf("\nJSON results: %s\n", jsonPath)

	mdPath := filepath.Join(resultsDir, "LATEST.md")
	if err := os.WriteFile(mdPath, []byte(renderMarkdown(results)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", mdPath, err)
		os.Exit(1)
	}
	fmt.Printf("Markdown results: %s\n", mdPath)

	printSummary(results)
}

func getCPUInfo() string {
	if runtime.GOOS != "linux" {
		return "unknown"
	}
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return "unknown"
	}
	for line := range strings.SplitSeq(string(data), "\n") {
		if name, ok := strings.CutPrefix(line, "model name"); ok {
			if _, v, ok := strings.Cut(name, ":"); ok {
				return strings.TrimSpace(v)
			}
		}
	}
	return "unknown"
}

func runBenchmarks(pattern string) ([]Benchmark, error) {
	cmd := exec.Command("go", "test", "-run=^$", "-bench="+pattern, "-benchtime=2s", "-benchmem", "./tests/performance/...")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w\n%s", err, output)
	}
	return parseBenchmarkOutput(string(output)), nil
}

// Pattern: BenchmarkName/sub-N  iterations  ns/op  [MB/s]  B/op  allocs/op
var benchLine = regexp.MustCompile(`(Benchmark[\w/]+)-\d+\s+\d+\s+([\d.]+) ns/op(?:\s+([\d.]+) MB/s)?(?:\s+(\d+) B/op\s+(\d+) allocs/op)?`)

func parseBenchmarkOutput(output string) []Benchmark {
	var benchmarks []Benchmark
	for _, m := range benchLine.FindAllStringSubmatch(output, -1) {
		nsPerOp, _ := strconv.ParseFloat(m[2], 64)
		mbPerSec, _ := strconv.ParseFloat(m[3], 64)
		bytesPerOp, _ := strconv.ParseInt(m[4], 10, 64)
		allocsPerOp, _ := strconv.ParseInt(m[5], 10, 64)

		opsPerSec := 0.0
		if nsPerOp > 0 {
			opsPerSec = 1e9 / nsPerOp
		}
		benchmarks = append(benchmarks, Benchmark{
			Name:        m[1],
			NsPerOp:     nsPerOp,
			OpsPerSec:   opsPerSec,
			MBPerSec:    mbPerSec,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}
	return benchmarks
}

func calculateSummary(results map[string]Group) Summary {
	var s Summary
	for _, b := range results["parse"].Benchmarks {
		if strings.HasSuffix(b.Name, "/entries_10000") {
			s.ParseMBPerSec = b.MBPerSec
		}
	}
	for _, b := range results["filter"].Benchmarks {
		switch {
		case strings.HasSuffix(b.Name, "/ignore"):
			s.IgnoreFilterNs = b.NsPerOp
		case strings.HasSuffix(b.Name, "/include"):
			s.IncludeFilterNs = b.NsPerOp
		}
	}
	for _, b := range results["serialize"].Benchmarks {
		if strings.HasSuffix(b.Name, "/pretty_true") {
			s.PrettySerializeNs = b.NsPerOp
		}
	}
	return s
}

func writeJSON(results BenchmarkResults, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func renderMarkdown(results BenchmarkResults) string {
	var sb strings.Builder

	sb.WriteString("# hartool Benchmark Results\n\n")
	fmt.Fprintf(&sb, "**Generated**: %s\n\n", results.Timestamp)
	sb.WriteString("## Environment\n\n")
	fmt.Fprintf(&sb, "- **OS**: %s/%s\n", results.Environment.OS, results.Environment.Arch)
	fmt.Fprintf(&sb, "- **CPU**: %s (%d cores)\n", results.Environment.CPU, results.Environment.NumCPU)
	fmt.Fprintf(&sb, "- **Go**: %s\n\n", results.Environment.GoVersion)

	sb.WriteString("## Summary (5000 entries)\n\n")
	sb.WriteString("| Operation | Result |\n")
	sb.WriteString("|-----------|--------|\n")
	fmt.Fprintf(&sb, "| Parse (10000 entries) | %.1f MB/s |\n", results.Summary.ParseMBPerSec)
	fmt.Fprintf(&sb, "| Filter, ignore rules | %.2fms |\n", results.Summary.IgnoreFilterNs/1e6)
	fmt.Fprintf(&sb, "| Filter, include rules | %.2fms |\n", results.Summary.IncludeFilterNs/1e6)
	fmt.Fprintf(&sb, "| Pretty serialize | %.2fms |\n\n", results.Summary.PrettySerializeNs/1e6)

	names := make([]string, 0, len(results.Groups))
	for name := range results.Groups {
		names = append(names, name)
	}
	slices.Sort(names)

	title := cases.Title(language.English)
	for _, name := range names {
		fmt.Fprintf(&sb, "## %s\n\n", title.String(name))
		sb.WriteString("| Benchmark | ops/sec | ns/op | B/op | allocs/op |\n")
		sb.WriteString("|-----------|---------|-------|------|-----------|\n")
		for _, b := range results.Groups[name].Benchmarks {
			fmt.Fprintf(&sb, "| %s | %.0f | %.0f | %d | %d |\n",
				b.Name, b.OpsPerSec, b.NsPerOp, b.BytesPerOp, b.AllocsPerOp)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Reproducing\n\n")
	sb.WriteString("```bash\n")
	sb.WriteString("go run benchmarks/run_benchmarks.go\n")
	sb.WriteString("# Or a single group:\n")
	for _, g := range groups {
		fmt.Fprintf(&sb, "go test -run='^$' -bench=%s -benchmem ./tests/performance/...\n", g.pattern)
	}
	sb.WriteString("```\n")
	return sb.String()
}

func printSummary(results BenchmarkResults) {
	fmt.Println()
	fmt.Println("==========================================")
	fmt.Println("              SUMMARY")
	fmt.Println("==========================================")
	fmt.Printf("Parse:     %.1f MB/s\n", results.Summary.ParseMBPerSec)
	fmt.Printf("Filter:    %.2fms ignore, %.2fms include (5000 entries)\n",
		results.Summary.IgnoreFilterNs/1e6, results.Summary.IncludeFilterNs/1e6)
	fmt.Printf("Serialize: %.2fms pretty (5000 entries)\n", results.Summary.PrettySerializeNs/1e6)
	fmt.Println("==========================================")
}
