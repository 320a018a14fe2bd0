package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"gopkg.in/yaml.v3"

	"github.com/i5heu/GoRingKit/internal/testbench"
	"github.com/i5heu/GoRingKit/pkg/growring"
	"github.com/i5heu/GoRingKit/pkg/heapring"
	"github.com/i5heu/GoRingKit/pkg/inlinering"
	"github.com/i5heu/GoRingKit/pkg/leanring"
	"github.com/i5heu/GoRingKit/pkg/ring"
)

// BenchmarkResult holds results for one test run.
type BenchmarkResult struct {
	Implementation string  `json:"implementation"`
	Capacity       int     `json:"capacity"`
	Workload       string  `json:"workload"`
	NumOps         int64   `json:"num_ops"`
	TestDuration   string  `json:"test_duration"`       // e.g. "2s"
	ActualElapsed  string  `json:"actual_elapsed"`      // measured time
	Throughput     float64 `json:"throughput_ops_sec"`  // based on completed ops
	Timestamp      int64   `json:"timestamp"`
	GoVersion      string  `json:"go_version"`
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete bench session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// GridConfig is the optional YAML workload grid. Any omitted field keeps its
// default.
type GridConfig struct {
	Capacities []int    `yaml:"capacities"`
	Workloads  []string `yaml:"workloads"`
	Iterations int      `yaml:"iterations"`
	Duration   string   `yaml:"duration"`
}

// Implementation represents one buffer variant. newBuffer may return nil for
// a capacity the variant cannot provide (the inline variant has its
// capacities baked in at compile time).
type Implementation struct {
	name        string
	pkgName     string
	description string
	features    []string
	newBuffer   func(capacity int) ring.Buffer[int]
}

// getImplementations enumerates the buffer variants under test.
func getImplementations() []Implementation {
	return []Implementation{
		{
			name:        "HeapRing",
			pkgName:     "heapring",
			description: "Fixed-capacity heap-backed buffer, power-of-two capacity, bitmask slot mapping.",
			features:    []string{"Fixed", "Bitmask"},
			newBuffer: func(capacity int) ring.Buffer[int] {
				return heapring.New[int](capacity)
			},
		},
		{
			name:        "HeapRingArbitrary",
			pkgName:     "heapring",
			description: "Fixed-capacity heap-backed buffer, arbitrary capacity, modulo slot mapping.",
			features:    []string{"Fixed", "Modulo"},
			newBuffer: func(capacity int) ring.Buffer[int] {
				// Knock the capacity off the power of two so the modulo
				// path is what actually gets measured.
				return heapring.NewArbitrary[int](capacity - 1)
			},
		},
		{
			name:        "InlineRing",
			pkgName:     "inlinering",
			description: "Fixed-capacity buffer with inline array storage, capacity fixed at compile time.",
			features:    []string{"Fixed", "Inline"},
			newBuffer: func(capacity int) ring.Buffer[int] {
				switch capacity {
				case 64:
					return inlinering.New[[64]int, int]()
				case 1024:
					return inlinering.New[[1024]int, int]()
				case 65536:
					return inlinering.New[[65536]int, int]()
				}
				return nil
			},
		},
		{
			name:        "LeanRing",
			pkgName:     "leanring",
			description: "Arbitrary-capacity buffer with conditional subtraction instead of modulo.",
			features:    []string{"Fixed", "Modulo-Free"},
			newBuffer: func(capacity int) ring.Buffer[int] {
				return leanring.New[int](capacity - 1)
			},
		},
		{
			name:        "GrowRing",
			pkgName:     "growring",
			description: "Growable wrapper over a dynamic deque; push grows instead of evicting.",
			features:    []string{"Growable"},
			newBuffer: func(capacity int) ring.Buffer[int] {
				// Capacity is advisory here; scan still walks whatever Fill
				// produced and mixed stays near empty.
				return growring.New[int]()
			},
		},
	}
}

// outputMarkdownTable loads the JSON file and outputs a Markdown table.
func outputMarkdownTable(jsonFile string) {
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON file %q: %v\n", jsonFile, err)
		os.Exit(1)
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshalling JSON: %v\n", err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "No sessions found in JSON.")
		os.Exit(1)
	}
	// Use the last session for the table.
	lastSession := sessions[len(sessions)-1]
	implMetaMap := make(map[string]Implementation)
	for _, impl := range getImplementations() {
		implMetaMap[impl.name] = impl
	}
	type tableRow struct {
		implementation string
		pkgName        string
		features       string
		workload       string
		throughput     float64
	}
	var rows []tableRow
	for _, bench := range lastSession.Benchmarks {
		meta := implMetaMap[bench.Implementation]
		rows = append(rows, tableRow{
			implementation: bench.Implementation,
			pkgName:        meta.pkgName,
			features:       strings.Join(meta.features, ", "),
			workload:       bench.Workload,
			throughput:     bench.Throughput,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].throughput > rows[j].throughput
	})
	fmt.Println("## Last Session Benchmark Summary")
	fmt.Println()
	fmt.Println("| Implementation      | Package      | Features              | Workload | Throughput (ops/sec) |")
	fmt.Println("|---------------------|--------------|-----------------------|----------|----------------------|")
	for _, r := range rows {
		fmt.Printf("| %-19s | %-12s | %-21s | %-8s | %20.0f |\n",
			r.implementation, r.pkgName, r.features, r.workload, r.throughput)
	}
}

func loadGrid(path string) GridConfig {
	grid := GridConfig{
		Capacities: []int{64, 1024, 65536},
		Workloads:  []string{string(testbench.WorkloadPush), string(testbench.WorkloadMixed), string(testbench.WorkloadScan)},
		Iterations: 5,
		Duration:   "2s",
	}
	if path == "" {
		return grid
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config %q: %v\n", path, err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &grid); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config %q: %v\n", path, err)
		os.Exit(1)
	}
	return grid
}

func main() {
	// Flags.
	configPath := flag.String("config", "", "Path to a YAML workload grid (capacities, workloads, iterations, duration)")
	jsonExport := flag.Bool("json", false, "Export results as JSON to bench-results.json")
	markdownTable := flag.Bool("markdown-table", false, "Output markdown table from bench-results.json and exit")
	jsonFileForMarkdown := flag.String("jsonfile", "bench-results.json", "Path to JSON file for markdown table")
	progressFlag := flag.Bool("progress", false, "Display a progress bar with ETA")
	flag.Parse()

	if *markdownTable {
		outputMarkdownTable(*jsonFileForMarkdown)
		return
	}

	grid := loadGrid(*configPath)
	testDuration, err := time.ParseDuration(grid.Duration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid duration %q: %v\n", grid.Duration, err)
		os.Exit(1)
	}

	impls := getImplementations()
	totalTests := len(grid.Capacities) * len(grid.Workloads) * grid.Iterations * len(impls)

	var bar *progressbar.ProgressBar
	if *progressFlag {
		bar = progressbar.NewOptions(totalTests,
			progressbar.OptionSetDescription("bench"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetPredictTime(true),
		)
	}

	var results []BenchmarkResult

	for _, capacity := range grid.Capacities {
		fmt.Printf("\n=============================\n")
		fmt.Printf("capacity = %d\n", capacity)
		fmt.Printf("=============================\n")

		for _, workload := range grid.Workloads {
			fmt.Printf("  [Workload: %s]\n", workload)
			for iteration := 1; iteration <= grid.Iterations; iteration++ {
				for _, impl := range impls {
					buf := impl.newBuffer(capacity)
					if buf == nil {
						if bar != nil {
							bar.Add(1)
						}
						continue
					}
					runtime.GC()

					ops, actualTime := testbench.RunTimed(
						buf,
						testbench.Workload(workload),
						testDuration,
						func(i int) int { return i },
					)
					throughput := float64(ops) / actualTime.Seconds()

					fmt.Printf("    %s => ops=%d, throughput=%.0f ops/s, took=%v\n",
						impl.name, ops, throughput, actualTime)

					results = append(results, BenchmarkResult{
						Implementation: impl.name,
						Capacity:       capacity,
						Workload:       workload,
						NumOps:         ops,
						TestDuration:   testDuration.String(),
						ActualElapsed:  actualTime.String(),
						Throughput:     throughput,
						Timestamp:      time.Now().Unix(),
						GoVersion:      runtime.Version(),
					})
					if bar != nil {
						bar.Add(1)
					}
				}
			}
		}
	}

	if bar != nil {
		fmt.Fprintln(os.Stderr)
	}

	// If JSON export is requested, append the new session to bench-results.json.
	if *jsonExport {
		const filename = "bench-results.json"
		var previous []FullReport
		if _, err := os.Stat(filename); err == nil {
			data, err := os.ReadFile(filename)
			if err == nil && len(data) > 0 {
				json.Unmarshal(data, &previous)
			}
		}
		session := FullReport{
			SessionTime: time.Now().Format(time.RFC3339),
			SystemInfo:  gatherSystemInfo(),
			Benchmarks:  results,
		}
		updated := append(previous, session)
		data, err := json.MarshalIndent(updated, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error marshalling JSON:", err)
			os.Exit(1)
		}
		if err = os.WriteFile(filename, data, 0644); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing JSON file:", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote results to %s\n", filename)
	}
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() SystemInfo {
	var cpuModel string
	var cpuSpeed float64
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuModel = infos[0].ModelName
		cpuSpeed = infos[0].Mhz
	}

	var totalMemory uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMemory = vm.Total
	}

	return SystemInfo{
		NumCPU:      runtime.NumCPU(),
		CPUModel:    cpuModel,
		CPUSpeedMHz: cpuSpeed,
		GOARCH:      runtime.GOARCH,
		TotalMemory: totalMemory,
	}
}
