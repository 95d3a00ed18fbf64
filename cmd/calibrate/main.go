// Package main fits gesture thresholds to a recorded landmark session so
// the recorded motion sweeps diffusion evenly across [0,1].
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/gesture"
)

// minSamples is the fewest frames a gesture needs before it is fitted.
const minSamples = 10

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	sessionPath := flag.String("session", "", "Landmark session CSV to fit")
	maxEvals := flag.Int("max-evals", 400, "Maximum number of evaluations per gesture")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *sessionPath == "" || *outputDir == "" {
		log.Fatal("--session and --output are required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	session, err := gesture.LoadSession(*sessionPath)
	if err != nil {
		log.Fatalf("failed to load session: %v", err)
	}
	samples := CollectSamples(session)
	fmt.Printf("Session: %d frames, %d one-hand, %d two-hand\n", len(session), len(samples.Pinch), len(samples.Spread))

	logPath := filepath.Join(*outputDir, "calibrate_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()
	logWriter.Write([]string{"gesture", "eval", "fitness", "offset", "range"})

	fit := func(name string, sorted []float64, start config.ThresholdConfig) config.ThresholdConfig {
		if len(sorted) < minSamples {
			fmt.Printf("%s: %d samples, keeping %.3f/%.3f\n", name, len(sorted), start.Offset, start.Range)
			return start
		}
		best := fitThreshold(sorted, gesture.Threshold{Offset: start.Offset, Range: start.Range}, *maxEvals,
			func(eval int, fitness float64, t gesture.Threshold) {
				logWriter.Write([]string{
					name,
					strconv.Itoa(eval),
					fmt.Sprintf("%.6f", fitness),
					fmt.Sprintf("%.6f", t.Offset),
					fmt.Sprintf("%.6f", t.Range),
				})
			})
		fmt.Printf("%s: offset %.4f range %.4f (fitness %.5f)\n", name, best.Offset, best.Range, Fitness(sorted, best))
		return config.ThresholdConfig{Offset: best.Offset, Range: best.Range}
	}

	cfg.Gesture.Pinch = fit("pinch", samples.Pinch, cfg.Gesture.Pinch)
	cfg.Gesture.Spread = fit("spread", samples.Spread, cfg.Gesture.Spread)

	configOutPath := filepath.Join(*outputDir, "calibrated_config.yaml")
	if err := cfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write config: %v", err)
	} else {
		fmt.Printf("\nCalibrated config saved to: %s\n", configOutPath)
	}
}

// fitThreshold runs CMA-ES over the normalized (offset, range) plane and
// returns the best threshold seen. onEval is called for every evaluation.
func fitThreshold(sorted []float64, start gesture.Threshold, maxEvals int, onEval func(int, float64, gesture.Threshold)) gesture.Threshold {
	best := start
	bestFitness := Fitness(sorted, start)
	evals := 0

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			t := Denormalize(x)
			fitness := Fitness(sorted, t)
			evals++
			if fitness < bestFitness {
				bestFitness = fitness
				best = t
			}
			if onEval != nil {
				onEval(evals, fitness, t)
			}
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.2,
		Population:   8,
	}

	if _, err := optimize.Minimize(problem, Normalize(start), settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}
	return best
}
