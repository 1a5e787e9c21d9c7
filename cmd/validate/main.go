// Command validate checks the integrity of a stored observation CSV. It
// verifies that raw values are within their declared ranges and reports rows
// whose persisted labels disagree with the labels the current thresholds
// would assign.
//
// Label drift is not automatically an error: stored labels deliberately keep
// the classification in effect at submission time. By default drift is
// reported as informational; -strict turns it into a failure.
//
// Usage:
//
//	go run ./cmd/validate -csv data/observations.csv [-strict]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/park-conditions/internal/domain"
	"github.com/couchcryptid/park-conditions/internal/store"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the observation CSV")
	strict := flag.Bool("strict", false, "treat label drift as a failure")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *strict); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath string, strict bool) int {
	fmt.Println("=== Observation Table Validation ===")
	fmt.Println()

	table, err := store.New(csvPath, slog.Default()).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load observation table: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %d rows from %s\n", len(table), csvPath)

	phases := []*phase{
		validateRanges(table),
		validateLabels(table),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		failed := !p.passed() && (p.name != "label drift" || strict)
		status := "PASS"
		if failed {
			status = "FAIL"
			allPassed = false
		} else if !p.passed() {
			status = "INFO"
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	return 0
}

// validateRanges checks every raw column against its declared numeric range.
func validateRanges(table store.Table) *phase {
	p := &phase{name: "numeric ranges"}

	for i, obs := range table {
		row := i + 2 // 1-based, after the header
		if obs.RainfallMM < 0 || obs.RainfallMM > 1000 {
			p.errorf("row %d: Rainfall_mm %g out of range [0, 1000]", row, obs.RainfallMM)
		}
		if obs.PM25 < 0 {
			p.errorf("row %d: PM2.5 %g is negative", row, obs.PM25)
		}
		if obs.PM10 < 0 {
			p.errorf("row %d: PM10 %g is negative", row, obs.PM10)
		}
		if obs.AQI < 0 || obs.AQI > 500 {
			p.errorf("row %d: AQI %d out of range [0, 500]", row, obs.AQI)
		}
		if obs.PH < 0 || obs.PH > 14 {
			p.errorf("row %d: pH %g out of range [0, 14]", row, obs.PH)
		}
	}

	return p
}

// validateLabels re-derives every label from its raw column and reports
// disagreements with the stored value.
func validateLabels(table store.Table) *phase {
	p := &phase{name: "label drift"}

	for i, obs := range table {
		row := i + 2
		rain := domain.ClassifyRainfall(obs.RainfallMM)
		air := domain.ClassifyAirQuality(obs.AQI)
		water := domain.ClassifyRainwater(obs.PH)

		if obs.Condition != rain.Condition {
			p.errorf("row %d: Condition %q, current thresholds say %q", row, obs.Condition, rain.Condition)
		}
		if obs.LandslideRisk != rain.LandslideRisk {
			p.errorf("row %d: Landslide_Risk %q, current thresholds say %q", row, obs.LandslideRisk, rain.LandslideRisk)
		}
		if obs.AirQuality != air.AirQuality {
			p.errorf("row %d: Air_Quality %q, current thresholds say %q", row, obs.AirQuality, air.AirQuality)
		}
		if obs.VegetationAirRisk != air.VegetationAirRisk {
			p.errorf("row %d: Vegetation_Air_Risk %q, current thresholds say %q", row, obs.VegetationAirRisk, air.VegetationAirRisk)
		}
		if obs.PHLevel != water.PHLevel {
			p.errorf("row %d: pH_Level %q, current thresholds say %q", row, obs.PHLevel, water.PHLevel)
		}
		if obs.VegetationPHRisk != water.VegetationPHRisk {
			p.errorf("row %d: Vegetation_pH_Risk %q, current thresholds say %q", row, obs.VegetationPHRisk, water.VegetationPHRisk)
		}
	}

	return p
}
