// Command seed generates a deterministic sample observation history for
// demos and UI chart development. It uses the actual domain classifiers so
// the generated labels match real service behavior.
//
// Usage:
//
//	go run ./cmd/seed -out data/observations.csv -days 30 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/park-conditions/internal/domain"
	"github.com/couchcryptid/park-conditions/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the observation CSV")
	days := flag.Int("days", 30, "number of days of history to generate")
	seed := flag.Int64("seed", 7, "random seed; same seed, same history")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *days <= 0 {
		return fmt.Errorf("-days must be positive, got %d", *days)
	}

	rng := rand.New(rand.NewSource(*seed))

	// Walk one day at a time up to yesterday via a fake clock so every run
	// with the same seed and day count reproduces the same dates.
	start := time.Now().UTC().AddDate(0, 0, -*days)
	clock := clockwork.NewFakeClockAt(start)
	domain.SetClock(clock)
	defer domain.SetClock(nil)

	table := store.Table{}
	for i := 0; i < *days; i++ {
		table = table.Append(domain.NewObservation(randomReading(rng)))

		// Occasional second same-day submission, as the UI allows.
		if rng.Float64() < 0.1 {
			table = table.Append(domain.NewObservation(randomReading(rng)))
		}

		clock.Advance(24 * time.Hour)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	st := store.New(*out, slog.Default())
	if err := st.Persist(table); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	log.Printf("wrote %d observations to %s", len(table), *out)
	return nil
}

// randomReading produces plausible park conditions: mostly quiet days with
// occasional storms, smog episodes, and acid rain.
func randomReading(rng *rand.Rand) domain.Reading {
	rainfall := rng.Float64() * 18 // usually Dry or Normal
	if rng.Float64() < 0.2 {
		rainfall = 20 + rng.Float64()*60 // storm day, may cross the 50mm alert line
	}

	aqi := rng.Intn(110)
	if rng.Float64() < 0.15 {
		aqi = 110 + rng.Intn(120) // smog episode
	}

	ph := 6.0 + rng.Float64()*1.5
	if rng.Float64() < 0.1 {
		ph = 4.2 + rng.Float64()*1.3 // acid rain
	}

	return domain.Reading{
		RainfallMM: round1(rainfall),
		PM25:       round1(5 + rng.Float64()*60),
		PM10:       round1(10 + rng.Float64()*90),
		AQI:        aqi,
		PH:         round1(ph),
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
