// Package domain models daily environmental observations for a park area and
// the fixed-threshold classifications derived from them.
//
// # Inputs
//
// Each submission carries three independent measurements plus the two
// particulate readings recorded alongside the AQI:
//
//	Rainfall:  millimeters over the day, 0–1000.
//	Air:       AQI (Air Quality Index), an externally measured integer 0–500,
//	           plus PM2.5 and PM10 concentrations (µg/m³, unbounded above).
//	Rainwater: pH of collected rainwater, 0–14.
//
// Range enforcement belongs to the input collector (the HTTP layer); the
// classifiers are total functions over their numeric domains.
//
// # Classification thresholds
//
// Boundary values always belong to the lower-labeled tier.
//
//	Rainfall condition:  <5mm Dry | 5–20mm Normal | ≥20mm Wet
//	Landslide risk:      ≤20mm Low | 20–50mm Moderate | >50mm High
//	Air quality (AQI):   ≤50 Good | ≤100 Moderate | ≤150 UnhealthySensitive | >150 Unhealthy
//	Vegetation air risk: Low through AQI 100, Moderate through 150, High above
//	Rainwater pH:        <5.6 Acidic | 5.6–7.0 Neutral | >7.0 Alkaline
//	Vegetation pH risk:  Acidic High | Neutral Low | Alkaline Moderate
//
// The pH 5.6 cutoff is the acidity of water in equilibrium with atmospheric
// CO2; anything below it indicates acid rain.
//
// # Derived labels are persisted
//
// Every label is a pure function of its raw field and could be recomputed,
// but historical rows keep the label that was in effect at submission time.
// If thresholds change later, stored history is not rewritten.
//
// # Alerts
//
// A High landslide risk or a High vegetation risk (from either AQI or pH)
// raises an advisory alert for display and optional publication.
package domain
