package domain

import (
	"fmt"
	"time"
)

// Alert kinds. Landslide covers rainfall-driven slope risk; vegetation covers
// both air-quality and rainwater-acidity stress.
const (
	AlertLandslide  = "landslide"
	AlertVegetation = "vegetation"
)

// Alert is an advisory raised when a submission crosses into a High risk
// tier. Alerts are returned to the UI for display and, when the publisher is
// enabled, emitted to the alerts topic.
type Alert struct {
	Kind    string    `json:"kind"`   // "landslide" or "vegetation"
	Source  string    `json:"source"` // "rainfall", "air_quality", or "rainwater_ph"
	Risk    RiskLevel `json:"risk"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// DeriveAlerts inspects an observation's risk tiers and returns one alert per
// High tier, in the fixed order rainfall, air, rainwater. An observation with
// no High tier yields no alerts.
func DeriveAlerts(obs Observation) []Alert {
	var alerts []Alert

	if obs.LandslideRisk == RiskHigh {
		alerts = append(alerts, Alert{
			Kind:    AlertLandslide,
			Source:  "rainfall",
			Risk:    RiskHigh,
			Date:    obs.Date,
			Message: fmt.Sprintf("landslide risk high: %.1fmm rainfall recorded", obs.RainfallMM),
		})
	}
	if obs.VegetationAirRisk == RiskHigh {
		alerts = append(alerts, Alert{
			Kind:    AlertVegetation,
			Source:  "air_quality",
			Risk:    RiskHigh,
			Date:    obs.Date,
			Message: fmt.Sprintf("vegetation risk high: AQI %d (%s)", obs.AQI, obs.AirQuality),
		})
	}
	if obs.VegetationPHRisk == RiskHigh {
		alerts = append(alerts, Alert{
			Kind:    AlertVegetation,
			Source:  "rainwater_ph",
			Risk:    RiskHigh,
			Date:    obs.Date,
			Message: fmt.Sprintf("vegetation risk high: rainwater pH %.2f (%s)", obs.PH, obs.PHLevel),
		})
	}

	return alerts
}
