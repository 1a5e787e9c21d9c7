package domain

import "time"

// Condition labels the day's rainfall volume.
type Condition string

const (
	ConditionDry    Condition = "Dry"
	ConditionNormal Condition = "Normal"
	ConditionWet    Condition = "Wet"
)

// RiskLevel is the three-tier scale shared by landslide and vegetation risks.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// AirQuality labels an AQI reading using the standard EPA breakpoints.
type AirQuality string

const (
	AirGood               AirQuality = "Good"
	AirModerate           AirQuality = "Moderate"
	AirUnhealthySensitive AirQuality = "UnhealthySensitive"
	AirUnhealthy          AirQuality = "Unhealthy"
)

// PHLevel labels rainwater acidity.
type PHLevel string

const (
	PHAcidic   PHLevel = "Acidic"
	PHNeutral  PHLevel = "Neutral"
	PHAlkaline PHLevel = "Alkaline"
)

// Color is a display hint for the UI collaborator. Colors are returned with
// classification results but never persisted.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
)

// Reading holds the raw numeric inputs of one submission, before any
// classification. The input collector guarantees the declared ranges.
type Reading struct {
	RainfallMM float64 `json:"rainfall_mm"` // [0, 1000]
	PM25       float64 `json:"pm25"`        // >= 0
	PM10       float64 `json:"pm10"`        // >= 0
	AQI        int     `json:"aqi"`         // [0, 500]
	PH         float64 `json:"ph"`          // [0, 14]
}

// Observation is one submitted row: the raw readings plus the labels derived
// at submission time. Rows are append-only and never mutated once persisted.
type Observation struct {
	Date              time.Time  `json:"date"`
	RainfallMM        float64    `json:"rainfall_mm"`
	Condition         Condition  `json:"condition"`
	LandslideRisk     RiskLevel  `json:"landslide_risk"`
	PM25              float64    `json:"pm25"`
	PM10              float64    `json:"pm10"`
	AQI               int        `json:"aqi"`
	AirQuality        AirQuality `json:"air_quality"`
	VegetationAirRisk RiskLevel  `json:"vegetation_air_risk"`
	PH                float64    `json:"ph"`
	PHLevel           PHLevel    `json:"ph_level"`
	VegetationPHRisk  RiskLevel  `json:"vegetation_ph_risk"`
}

// NewObservation stamps the current date and derives all label fields from
// the raw readings. Multiple same-day submissions produce separate rows.
func NewObservation(in Reading) Observation {
	now := clock.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rain := ClassifyRainfall(in.RainfallMM)
	air := ClassifyAirQuality(in.AQI)
	water := ClassifyRainwater(in.PH)

	return Observation{
		Date:              date,
		RainfallMM:        in.RainfallMM,
		Condition:         rain.Condition,
		LandslideRisk:     rain.LandslideRisk,
		PM25:              in.PM25,
		PM10:              in.PM10,
		AQI:               in.AQI,
		AirQuality:        air.AirQuality,
		VegetationAirRisk: air.VegetationAirRisk,
		PH:                in.PH,
		PHLevel:           water.PHLevel,
		VegetationPHRisk:  water.VegetationPHRisk,
	}
}
