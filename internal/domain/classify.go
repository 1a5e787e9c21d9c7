package domain

// RainfallClass is the display triple derived from a rainfall reading.
type RainfallClass struct {
	Condition      Condition `json:"condition"`
	LandslideRisk  RiskLevel `json:"landslide_risk"`
	LandslideColor Color     `json:"landslide_color"`
}

// AirClass is the display triple derived from an AQI reading.
type AirClass struct {
	AirQuality        AirQuality `json:"air_quality"`
	AirColor          Color      `json:"air_color"`
	VegetationAirRisk RiskLevel  `json:"vegetation_air_risk"`
}

// WaterClass is the display triple derived from a rainwater pH reading.
type WaterClass struct {
	PHLevel          PHLevel   `json:"ph_level"`
	PHColor          Color     `json:"ph_color"`
	VegetationPHRisk RiskLevel `json:"vegetation_ph_risk"`
}

// ClassifyRainfall maps a rainfall volume in millimeters to a day condition
// and a landslide risk tier. The domain is clamped to [0, 1000] by the input
// collector, not here.
func ClassifyRainfall(mm float64) RainfallClass {
	var c RainfallClass

	switch {
	case mm < 5:
		c.Condition = ConditionDry
	case mm < 20:
		c.Condition = ConditionNormal
	default:
		c.Condition = ConditionWet
	}

	switch {
	case mm > 50:
		c.LandslideRisk, c.LandslideColor = RiskHigh, ColorRed
	case mm > 20:
		c.LandslideRisk, c.LandslideColor = RiskModerate, ColorOrange
	default:
		c.LandslideRisk, c.LandslideColor = RiskLow, ColorGreen
	}

	return c
}

// ClassifyAirQuality maps an AQI reading to a quality label and a vegetation
// risk tier. Tier upper bounds are inclusive: AQI 150 is still
// UnhealthySensitive.
func ClassifyAirQuality(aqi int) AirClass {
	switch {
	case aqi <= 50:
		return AirClass{AirGood, ColorGreen, RiskLow}
	case aqi <= 100:
		return AirClass{AirModerate, ColorYellow, RiskLow}
	case aqi <= 150:
		return AirClass{AirUnhealthySensitive, ColorOrange, RiskModerate}
	default:
		return AirClass{AirUnhealthy, ColorRed, RiskHigh}
	}
}

// ClassifyRainwater maps a rainwater pH to an acidity label and a vegetation
// risk tier. Exactly 5.6 and exactly 7.0 are both Neutral.
func ClassifyRainwater(ph float64) WaterClass {
	switch {
	case ph < 5.6:
		return WaterClass{PHAcidic, ColorRed, RiskHigh}
	case ph <= 7.0:
		return WaterClass{PHNeutral, ColorBlue, RiskLow}
	default:
		return WaterClass{PHAlkaline, ColorPurple, RiskModerate}
	}
}
