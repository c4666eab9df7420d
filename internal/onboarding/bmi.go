package onboarding

import "math"

const (
	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese       = "obese"
)

// CalculateBMI returns weight / height(m)^2 rounded to one decimal place.
func CalculateBMI(weightKG, heightCM float64) float64 {
	meters := heightCM / 100
	bmi := weightKG / (meters * meters)
	return math.Round(bmi*10) / 10
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
