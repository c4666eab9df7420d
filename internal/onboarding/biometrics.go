package onboarding

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/saeid-a/FitJourney/internal/models"
)

const (
	MinAgeYears = 15
	MaxAgeYears = 100
	MinWeightKG = 30.0
	MaxWeightKG = 300.0
	MinHeightCM = 100.0
	MaxHeightCM = 250.0
)

// BiometricsDraft is the raw form input for the biometrics step. It is kept
// between attempts so a refused submission can be shown again.
type BiometricsDraft struct {
	Age    string      `json:"age"`
	Weight string      `json:"weight"`
	Height string      `json:"height"`
	Sex    *models.Sex `json:"sex"`
}

type parsedBiometrics struct {
	age    int
	weight float64
	height float64
	sex    models.Sex
}

func parseBiometrics(d BiometricsDraft) (parsedBiometrics, error) {
	ageText := strings.TrimSpace(d.Age)
	weightText := strings.TrimSpace(d.Weight)
	heightText := strings.TrimSpace(d.Height)
	if ageText == "" || weightText == "" || heightText == "" || d.Sex == nil {
		return parsedBiometrics{}, fmt.Errorf("%w: age, weight, height and sex are required", ErrInvalidInput)
	}
	if !d.Sex.Valid() {
		return parsedBiometrics{}, fmt.Errorf("%w: sex must be one of: male, female", ErrInvalidInput)
	}

	age, err := strconv.Atoi(ageText)
	if err != nil {
		return parsedBiometrics{}, fmt.Errorf("%w: age must be a whole number", ErrInvalidInput)
	}
	weight, err := parseMeasure(weightText)
	if err != nil {
		return parsedBiometrics{}, fmt.Errorf("%w: weight must be a number", ErrInvalidInput)
	}
	height, err := parseMeasure(heightText)
	if err != nil {
		return parsedBiometrics{}, fmt.Errorf("%w: height must be a number", ErrInvalidInput)
	}

	if age < MinAgeYears || age > MaxAgeYears {
		return parsedBiometrics{}, fmt.Errorf("%w: age must be between %d and %d", ErrInvalidInput, MinAgeYears, MaxAgeYears)
	}
	if weight < MinWeightKG || weight > MaxWeightKG {
		return parsedBiometrics{}, fmt.Errorf("%w: weight must be between %g and %g kg", ErrInvalidInput, MinWeightKG, MaxWeightKG)
	}
	if height < MinHeightCM || height > MaxHeightCM {
		return parsedBiometrics{}, fmt.Errorf("%w: height must be between %g and %g cm", ErrInvalidInput, MinHeightCM, MaxHeightCM)
	}

	return parsedBiometrics{age: age, weight: weight, height: height, sex: *d.Sex}, nil
}

func parseMeasure(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
