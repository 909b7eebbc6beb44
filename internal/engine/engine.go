package engine

import (
	"fmt"
	"time"
)

// Plausible adult height bounds in centimeters.
const (
	minHeightCM = 50
	maxHeightCM = 250
)

// Evaluate runs the full calculation pipeline for one evaluation. asOf
// pins the date used to derive age from the birth date, keeping the
// function deterministic. The returned result is never mutated by the
// engine afterwards.
//
// Required inputs are validated defensively even though callers are
// expected to reject incomplete submissions before invoking the engine.
func Evaluate(p Profile, m MeasurementSet, goalTag string, asOf time.Time) (*EvaluationResult, error) {
	if err := validateProfile(p, asOf); err != nil {
		return nil, err
	}
	if err := validateMeasurements(m); err != nil {
		return nil, err
	}

	age := ageAt(p.BirthDate, asOf)

	basic := computeBasicMetrics(p, m, age)
	tissue := computeTissueComposition(m.WeightKG, basic.BodyFatPct, p.Sex)
	bodyMap := computeBodyMap(p, m, basic)
	prop := computeProportions(p, m)
	aesthetic := computeAestheticScore(p, m, basic, bodyMap)
	somatotype := computeSomatotype(basic, prop)

	res := &EvaluationResult{
		GoalTag:     goalTag,
		AsOf:        asOf,
		Basic:       basic,
		Tissue:      &tissue,
		BodyMap:     bodyMap,
		Aesthetic:   aesthetic,
		Proportions: prop,
		Somatotype:  somatotype,
	}
	if basic.LowConfidence {
		res.Notes = append(res.Notes, "body fat estimated from BMI fallback; measure neck circumference for better accuracy")
	}
	if tissue.LowConfidence {
		res.Notes = append(res.Notes, "tissue partition clamped to a non-negative residual")
	}
	return res, nil
}

func validateProfile(p Profile, asOf time.Time) error {
	if p.Sex != Male && p.Sex != Female {
		return fmt.Errorf("%w: sex must be male or female", ErrInvalidProfile)
	}
	if p.HeightCM < minHeightCM || p.HeightCM > maxHeightCM {
		return fmt.Errorf("%w: height %.1f cm out of range", ErrInvalidProfile, p.HeightCM)
	}
	if p.BirthDate.IsZero() || p.BirthDate.After(asOf) {
		return fmt.Errorf("%w: birth date", ErrInvalidProfile)
	}
	return nil
}

func validateMeasurements(m MeasurementSet) error {
	if m.WeightKG <= 0 {
		return fmt.Errorf("%w: weight_kg", ErrMissingRequiredInput)
	}
	if m.WaistCM <= 0 {
		return fmt.Errorf("%w: waist_cm", ErrMissingRequiredInput)
	}
	if m.HipCM <= 0 {
		return fmt.Errorf("%w: hip_cm", ErrMissingRequiredInput)
	}
	for name, v := range map[string]*float64{
		"neck_cm":        m.NeckCM,
		"shoulders_cm":   m.ShouldersCM,
		"chest_cm":       m.ChestCM,
		"abdomen_cm":     m.AbdomenCM,
		"relaxed_arm_cm": m.RelaxedArmCM,
		"flexed_arm_cm":  m.FlexedArmCM,
		"forearm_cm":     m.ForearmCM,
		"thigh_cm":       m.ThighCM,
		"calf_cm":        m.CalfCM,
	} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrMissingRequiredInput, name)
		}
	}
	return nil
}

// ageAt returns whole years between birth and asOf.
func ageAt(birth, asOf time.Time) int {
	age := asOf.Year() - birth.Year()
	if asOf.Before(birth.AddDate(age, 0, 0)) {
		age--
	}
	return age
}
