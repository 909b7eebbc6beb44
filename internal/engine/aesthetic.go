package engine

import "math"

// Aesthetic sub-score weights, in points of the 100-point total. The
// weights are fixed engine constants and always sum to 100.
const (
	weightFat           = 30
	weightShoulderWaist = 25
	weightChestWaist    = 20
	weightSymmetry      = 15
	weightCentralFat    = 10
)

// Aesthetic ratio ideals relative to the actual waist.
const (
	shoulderWaistIdealMale   = 1.60
	shoulderWaistIdealFemale = 1.40
	chestWaistIdealMale      = 1.40
	chestWaistIdealFemale    = 1.30
)

// Classification bands for the composite score.
func classifyAesthetic(total int) (label, color string) {
	switch {
	case total >= 85:
		return "Excellent", colorTeal
	case total >= 70:
		return "Good", colorGreen
	case total >= 50:
		return "Average", colorOrange
	default:
		return "Needs Improvement", colorRed
	}
}

// fatScore awards full points inside the sex-specific optimal body-fat
// range (10-15% men, 18-23% women) and penalizes distance from it,
// harder below the range than above.
func fatScore(bodyFatPct float64, sex Sex) float64 {
	lo, hi := 10.0, 15.0
	if sex == Female {
		lo, hi = 18.0, 23.0
	}
	switch {
	case bodyFatPct >= lo && bodyFatPct <= hi:
		return weightFat
	case bodyFatPct < lo:
		return math.Max(0, weightFat-(lo-bodyFatPct)*2)
	default:
		return math.Max(0, weightFat-(bodyFatPct-hi)*1.5)
	}
}

// ratioScore maps an actual/ideal ratio to a share of maxPoints, in
// widening bands around 1.0.
func ratioScore(actual, ideal, maxPoints float64) float64 {
	ratio := actual / ideal
	switch {
	case ratio >= 0.95 && ratio <= 1.05:
		return maxPoints
	case ratio >= 0.90 && ratio <= 1.10:
		return maxPoints * 0.8
	case ratio >= 0.85 && ratio <= 1.15:
		return maxPoints * 0.6
	case ratio >= 0.80 && ratio <= 1.20:
		return maxPoints * 0.4
	default:
		return maxPoints * 0.2
	}
}

// symmetryScore measures how close the measured regions sit to their
// ideals on average. With no measured regions there is nothing to
// judge, so a neutral half-weight is awarded.
func symmetryScore(bm *BodyMap) float64 {
	if bm == nil || len(bm.Regions) == 0 {
		return weightSymmetry / 2.0
	}
	var sum float64
	for _, r := range bm.Regions {
		sum += math.Abs(1 - r.Actual/r.Ideal)
	}
	mean := sum / float64(len(bm.Regions))
	switch {
	case mean <= 0.05:
		return weightSymmetry
	case mean <= 0.10:
		return 12
	case mean <= 0.15:
		return 9
	case mean <= 0.20:
		return 6
	default:
		return math.Max(0, weightSymmetry-mean*50)
	}
}

// centralFatScore rewards a low waist-to-height ratio.
func centralFatScore(rca float64) float64 {
	switch {
	case rca <= 0.45:
		return weightCentralFat
	case rca <= 0.49:
		return 8
	case rca <= 0.54:
		return 5
	case rca <= 0.60:
		return 2
	default:
		return 0
	}
}

// computeAestheticScore combines the five weighted sub-scores into the
// 0-100 composite. Ratio sub-scores for unmeasured circumferences
// contribute zero, matching the omission semantics of the other blocks.
func computeAestheticScore(p Profile, m MeasurementSet, basic BasicMetrics, bm *BodyMap) *AestheticScore {
	fat := fatScore(basic.BodyFatPct, p.Sex)

	shoulderIdealRatio, chestIdealRatio := shoulderWaistIdealMale, chestWaistIdealMale
	if p.Sex == Female {
		shoulderIdealRatio, chestIdealRatio = shoulderWaistIdealFemale, chestWaistIdealFemale
	}

	var shoulder, chest float64
	if m.ShouldersCM != nil {
		shoulder = ratioScore(*m.ShouldersCM, m.WaistCM*shoulderIdealRatio, weightShoulderWaist)
	}
	if m.ChestCM != nil {
		chest = ratioScore(*m.ChestCM, m.WaistCM*chestIdealRatio, weightChestWaist)
	}

	symmetry := symmetryScore(bm)
	central := centralFatScore(m.WaistCM / p.HeightCM)

	total := int(math.Round(clamp(fat+shoulder+chest+symmetry+central, 0, 100)))
	label, color := classifyAesthetic(total)

	return &AestheticScore{
		Total: total,
		Label: label,
		Color: color,
		Breakdown: ScoreBreakdown{
			Fat:           round1(fat),
			ShoulderWaist: round1(shoulder),
			ChestWaist:    round1(chest),
			Symmetry:      round1(symmetry),
			CentralFat:    round1(central),
		},
		Weights: map[string]int{
			"fat":            weightFat,
			"shoulder_waist": weightShoulderWaist,
			"chest_waist":    weightChestWaist,
			"symmetry":       weightSymmetry,
			"central_fat":    weightCentralFat,
		},
	}
}
