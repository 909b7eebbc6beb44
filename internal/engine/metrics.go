package engine

import "math"

// IMC (BMI) classification bands per the WHO adult table. Band edges
// are compared before any rounding.
func classifyIMC(imc float64) string {
	switch {
	case imc < 16:
		return "Severe thinness"
	case imc < 17:
		return "Moderate thinness"
	case imc < 18.5:
		return "Mild thinness"
	case imc < 25:
		return "Normal"
	case imc < 30:
		return "Overweight"
	case imc < 35:
		return "Obesity class I"
	case imc < 40:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// computeIMC returns weight / height² with full precision.
func computeIMC(weightKG, heightCM float64) float64 {
	heightM := heightCM / 100
	return weightKG / (heightM * heightM)
}

// idealWeightRange is the weight band corresponding to IMC 18.5-25.
func idealWeightRange(heightCM float64) (lo, hi float64) {
	heightM := heightCM / 100
	return round1(18.5 * heightM * heightM), round1(25 * heightM * heightM)
}

// Body-fat estimates are clamped to this physiological range.
const (
	minBodyFatPct = 3
	maxBodyFatPct = 60
)

// bodyFatNavy estimates body-fat percentage with the US Navy
// circumference method:
//
//	men:   86.010·log10(waist-neck) - 70.041·log10(height) + 36.76
//	women: 163.205·log10(waist+hip-neck) - 97.684·log10(height) - 78.387
//
// Returns ok=false when the circumference combination is degenerate
// (e.g. waist not larger than neck), in which case the caller should
// fall back to bodyFatDeurenberg.
func bodyFatNavy(heightCM, waistCM, neckCM float64, sex Sex, hipCM float64) (pct float64, ok bool) {
	switch sex {
	case Male:
		if waistCM <= neckCM {
			return 0, false
		}
		pct = 86.010*math.Log10(waistCM-neckCM) - 70.041*math.Log10(heightCM) + 36.76
	case Female:
		d := waistCM + hipCM - neckCM
		if d <= 0 {
			return 0, false
		}
		pct = 163.205*math.Log10(d) - 97.684*math.Log10(heightCM) - 78.387
	default:
		return 0, false
	}
	return clamp(pct, minBodyFatPct, maxBodyFatPct), true
}

// bodyFatDeurenberg is the fallback body-fat estimate used when the
// neck circumference is missing (Deurenberg et al. 1991):
//
//	%fat = 1.20·BMI + 0.23·age - 10.8·sexFlag - 5.4   (sexFlag: male=1)
func bodyFatDeurenberg(imc float64, age int, sex Sex) float64 {
	sexFlag := 0.0
	if sex == Male {
		sexFlag = 1.0
	}
	pct := 1.20*imc + 0.23*float64(age) - 10.8*sexFlag - 5.4
	return clamp(pct, minBodyFatPct, maxBodyFatPct)
}

// classifyBodyFat uses the ACE body-fat category table.
func classifyBodyFat(pct float64, sex Sex) string {
	if sex == Male {
		switch {
		case pct < 6:
			return "Essential"
		case pct < 14:
			return "Athlete"
		case pct < 18:
			return "Fitness"
		case pct < 25:
			return "Acceptable"
		default:
			return "Obesity"
		}
	}
	switch {
	case pct < 14:
		return "Essential"
	case pct < 21:
		return "Athlete"
	case pct < 25:
		return "Fitness"
	case pct < 32:
		return "Acceptable"
	default:
		return "Obesity"
	}
}

// classifyRCQ maps the waist-to-hip ratio to a metabolic risk band
// (WHO sex-specific cut points).
func classifyRCQ(rcq float64, sex Sex) string {
	if sex == Male {
		switch {
		case rcq < 0.85:
			return "Low risk"
		case rcq < 0.90:
			return "Moderate risk"
		default:
			return "High risk"
		}
	}
	switch {
	case rcq < 0.75:
		return "Low risk"
	case rcq < 0.85:
		return "Moderate risk"
	default:
		return "High risk"
	}
}

// classifyRCA maps the waist-to-height ratio to a health band
// (Ashwell boundary values; the rule of thumb is RCA ≤ 0.50).
func classifyRCA(rca float64) string {
	switch {
	case rca < 0.40:
		return "Very low"
	case rca < 0.50:
		return "Healthy"
	case rca < 0.60:
		return "Increased risk"
	case rca < 0.70:
		return "High risk"
	default:
		return "Very high risk"
	}
}

// conicityIndex is Valdez's abdominal fat distribution index:
//
//	C = waist_m / (0.109·sqrt(weight/height_m))
func conicityIndex(waistCM, weightKG, heightCM float64) float64 {
	heightM := heightCM / 100
	return (waistCM / 100) / (0.109 * math.Sqrt(weightKG/heightM))
}

// computeBasicMetrics runs the step-one calculators. When the navy
// formula cannot run (missing neck, or a degenerate circumference
// combination) the Deurenberg fallback is used and the result is
// flagged low-confidence rather than rejected.
func computeBasicMetrics(p Profile, m MeasurementSet, age int) BasicMetrics {
	imc := computeIMC(m.WeightKG, p.HeightCM)
	lo, hi := idealWeightRange(p.HeightCM)

	var (
		fatPct        float64
		lowConfidence bool
	)
	if m.NeckCM != nil {
		pct, ok := bodyFatNavy(p.HeightCM, m.WaistCM, *m.NeckCM, p.Sex, m.HipCM)
		if ok {
			fatPct = pct
		} else {
			fatPct = bodyFatDeurenberg(imc, age, p.Sex)
			lowConfidence = true
		}
	} else {
		fatPct = bodyFatDeurenberg(imc, age, p.Sex)
		lowConfidence = true
	}
	fatPct = round1(fatPct)

	rcq := m.WaistCM / m.HipCM
	rca := m.WaistCM / p.HeightCM

	return BasicMetrics{
		IMC:           round2(imc),
		IMCLabel:      classifyIMC(imc),
		BodyFatPct:    fatPct,
		FatLabel:      classifyBodyFat(fatPct, p.Sex),
		LeanMassKG:    round1(m.WeightKG * (1 - fatPct/100)),
		RCQ:           round3(rcq),
		RCQLabel:      classifyRCQ(rcq, p.Sex),
		RCA:           round3(rca),
		RCALabel:      classifyRCA(rca),
		Conicity:      round3(conicityIndex(m.WaistCM, m.WeightKG, p.HeightCM)),
		IdealWeightLo: lo,
		IdealWeightHi: hi,
		Age:           age,
		LowConfidence: lowConfidence,
	}
}
