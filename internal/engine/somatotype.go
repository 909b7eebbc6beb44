package engine

import "sort"

// Somatotype labels.
const (
	typeEctomorph     = "ectomorph"
	typeMesomorph     = "mesomorph"
	typeEndomorph     = "endomorph"
	typeEctoMesomorph = "ecto-mesomorph"
	typeMesoEndomorph = "meso-endomorph"
)

// computeSomatotype scores the three classical body types from the
// computed indices and torso proportions, picking a mixed type when the
// top two scores are within one point of each other. Scores are
// normalized to percentages of the total.
func computeSomatotype(basic BasicMetrics, prop *Proportions) *Somatotype {
	var ecto, meso, endo float64

	switch {
	case basic.IMC < 18.5:
		ecto += 3
	case basic.IMC < 25:
		meso += 2
		ecto++
	case basic.IMC < 30:
		meso++
		endo += 2
	default:
		endo += 3
	}

	switch {
	case basic.RCA < 0.45:
		ecto += 2
	case basic.RCA < 0.50:
		meso += 2
	case basic.RCA < 0.60:
		endo += 2
	default:
		endo += 3
	}

	switch {
	case basic.RCQ < 0.80:
		ecto += 2
		meso++
	case basic.RCQ < 0.90:
		meso += 2
	default:
		endo += 3
	}

	if prop != nil {
		if prop.ShoulderWaist != nil {
			switch {
			case *prop.ShoulderWaist >= 1.6:
				meso += 3
			case *prop.ShoulderWaist >= 1.4:
				meso += 2
			default:
				ecto++
			}
		}
		if prop.ChestWaist != nil {
			switch {
			case *prop.ChestWaist >= 1.4:
				meso += 2
			case *prop.ChestWaist >= 1.2:
				meso++
			}
		}
	}

	scores := map[string]float64{
		typeEctomorph: ecto,
		typeMesomorph: meso,
		typeEndomorph: endo,
	}

	sorted := []float64{ecto, meso, endo}
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var typ, desc string
	if sorted[0]-sorted[1] <= 1 {
		// No clear dominant: pick a mixed type.
		if ecto >= endo {
			typ = typeEctoMesomorph
			desc = "Lean frame with athletic potential"
		} else {
			typ = typeMesoEndomorph
			desc = "Strong frame with a tendency to gain fat"
		}
	} else {
		switch sorted[0] {
		case ecto:
			typ = typeEctomorph
			desc = "Slender frame, fast metabolism, struggles to gain weight"
		case meso:
			typ = typeMesomorph
			desc = "Naturally athletic frame, responds well to training"
		default:
			typ = typeEndomorph
			desc = "Rounder frame, gains fat easily, diet needs attention"
		}
	}

	if total := ecto + meso + endo; total > 0 {
		for k, v := range scores {
			scores[k] = round1(v / total * 100)
		}
	}

	return &Somatotype{
		Type:            typ,
		Description:     desc,
		Scores:          scores,
		Recommendations: somatotypeRecommendations[typ],
	}
}

var somatotypeRecommendations = map[string]Recommendations{
	typeEctomorph: {
		Training: "Compound lifts, short intense sessions (45-60 min), moderate cardio, 8-12 rep hypertrophy work.",
		Diet:     "Caloric surplus, high carbohydrate share (50-60%), protein 1.8-2.2 g/kg, frequent meals.",
		Tips:     "Sleep 8+ hours, avoid excessive cardio, expect slower but durable gains.",
	},
	typeMesomorph: {
		Training: "Mix strength (5-8 reps) and hypertrophy (8-12 reps) blocks, moderate cardio, tolerates higher volume.",
		Diet:     "Balanced macros, carbohydrates 40-50%, protein 1.6-2.0 g/kg, adjust calories to the current goal.",
		Tips:     "Favorable genetics still need consistency; rotate stimuli to avoid plateaus.",
	},
	typeEndomorph: {
		Training: "Resistance training plus regular cardio, HIIT 2-3x/week, higher volume and frequency.",
		Diet:     "Strict calorie control, carbohydrates 30-40% favoring low GI, protein 2.0-2.5 g/kg.",
		Tips:     "Track calories closely; sleep and stress management matter for fat loss.",
	},
	typeEctoMesomorph: {
		Training: "Strength and hypertrophy focus at moderate volume, keep cardio light.",
		Diet:     "Slight caloric surplus, moderate-high carbohydrates, protein 1.8-2.2 g/kg.",
		Tips:     "Good capacity for a defined athletic build with a clean diet.",
	},
	typeMesoEndomorph: {
		Training: "Heavy resistance work plus regular cardio for fat control, HIIT 2-3x/week.",
		Diet:     "Watch the surplus, moderate carbohydrates, high protein, monitor body fat regularly.",
		Tips:     "Gains mass easily but also fat; dietary discipline is the lever.",
	},
}
