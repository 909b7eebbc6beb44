package engine

// Tissue partition constants. Bone mass is estimated as a fraction of
// lean mass (15% men / 12% women, anthropometric convention); skeletal
// muscle as a fraction of lean mass following Janssen et al. 2000
// (~54% men / ~45% women). The residual (organs, fluids, skin) closes
// the partition.
const (
	boneShareMale     = 0.15
	boneShareFemale   = 0.12
	muscleShareMale   = 0.54
	muscleShareFemale = 0.45
)

// computeTissueComposition splits total weight into fat, bone, muscle
// and residual mass. The four percentages are reconciled so they sum
// to exactly 100.0 after rounding; a formula combination that would
// drive the residual negative is clamped with bone and muscle scaled
// down proportionally, flagged low-confidence.
func computeTissueComposition(weightKG, bodyFatPct float64, sex Sex) TissueComposition {
	boneShare, muscleShare := boneShareMale, muscleShareMale
	if sex == Female {
		boneShare, muscleShare = boneShareFemale, muscleShareFemale
	}

	fatKG := weightKG * bodyFatPct / 100
	leanKG := weightKG - fatKG
	boneKG := leanKG * boneShare
	muscleKG := leanKG * muscleShare
	otherKG := weightKG - fatKG - boneKG - muscleKG

	lowConfidence := false
	if otherKG < 0 {
		// Scale bone and muscle down so the partition closes at zero
		// residual instead of emitting a negative mass.
		scale := leanKG / (boneKG + muscleKG)
		boneKG *= scale
		muscleKG *= scale
		otherKG = 0
		lowConfidence = true
	}

	pcts := reconcilePercentages(weightKG, [4]float64{muscleKG, fatKG, boneKG, otherKG})

	return TissueComposition{
		MuscularKG:    round2(muscleKG),
		MuscularPct:   pcts[0],
		FatKG:         round2(fatKG),
		FatPct:        pcts[1],
		BoneKG:        round2(boneKG),
		BonePct:       pcts[2],
		OtherKG:       round2(otherKG),
		OtherPct:      pcts[3],
		TotalWeight:   weightKG,
		LowConfidence: lowConfidence,
	}
}

// reconcilePercentages rounds each mass share to one decimal and then
// folds the rounding remainder into the largest category, so the four
// values sum to exactly 100.0.
func reconcilePercentages(total float64, kg [4]float64) [4]float64 {
	var pcts [4]float64
	largest := 0
	for i, v := range kg {
		pcts[i] = round1(v / total * 100)
		if kg[i] > kg[largest] {
			largest = i
		}
	}
	// Work in integer tenths to avoid float drift.
	tenths := 0
	for _, p := range pcts {
		tenths += int(round1(p * 10))
	}
	if diff := 1000 - tenths; diff != 0 {
		pcts[largest] = round1(pcts[largest] + float64(diff)/10)
	}
	return pcts
}
