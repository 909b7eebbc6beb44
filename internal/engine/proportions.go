package engine

// computeProportions derives circumference ratios and height-relative
// percentages from whatever was measured, with descriptive feedback per
// ratio. Returns nil when neither shoulders nor chest were measured, as
// there is no torso proportion to anchor the analysis.
func computeProportions(p Profile, m MeasurementSet) *Proportions {
	if m.ShouldersCM == nil && m.ChestCM == nil {
		return nil
	}

	prop := &Proportions{Feedback: make(map[string]string)}

	arm := m.FlexedArmCM
	if arm == nil {
		arm = m.RelaxedArmCM
	}

	if m.ShouldersCM != nil {
		v := round2(*m.ShouldersCM / m.WaistCM)
		prop.ShoulderWaist = &v
		switch {
		case v >= 1.6:
			prop.Feedback["shoulder_waist"] = "Excellent V-taper proportion"
		case v >= 1.4:
			prop.Feedback["shoulder_waist"] = "Good proportion"
		default:
			prop.Feedback["shoulder_waist"] = "Develop shoulders or reduce waist"
		}
	}

	if m.ChestCM != nil {
		v := round2(*m.ChestCM / m.WaistCM)
		prop.ChestWaist = &v
		switch {
		case v >= 1.4:
			prop.Feedback["chest_waist"] = "Excellent torso development"
		case v >= 1.2:
			prop.Feedback["chest_waist"] = "Good development"
		default:
			prop.Feedback["chest_waist"] = "Develop chest"
		}
	}

	if arm != nil && m.CalfCM != nil {
		v := round2(*arm / *m.CalfCM)
		prop.ArmCalf = &v
		// Classical ideal: arm ≈ calf.
		diff := v - 1.0
		switch {
		case diff >= -0.05 && diff <= 0.05:
			prop.Feedback["arm_calf"] = "Perfect symmetry"
		case diff >= -0.10 && diff <= 0.10:
			prop.Feedback["arm_calf"] = "Good symmetry"
		case diff > 0:
			prop.Feedback["arm_calf"] = "Arms dominant, train calves"
		default:
			prop.Feedback["arm_calf"] = "Calves dominant, train arms"
		}
	}

	if m.ThighCM != nil && m.CalfCM != nil {
		v := round2(*m.ThighCM / *m.CalfCM)
		prop.ThighCalf = &v
	}

	waistHeight := round1(m.WaistCM / p.HeightCM * 100)
	prop.WaistHeight = &waistHeight
	switch {
	case waistHeight < 45:
		prop.Feedback["waist_height"] = "Lean waist"
	case waistHeight <= 47:
		prop.Feedback["waist_height"] = "Ideal proportion"
	default:
		prop.Feedback["waist_height"] = "Reduce abdominal fat"
	}

	if m.ChestCM != nil {
		v := round1(*m.ChestCM / p.HeightCM * 100)
		prop.ChestHeight = &v
	}
	if m.ThighCM != nil {
		v := round1(*m.ThighCM / p.HeightCM * 100)
		prop.ThighHeight = &v
	}
	if m.CalfCM != nil {
		v := round1(*m.CalfCM / p.HeightCM * 100)
		prop.CalfHeight = &v
	}

	if m.FlexedArmCM != nil && m.RelaxedArmCM != nil && *m.RelaxedArmCM > 0 {
		v := round2(*m.FlexedArmCM / *m.RelaxedArmCM)
		prop.ArmFlexGain = &v
		gainPct := (v - 1) * 100
		switch {
		case gainPct >= 5 && gainPct <= 15:
			prop.Feedback["arm_flex_gain"] = "Normal contraction gain"
		case gainPct < 5:
			prop.Feedback["arm_flex_gain"] = "Low contraction gain"
		default:
			prop.Feedback["arm_flex_gain"] = "Excellent contraction gain"
		}
	}

	return prop
}
