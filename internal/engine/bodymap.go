package engine

// Body map region names. Waist, hip and neck are deliberately not
// tracked here: waist and hip feed the central-fat block, neck feeds
// the body-fat formula.
const (
	regionShoulders = "shoulders"
	regionChest     = "chest"
	regionAbdomen   = "abdomen"
	regionArm       = "arm"
	regionForearm   = "forearm"
	regionThigh     = "thigh"
	regionCalf      = "calf"
)

// Region development statuses and their display colors.
const (
	statusSubdeveloped = "Subdeveloped"
	statusBalanced     = "Balanced"
	statusExcess       = "Excess"

	colorRed    = "#ff6b6b"
	colorGreen  = "#51cf66"
	colorOrange = "#ffa94d"
	colorTeal   = "#20c997"
)

// Ideal waist as a fraction of height; region ideals are derived from
// it, so every region ideal is height × a fixed sex-specific constant.
const (
	idealWaistShareMale   = 0.45
	idealWaistShareFemale = 0.42
)

// regionRef holds one region's ideal-proportion constant (relative to
// the ideal waist) and its tolerance band in centimeters.
type regionRef struct {
	ratioMale   float64
	ratioFemale float64
	toleranceCM float64
}

// Classical aesthetic proportion constants relative to the waist, with
// wider tolerance for larger girths.
var regionRefs = map[string]regionRef{
	regionShoulders: {1.60, 1.40, 4.0},
	regionChest:     {1.40, 1.30, 2.5},
	regionAbdomen:   {1.05, 1.03, 2.5},
	regionArm:       {0.36, 0.32, 1.5},
	regionForearm:   {0.306, 0.272, 1.5},
	regionThigh:     {0.75, 0.80, 2.5},
	regionCalf:      {0.36, 0.304, 1.5},
}

// idealWaist returns the height-derived reference waist.
func idealWaist(heightCM float64, sex Sex) float64 {
	if sex == Female {
		return heightCM * idealWaistShareFemale
	}
	return heightCM * idealWaistShareMale
}

// idealRegion returns the height-derived ideal circumference for a
// tracked region.
func idealRegion(name string, heightCM float64, sex Sex) float64 {
	ref := regionRefs[name]
	ratio := ref.ratioMale
	if sex == Female {
		ratio = ref.ratioFemale
	}
	return round1(idealWaist(heightCM, sex) * ratio)
}

// assessRegion classifies a measured region against its ideal using
// the region's tolerance band.
func assessRegion(name string, actual, ideal float64) RegionAssessment {
	diff := round1(actual - ideal)
	tol := regionRefs[name].toleranceCM

	status, color := statusBalanced, colorGreen
	switch {
	case diff < -tol:
		status, color = statusSubdeveloped, colorRed
	case diff > tol:
		status, color = statusExcess, colorOrange
	}
	return RegionAssessment{
		Actual: actual,
		Ideal:  ideal,
		Diff:   diff,
		Status: status,
		Color:  color,
	}
}

// measuredRegions maps region names to actual values present in the
// measurement set. The arm uses the flexed measurement when available,
// falling back to the relaxed one.
func measuredRegions(m MeasurementSet) map[string]float64 {
	out := make(map[string]float64)
	put := func(name string, v *float64) {
		if v != nil {
			out[name] = *v
		}
	}
	put(regionShoulders, m.ShouldersCM)
	put(regionChest, m.ChestCM)
	put(regionAbdomen, m.AbdomenCM)
	put(regionForearm, m.ForearmCM)
	put(regionThigh, m.ThighCM)
	put(regionCalf, m.CalfCM)
	if m.FlexedArmCM != nil {
		out[regionArm] = *m.FlexedArmCM
	} else if m.RelaxedArmCM != nil {
		out[regionArm] = *m.RelaxedArmCM
	}
	return out
}

// computeBodyMap builds the per-region assessment set plus the
// central-fat block. Returns nil when no tracked region was measured.
func computeBodyMap(p Profile, m MeasurementSet, basic BasicMetrics) *BodyMap {
	actuals := measuredRegions(m)
	if len(actuals) == 0 {
		return nil
	}

	regions := make(map[string]RegionAssessment, len(actuals))
	for name, actual := range actuals {
		regions[name] = assessRegion(name, actual, idealRegion(name, p.HeightCM, p.Sex))
	}

	return &BodyMap{
		Regions: regions,
		CentralFat: CentralFat{
			RCQ:      basic.RCQ,
			RCQLabel: basic.RCQLabel,
			RCQColor: riskColorRCQ(basic.RCQLabel),
			RCA:      basic.RCA,
			RCALabel: basic.RCALabel,
			RCAColor: riskColorRCA(basic.RCALabel),
		},
	}
}

func riskColorRCQ(label string) string {
	switch label {
	case "Low risk":
		return colorGreen
	case "Moderate risk":
		return colorOrange
	default:
		return colorRed
	}
}

func riskColorRCA(label string) string {
	switch label {
	case "Very low", "Healthy":
		return colorGreen
	case "Increased risk":
		return colorOrange
	default:
		return colorRed
	}
}
