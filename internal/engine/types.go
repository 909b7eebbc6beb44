// Package engine implements the anthropometric calculation pipeline: it
// turns a user profile and one evaluation's raw measurements into body
// composition metrics, a per-region body map, and an aesthetic score.
// The engine is pure: no I/O, no clock, no shared state.
package engine

import "time"

// Sex selects the sex-specific coefficients used by several formulas.
type Sex string

// Valid Sex values.
const (
	Male   Sex = "male"
	Female Sex = "female"
)

// Profile is the slow-changing part of an evaluation's input.
type Profile struct {
	HeightCM  float64   `json:"height_cm"`
	Sex       Sex       `json:"sex"`
	BirthDate time.Time `json:"birth_date"`
}

// MeasurementSet holds one evaluation's raw inputs in centimeters and
// kilograms. Weight, waist and hip are mandatory; the rest are optional
// and absent fields suppress the derived metrics that need them.
type MeasurementSet struct {
	WeightKG float64 `json:"weight_kg"`
	WaistCM  float64 `json:"waist_cm"`
	HipCM    float64 `json:"hip_cm"`

	NeckCM       *float64 `json:"neck_cm,omitempty"`
	ShouldersCM  *float64 `json:"shoulders_cm,omitempty"`
	ChestCM      *float64 `json:"chest_cm,omitempty"`
	AbdomenCM    *float64 `json:"abdomen_cm,omitempty"`
	RelaxedArmCM *float64 `json:"relaxed_arm_cm,omitempty"`
	FlexedArmCM  *float64 `json:"flexed_arm_cm,omitempty"`
	ForearmCM    *float64 `json:"forearm_cm,omitempty"`
	ThighCM      *float64 `json:"thigh_cm,omitempty"`
	CalfCM       *float64 `json:"calf_cm,omitempty"`
}

// BasicMetrics is always present on a successful evaluation.
type BasicMetrics struct {
	IMC           float64 `json:"imc"`
	IMCLabel      string  `json:"imc_label"`
	BodyFatPct    float64 `json:"body_fat_pct"`
	FatLabel      string  `json:"fat_label"`
	LeanMassKG    float64 `json:"lean_mass_kg"`
	RCQ           float64 `json:"rcq"`
	RCQLabel      string  `json:"rcq_label"`
	RCA           float64 `json:"rca"`
	RCALabel      string  `json:"rca_label"`
	Conicity      float64 `json:"conicity_index"`
	IdealWeightLo float64 `json:"ideal_weight_min_kg"`
	IdealWeightHi float64 `json:"ideal_weight_max_kg"`
	Age           int     `json:"age"`

	// LowConfidence is set when the body-fat fallback formula was used.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// TissueComposition partitions total body weight into fat, bone,
// skeletal muscle and a residual category. Percentages always sum to
// exactly 100.0 after reconciliation.
type TissueComposition struct {
	MuscularKG  float64 `json:"muscular_kg"`
	MuscularPct float64 `json:"muscular_pct"`
	FatKG       float64 `json:"fat_kg"`
	FatPct      float64 `json:"fat_pct"`
	BoneKG      float64 `json:"bone_kg"`
	BonePct     float64 `json:"bone_pct"`
	OtherKG     float64 `json:"other_kg"`
	OtherPct    float64 `json:"other_pct"`
	TotalWeight float64 `json:"total_weight"`

	LowConfidence bool `json:"low_confidence,omitempty"`
}

// RegionAssessment compares one measured body region against its
// height-derived ideal.
type RegionAssessment struct {
	Actual float64 `json:"actual"`
	Ideal  float64 `json:"ideal"`
	Diff   float64 `json:"diff"`
	Status string  `json:"status"`
	Color  string  `json:"color"`
}

// CentralFat restates the central adiposity indices with display
// grouping (risk text and colors).
type CentralFat struct {
	RCQ      float64 `json:"rcq"`
	RCQLabel string  `json:"rcq_label"`
	RCQColor string  `json:"rcq_color"`
	RCA      float64 `json:"rca"`
	RCALabel string  `json:"rca_label"`
	RCAColor string  `json:"rca_color"`
}

// BodyMap holds the per-region assessments plus the central fat block.
// Regions without an actual measurement are omitted entirely.
type BodyMap struct {
	Regions    map[string]RegionAssessment `json:"regions"`
	CentralFat CentralFat                  `json:"central_fat"`
}

// ScoreBreakdown lists the weighted points each aesthetic sub-score
// contributed to the total.
type ScoreBreakdown struct {
	Fat           float64 `json:"fat"`
	ShoulderWaist float64 `json:"shoulder_waist"`
	ChestWaist    float64 `json:"chest_waist"`
	Symmetry      float64 `json:"symmetry"`
	CentralFat    float64 `json:"central_fat"`
}

// AestheticScore is the composite 0-100 proportion score.
type AestheticScore struct {
	Total     int            `json:"total"`
	Label     string         `json:"label"`
	Color     string         `json:"color"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Weights   map[string]int `json:"weights"`
}

// Proportions holds circumference ratios and height-relative
// percentages. Fields are nil when their inputs were not measured.
type Proportions struct {
	ShoulderWaist *float64 `json:"shoulder_waist,omitempty"`
	ChestWaist    *float64 `json:"chest_waist,omitempty"`
	ArmCalf       *float64 `json:"arm_calf,omitempty"`
	ThighCalf     *float64 `json:"thigh_calf,omitempty"`
	WaistHeight   *float64 `json:"waist_height_pct,omitempty"`
	ChestHeight   *float64 `json:"chest_height_pct,omitempty"`
	ThighHeight   *float64 `json:"thigh_height_pct,omitempty"`
	CalfHeight    *float64 `json:"calf_height_pct,omitempty"`
	ArmFlexGain   *float64 `json:"arm_flex_gain,omitempty"`

	Feedback map[string]string `json:"feedback,omitempty"`
}

// Recommendations carries training/diet guidance for a somatotype.
type Recommendations struct {
	Training string `json:"training"`
	Diet     string `json:"diet"`
	Tips     string `json:"tips"`
}

// Somatotype is the heuristic body-type classification.
type Somatotype struct {
	Type            string             `json:"type"`
	Description     string             `json:"description"`
	Scores          map[string]float64 `json:"scores"`
	Recommendations Recommendations    `json:"recommendations"`
}

// EvaluationResult is the immutable output of one pipeline run. Blocks
// beyond the basic metrics are present only when their required inputs
// were supplied.
type EvaluationResult struct {
	GoalTag string    `json:"goal_tag,omitempty"`
	AsOf    time.Time `json:"as_of"`

	Basic       BasicMetrics       `json:"basic"`
	Tissue      *TissueComposition `json:"tissue_composition,omitempty"`
	BodyMap     *BodyMap           `json:"body_map,omitempty"`
	Aesthetic   *AestheticScore    `json:"aesthetic_score,omitempty"`
	Proportions *Proportions       `json:"proportions,omitempty"`
	Somatotype  *Somatotype        `json:"somatotype,omitempty"`

	// Notes collects non-fatal annotations, e.g. fallback formula use.
	Notes []string `json:"notes,omitempty"`
}
