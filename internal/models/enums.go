package models

// Goal is a profile's primary training goal.
type Goal string

const (
	GoalHypertrophy Goal = "HYPERTROPHY"
	GoalStrength    Goal = "STRENGTH"
	GoalEndurance   Goal = "ENDURANCE"
)

// Valid reports whether g is a known goal.
func (g Goal) Valid() bool {
	switch g {
	case GoalHypertrophy, GoalStrength, GoalEndurance:
		return true
	}
	return false
}

// MovementPattern groups exercises for session balance.
type MovementPattern string

const (
	MovementPush         MovementPattern = "PUSH"
	MovementPull         MovementPattern = "PULL"
	MovementLegs         MovementPattern = "LEGS"
	MovementCore         MovementPattern = "CORE"
	MovementConditioning MovementPattern = "CONDITIONING"
	MovementStretching   MovementPattern = "STRETCHING"
)

// Phase is the periodization stage of a training block.
type Phase string

const (
	PhaseAccumulation    Phase = "ACCUMULATION"
	PhaseIntensification Phase = "INTENSIFICATION"
	PhaseDeload          Phase = "DELOAD"
)

// Difficulty is the subjective rating a user gives an exercise after a session.
// The empty value means no feedback.
type Difficulty string

const (
	DifficultyTooEasy   Difficulty = "TOO_EASY"
	DifficultyJustRight Difficulty = "JUST_RIGHT"
	DifficultyTooHard   Difficulty = "TOO_HARD"
)

// Equipment is an equipment tag owned by a profile or required by an exercise.
type Equipment string

const (
	EquipmentBodyweight     Equipment = "BODYWEIGHT"
	EquipmentDumbbell       Equipment = "DUMBBELL"
	EquipmentBarbell        Equipment = "BARBELL"
	EquipmentKettlebell     Equipment = "KETTLEBELL"
	EquipmentPullupBar      Equipment = "PULLUP_BAR"
	EquipmentRowingMachine  Equipment = "ROWING_MACHINE"
	EquipmentResistanceBand Equipment = "RESISTANCE_BAND"
	EquipmentBench          Equipment = "BENCH"
	EquipmentChair          Equipment = "CHAIR"
	EquipmentCableMachine   Equipment = "CABLE_MACHINE"
	EquipmentMedBall        Equipment = "MED_BALL"
)

// EquipmentOptions is the canonical list of equipment tags.
var EquipmentOptions = []Equipment{
	EquipmentBodyweight,
	EquipmentDumbbell,
	EquipmentBarbell,
	EquipmentKettlebell,
	EquipmentPullupBar,
	EquipmentRowingMachine,
	EquipmentResistanceBand,
	EquipmentBench,
	EquipmentChair,
	EquipmentCableMachine,
	EquipmentMedBall,
}

// Limitation is a physical limitation that rules out contraindicated exercises.
type Limitation string

const (
	LimitationShoulderPain  Limitation = "SHOULDER_PAIN"
	LimitationKneePain      Limitation = "KNEE_PAIN"
	LimitationLowerBackPain Limitation = "LOWER_BACK_PAIN"
	LimitationWristPain     Limitation = "WRIST_PAIN"
	LimitationLowImpactOnly Limitation = "LOW_IMPACT_ONLY"
)

// LimitationOptions is the canonical list of limitation tags.
var LimitationOptions = []Limitation{
	LimitationShoulderPain,
	LimitationKneePain,
	LimitationLowerBackPain,
	LimitationWristPain,
	LimitationLowImpactOnly,
}

// EquipmentStrings converts typed tags to plain strings for storage drivers.
func EquipmentStrings(tags []Equipment) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

// LimitationStrings converts typed tags to plain strings for storage drivers.
func LimitationStrings(tags []Limitation) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

// ParseEquipment converts stored strings back to typed tags.
func ParseEquipment(values []string) []Equipment {
	out := make([]Equipment, len(values))
	for i, v := range values {
		out[i] = Equipment(v)
	}
	return out
}

// ParseLimitations converts stored strings back to typed tags.
func ParseLimitations(values []string) []Limitation {
	out := make([]Limitation, len(values))
	for i, v := range values {
		out[i] = Limitation(v)
	}
	return out
}
