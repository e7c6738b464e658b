package guidance

type InstructionKind string

const (
	KindStart    InstructionKind = "start"
	KindTurn     InstructionKind = "turn"
	KindApproach InstructionKind = "approach"
	KindArrival  InstructionKind = "arrival"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

// Instruction is one spoken-style navigation step. Bearing and remaining
// distance are only meaningful on turn instructions.
type Instruction struct {
	Kind       InstructionKind `json:"type"`
	Text       string          `json:"text"`
	DistanceM  float64         `json:"distance"`
	BearingDeg float64         `json:"bearing,omitempty"`
	RemainingM float64         `json:"remaining,omitempty"`
	Priority   Priority        `json:"priority"`
}
