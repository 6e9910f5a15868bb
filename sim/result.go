package sim

// Outcome classifies how a run terminated.
type Outcome int

const (
	// OutcomeComplete means the run reached the burn target n - m*d: every
	// slot the safety buffers do not reserve has been consumed.
	OutcomeComplete Outcome = iota

	// OutcomeClinch means no party moved across a full tick and no
	// broadcasts were in flight; no further burns or drifts are possible.
	OutcomeClinch

	// OutcomeMaxTicks means the run exceeded its tick budget without
	// reaching a terminal protocol state.
	OutcomeMaxTicks
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomeClinch:
		return "clinch"
	case OutcomeMaxTicks:
		return "max-ticks"
	default:
		return "unknown"
	}
}

// PartyResult is one party's final state.
type PartyResult struct {
	ID       int    `json:"id"`
	Role     string `json:"role"`
	Position int    `json:"position"`
	PadsUsed int    `json:"pads_used"`
}

// Result is the final state of one run, consumed by the reporting
// collaborator.
type Result struct {
	Outcome     Outcome       `json:"outcome"`
	Ticks       int           `json:"ticks"`
	Burned      int           `json:"burned"`
	Waste       int           `json:"waste"`
	Utilization float64       `json:"utilization"`
	BurnedSlots []int         `json:"-"`
	Parties     []PartyResult `json:"parties"`
}
