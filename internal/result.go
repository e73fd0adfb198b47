package internal

// Outcome is the result of a store mutation. Lookups that miss report
// NotFound; business-rule rejections (for example enrolling into a full
// workshop) report PreconditionFailed so callers can acknowledge them
// differently.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomePreconditionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomePreconditionFailed:
		return "precondition_failed"
	default:
		return "unknown"
	}
}

func (o Outcome) OK() bool {
	return o == OutcomeOK
}
