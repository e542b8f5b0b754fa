package workorder

// Status is a single-letter work order state.
//
//	R  reported, waiting for handling
//	D  dispatched, worker assigned
//	H  worker on site, handling
//	E  repaired, waiting for evaluation
//	F  finished
//	C  cancelled
type Status string

const (
	StatusReported   Status = "R"
	StatusDispatched Status = "D"
	StatusHandling   Status = "H"
	StatusEvaluating Status = "E"
	StatusFinished   Status = "F"
	StatusCancelled  Status = "C"
)

// transitions is the full state graph. Absent source states are terminal.
var transitions = map[Status][]Status{
	StatusReported:   {StatusDispatched, StatusEvaluating, StatusCancelled},
	StatusDispatched: {StatusHandling, StatusCancelled},
	StatusHandling:   {StatusEvaluating, StatusCancelled},
	StatusEvaluating: {StatusFinished, StatusCancelled},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReported, StatusDispatched, StatusHandling, StatusEvaluating, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// CanTransitionTo reports whether the state graph allows moving from s
// to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Label returns the operator-facing description shown in order flows.
func (s Status) Label() string {
	switch s {
	case StatusReported:
		return "reported"
	case StatusDispatched:
		return "dispatched"
	case StatusHandling:
		return "handling"
	case StatusEvaluating:
		return "pending evaluation"
	case StatusFinished:
		return "finished"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}
