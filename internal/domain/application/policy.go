package application

// TransitionPolicy is the explicit set of company-driven status transitions.
// Withdrawal is handled separately and always requires a pending application.
type TransitionPolicy struct {
	// AllowDecisionRevision permits overwriting an accepted application with
	// rejected and vice versa, so a company can revise its decision.
	AllowDecisionRevision bool
}

func DefaultPolicy() TransitionPolicy {
	return TransitionPolicy{AllowDecisionRevision: true}
}

// Allows reports whether a company may move an application from one status to
// another. A withdrawn application is out of the company's hands.
func (p TransitionPolicy) Allows(from, to Status) bool {
	if to != StatusAccepted && to != StatusRejected {
		return false
	}
	switch from {
	case StatusPending:
		return true
	case StatusAccepted, StatusRejected:
		return p.AllowDecisionRevision && from != to
	default:
		return false
	}
}
