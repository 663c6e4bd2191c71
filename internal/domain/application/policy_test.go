package application

import "testing"

func TestPolicyPendingTransitions(t *testing.T) {
	p := DefaultPolicy()

	if !p.Allows(StatusPending, StatusAccepted) {
		t.Fatal("pending -> accepted should be allowed")
	}
	if !p.Allows(StatusPending, StatusRejected) {
		t.Fatal("pending -> rejected should be allowed")
	}
	if p.Allows(StatusPending, StatusWithdrawn) {
		t.Fatal("a company cannot withdraw an application")
	}
	if p.Allows(StatusPending, StatusPending) {
		t.Fatal("pending -> pending is not a decision")
	}
}

func TestPolicyDecisionRevision(t *testing.T) {
	permissive := TransitionPolicy{AllowDecisionRevision: true}
	strict := TransitionPolicy{AllowDecisionRevision: false}

	if !permissive.Allows(StatusAccepted, StatusRejected) {
		t.Fatal("revision should allow accepted -> rejected")
	}
	if !permissive.Allows(StatusRejected, StatusAccepted) {
		t.Fatal("revision should allow rejected -> accepted")
	}
	if permissive.Allows(StatusAccepted, StatusAccepted) {
		t.Fatal("re-applying the same decision is not a transition")
	}
	if strict.Allows(StatusAccepted, StatusRejected) {
		t.Fatal("strict policy freezes decided applications")
	}
	if strict.Allows(StatusRejected, StatusAccepted) {
		t.Fatal("strict policy freezes decided applications")
	}
}

func TestPolicyWithdrawnIsTerminal(t *testing.T) {
	p := TransitionPolicy{AllowDecisionRevision: true}

	if p.Allows(StatusWithdrawn, StatusAccepted) {
		t.Fatal("withdrawn applications are out of the company's hands")
	}
	if p.Allows(StatusWithdrawn, StatusRejected) {
		t.Fatal("withdrawn applications are out of the company's hands")
	}
}
