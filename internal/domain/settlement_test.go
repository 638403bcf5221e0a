package domain

import "testing"

func TestSettlementEvent_Side(t *testing.T) {
	tests := []struct {
		event SettlementEvent
		side  AccountSide
	}{
		{EventDepositSucceeded, SideSender},
		{EventDepositFailed, SideSender},
		{EventWithdrawalSucceeded, SideReceiver},
		{EventWithdrawalFailed, SideReceiver},
	}

	for _, tt := range tests {
		if got := tt.event.Side(); got != tt.side {
			t.Errorf("%s: expected side %s, got %s", tt.event, tt.side, got)
		}
	}
}

func TestSettlementEvent_Succeeded(t *testing.T) {
	if !EventDepositSucceeded.Succeeded() || !EventWithdrawalSucceeded.Succeeded() {
		t.Error("success events must report succeeded")
	}
	if EventDepositFailed.Succeeded() || EventWithdrawalFailed.Succeeded() {
		t.Error("failure events must not report succeeded")
	}
}
