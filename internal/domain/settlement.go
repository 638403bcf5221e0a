package domain

import "github.com/shopspring/decimal"

// SettlementEvent is a normalized payment-provider signal kind.
type SettlementEvent string

const (
	EventDepositSucceeded    SettlementEvent = "deposit.succeeded"
	EventDepositFailed       SettlementEvent = "deposit.failed"
	EventWithdrawalSucceeded SettlementEvent = "withdrawal.succeeded"
	EventWithdrawalFailed    SettlementEvent = "withdrawal.failed"
)

// Succeeded reports whether the event confirms a settlement.
func (e SettlementEvent) Succeeded() bool {
	return e == EventDepositSucceeded || e == EventWithdrawalSucceeded
}

// AccountSide is the side of a transaction an account appears on.
type AccountSide string

const (
	SideSender   AccountSide = "sender"
	SideReceiver AccountSide = "receiver"
)

// Side returns which transaction side the provider event resolves against.
// Deposit initializations record the account on the sender side, withdrawal
// initiations on the receiver side.
func (e SettlementEvent) Side() AccountSide {
	switch e {
	case EventDepositSucceeded, EventDepositFailed:
		return SideSender
	default:
		return SideReceiver
	}
}

// SettlementSignal is the provider-agnostic shape a webhook push or a
// verify poll reduces to before touching the ledger.
type SettlementSignal struct {
	Event  SettlementEvent
	Email  string
	Amount decimal.Decimal
}
