package ledger

import "github.com/shopspring/decimal"

// Status is the result of a debit attempt
type Status int

const (
	StatusSuccess Status = iota
	StatusInsufficientBalance
	StatusInvalidTagID
	StatusInvalidTollAmount
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusInsufficientBalance:
		return "Insufficient Balance"
	case StatusInvalidTagID:
		return "Invalid Tag ID"
	case StatusInvalidTollAmount:
		return "Invalid Toll Amount"
	default:
		return "Unknown Status"
	}
}

// Outcome is what a debit returns. Balance is nil unless Status is StatusSuccess.
type Outcome struct {
	Balance *decimal.Decimal
	Status  Status
}

// OK reports whether the debit went through
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

func rejected(s Status) Outcome {
	return Outcome{Status: s}
}
