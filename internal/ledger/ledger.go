package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidSeed is returned when an account seed entry cannot be used
var ErrInvalidSeed = errors.New("invalid account seed")

// DefaultSeed returns the opening balances for the three simulated tags
func DefaultSeed() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"FASTAG1": decimal.NewFromFloat(50.0),
		"FASTAG2": decimal.NewFromFloat(75.0),
		"FASTAG3": decimal.NewFromFloat(100.0),
	}
}

// Ledger holds the in-memory tag balances. It has a single owner and is not
// safe for concurrent use.
type Ledger struct {
	accounts map[string]decimal.Decimal
}

// New creates a Ledger holding a copy of seed
func New(seed map[string]decimal.Decimal) *Ledger {
	accounts := make(map[string]decimal.Decimal, len(seed))
	for label, balance := range seed {
		accounts[label] = balance
	}
	return &Ledger{accounts: accounts}
}

// Debit parses toll and subtracts it from the balance of tagID.
//
// Checks run in a fixed order and the first failing one decides the status:
// toll amount, then tag ID, then balance. The ledger is only changed when every
// check passes.
func (l *Ledger) Debit(tagID, toll string) Outcome {
	amount, err := decimal.NewFromString(strings.TrimSpace(toll))
	if err != nil {
		return rejected(StatusInvalidTollAmount)
	}
	return l.DebitAmount(tagID, amount)
}

// DebitAmount is Debit for an already parsed amount
func (l *Ledger) DebitAmount(tagID string, amount decimal.Decimal) Outcome {
	if !amount.IsPositive() {
		return rejected(StatusInvalidTollAmount)
	}

	balance, ok := l.accounts[tagID]
	if !ok {
		return rejected(StatusInvalidTagID)
	}
	if balance.LessThan(amount) {
		return rejected(StatusInsufficientBalance)
	}

	newBalance := balance.Sub(amount)
	l.accounts[tagID] = newBalance
	return Outcome{Balance: &newBalance, Status: StatusSuccess}
}

// Balance returns the current balance for tagID
func (l *Ledger) Balance(tagID string) (decimal.Decimal, bool) {
	balance, ok := l.accounts[tagID]
	return balance, ok
}

// Labels returns the account labels in sorted order
func (l *Ledger) Labels() []string {
	labels := make([]string, 0, len(l.accounts))
	for label := range l.accounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Snapshot returns a copy of every balance
func (l *Ledger) Snapshot() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(l.accounts))
	for label, balance := range l.accounts {
		out[label] = balance
	}
	return out
}

// String renders the ledger as {LABEL: balance, ...} with labels sorted
func (l *Ledger) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, label := range l.Labels() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", label, l.accounts[label].String())
	}
	sb.WriteString("}")
	return sb.String()
}

// ParseSeed builds opening balances from LABEL=AMOUNT entries
func ParseSeed(entries []string) (map[string]decimal.Decimal, error) {
	seed := make(map[string]decimal.Decimal, len(entries))
	for _, entry := range entries {
		label, raw, found := strings.Cut(entry, "=")
		label = strings.TrimSpace(label)
		if !found || label == "" {
			return nil, fmt.Errorf("%w: %q is not LABEL=AMOUNT", ErrInvalidSeed, entry)
		}
		if _, dup := seed[label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidSeed, label)
		}
		balance, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: parsing balance for %q: %v", ErrInvalidSeed, label, err)
		}
		if balance.IsNegative() {
			return nil, fmt.Errorf("%w: negative balance for %q", ErrInvalidSeed, label)
		}
		seed[label] = balance
	}
	return seed, nil
}
