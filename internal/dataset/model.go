package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction statuses.
const (
	StatusSettled  = "settled"
	StatusPending  = "pending"
	StatusFailed   = "failed"
	StatusRefunded = "refunded"
	StatusReversed = "reversed"
)

// Terminal statuses.
const (
	TerminalOnline      = "online"
	TerminalOffline     = "offline"
	TerminalMaintenance = "maintenance"
)

// Settlement statuses.
const (
	SettlementPaid     = "paid"
	SettlementQueued   = "queued"
	SettlementOnHold   = "on-hold"
	SettlementRejected = "rejected"
)

// Transaction is a single card or transfer payment.
type Transaction struct {
	ID        string          `json:"id"         yaml:"id"`
	Reference string          `json:"reference"  yaml:"reference"`
	Merchant  string          `json:"merchant"   yaml:"merchant"`
	Amount    decimal.Decimal `json:"amount"     yaml:"amount"`
	Currency  string          `json:"currency"   yaml:"currency"`
	Status    string          `json:"status"     yaml:"status"`
	Channel   string          `json:"channel"    yaml:"channel"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
}

// Terminal is a point-of-sale device registered to a merchant.
type Terminal struct {
	ID       string    `json:"id"        yaml:"id"`
	Serial   string    `json:"serial"    yaml:"serial"`
	Merchant string    `json:"merchant"  yaml:"merchant"`
	Location string    `json:"location"  yaml:"location"`
	Status   string    `json:"status"    yaml:"status"`
	LastSeen time.Time `json:"last_seen" yaml:"last_seen"`
}

// Settlement is a payout batch from a partner bank to a merchant.
type Settlement struct {
	ID        string          `json:"id"         yaml:"id"`
	Batch     string          `json:"batch"      yaml:"batch"`
	Merchant  string          `json:"merchant"   yaml:"merchant"`
	Bank      string          `json:"bank"       yaml:"bank"`
	Gross     decimal.Decimal `json:"gross"      yaml:"gross"`
	Fees      decimal.Decimal `json:"fees"       yaml:"fees"`
	Currency  string          `json:"currency"   yaml:"currency"`
	Status    string          `json:"status"     yaml:"status"`
	SettledAt time.Time       `json:"settled_at" yaml:"settled_at"`
}

// Net is the amount paid out after fees.
func (s Settlement) Net() decimal.Decimal {
	return s.Gross.Sub(s.Fees)
}

// RowID returns the transaction id.
func (t Transaction) RowID() string { return t.ID }

// RowID returns the terminal id.
func (t Terminal) RowID() string { return t.ID }

// RowID returns the settlement id.
func (s Settlement) RowID() string { return s.ID }
