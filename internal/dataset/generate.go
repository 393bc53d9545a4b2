package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// DefaultEpoch is the timestamp demo records are generated after.
//
//nolint:gochecknoglobals // Fixed reference time for reproducible demo data.
var DefaultEpoch = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

//nolint:gochecknoglobals // Static demo vocabularies.
var (
	merchants = []string{
		"Acme Coffee", "Blue Harbor Books", "Cedar Pharmacy", "Delta Fuel",
		"Evergreen Grocers", "Fjord Outfitters", "Granite Hardware", "Harbor Bistro",
	}
	locations  = []string{"Lagos", "Nairobi", "Accra", "Kigali", "Cairo", "Casablanca"}
	banks      = []string{"First Meridian", "Union Coast", "Northgate Trust"}
	channels   = []string{"card", "transfer", "ussd", "wallet"}
	currencies = []string{"USD", "EUR", "NGN", "KES"}

	transactionStatuses = []string{StatusSettled, StatusSettled, StatusSettled, StatusPending, StatusFailed, StatusRefunded, StatusReversed}
	terminalStatuses    = []string{TerminalOnline, TerminalOnline, TerminalOffline, TerminalMaintenance}
	settlementStatuses  = []string{SettlementPaid, SettlementPaid, SettlementQueued, SettlementOnHold, SettlementRejected}
)

// Generator produces deterministic demo records. Two generators with the
// same seed and epoch produce identical data.
type Generator struct {
	rng     *rand.Rand
	entropy *ulid.MonotonicEntropy
	epoch   time.Time
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed int64, epoch time.Time) *Generator {
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	//nolint:gosec // Demo data, not security sensitive.
	rng := rand.New(rand.NewSource(seed))
	return &Generator{
		rng:     rng,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed^0x5eed)), 0), //nolint:gosec // Demo ids.
		epoch:   epoch,
	}
}

func (g *Generator) id(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), g.entropy).String()
}

func (g *Generator) pick(from []string) string {
	return from[g.rng.Intn(len(from))]
}

// amount returns a random amount between lo and hi whole units with cents.
func (g *Generator) amount(lo, hi int) decimal.Decimal {
	cents := int64(lo*100 + g.rng.Intn((hi-lo)*100))
	return decimal.New(cents, -2)
}

// Transactions returns n transactions in creation order.
func (g *Generator) Transactions(n int) []Transaction {
	out := make([]Transaction, n)
	at := g.epoch
	for i := range out {
		at = at.Add(time.Duration(1+g.rng.Intn(90)) * time.Minute)
		out[i] = Transaction{
			ID:        g.id(at),
			Reference: fmt.Sprintf("TXN-%06d", i+1),
			Merchant:  g.pick(merchants),
			Amount:    g.amount(1, 2500),
			Currency:  g.pick(currencies),
			Status:    g.pick(transactionStatuses),
			Channel:   g.pick(channels),
			CreatedAt: at,
		}
	}
	return out
}

// Terminals returns n terminals.
func (g *Generator) Terminals(n int) []Terminal {
	out := make([]Terminal, n)
	for i := range out {
		seen := g.epoch.Add(time.Duration(g.rng.Intn(30*24)) * time.Hour)
		out[i] = Terminal{
			ID:       g.id(seen),
			Serial:   fmt.Sprintf("POS-%04X-%02d", g.rng.Intn(0xffff), i+1),
			Merchant: g.pick(merchants),
			Location: g.pick(locations),
			Status:   g.pick(terminalStatuses),
			LastSeen: seen,
		}
	}
	return out
}

// Settlements returns n settlement batches.
func (g *Generator) Settlements(n int) []Settlement {
	out := make([]Settlement, n)
	at := g.epoch
	for i := range out {
		at = at.Add(time.Duration(6+g.rng.Intn(18)) * time.Hour)
		gross := g.amount(500, 90000)
		out[i] = Settlement{
			ID:        g.id(at),
			Batch:     fmt.Sprintf("STL-%s-%03d", at.Format("20060102"), i+1),
			Merchant:  g.pick(merchants),
			Bank:      g.pick(banks),
			Gross:     gross,
			Fees:      gross.Mul(decimal.New(15, -3)).Round(2),
			Currency:  g.pick(currencies),
			Status:    g.pick(settlementStatuses),
			SettledAt: at,
		}
	}
	return out
}
