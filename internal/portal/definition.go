package portal

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paydesk/paydesk/internal/dataset"
	"github.com/paydesk/paydesk/internal/grid"
	"github.com/paydesk/paydesk/internal/logging"
)

// Action labels shared across portals.
const (
	ActionExport  = "Export CSV"
	ActionRefresh = "Refresh"
	ActionRefund  = "Refund"
	ActionFlag    = "Flag for review"
	ActionPing    = "Ping"
	ActionRelease = "Release hold"
)

// Definition is everything needed to put one portal's table on screen.
type Definition[R any] struct {
	Role         Role
	Entity       Entity
	Columns      []grid.Column[R]
	Actions      []grid.Action[R]
	RowID        func(R) string
	Source       dataset.Fetcher[R]
	EmptyMessage string
}

// NewTable builds the grid for the definition. The definition's empty
// message is used unless cfg sets its own.
func (d Definition[R]) NewTable(cfg grid.Config, opts ...grid.Option[R]) (*grid.Table[R], error) {
	if cfg.EmptyMessage == "" || cfg.EmptyMessage == grid.DefaultEmptyMessage {
		cfg.EmptyMessage = d.EmptyMessage
	}
	return grid.New(cfg, d.Columns, d.Actions, d.RowID, opts...)
}

// Column returns the column with id.
func (d Definition[R]) Column(id string) (grid.Column[R], bool) {
	for _, c := range d.Columns {
		if c.ID == id || c.SortKey() == id {
			return c, true
		}
	}
	return grid.Column[R]{}, false
}

//nolint:gochecknoglobals // Static status palettes.
var (
	transactionBadges = map[string]grid.BadgeVariant{
		dataset.StatusSettled:  grid.BadgeSuccess,
		dataset.StatusPending:  grid.BadgeWarning,
		dataset.StatusFailed:   grid.BadgeDanger,
		dataset.StatusRefunded: grid.BadgeInfo,
		dataset.StatusReversed: grid.BadgeMuted,
	}
	terminalBadges = map[string]grid.BadgeVariant{
		dataset.TerminalOnline:      grid.BadgeSuccess,
		dataset.TerminalOffline:     grid.BadgeDanger,
		dataset.TerminalMaintenance: grid.BadgeWarning,
	}
	settlementBadges = map[string]grid.BadgeVariant{
		dataset.SettlementPaid:     grid.BadgeSuccess,
		dataset.SettlementQueued:   grid.BadgeInfo,
		dataset.SettlementOnHold:   grid.BadgeWarning,
		dataset.SettlementRejected: grid.BadgeDanger,
	}
)

func money(amount decimal.Decimal, currency string) grid.Cell {
	return grid.Cell{Text: amount.StringFixed(2) + " " + currency, Align: grid.AlignRight, Style: "amount"}
}

func exportAction[R any](entity Entity, exp *Exporter, columns []grid.Column[R]) grid.Action[R] {
	return grid.Action[R]{
		Label:             ActionExport,
		Icon:              "⇩",
		Variant:           grid.ActionOutline,
		RequiresSelection: true,
		Handler: func(ctx context.Context, rows []R) error {
			_, err := Export(ctx, exp, entity, columns, rows)
			return err
		},
	}
}

func refreshAction[R any]() grid.Action[R] {
	return grid.Action[R]{
		Label:   ActionRefresh,
		Icon:    "↻",
		Handler: func(context.Context, []R) error { return nil },
	}
}

// TransactionColumns are the transaction table columns.
func TransactionColumns() []grid.Column[dataset.Transaction] {
	return []grid.Column[dataset.Transaction]{
		{
			ID:            "reference",
			Header:        "Reference",
			Value:         func(t dataset.Transaction) any { return t.Reference },
			EnableSorting: true,
			Width:         12,
		},
		{
			ID:            "merchant",
			Header:        "Merchant",
			Value:         func(t dataset.Transaction) any { return t.Merchant },
			EnableSorting: true,
			EnableHiding:  true,
			Width:         18,
		},
		{
			ID:            "amount",
			Header:        "Amount",
			Value:         func(t dataset.Transaction) any { return t.Amount },
			Cell:          grid.CustomCell[dataset.Transaction]{Fn: func(t dataset.Transaction) grid.Cell { return money(t.Amount, t.Currency) }},
			EnableSorting: true,
			Width:         14,
		},
		{
			ID:     "status",
			Header: "Status",
			Value:  func(t dataset.Transaction) any { return t.Status },
			Cell: grid.BadgeCell[dataset.Transaction]{
				Value:    func(t dataset.Transaction) string { return t.Status },
				Variants: transactionBadges,
			},
			EnableSorting: true,
			Width:         10,
		},
		{
			ID:           "channel",
			Header:       "Channel",
			Value:        func(t dataset.Transaction) any { return t.Channel },
			EnableHiding: true,
			Width:        9,
		},
		{
			ID:            "created_at",
			Header:        "Created",
			Value:         func(t dataset.Transaction) any { return t.CreatedAt },
			EnableSorting: true,
			EnableHiding:  true,
			Width:         16,
		},
	}
}

// Transactions is the portal for admins and merchants.
func Transactions(role Role, src dataset.Fetcher[dataset.Transaction], exp *Exporter) Definition[dataset.Transaction] {
	columns := TransactionColumns()
	actions := []grid.Action[dataset.Transaction]{
		refreshAction[dataset.Transaction](),
		exportAction(EntityTransactions, exp, columns),
		{
			Label:             ActionRefund,
			Icon:              "↩",
			Variant:           grid.ActionDestructive,
			RequiresSelection: true,
			Disabled: func(sel []dataset.Transaction) bool {
				for _, t := range sel {
					if t.Status != dataset.StatusSettled {
						return true
					}
				}
				return false
			},
			Handler: func(ctx context.Context, sel []dataset.Transaction) error {
				total := decimal.Zero
				for _, t := range sel {
					total = total.Add(t.Amount)
				}
				logging.FromContext(ctx).Info().
					Int("count", len(sel)).
					Str("total", total.StringFixed(2)).
					Msg("refund requested")
				return nil
			},
		},
	}
	if role == RoleAdmin {
		actions = append(actions, grid.Action[dataset.Transaction]{
			Label:             ActionFlag,
			Icon:              "⚑",
			RequiresSelection: true,
			Handler: func(ctx context.Context, sel []dataset.Transaction) error {
				refs := make([]string, len(sel))
				for i, t := range sel {
					refs[i] = t.Reference
				}
				logging.FromContext(ctx).Info().Str("references", strings.Join(refs, ",")).Msg("flagged for review")
				return nil
			},
		})
	}
	return Definition[dataset.Transaction]{
		Role:         role,
		Entity:       EntityTransactions,
		Columns:      columns,
		Actions:      actions,
		RowID:        dataset.Transaction.RowID,
		Source:       src,
		EmptyMessage: "No transactions",
	}
}

// TerminalColumns are the terminal table columns.
func TerminalColumns() []grid.Column[dataset.Terminal] {
	return []grid.Column[dataset.Terminal]{
		{ID: "serial", Header: "Serial", Value: func(t dataset.Terminal) any { return t.Serial }, EnableSorting: true, Width: 14},
		{ID: "merchant", Header: "Merchant", Value: func(t dataset.Terminal) any { return t.Merchant }, EnableSorting: true, EnableHiding: true, Width: 18},
		{ID: "location", Header: "Location", Value: func(t dataset.Terminal) any { return t.Location }, EnableSorting: true, EnableHiding: true, Width: 12},
		{
			ID:     "status",
			Header: "Status",
			Value:  func(t dataset.Terminal) any { return t.Status },
			Cell: grid.BadgeCell[dataset.Terminal]{
				Value:    func(t dataset.Terminal) string { return t.Status },
				Variants: terminalBadges,
			},
			EnableSorting: true,
			Width:         12,
		},
		{ID: "last_seen", Header: "Last seen", Value: func(t dataset.Terminal) any { return t.LastSeen }, EnableSorting: true, EnableHiding: true, Width: 16},
	}
}

// Terminals is the sub-merchant portal.
func Terminals(src dataset.Fetcher[dataset.Terminal], exp *Exporter) Definition[dataset.Terminal] {
	columns := TerminalColumns()
	return Definition[dataset.Terminal]{
		Role:    RoleSubMerchant,
		Entity:  EntityTerminals,
		Columns: columns,
		Actions: []grid.Action[dataset.Terminal]{
			refreshAction[dataset.Terminal](),
			exportAction(EntityTerminals, exp, columns),
			{
				Label:             ActionPing,
				Icon:              "◎",
				Variant:           grid.ActionPrimary,
				RequiresSelection: true,
				Disabled: func(sel []dataset.Terminal) bool {
					for _, t := range sel {
						if t.Status == dataset.TerminalMaintenance {
							return true
						}
					}
					return false
				},
				Handler: func(ctx context.Context, sel []dataset.Terminal) error {
					logging.FromContext(ctx).Info().Int("count", len(sel)).Msg("terminal ping sent")
					return nil
				},
			},
		},
		RowID:        dataset.Terminal.RowID,
		Source:       src,
		EmptyMessage: "No terminals",
	}
}

// SettlementColumns are the settlement table columns.
func SettlementColumns() []grid.Column[dataset.Settlement] {
	return []grid.Column[dataset.Settlement]{
		{ID: "batch", Header: "Batch", Value: func(s dataset.Settlement) any { return s.Batch }, EnableSorting: true, Width: 20},
		{ID: "merchant", Header: "Merchant", Value: func(s dataset.Settlement) any { return s.Merchant }, EnableSorting: true, EnableHiding: true, Width: 18},
		{ID: "bank", Header: "Bank", Value: func(s dataset.Settlement) any { return s.Bank }, EnableSorting: true, EnableHiding: true, Width: 16},
		{
			ID:            "net",
			Header:        "Net",
			Value:         func(s dataset.Settlement) any { return s.Net() },
			Cell:          grid.CustomCell[dataset.Settlement]{Fn: func(s dataset.Settlement) grid.Cell { return money(s.Net(), s.Currency) }},
			EnableSorting: true,
			Width:         16,
		},
		{
			ID:     "status",
			Header: "Status",
			Value:  func(s dataset.Settlement) any { return s.Status },
			Cell: grid.BadgeCell[dataset.Settlement]{
				Value:    func(s dataset.Settlement) string { return s.Status },
				Variants: settlementBadges,
			},
			EnableSorting: true,
			Width:         10,
		},
		{ID: "settled_at", Header: "Settled", Value: func(s dataset.Settlement) any { return s.SettledAt }, EnableSorting: true, EnableHiding: true, Width: 16},
	}
}

// Settlements is the partner-bank portal.
func Settlements(src dataset.Fetcher[dataset.Settlement], exp *Exporter) Definition[dataset.Settlement] {
	columns := SettlementColumns()
	return Definition[dataset.Settlement]{
		Role:    RolePartnerBank,
		Entity:  EntitySettlements,
		Columns: columns,
		Actions: []grid.Action[dataset.Settlement]{
			refreshAction[dataset.Settlement](),
			exportAction(EntitySettlements, exp, columns),
			{
				Label:             ActionRelease,
				Icon:              "▶",
				Variant:           grid.ActionPrimary,
				RequiresSelection: true,
				Disabled: func(sel []dataset.Settlement) bool {
					for _, s := range sel {
						if s.Status != dataset.SettlementOnHold {
							return true
						}
					}
					return false
				},
				Handler: func(ctx context.Context, sel []dataset.Settlement) error {
					logging.FromContext(ctx).Info().Int("count", len(sel)).Msg("settlement hold released")
					return nil
				},
			},
		},
		RowID:        dataset.Settlement.RowID,
		Source:       src,
		EmptyMessage: "No settlements",
	}
}
