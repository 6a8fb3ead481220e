// Package decoder turns payment transactions into trade events. A payment
// that consumes standing offers is the only price-discovery signal this
// system extracts; everything else decodes to nothing.
package decoder

import (
	"rippletick/pkg/model"
	"rippletick/pkg/precision"
	"rippletick/pkg/rippled"

	"github.com/shopspring/decimal"
)

const maxCurrencyLen = 3

// side is one leg of a consumed offer after normalization.
type side struct {
	currency string
	issuer   *string
	amount   decimal.Decimal
}

// Decode extracts zero or more trade events from a fully-resolved
// transaction. closeTime is the enclosing ledger's close time in ledger
// epoch seconds. Best-effort per affected node: a malformed diff is
// skipped, never the whole transaction.
func Decode(tx *rippled.Transaction, closeTime int64, txHash string, accepted bool) (events []model.TradeEvent) {
	if tx == nil || tx.Meta == nil {
		return nil
	}
	if tx.TransactionType != "Payment" || tx.Meta.TransactionResult != "tesSUCCESS" {
		return nil
	}

	for _, node := range tx.Meta.AffectedNodes {
		diff := node.Diff()
		if diff == nil || diff.LedgerEntryType != "Offer" {
			continue
		}
		// an entry without previous values was created, not consumed
		if diff.PreviousFields == nil || diff.FinalFields == nil {
			continue
		}
		if diff.PreviousFields.TakerPays == nil || diff.PreviousFields.TakerGets == nil {
			continue
		}

		pays, ok := consumed(diff.PreviousFields.TakerPays, diff.FinalFields.TakerPays)
		if !ok {
			continue
		}
		gets, ok := consumed(diff.PreviousFields.TakerGets, diff.FinalFields.TakerGets)
		if !ok {
			continue
		}

		if len(pays.currency) > maxCurrencyLen || len(gets.currency) > maxCurrencyLen {
			continue
		}
		if !pays.amount.IsPositive() || !gets.amount.IsPositive() {
			continue
		}

		// canonical side order: the lexicographically earlier code is side 1,
		// regardless of which leg was pays or gets
		a, b := pays, gets
		if gets.currency < pays.currency {
			a, b = gets, pays
		}

		events = append(events, model.TradeEvent{
			TxID:   tx.Meta.TransactionIndex,
			TxHash: txHash,

			Market:    a.currency + b.currency,
			Currency1: a.currency,
			Currency2: b.currency,

			Amount1: precision.Quantize(a.amount, a.currency),
			Amount2: precision.Quantize(b.amount, b.currency),
			Price1:  precision.Quantize(b.amount.Div(a.amount), a.currency),
			Price2:  precision.Quantize(a.amount.Div(b.amount), b.currency),

			Issuer1:  a.issuer,
			Issuer2:  b.issuer,
			Account1: diff.FinalFields.Account,

			TxDate:      closeTime + precision.RippleEpoch,
			LedgerIndex: tx.LedgerIndex,
			Accepted:    accepted,
		})
	}

	return events
}

// consumed computes previous − final for one leg and normalizes the native
// form (bare drops, no issuer) to whole units of the native currency.
func consumed(prev, final *rippled.Amount) (s side, ok bool) {
	if prev == nil || final == nil {
		return s, false
	}
	if prev.Native != final.Native {
		return s, false
	}

	if final.Native {
		s.currency = precision.NativeCurrency
		s.amount = prev.Value.Sub(final.Value).Div(precision.NativeScale)
		return s, true
	}

	if final.Currency == "" {
		return s, false
	}
	issuer := final.Issuer
	s.currency = final.Currency
	s.issuer = &issuer
	s.amount = prev.Value.Sub(final.Value)
	return s, true
}
