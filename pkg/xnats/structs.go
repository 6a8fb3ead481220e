package xnats

import "github.com/shopspring/decimal"

// TradeMsg is the wire form of a stored trade event, published for
// downstream consumers (charting, alerting).
type TradeMsg struct {
	Market    string          `json:"market"`
	Currency1 string          `json:"currency1"`
	Currency2 string          `json:"currency2"`
	Amount1   decimal.Decimal `json:"amount1"`
	Amount2   decimal.Decimal `json:"amount2"`
	Price1    decimal.Decimal `json:"price1"`
	Price2    decimal.Decimal `json:"price2"`
	TxHash    string          `json:"txHash"`
	TxDate    int64           `json:"txDate"`   // unix seconds
	Ledger    int64           `json:"ledger"`   // ledger index
	Accepted  bool            `json:"accepted"` // ledger finality flag
}

const (
	StreamName    = "TRADES"
	SubjectPrefix = "TRADES." // this+market
)
