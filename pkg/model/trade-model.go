package model

import (
	"github.com/shopspring/decimal"
)

// TradeEvent model, one row per consumed-offer exchange inferred from a
// payment transaction. Rows are written once and never updated.
type TradeEvent struct {
	ID int64 `json:"id" gorm:"omitempty; primaryKey;"`

	TxID   int64  `json:"txID" gorm:"omitempty; not null; default:0;"` // position within the ledger
	TxHash string `json:"txHash" gorm:"omitempty; not null; default:''; type:varchar(64); index:idx_trade_txhash;"`

	Market    string `json:"market" gorm:"omitempty; not null; default:''; type:varchar(8); index:idx_trade_market_date,priority:1;"`
	Currency1 string `json:"currency1" gorm:"omitempty; not null; default:''; type:varchar(4);"`
	Currency2 string `json:"currency2" gorm:"omitempty; not null; default:''; type:varchar(4);"`

	Amount1 decimal.Decimal `json:"amount1" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	Amount2 decimal.Decimal `json:"amount2" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	Price1  decimal.Decimal `json:"price1" gorm:"omitempty; not null; default:0; type:decimal(24,8);"` // amount2/amount1
	Price2  decimal.Decimal `json:"price2" gorm:"omitempty; not null; default:0; type:decimal(24,8);"` // amount1/amount2

	Issuer1  *string `json:"issuer1" gorm:"omitempty; type:varchar(64);"` // nil for the native asset
	Issuer2  *string `json:"issuer2" gorm:"omitempty; type:varchar(64);"`
	Account1 string  `json:"account1" gorm:"omitempty; not null; default:''; type:varchar(64);"` // owner of the consumed offer

	TxDate      int64 `json:"txDate" gorm:"omitempty; not null; default:0; index:idx_trade_market_date,priority:2;"` // unix seconds
	LedgerIndex int64 `json:"ledgerIndex" gorm:"omitempty; not null; default:0; index:idx_trade_ledger;"`
	Accepted    bool  `json:"accepted" gorm:"omitempty; not null; default:false;"`

	Model
}
