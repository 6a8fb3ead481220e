package model

import (
	"github.com/shopspring/decimal"
)

// OhlcBar model, one aggregation bucket per (start time, frequency, market).
// Both sides of the market carry their own price/volume columns.
type OhlcBar struct {
	ID int64 `json:"id" gorm:"omitempty; primaryKey;"`

	StartTime int64  `json:"startTime" gorm:"omitempty; not null; default:0; uniqueindex:idx_bar_interval,priority:1;"` // bucket start, unix seconds
	Freq      string `json:"freq" gorm:"omitempty; not null; default:''; type:varchar(10); uniqueindex:idx_bar_interval,priority:2;"`
	Currency1 string `json:"currency1" gorm:"omitempty; not null; default:''; type:varchar(4); uniqueindex:idx_bar_interval,priority:3;"`
	Currency2 string `json:"currency2" gorm:"omitempty; not null; default:''; type:varchar(4); uniqueindex:idx_bar_interval,priority:4;"`

	Open1     decimal.Decimal `json:"open1" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	High1     decimal.Decimal `json:"high1" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	Low1      decimal.Decimal `json:"low1" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	Close1    decimal.Decimal `json:"close1" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	Volume1   decimal.Decimal `json:"volume1" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	MedPrice1 decimal.Decimal `json:"medPrice1" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`

	Open2     decimal.Decimal `json:"open2" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	High2     decimal.Decimal `json:"high2" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	Low2      decimal.Decimal `json:"low2" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	Close2    decimal.Decimal `json:"close2" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	Volume2   decimal.Decimal `json:"volume2" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`
	MedPrice2 decimal.Decimal `json:"medPrice2" gorm:"omitempty; not null; default:0; type:decimal(24,8);"`

	Model
}
