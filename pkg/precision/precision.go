// Package precision defines the canonical quantization step for each currency.
package precision

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// NativeCurrency is the ledger's built-in asset code.
	NativeCurrency = "XRP"

	// RippleEpoch is the offset between ledger close times and unix timestamps.
	RippleEpoch int64 = 946684800
)

// NativeScale converts bare native amounts (drops) to whole units.
var NativeScale = decimal.New(1, 6)

var (
	quantumNXT     = decimal.RequireFromString("0.01")
	quantumNative  = decimal.RequireFromString("0.000001")
	quantumDefault = decimal.RequireFromString("0.00000001")
)

// Quantum returns the decimal step for the given currency code.
// Unknown currencies get the 8-decimal default step.
func Quantum(code string) decimal.Decimal {
	switch strings.ToUpper(code) {
	case "NXT":
		return quantumNXT
	case NativeCurrency:
		return quantumNative
	default:
		return quantumDefault
	}
}

// Places returns the number of decimal places in the currency's step.
func Places(code string) int32 {
	return -Quantum(code).Exponent()
}

// Quantize rounds v to the currency's step, half to even.
func Quantize(v decimal.Decimal, code string) decimal.Decimal {
	return v.RoundBank(Places(code))
}
