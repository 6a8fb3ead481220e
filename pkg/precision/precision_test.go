package precision_test

import (
	"testing"

	"rippletick/pkg/precision"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantum(t *testing.T) {
	assert.Equal(t, "0.01", precision.Quantum("NXT").String())
	assert.Equal(t, "0.01", precision.Quantum("nxt").String())
	assert.Equal(t, "0.000001", precision.Quantum("XRP").String())
	assert.Equal(t, "0.00000001", precision.Quantum("USD").String())
	assert.Equal(t, "0.00000001", precision.Quantum("BTC").String())
	assert.Equal(t, "0.00000001", precision.Quantum("").String())
}

func TestPlaces(t *testing.T) {
	assert.Equal(t, int32(2), precision.Places("NXT"))
	assert.Equal(t, int32(6), precision.Places("XRP"))
	assert.Equal(t, int32(8), precision.Places("USD"))
}

func TestQuantize(t *testing.T) {
	v := decimal.RequireFromString("1.23456789999")
	assert.Equal(t, "1.23", precision.Quantize(v, "NXT").String())
	assert.Equal(t, "1.234568", precision.Quantize(v, "XRP").String())
	assert.Equal(t, "1.23456790", precision.Quantize(v, "USD").StringFixed(8))
}

func TestQuantizeHalfToEven(t *testing.T) {
	// .025 rounds down to .02, .035 rounds up to .04
	assert.Equal(t, "0.02", precision.Quantize(decimal.RequireFromString("0.025"), "NXT").String())
	assert.Equal(t, "0.04", precision.Quantize(decimal.RequireFromString("0.035"), "NXT").String())
}

func TestNativeScale(t *testing.T) {
	drops := decimal.NewFromInt(300)
	require.Equal(t, "0.0003", drops.Div(precision.NativeScale).String())
}
