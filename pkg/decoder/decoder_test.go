package decoder_test

import (
	"testing"

	"rippletick/pkg/decoder"
	"rippletick/pkg/rippled"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
	testHash   = "BC02D079CB7B2087C70F857E6EDAFD72229887B9313C776890FB92D59CF3DD54"
)

func native(drops int64) *rippled.Amount {
	return &rippled.Amount{Native: true, Value: decimal.NewFromInt(drops)}
}

func issued(code, value string) *rippled.Amount {
	return &rippled.Amount{Currency: code, Issuer: testIssuer, Value: decimal.RequireFromString(value)}
}

func paymentTx(nodes ...rippled.AffectedNode) *rippled.Transaction {
	return &rippled.Transaction{
		TransactionType: "Payment",
		Account:         "rSender",
		Hash:            testHash,
		LedgerIndex:     8642813,
		Meta: &rippled.Meta{
			TransactionResult: "tesSUCCESS",
			TransactionIndex:  3,
			AffectedNodes:     nodes,
		},
	}
}

func offerNode(prevPays, prevGets, finalPays, finalGets *rippled.Amount) rippled.AffectedNode {
	return rippled.AffectedNode{
		ModifiedNode: &rippled.NodeDiff{
			LedgerEntryType: "Offer",
			PreviousFields:  &rippled.OfferFields{TakerPays: prevPays, TakerGets: prevGets},
			FinalFields:     &rippled.OfferFields{Account: "rOfferOwner", TakerPays: finalPays, TakerGets: finalGets},
		},
	}
}

func TestDecodeConsumedOffer(t *testing.T) {
	// previous TakerGets 100 USD, final 40 USD: 60 USD consumed
	// previous TakerPays 500 drops, final 200 drops: 0.0003 XRP consumed
	tx := paymentTx(offerNode(native(500), issued("USD", "100"), native(200), issued("USD", "40")))

	events := decoder.Decode(tx, 472353260, testHash, true)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "USDXRP", ev.Market)
	assert.Equal(t, "USD", ev.Currency1)
	assert.Equal(t, "XRP", ev.Currency2)
	assert.Equal(t, "60.00000000", ev.Amount1.StringFixed(8))
	assert.Equal(t, "0.000300", ev.Amount2.StringFixed(6))
	assert.Equal(t, "0.00000500", ev.Price1.StringFixed(8))
	assert.Equal(t, "200000.000000", ev.Price2.StringFixed(6))

	require.NotNil(t, ev.Issuer1)
	assert.Equal(t, testIssuer, *ev.Issuer1)
	assert.Nil(t, ev.Issuer2)

	assert.Equal(t, "rOfferOwner", ev.Account1)
	assert.Equal(t, int64(3), ev.TxID)
	assert.Equal(t, testHash, ev.TxHash)
	assert.Equal(t, int64(8642813), ev.LedgerIndex)
	assert.Equal(t, int64(472353260+946684800), ev.TxDate)
	assert.True(t, ev.Accepted)
}

func TestDecodeSwapSymmetry(t *testing.T) {
	// same economic trade with pays/gets legs exchanged must decode to the
	// same canonical event
	fwd := paymentTx(offerNode(native(500), issued("USD", "100"), native(200), issued("USD", "40")))
	rev := paymentTx(offerNode(issued("USD", "100"), native(500), issued("USD", "40"), native(200)))

	a := decoder.Decode(fwd, 472353260, testHash, true)
	b := decoder.Decode(rev, 472353260, testHash, true)
	require.Len(t, a, 1)
	require.Len(t, b, 1)

	assert.Equal(t, a[0].Currency1, b[0].Currency1)
	assert.Equal(t, a[0].Currency2, b[0].Currency2)
	assert.True(t, a[0].Amount1.Equal(b[0].Amount1))
	assert.True(t, a[0].Amount2.Equal(b[0].Amount2))
	assert.True(t, a[0].Price1.Equal(b[0].Price1))
	assert.True(t, a[0].Price2.Equal(b[0].Price2))
}

func TestDecodePriceQuantization(t *testing.T) {
	tx := paymentTx(offerNode(issued("BTC", "2"), issued("USD", "1000"), issued("BTC", "1"), issued("USD", "300")))

	events := decoder.Decode(tx, 0, testHash, true)
	require.Len(t, events, 1)

	ev := events[0]
	require.Equal(t, "BTC", ev.Currency1)
	require.Equal(t, "USD", ev.Currency2)
	// price1 = 700/1, price2 = 1/700 rounded half-even at 8 places
	assert.Equal(t, "700.00000000", ev.Price1.StringFixed(8))
	assert.Equal(t, "0.00142857", ev.Price2.StringFixed(8))
	assert.True(t, ev.Price1.Equal(ev.Amount2.Div(ev.Amount1).RoundBank(8)))
	assert.True(t, ev.Price2.Equal(ev.Amount1.Div(ev.Amount2).RoundBank(8)))
}

func TestDecodeRejectsNonPayment(t *testing.T) {
	tx := paymentTx(offerNode(native(500), issued("USD", "100"), native(200), issued("USD", "40")))
	tx.TransactionType = "OfferCreate"
	assert.Empty(t, decoder.Decode(tx, 0, testHash, true))
}

func TestDecodeRejectsFailedResult(t *testing.T) {
	tx := paymentTx(offerNode(native(500), issued("USD", "100"), native(200), issued("USD", "40")))
	tx.Meta.TransactionResult = "tecUNFUNDED_PAYMENT"
	assert.Empty(t, decoder.Decode(tx, 0, testHash, true))
}

func TestDecodeRejectsCreatedOffer(t *testing.T) {
	tx := paymentTx(rippled.AffectedNode{
		CreatedNode: &rippled.NodeDiff{
			LedgerEntryType: "Offer",
			FinalFields:     &rippled.OfferFields{Account: "rOfferOwner", TakerPays: native(200), TakerGets: issued("USD", "40")},
		},
	})
	assert.Empty(t, decoder.Decode(tx, 0, testHash, true))
}

func TestDecodeRejectsMissingPreviousSide(t *testing.T) {
	node := offerNode(native(500), issued("USD", "100"), native(200), issued("USD", "40"))
	node.ModifiedNode.PreviousFields.TakerPays = nil
	assert.Empty(t, decoder.Decode(paymentTx(node), 0, testHash, true))
}

func TestDecodeRejectsLongCurrencyCode(t *testing.T) {
	tx := paymentTx(offerNode(native(500), issued("0158415500000000C1F76FF6ECB0BAC6", "100"), native(200), issued("0158415500000000C1F76FF6ECB0BAC6", "40")))
	assert.Empty(t, decoder.Decode(tx, 0, testHash, true))
}

func TestDecodeRejectsNonPositiveAmounts(t *testing.T) {
	// nothing consumed on the gets side
	tx := paymentTx(offerNode(native(500), issued("USD", "40"), native(200), issued("USD", "40")))
	assert.Empty(t, decoder.Decode(tx, 0, testHash, true))

	// offer grew instead of shrinking
	tx = paymentTx(offerNode(native(500), issued("USD", "40"), native(200), issued("USD", "100")))
	assert.Empty(t, decoder.Decode(tx, 0, testHash, true))
}

func TestDecodeSkipsBadNodeKeepsGood(t *testing.T) {
	bad := offerNode(native(500), issued("USD", "100"), native(200), issued("USD", "100"))
	good := offerNode(native(500), issued("USD", "100"), native(200), issued("USD", "40"))
	nonOffer := rippled.AffectedNode{
		ModifiedNode: &rippled.NodeDiff{LedgerEntryType: "AccountRoot"},
	}

	events := decoder.Decode(paymentTx(bad, nonOffer, good), 0, testHash, true)
	require.Len(t, events, 1)
	assert.Equal(t, "USDXRP", events[0].Market)
}

func TestDecodeMultipleOffers(t *testing.T) {
	first := offerNode(native(500), issued("USD", "100"), native(200), issued("USD", "40"))
	second := offerNode(native(2000000), issued("EUR", "10"), native(1000000), issued("EUR", "5"))

	events := decoder.Decode(paymentTx(first, second), 0, testHash, false)
	require.Len(t, events, 2)
	assert.Equal(t, "USDXRP", events[0].Market)
	assert.Equal(t, "EURXRP", events[1].Market)
	assert.Equal(t, "1.000000", events[1].Amount2.StringFixed(6))
	assert.False(t, events[0].Accepted)
}

func TestDecodeNilMeta(t *testing.T) {
	assert.Empty(t, decoder.Decode(nil, 0, testHash, true))
	assert.Empty(t, decoder.Decode(&rippled.Transaction{TransactionType: "Payment"}, 0, testHash, true))
}
