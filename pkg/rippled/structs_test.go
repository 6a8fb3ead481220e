package rippled

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshalNative(t *testing.T) {
	var a Amount
	err := json.Unmarshal([]byte(`"1500000"`), &a)
	require.Nil(t, err)
	assert.True(t, a.Native)
	assert.Equal(t, "", a.Currency)
	assert.Equal(t, "", a.Issuer)
	assert.Equal(t, "1500000", a.Value.String())
}

func TestAmountUnmarshalIssued(t *testing.T) {
	var a Amount
	err := json.Unmarshal([]byte(`{"currency":"USD","issuer":"rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B","value":"35.125"}`), &a)
	require.Nil(t, err)
	assert.False(t, a.Native)
	assert.Equal(t, "USD", a.Currency)
	assert.Equal(t, "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B", a.Issuer)
	assert.Equal(t, "35.125", a.Value.String())
}

func TestAmountUnmarshalBad(t *testing.T) {
	var a Amount
	assert.NotNil(t, json.Unmarshal([]byte(`{"issuer":"r123","value":"1"}`), &a))
	assert.NotNil(t, json.Unmarshal([]byte(`"not a number"`), &a))
	assert.NotNil(t, json.Unmarshal([]byte(`{"currency":"USD","value":"nope"}`), &a))
}

func TestAffectedNodeDiff(t *testing.T) {
	raw := `[
		{"ModifiedNode":{"LedgerEntryType":"Offer","PreviousFields":{"TakerGets":"100"},"FinalFields":{"Account":"rAcc","TakerGets":"40"}}},
		{"DeletedNode":{"LedgerEntryType":"Offer","FinalFields":{"Account":"rAcc2"}}},
		{"CreatedNode":{"LedgerEntryType":"Offer"}}
	]`
	var nodes []AffectedNode
	require.Nil(t, json.Unmarshal([]byte(raw), &nodes))
	require.Len(t, nodes, 3)

	require.NotNil(t, nodes[0].Diff())
	assert.Equal(t, "Offer", nodes[0].Diff().LedgerEntryType)
	require.NotNil(t, nodes[0].Diff().PreviousFields)
	assert.True(t, nodes[0].Diff().PreviousFields.TakerGets.Native)
	assert.Nil(t, nodes[0].Diff().PreviousFields.TakerPays)

	require.NotNil(t, nodes[1].Diff())
	assert.Nil(t, nodes[1].Diff().PreviousFields)

	// created entries are never a consumption diff
	assert.Nil(t, nodes[2].Diff())
}

func TestLedgerUnmarshal(t *testing.T) {
	raw := `{"accepted":true,"close_time":472353260,"ledger_index":"8642813","transactions":["ABCD","EF01"]}`
	var l Ledger
	require.Nil(t, json.Unmarshal([]byte(raw), &l))
	assert.True(t, l.Accepted)
	assert.Equal(t, int64(472353260), l.CloseTime)
	assert.Equal(t, []string{"ABCD", "EF01"}, l.Transactions)
}

func TestTransactionUnmarshal(t *testing.T) {
	raw := `{
		"TransactionType":"Payment",
		"Account":"rSender",
		"hash":"ABCD",
		"ledger_index":8642813,
		"meta":{"TransactionResult":"tesSUCCESS","TransactionIndex":3,"AffectedNodes":[]}
	}`
	var tx Transaction
	require.Nil(t, json.Unmarshal([]byte(raw), &tx))
	assert.Equal(t, "Payment", tx.TransactionType)
	assert.Equal(t, int64(8642813), tx.LedgerIndex)
	require.NotNil(t, tx.Meta)
	assert.Equal(t, "tesSUCCESS", tx.Meta.TransactionResult)
	assert.Equal(t, int64(3), tx.Meta.TransactionIndex)
}
