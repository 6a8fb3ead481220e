package rippled

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// Amount is one side of an offer: either an issued-currency object
// ({currency, issuer, value}) or a bare string of native drops.
type Amount struct {
	Native   bool
	Currency string
	Issuer   string
	Value    decimal.Decimal // drops when Native, whole units otherwise
}

// issuedAmount is the object form on the wire.
type issuedAmount struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	Value    string `json:"value"`
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var drops string
	if err := json.Unmarshal(data, &drops); err == nil {
		v, err := decimal.NewFromString(drops)
		if err != nil {
			return err
		}
		*a = Amount{Native: true, Value: v}
		return nil
	}

	var issued issuedAmount
	if err := json.Unmarshal(data, &issued); err != nil {
		return err
	}
	if issued.Currency == "" {
		return errors.New("amount object missing currency")
	}
	v, err := decimal.NewFromString(issued.Value)
	if err != nil {
		return err
	}
	*a = Amount{Currency: issued.Currency, Issuer: issued.Issuer, Value: v}
	return nil
}

// OfferFields are the offer-entry fields carried in a ledger diff.
// Previous snapshots only contain the fields that changed, so both
// sides are optional.
type OfferFields struct {
	Account   string  `json:"Account,omitempty"`
	TakerPays *Amount `json:"TakerPays,omitempty"`
	TakerGets *Amount `json:"TakerGets,omitempty"`
}

// NodeDiff is one affected ledger entry with its previous and final snapshots.
type NodeDiff struct {
	LedgerEntryType string       `json:"LedgerEntryType"`
	PreviousFields  *OfferFields `json:"PreviousFields,omitempty"`
	FinalFields     *OfferFields `json:"FinalFields,omitempty"`
}

// AffectedNode is the tagged variant wrapper used by transaction metadata.
type AffectedNode struct {
	ModifiedNode *NodeDiff `json:"ModifiedNode,omitempty"`
	DeletedNode  *NodeDiff `json:"DeletedNode,omitempty"`
	CreatedNode  *NodeDiff `json:"CreatedNode,omitempty"`
}

// Diff returns the modified or deleted entry. Created entries were not
// consumed in this transaction, so they return nil.
func (n AffectedNode) Diff() *NodeDiff {
	if n.ModifiedNode != nil {
		return n.ModifiedNode
	}
	return n.DeletedNode
}

// Meta is the transaction metadata attached by the ledger.
type Meta struct {
	TransactionResult string         `json:"TransactionResult"`
	TransactionIndex  int64          `json:"TransactionIndex"`
	AffectedNodes     []AffectedNode `json:"AffectedNodes"`
}

// Transaction is a fully-resolved transaction as returned by the tx command.
type Transaction struct {
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	Hash            string `json:"hash"`
	LedgerIndex     int64  `json:"ledger_index"`
	Meta            *Meta  `json:"meta,omitempty"`
}

// Ledger is the slim form returned by the ledger command with
// transactions:true, expand:false.
type Ledger struct {
	Accepted     bool     `json:"accepted"`
	CloseTime    int64    `json:"close_time"`
	LedgerIndex  string   `json:"ledger_index"`
	Transactions []string `json:"transactions"`
}

// response is the command envelope every reply arrives in.
type response struct {
	ID     int64           `json:"id"`
	Status string          `json:"status"`
	Type   string          `json:"type"`
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

type currentIndexResult struct {
	LedgerCurrentIndex int64 `json:"ledger_current_index"`
}

type ledgerResult struct {
	Ledger *Ledger `json:"ledger"`
}
