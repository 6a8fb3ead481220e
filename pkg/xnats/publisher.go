// Package xnats publishes stored trade events to a JetStream subject per
// market. Publishing is best-effort: the ingest pipeline never blocks on a
// slow or absent consumer.
package xnats

import (
	"encoding/json"
	"errors"

	"rippletick/pkg/model"
	"rippletick/pkg/xlog"

	"github.com/nats-io/nats.go"
)

var logger = xlog.GetLogger()

// Publisher wraps one JetStream context.
type Publisher struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the trade stream exists.
func NewPublisher(url string) (p *Publisher, err error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return
	}

	js, err := nc.JetStream(nats.PublishAsyncMaxPending(256))
	if err != nil {
		nc.Close()
		return
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPrefix + "*"},
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return
	}

	logger.Infof("nats publisher connected to %s", url)

	return &Publisher{nc: nc, js: js}, nil
}

// PublishTrade sends one stored event to its market subject.
func (p *Publisher) PublishTrade(ev *model.TradeEvent) (err error) {
	msg := TradeMsg{
		Market:    ev.Market,
		Currency1: ev.Currency1,
		Currency2: ev.Currency2,
		Amount1:   ev.Amount1,
		Amount2:   ev.Amount2,
		Price1:    ev.Price1,
		Price2:    ev.Price2,
		TxHash:    ev.TxHash,
		TxDate:    ev.TxDate,
		Ledger:    ev.LedgerIndex,
		Accepted:  ev.Accepted,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	_, err = p.js.Publish(SubjectPrefix+ev.Market, data)
	return
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
