// Package walker drives the backward traversal of the ledger history,
// feeding every transaction through the decoder and persisting the
// resulting trade events.
//
//	a. discover the current head index through the transport
//	b. walk from head-1 down to the halt index, one ledger per step
//	c. incremental runs halt at the highest stored ledger index and only
//	   re-check that single boundary ledger for duplicate hashes
//	d. per-ledger failures are logged and traversal continues; only
//	   persistence failures abort the run
package walker

import (
	"errors"
	"fmt"

	"rippletick/pkg/decoder"
	"rippletick/pkg/model"
	"rippletick/pkg/rippled"
	"rippletick/pkg/xlog"
)

var logger = xlog.GetLogger()

// ErrPersist marks store failures, which abort the whole run instead of
// skipping to the next ledger.
var ErrPersist = errors.New("persist failed")

// LedgerSource is the transport capability the walker needs.
type LedgerSource interface {
	CurrentIndex() (int64, error)
	Ledger(index int64) (*rippled.Ledger, error)
	Tx(hash string) (*rippled.Transaction, error)
	Close() error
}

// EventSink is the store capability the walker needs.
type EventSink interface {
	SaveEvent(ev *model.TradeEvent) error
	HashExists(hash string) (bool, error)
	MaxLedgerIndex() (int64, error)
}

// Publisher pushes stored events to downstream consumers. Optional.
type Publisher interface {
	PublishTrade(ev *model.TradeEvent) error
}

// Worker walks the ledger backward once per Run call.
type Worker struct {
	Dial func() (LedgerSource, error)
	Sink EventSink
	Pub  Publisher // may be nil

	Full    bool
	Genesis int64

	State string

	Head   int64 // head index at traversal start
	Cursor int64 // next ledger to fetch, decreasing
	Halt   int64 // lower bound, inclusive

	LedgersToRead int64
	LedgersRead   int64
	StoredTx      int64

	source LedgerSource
}

// New returns a Worker that dials the given rippled endpoint.
func New(url string, sink EventSink, full bool, genesis int64) *Worker {
	return &Worker{
		Dial: func() (LedgerSource, error) { return rippled.Connect(url) },
		Sink: sink,

		Full:    full,
		Genesis: genesis,

		State: "Disconnected",
	}
}

// Run performs one full traversal:
// Disconnected -> Connected -> IndexDiscovered -> Traversing -> Drained.
func (w *Worker) Run() (err error) {
	defer func() {
		if err != nil {
			logger.Errorf("traversal failed in state %s with err:%s", w.State, err)
		} else {
			logger.Infof("traversal drained, read %d ledgers, stored %d events", w.LedgersRead, w.StoredTx)
		}
	}()

	w.source, err = w.Dial()
	if err != nil {
		return
	}
	defer w.source.Close()
	w.State = "Connected"

	w.Head, err = w.source.CurrentIndex()
	if err != nil {
		return fmt.Errorf("discover head index: %w", err)
	}
	w.State = "IndexDiscovered"

	err = w.findHalt()
	if err != nil {
		return
	}

	w.Cursor = w.Head - 1
	w.LedgersToRead = w.Head - w.Halt
	w.State = "Traversing"
	logger.Infof("reading from ledger %d to %d", w.Head, w.Halt)

	for w.Cursor >= w.Halt {
		err = w.step()
		if err != nil {
			if errors.Is(err, ErrPersist) {
				return
			}
			// transport and decode failures skip to the next ledger
			logger.Errorf("ledger %d failed with err:%s", w.Cursor, err)
			err = nil
		}

		w.Cursor--
		w.LedgersRead++
		w.progress()
	}

	w.State = "Drained"
	return nil
}

// findHalt picks the traversal lower bound: genesis on a full run, the
// highest stored ledger index on an incremental run.
func (w *Worker) findHalt() (err error) {
	w.Halt = w.Genesis
	if w.Full {
		return nil
	}

	max, err := w.Sink.MaxLedgerIndex()
	if err != nil {
		return fmt.Errorf("find halt index: %w", err)
	}
	if max > 0 {
		w.Halt = max
	}
	return nil
}

// step processes the single ledger at the cursor.
func (w *Worker) step() (err error) {
	ledger, err := w.source.Ledger(w.Cursor)
	if err != nil {
		return
	}

	// only the exact resume ledger is re-checked for duplicates, every
	// ledger above it is known-new
	boundary := !w.Full && w.Cursor == w.Halt

	for _, hash := range ledger.Transactions {
		if boundary {
			exists, err2 := w.Sink.HashExists(hash)
			if err2 != nil {
				return fmt.Errorf("%w: dedup check %s: %s", ErrPersist, hash, err2)
			}
			if exists {
				continue
			}
		}

		tx, err2 := w.source.Tx(hash)
		if err2 != nil {
			logger.Warningf("tx %s fetch failed with err:%s", hash, err2)
			continue
		}

		events := decoder.Decode(tx, ledger.CloseTime, hash, ledger.Accepted)
		for i := range events {
			if err2 := w.Sink.SaveEvent(&events[i]); err2 != nil {
				return fmt.Errorf("%w: save event %s: %s", ErrPersist, hash, err2)
			}
			w.StoredTx++

			if w.Pub != nil {
				if err2 := w.Pub.PublishTrade(&events[i]); err2 != nil {
					logger.Warningf("publish trade %s failed with err:%s", hash, err2)
				}
			}
		}
	}

	return nil
}

func (w *Worker) progress() {
	if w.LedgersToRead <= 0 {
		return
	}
	pct := float64(w.LedgersRead) / float64(w.LedgersToRead) * 100
	if w.LedgersRead%100 == 0 || w.LedgersRead == w.LedgersToRead {
		logger.Infof("read %d/%d [%.1f%%] ledgers (%d events)",
			w.LedgersRead, w.LedgersToRead, pct, w.StoredTx)
	} else {
		logger.Tracef("read %d/%d [%.1f%%] ledgers (%d events)",
			w.LedgersRead, w.LedgersToRead, pct, w.StoredTx)
	}
}
