// Package resample aggregates the trade-event log into fixed-interval
// OHLC bars, one pass per market per frequency. Incremental passes start
// at the stored watermark instead of reprocessing the whole log.
package resample

import (
	"sort"

	"rippletick/pkg/model"
	"rippletick/pkg/xlog"

	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

var logger = xlog.GetLogger()

// bar outputs always use the 8-decimal convention of the bar table.
const barPlaces = 8

// EventSource is the store capability the engine reads from.
type EventSource interface {
	DistinctMarkets() ([]model.Market, error)
	EventsSince(market string, since int64) ([]model.TradeEvent, error)
}

// BarSink is the store capability the engine writes to.
type BarSink interface {
	SaveBars(bars []model.OhlcBar) error
	MaxBucketStart() (int64, error)
	RebuildBarIndex() error
}

// Engine resamples every market once per Run call.
type Engine struct {
	Source EventSource
	Sink   BarSink

	Full        bool
	Frequencies []Freq

	Written int64
}

// New returns an Engine over the given store handles.
func New(source EventSource, sink BarSink, full bool, freqs []Freq) *Engine {
	if len(freqs) == 0 {
		freqs = Frequencies
	}
	return &Engine{
		Source:      source,
		Sink:        sink,
		Full:        full,
		Frequencies: freqs,
	}
}

// Run resamples every market at every configured frequency, then rebuilds
// the bar lookup index.
func (e *Engine) Run() (err error) {
	defer func() {
		if err != nil {
			logger.Errorf("resampling failed with err:%s", err)
		} else {
			logger.Infof("resampling done, %d bar records written", e.Written)
		}
	}()

	since := int64(0)
	if !e.Full {
		since, err = e.Sink.MaxBucketStart()
		if err != nil {
			return
		}
	}

	markets, err := e.Source.DistinctMarkets()
	if err != nil {
		return
	}
	logger.Infof("resampling %d markets from watermark %d", len(markets), since)

	for _, market := range markets {
		var events []model.TradeEvent
		events, err = e.Source.EventsSince(market.Key(), since)
		if err != nil {
			return
		}
		if len(events) == 0 {
			continue
		}

		for _, freq := range e.Frequencies {
			bars := Resample(events, market, freq)
			if len(bars) == 0 {
				continue
			}
			err = e.Sink.SaveBars(bars)
			if err != nil {
				return
			}
			e.Written += int64(len(bars))
		}
		logger.Debugf("market %s resampled from %d events", market.Key(), len(events))
	}

	return e.Sink.RebuildBarIndex()
}

// bucket accumulates one bar's inputs. Prices keep event order so that
// open and close fall out of the ends of the slice.
type bucket struct {
	start int64

	prices1 []decimal.Decimal
	prices2 []decimal.Decimal
	volume1 decimal.Decimal
	volume2 decimal.Decimal
}

func (b *bucket) Less(than btree.Item) bool {
	return b.start < than.(*bucket).start
}

// Resample groups one market's time-ordered events into aligned buckets
// and computes a bar per non-empty bucket. Pure.
func Resample(events []model.TradeEvent, market model.Market, freq Freq) []model.OhlcBar {
	tree := btree.New(2)
	index := map[int64]*bucket{}

	for _, ev := range events {
		start := freq.Align(ev.TxDate)
		b, ok := index[start]
		if !ok {
			b = &bucket{start: start}
			index[start] = b
			tree.ReplaceOrInsert(b)
		}
		b.prices1 = append(b.prices1, ev.Price1)
		b.prices2 = append(b.prices2, ev.Price2)
		b.volume1 = b.volume1.Add(ev.Amount1)
		b.volume2 = b.volume2.Add(ev.Amount2)
	}

	bars := make([]model.OhlcBar, 0, tree.Len())
	tree.Ascend(func(item btree.Item) bool {
		b := item.(*bucket)
		if len(b.prices1) == 0 || len(b.prices2) == 0 {
			return true
		}
		bars = append(bars, model.OhlcBar{
			StartTime: b.start,
			Freq:      freq.Code,
			Currency1: market.Currency1,
			Currency2: market.Currency2,

			Open1:     q(b.prices1[0]),
			High1:     q(maxOf(b.prices1)),
			Low1:      q(minOf(b.prices1)),
			Close1:    q(b.prices1[len(b.prices1)-1]),
			Volume1:   q(b.volume1),
			MedPrice1: q(median(b.prices1)),

			Open2:     q(b.prices2[0]),
			High2:     q(maxOf(b.prices2)),
			Low2:      q(minOf(b.prices2)),
			Close2:    q(b.prices2[len(b.prices2)-1]),
			Volume2:   q(b.volume2),
			MedPrice2: q(median(b.prices2)),
		})
		return true
	})

	return bars
}

func q(v decimal.Decimal) decimal.Decimal {
	return v.RoundBank(barPlaces)
}

func maxOf(ps []decimal.Decimal) decimal.Decimal {
	max := ps[0]
	for _, p := range ps[1:] {
		if p.GreaterThan(max) {
			max = p
		}
	}
	return max
}

func minOf(ps []decimal.Decimal) decimal.Decimal {
	min := ps[0]
	for _, p := range ps[1:] {
		if p.LessThan(min) {
			min = p
		}
	}
	return min
}

// median returns the statistical median: the middle element of the sorted
// prices, or the mean of the two middle elements for an even count.
func median(ps []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(ps))
	copy(sorted, ps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
