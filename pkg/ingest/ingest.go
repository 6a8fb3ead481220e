// Package ingest ties the walker and the resampler into repeating cycles:
// incremental traversal, incremental resample, duplicate cleanup. The very
// first run (or a forced full run) recreates the schema and walks the
// whole history.
package ingest

import (
	"context"
	"time"

	"rippletick/pkg/info"
	"rippletick/pkg/model"
	"rippletick/pkg/resample"
	"rippletick/pkg/walker"
	"rippletick/pkg/xlog"

	"github.com/google/uuid"
)

var logger = xlog.GetLogger()

// Orchestrator owns the store session and drives the cycle loop.
type Orchestrator struct {
	Store *model.Store
	Pub   walker.Publisher // may be nil

	RippledURL  string
	Genesis     int64
	Frequencies []resample.Freq
	Interval    time.Duration
}

// RunOnce performs one cycle. A full cycle recreates the schema and walks
// back to genesis; an incremental one resumes at the stored boundary.
// Walker and resampler failures are logged but do not stop the other
// phase, matching the best-effort posture of the traversal itself.
func (o *Orchestrator) RunOnce(full bool) (err error) {
	runID := uuid.New().String()
	started := time.Now()
	logger.Infof("cycle %s started (full:%v)", runID, full)

	if full {
		err = o.Store.Housekeeping()
		if err != nil {
			logger.Errorf("cycle %s housekeeping failed with err:%s", runID, err)
			return
		}
	}

	w := walker.New(o.RippledURL, o.Store, full, o.Genesis)
	w.Pub = o.Pub
	walkErr := w.Run()
	if walkErr != nil {
		logger.Errorf("cycle %s traversal failed with err:%s", runID, walkErr)
	}

	e := resample.New(o.Store, o.Store, full, o.Frequencies)
	resampleErr := e.Run()
	if resampleErr != nil {
		logger.Errorf("cycle %s resampling failed with err:%s", runID, resampleErr)
	}

	var cleaned int64
	if !full {
		cleaned, err = o.Store.CleanupDuplicates()
		if err != nil {
			logger.Errorf("cycle %s cleanup failed with err:%s", runID, err)
		} else if cleaned > 0 {
			logger.Infof("cycle %s removed %d superseded duplicate rows", runID, cleaned)
		}
	}

	stats := model.RunStats{
		RunID:    runID,
		Instance: info.InstanceID,
		Full:     full,
		Events:   w.StoredTx,
		Bars:     e.Written,
		Cleaned:  cleaned,
		Started:  started.Unix(),
		Seconds:  time.Since(started).Seconds(),
	}
	if err2 := o.Store.SaveRunStats(context.Background(), stats); err2 != nil {
		logger.Warningf("cycle %s stats publish failed with err:%s", runID, err2)
	}

	logger.Infof("cycle %s done in %.1fs, %d new events, %d bar records",
		runID, stats.Seconds, stats.Events, stats.Bars)

	if walkErr != nil {
		return walkErr
	}
	return resampleErr
}

// Loop runs cycles forever, phase-aligned to interval boundaries. A failed
// cycle is logged and the next one starts on schedule.
func (o *Orchestrator) Loop() {
	// first ever run against an empty database is always full
	full := !o.Store.HasSchema()

	for {
		if err := o.RunOnce(full); err != nil {
			logger.Errorf("cycle failed with err:%s", err)
		}
		full = false

		now := time.Now()
		next := NextTick(now, o.Interval)
		logger.Infof("sleeping until %s", next.Format(time.RFC3339))
		time.Sleep(next.Sub(now))
	}
}

// NextTick returns the next wall-clock multiple of interval after now.
func NextTick(now time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		return now
	}
	return now.Truncate(interval).Add(interval)
}
