package model

import (
	"context"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the database session handle passed to the walker and the
// resampler. Its lifecycle is owned by the orchestrator; components never
// open connections themselves.
type Store struct {
	DB  *gorm.DB
	Rds *redis.Client // nil when redis is disabled
}

// NewStore wraps the shared connections opened by DBInit.
func NewStore() *Store {
	return &Store{DB: GetDB(), Rds: GetRedis()}
}

// HasSchema reports whether the trade table exists, used to detect the
// first run.
func (s *Store) HasSchema() bool {
	return s.DB.Migrator().HasTable(&TradeEvent{})
}

// Housekeeping drops and recreates the trade and bar tables.
func (s *Store) Housekeeping() (err error) {
	err = s.DB.Migrator().DropTable(&TradeEvent{}, &OhlcBar{})
	if err != nil {
		return
	}
	return s.DB.AutoMigrate(&TradeEvent{}, &OhlcBar{})
}

// Migrate creates missing tables without dropping existing data.
func (s *Store) Migrate() (err error) {
	return s.DB.AutoMigrate(&TradeEvent{}, &OhlcBar{})
}

// SaveEvent inserts one trade event row.
func (s *Store) SaveEvent(ev *TradeEvent) (err error) {
	return s.DB.Create(ev).Error
}

// HashExists reports whether any event with the given transaction hash is
// already stored. Only consulted on the boundary ledger of an incremental
// run.
func (s *Store) HashExists(hash string) (exists bool, err error) {
	var count int64
	err = s.DB.Model(&TradeEvent{}).Where("tx_hash = ?", hash).Count(&count).Error
	return count > 0, err
}

// MaxLedgerIndex returns the highest stored ledger index, 0 when the table
// is empty. Seeds the halt index of an incremental traversal.
func (s *Store) MaxLedgerIndex() (index int64, err error) {
	err = s.DB.Model(&TradeEvent{}).
		Select("coalesce(max(ledger_index), 0)").Scan(&index).Error
	return
}

// DistinctMarkets lists every currency pair present in the trade table.
func (s *Store) DistinctMarkets() (markets []Market, err error) {
	err = s.DB.Model(&TradeEvent{}).
		Distinct("currency1", "currency2").
		Order("currency1, currency2").
		Find(&markets).Error
	return
}

// EventsSince loads one market's events with txdate >= since, ordered by
// time then insertion order. Pass since=0 for the full history.
func (s *Store) EventsSince(market string, since int64) (events []TradeEvent, err error) {
	err = s.DB.Where("market = ? AND tx_date >= ?", market, since).
		Order("tx_date asc, id asc").
		Find(&events).Error
	return
}

// SaveBars upserts bars keyed by (start_time, freq, currency1, currency2).
// A later run's bar for an already-written bucket overwrites the earlier
// one.
func (s *Store) SaveBars(bars []OhlcBar) (err error) {
	if len(bars) == 0 {
		return nil
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "start_time"}, {Name: "freq"},
			{Name: "currency1"}, {Name: "currency2"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"open1", "high1", "low1", "close1", "volume1", "med_price1",
			"open2", "high2", "low2", "close2", "volume2", "med_price2",
			"collected",
		}),
	}).Create(&bars).Error
}

// MaxBucketStart returns the resampling watermark: the latest bucket start
// already written, 0 when no bars exist.
func (s *Store) MaxBucketStart() (start int64, err error) {
	err = s.DB.Model(&OhlcBar{}).
		Select("coalesce(max(start_time), 0)").Scan(&start).Error
	return
}

// RebuildBarIndex drops and recreates the bar lookup index. Maintenance
// only, queries stay correct without it.
func (s *Store) RebuildBarIndex() (err error) {
	err = s.DB.Exec("DROP INDEX IF EXISTS idx_bar_interval").Error
	if err != nil {
		return
	}
	return s.DB.Exec(
		"CREATE UNIQUE INDEX idx_bar_interval ON ohlc_bars(start_time, freq, currency1, currency2)",
	).Error
}

// CleanupDuplicates removes superseded duplicate trade rows, keeping the
// earliest row of each (hash, ledger, market, amounts) group.
func (s *Store) CleanupDuplicates() (removed int64, err error) {
	res := s.DB.Exec(
		"DELETE FROM trade_events a USING trade_events b " +
			"WHERE a.id > b.id AND a.tx_hash = b.tx_hash " +
			"AND a.ledger_index = b.ledger_index AND a.market = b.market " +
			"AND a.amount1 = b.amount1 AND a.amount2 = b.amount2",
	)
	return res.RowsAffected, res.Error
}

// SaveRunStats publishes the latest cycle summary to redis. No-op when
// redis is disabled.
func (s *Store) SaveRunStats(ctx context.Context, stats RunStats) (err error) {
	if s.Rds == nil {
		return nil
	}
	return s.Rds.HSet(ctx, "rippletick:lastrun",
		"run_id", stats.RunID,
		"instance", stats.Instance,
		"full", stats.Full,
		"events", stats.Events,
		"bars", stats.Bars,
		"cleaned", stats.Cleaned,
		"started", stats.Started,
		"seconds", stats.Seconds,
	).Err()
}

// Close releases the underlying connections.
func (s *Store) Close() {
	if s.Rds != nil {
		s.Rds.Close()
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
