package services

import (
	"context"
	"fmt"
	"time"

	"fleetdesk/internal/domain/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/internal/utils"
)

// RecorderService runs the nightly daily-earnings batch: it recomputes each
// active driver's DailyStats and upserts the snapshot. One driver failing
// must never abort the rest of the batch.
type RecorderService struct {
	Earnings    EarningsService
	DriversRepo repositories.DriversRepository
	DailyRepo   repositories.DailyEarningsRepository
	Interval    time.Duration

	// ListDrivers overrides driver enumeration (tests).
	ListDrivers func() ([]int64, error)
}

// RecordAll snapshots every active driver for the given day and returns how
// many drivers were recorded.
func (s RecorderService) RecordAll(day time.Time) (int, error) {
	ids, err := s.listDrivers()
	if err != nil {
		return 0, err
	}

	recorded := 0
	for _, id := range ids {
		stats, err := s.Earnings.DailyStats(id, &day)
		if err != nil {
			utils.LogEvent("", "recorder", "skip_driver",
				fmt.Sprintf("driver_id=%d err=%v", id, err))
			continue
		}
		err = s.DailyRepo.Upsert(models.DailyEarnings{
			DriverID:    stats.DriverID,
			StatDate:    stats.Date,
			Revenue:     stats.Revenue,
			TripCount:   stats.TripCount,
			Incentive:   stats.Incentive,
			DailyTarget: stats.DailyTarget,
		})
		if err != nil {
			utils.LogEvent("", "recorder", "upsert_failed",
				fmt.Sprintf("driver_id=%d err=%v", id, err))
			continue
		}
		recorded++
	}

	utils.LogEvent("", "recorder", "record_all",
		fmt.Sprintf("date=%s drivers=%d recorded=%d", utils.FormatDate(day), len(ids), recorded))
	return recorded, nil
}

// Run ticks the batch until the context is cancelled. Each tick records the
// previous day so the window is always complete.
func (s RecorderService) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RecordAll(time.Now().AddDate(0, 0, -1)); err != nil {
				utils.LogEvent("", "recorder", "batch_failed", err.Error())
			}
		}
	}
}

func (s RecorderService) listDrivers() ([]int64, error) {
	if s.ListDrivers != nil {
		return s.ListDrivers()
	}
	return s.DriversRepo.ListActiveIDs()
}
