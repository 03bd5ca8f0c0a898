package jobs

import (
	"context"
	"time"

	"geocheckin/services/logger"
	"geocheckin/services/notification"
	"geocheckin/types"

	"github.com/robfig/cron/v3"
)

// DailySummarizer counts check-ins per site for one day.
type DailySummarizer interface {
	SummarizeDay(ctx context.Context, day time.Time) ([]types.SiteDailyCount, error)
}

var dailySummarizer DailySummarizer

func SetDailySummarizer(s DailySummarizer) {
	dailySummarizer = s
}

// RunDailySummary summarizes the day before now and broadcasts the result.
func RunDailySummary(ctx context.Context, now time.Time, notifier notification.Service, log logger.Logger) error {
	if dailySummarizer == nil {
		log.Error("daily summary skipped: summarizer not set")
		return nil
	}

	day := now.AddDate(0, 0, -1)
	counts, err := dailySummarizer.SummarizeDay(ctx, day)
	if err != nil {
		return err
	}

	var total int64
	for _, c := range counts {
		total += c.Count
		log.Info("daily summary %s: %s (%s) %d check-ins", day.Format("2006-01-02"), c.SiteName, c.SiteID, c.Count)
	}
	log.Info("daily summary %s: %d check-ins across %d sites", day.Format("2006-01-02"), total, len(counts))

	if notifier == nil {
		return nil
	}
	msg, err := notification.BuildSummaryMessage(day, counts)
	if err != nil {
		return err
	}
	return notifier.SendMessage(msg)
}

// InitCronJobs schedules the daily summary and starts the scheduler.
func InitCronJobs(c *cron.Cron, spec string, notifier notification.Service, log logger.Logger) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		log.Info("running daily attendance summary at %v", time.Now())
		if err := RunDailySummary(ctx, time.Now(), notifier, log); err != nil {
			log.Error("daily attendance summary failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}
