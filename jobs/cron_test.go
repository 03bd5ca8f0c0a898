package jobs

import (
	"context"
	"strings"
	"testing"
	"time"

	"geocheckin/services/logger"
	"geocheckin/services/mocks"
	"geocheckin/types"

	"github.com/golang/mock/gomock"
	"github.com/robfig/cron/v3"
)

type fakeSummarizer struct {
	day    time.Time
	counts []types.SiteDailyCount
}

func (f *fakeSummarizer) SummarizeDay(_ context.Context, day time.Time) ([]types.SiteDailyCount, error) {
	f.day = day
	return f.counts, nil
}

func TestRunDailySummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)

	s := &fakeSummarizer{counts: []types.SiteDailyCount{{SiteID: "hq", SiteName: "Head Office", Count: 3}}}
	SetDailySummarizer(s)
	defer SetDailySummarizer(nil)

	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	notifier.EXPECT().SendMessage(gomock.Any()).DoAndReturn(func(msg string) error {
		if !strings.Contains(msg, `"day":"2024-05-09"`) || !strings.Contains(msg, `"siteId":"hq"`) {
			t.Errorf("unexpected summary message %s", msg)
		}
		return nil
	})

	if err := RunDailySummary(context.Background(), now, notifier, logger.Nop{}); err != nil {
		t.Fatal(err)
	}
	if s.day.Day() != 9 {
		t.Errorf("summarized %v, want the previous day", s.day)
	}
}

func TestInitCronJobsRejectsBadSpec(t *testing.T) {
	c := cron.New()
	defer c.Stop()
	if err := InitCronJobs(c, "not a spec", nil, logger.Nop{}); err == nil {
		t.Fatal("expected an error for an invalid cron spec")
	}
}
