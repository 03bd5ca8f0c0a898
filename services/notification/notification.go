package notification

import (
	"fmt"
	"time"

	"geocheckin/dto"
	"geocheckin/types"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

const (
	TypeCheckIn      = "check-in"
	TypeDailySummary = "daily-summary"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// MessageBuilder renders a check-in broadcast.
type MessageBuilder struct {
	msg dto.CheckInNotification
}

func NewMessageBuilder(userID uint, siteID, siteName string, at time.Time) *MessageBuilder {
	return &MessageBuilder{
		msg: dto.CheckInNotification{
			Type:     TypeCheckIn,
			UserID:   userID,
			SiteID:   siteID,
			SiteName: siteName,
			At:       at,
		},
	}
}

func (b *MessageBuilder) Build() (string, error) {
	data, err := json.Marshal(b.msg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type summaryMessage struct {
	Type   string                 `json:"type"`
	Day    string                 `json:"day"`
	Counts []types.SiteDailyCount `json:"counts"`
}

// BuildSummaryMessage renders the daily per-site attendance counts.
func BuildSummaryMessage(day time.Time, counts []types.SiteDailyCount) (string, error) {
	if counts == nil {
		counts = []types.SiteDailyCount{}
	}
	data, err := json.Marshal(summaryMessage{
		Type:   TypeDailySummary,
		Day:    day.Format("2006-01-02"),
		Counts: counts,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
