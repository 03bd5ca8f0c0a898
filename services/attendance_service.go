package services

import (
	"context"
	"strconv"
	"time"

	"geocheckin/builders"
	"geocheckin/constants"
	"geocheckin/dto"
	"geocheckin/errors"
	"geocheckin/models"
	"geocheckin/services/geofence"
	"geocheckin/services/logger"
	"geocheckin/services/notification"
	"geocheckin/types"
)

type AttendanceService struct {
	sites      SiteStore
	store      AttendanceStore
	gate       ScanGate
	cache      Cache
	notifier   notification.Service
	logger     logger.Logger
	now        func() time.Time
	historyTTL time.Duration
	location   *time.Location
}

type AttendanceServiceOptions struct {
	Sites      SiteStore
	Store      AttendanceStore
	Gate       ScanGate
	Cache      Cache
	Notifier   notification.Service
	Logger     logger.Logger
	Now        func() time.Time
	HistoryTTL time.Duration
	Location   *time.Location
}

func NewAttendanceService(opts AttendanceServiceOptions) *AttendanceService {
	s := &AttendanceService{
		sites:      opts.Sites,
		store:      opts.Store,
		gate:       opts.Gate,
		cache:      opts.Cache,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		now:        opts.Now,
		historyTTL: opts.HistoryTTL,
		location:   opts.Location,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.location == nil {
		s.location = time.UTC
	}
	return s
}

// CheckInInput is one scan attempt with identity and position already resolved.
type CheckInInput struct {
	Identity  geofence.Identity
	SessionID string
	Payload   string
	Position  geofence.Coordinate
	Accuracy  *float64
}

type CheckInResult struct {
	Decision geofence.Decision
	SiteName string
	// Record is set only when the decision admitted the user.
	Record *models.Attendance
}

func scanGateKey(userID uint) string {
	return constants.ScanGateKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

func historyCacheKey(userID uint) string {
	return constants.HistoryCacheKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// CheckIn runs one admission attempt. Geofence rejections are returned as the
// decision with a nil error; errors are reserved for infrastructure failures
// and a scan already in flight for the same user.
func (s *AttendanceService) CheckIn(ctx context.Context, in CheckInInput) (CheckInResult, error) {
	if !in.Position.Valid() {
		return CheckInResult{}, errors.NewAppError(errors.ErrCodeInvalidPos, "Location is not available", errors.ErrInvalidInput)
	}

	key := scanGateKey(in.Identity.UserID)
	token, ok, err := s.gate.Acquire(ctx, key)
	if err != nil {
		return CheckInResult{}, errors.NewAppError(errors.ErrCodeCacheError, "Could not start check-in", err)
	}
	if !ok {
		s.logger.Info("scan rejected: user %d session %s already has a scan in flight", in.Identity.UserID, in.SessionID)
		return CheckInResult{}, errors.NewAppError(errors.ErrCodeScanInProgress, "A check-in is already in progress", errors.ErrScanInProgress)
	}
	defer func() {
		if err := s.gate.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.logger.Error("release scan gate %s: %v", key, err)
		}
	}()

	siteID, err := geofence.ParseSiteID(in.Payload)
	if err != nil {
		s.logger.Debug("user %d session %s: unrecognized payload", in.Identity.UserID, in.SessionID)
		return CheckInResult{Decision: geofence.Rejected()}, nil
	}

	site, err := s.sites.FindSite(ctx, siteID)
	if err != nil {
		return CheckInResult{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to load site", err)
	}

	decision := geofence.Decide(siteID, site, in.Position)
	result := CheckInResult{Decision: decision}
	if site != nil {
		result.SiteName = site.Name
	}
	if !decision.Admitted() {
		s.logger.Info("user %d session %s site %s: %s", in.Identity.UserID, in.SessionID, siteID, decision.Outcome)
		return result, nil
	}

	now := s.now()
	event, err := geofence.NewEvent(decision, in.Identity, in.Position, now)
	if err != nil {
		return CheckInResult{}, err
	}
	record := builders.NewAttendanceBuilder().
		FromEvent(event).
		WithAccuracy(in.Accuracy).
		Build()
	if err := s.store.Create(ctx, record); err != nil {
		return CheckInResult{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to record attendance", err)
	}
	result.Record = record

	s.logger.Info("user %d checked in at %s (%.0fm, session %s)", in.Identity.UserID, siteID, decision.DistanceMeters, in.SessionID)
	s.invalidateHistory(ctx, in.Identity.UserID)
	s.notifyCheckIn(record, result.SiteName, now)
	// A History call that read the store before the insert may have
	// repopulated the key since the first delete.
	s.invalidateHistory(ctx, in.Identity.UserID)

	return result, nil
}

func (s *AttendanceService) invalidateHistory(ctx context.Context, userID uint) {
	if err := s.cache.Delete(ctx, historyCacheKey(userID)); err != nil {
		s.logger.Error("history cache invalidate for user %d: %v", userID, err)
	}
}

func (s *AttendanceService) notifyCheckIn(record *models.Attendance, siteName string, at time.Time) {
	if s.notifier == nil {
		return
	}
	msg, err := notification.NewMessageBuilder(record.UserID, record.SiteID, siteName, at).Build()
	if err != nil {
		s.logger.Error("build check-in notification: %v", err)
		return
	}
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Error("broadcast check-in: %v", err)
	}
}

// History returns the user's most recent records, newest first.
func (s *AttendanceService) History(ctx context.Context, userID uint, limit int) ([]dto.AttendanceHistoryItem, error) {
	if limit <= 0 || limit > constants.HistoryDefaultLimit {
		limit = constants.HistoryDefaultLimit
	}

	items, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) > limit {
		items = items[:limit]
	}

	now := s.now()
	for i := range items {
		items[i].DisplayTime = FormatAttendanceTime(items[i].Timestamp, now, s.location)
	}
	return items, nil
}

// loadHistory returns the full cached page of HistoryDefaultLimit items.
func (s *AttendanceService) loadHistory(ctx context.Context, userID uint) ([]dto.AttendanceHistoryItem, error) {
	key := historyCacheKey(userID)
	var cached []dto.AttendanceHistoryItem
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Error("history cache read %s: %v", key, err)
	}
	if found {
		return cached, nil
	}

	records, err := s.store.ListByUser(ctx, userID, constants.HistoryDefaultLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load attendance history", err)
	}

	ids := make([]string, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if !seen[r.SiteID] {
			seen[r.SiteID] = true
			ids = append(ids, r.SiteID)
		}
	}
	names, err := s.sites.SiteNames(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load site names", err)
	}

	items := make([]dto.AttendanceHistoryItem, 0, len(records))
	for _, r := range records {
		name, ok := names[r.SiteID]
		if !ok || name == "" {
			name = constants.UnknownSiteName
		}
		items = append(items, dto.AttendanceHistoryItem{Attendance: r, SiteName: name})
	}

	if err := s.cache.Set(ctx, key, items, s.historyTTL); err != nil {
		s.logger.Error("history cache write %s: %v", key, err)
	}
	return items, nil
}

// SummarizeDay counts check-ins per site for the calendar day containing day.
func (s *AttendanceService) SummarizeDay(ctx context.Context, day time.Time) ([]types.SiteDailyCount, error) {
	from, to := dayBounds(day, s.location)
	counts, err := s.store.DailyCounts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for i := range counts {
		if counts[i].SiteName == "" {
			counts[i].SiteName = constants.UnknownSiteName
		}
	}
	return counts, nil
}
