package services

import (
	"context"
	"time"

	"geocheckin/commands"
	"geocheckin/models"
	"geocheckin/types"

	"gorm.io/gorm"
)

// AttendanceStore is the append-only attendance log.
type AttendanceStore interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Attendance, error)
	DailyCounts(ctx context.Context, from, to time.Time) ([]types.SiteDailyCount, error)
}

type GormAttendanceRepository struct {
	db *gorm.DB
}

func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

func (r *GormAttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return commands.NewCreateAttendanceCommand(attendance, r.db).Execute(ctx)
}

func (r *GormAttendanceRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DailyCounts groups check-ins in [from, to) by site.
func (r *GormAttendanceRepository) DailyCounts(ctx context.Context, from, to time.Time) ([]types.SiteDailyCount, error) {
	var counts []types.SiteDailyCount
	err := r.db.WithContext(ctx).
		Table("attendances AS a").
		Select("a.site_id AS site_id, COALESCE(s.name, '') AS site_name, COUNT(*) AS count").
		Joins("LEFT JOIN sites AS s ON s.id = a.site_id").
		Where("a.timestamp >= ? AND a.timestamp < ?", from, to).
		Group("a.site_id, s.name").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
