package commands

import (
	"context"

	"geocheckin/models"

	"gorm.io/gorm"
)

// Command is a single write against the store.
type Command interface {
	Execute(ctx context.Context) error
}

// CreateAttendanceCommand appends a check-in row.
type CreateAttendanceCommand struct {
	attendance *models.Attendance
	db         *gorm.DB
}

func NewCreateAttendanceCommand(attendance *models.Attendance, db *gorm.DB) *CreateAttendanceCommand {
	return &CreateAttendanceCommand{
		attendance: attendance,
		db:         db,
	}
}

func (c *CreateAttendanceCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Create(c.attendance).Error
}

type CreateSiteCommand struct {
	site *models.Site
	db   *gorm.DB
}

func NewCreateSiteCommand(site *models.Site, db *gorm.DB) *CreateSiteCommand {
	return &CreateSiteCommand{
		site: site,
		db:   db,
	}
}

func (c *CreateSiteCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Create(c.site).Error
}

type UpdateSiteCommand struct {
	site *models.Site
	db   *gorm.DB
}

func NewUpdateSiteCommand(site *models.Site, db *gorm.DB) *UpdateSiteCommand {
	return &UpdateSiteCommand{
		site: site,
		db:   db,
	}
}

func (c *UpdateSiteCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Save(c.site).Error
}

// DeleteSiteCommand removes a site. Attendance rows keep the dangling id.
type DeleteSiteCommand struct {
	siteID string
	db     *gorm.DB
}

func NewDeleteSiteCommand(siteID string, db *gorm.DB) *DeleteSiteCommand {
	return &DeleteSiteCommand{
		siteID: siteID,
		db:     db,
	}
}

func (c *DeleteSiteCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Delete(&models.Site{}, "id = ?", c.siteID).Error
}
