package services

import (
	"context"
	goerrors "errors"

	"geocheckin/commands"
	"geocheckin/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SiteRepository persists sites. FindByID returns nil, nil when absent.
type SiteRepository interface {
	FindByID(ctx context.Context, id string) (*models.Site, error)
	List(ctx context.Context) ([]models.Site, error)
	Create(ctx context.Context, site *models.Site) error
	Save(ctx context.Context, site *models.Site) error
	Delete(ctx context.Context, id string) error
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type GormSiteRepository struct {
	db *gorm.DB
}

func NewGormSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

func (r *GormSiteRepository) FindByID(ctx context.Context, id string) (*models.Site, error) {
	var site models.Site
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&site).Error
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *GormSiteRepository) List(ctx context.Context) ([]models.Site, error) {
	var sites []models.Site
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *GormSiteRepository) Create(ctx context.Context, site *models.Site) error {
	return commands.NewCreateSiteCommand(site, r.db).Execute(ctx)
}

func (r *GormSiteRepository) Save(ctx context.Context, site *models.Site) error {
	return commands.NewUpdateSiteCommand(site, r.db).Execute(ctx)
}

func (r *GormSiteRepository) Delete(ctx context.Context, id string) error {
	return commands.NewDeleteSiteCommand(id, r.db).Execute(ctx)
}

func (r *GormSiteRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   string
		Name string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Site{}).
		Select("id, name").
		Where("id = ANY(?)", pq.Array(ids)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
