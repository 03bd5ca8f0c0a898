package services

import (
	"context"
	"io"
	"strings"
	"time"

	"geocheckin/constants"
	"geocheckin/dto"
	"geocheckin/errors"
	"geocheckin/models"
	"geocheckin/services/geofence"
	"geocheckin/services/logger"
	"geocheckin/validator"
)

const sitePhotoFolder = "sites"

// SiteStore is the read side the check-in flow needs.
type SiteStore interface {
	// FindSite returns nil, nil when no site has the id.
	FindSite(ctx context.Context, id string) (*geofence.SiteRecord, error)
	SiteNames(ctx context.Context, ids []string) (map[string]string, error)
}

type SiteService struct {
	repo     SiteRepository
	cache    Cache
	uploader ImageUploader
	logger   logger.Logger
	cacheTTL time.Duration
}

type SiteServiceOptions struct {
	Repo     SiteRepository
	Cache    Cache
	Uploader ImageUploader
	Logger   logger.Logger
	CacheTTL time.Duration
}

func NewSiteService(opts SiteServiceOptions) *SiteService {
	return &SiteService{
		repo:     opts.Repo,
		cache:    opts.Cache,
		uploader: opts.Uploader,
		logger:   opts.Logger,
		cacheTTL: opts.CacheTTL,
	}
}

func siteCacheKey(id string) string {
	return constants.SiteCacheKeyPrefix + id
}

// FindSite reads through the cache. Cache failures fall back to the database.
func (s *SiteService) FindSite(ctx context.Context, id string) (*geofence.SiteRecord, error) {
	key := siteCacheKey(id)
	var cached geofence.SiteRecord
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Error("site cache read %s: %v", key, err)
	}
	if found {
		return &cached, nil
	}

	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, nil
	}

	rec := site.Record()
	if err := s.cache.Set(ctx, key, rec, s.cacheTTL); err != nil {
		s.logger.Error("site cache write %s: %v", key, err)
	}
	return &rec, nil
}

func (s *SiteService) SiteNames(ctx context.Context, ids []string) (map[string]string, error) {
	return s.repo.NamesByIDs(ctx, ids)
}

func (s *SiteService) Get(ctx context.Context, id string) (*models.Site, error) {
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load site", err)
	}
	if site == nil {
		return nil, errors.NewAppError(errors.ErrCodeSiteNotFound, "Site not found", errors.ErrSiteNotFound)
	}
	return site, nil
}

func (s *SiteService) Create(ctx context.Context, req dto.CreateSiteRequest, createdBy uint) (*models.Site, error) {
	site := &models.Site{
		ID:                   strings.TrimSpace(req.ID),
		Name:                 strings.TrimSpace(req.Name),
		Address:              strings.TrimSpace(req.Address),
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		GeofenceRadiusMeters: req.GeofenceRadiusMeters,
		CreatedBy:            createdBy,
	}
	if err := validator.ValidateSite(site); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, site.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create site", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrCodeSiteExists, "Site already exists", errors.ErrSiteExists)
	}

	if err := s.repo.Create(ctx, site); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create site", err)
	}
	s.invalidate(ctx, site.ID)
	s.logger.Info("site %s created by user %d", site.ID, createdBy)
	return site, nil
}

func (s *SiteService) Update(ctx context.Context, id string, req dto.UpdateSiteRequest) (*models.Site, error) {
	site, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		site.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		site.Address = strings.TrimSpace(*req.Address)
	}
	if req.Latitude != nil {
		site.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		site.Longitude = req.Longitude
	}
	if req.GeofenceRadiusMeters != nil {
		site.GeofenceRadiusMeters = req.GeofenceRadiusMeters
	}
	if err := validator.ValidateSite(site); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, site); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update site", err)
	}
	s.invalidate(ctx, site.ID)
	return site, nil
}

func (s *SiteService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to delete site", err)
	}
	s.invalidate(ctx, id)
	s.logger.Info("site %s deleted", id)
	return nil
}

// UploadPhoto stores the image and records its URL on the site.
func (s *SiteService) UploadPhoto(ctx context.Context, id string, file io.Reader) (*models.Site, error) {
	site, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrCodeUploadFailed, "Image upload is not configured", nil)
	}

	url, err := s.uploader.Upload(ctx, file, sitePhotoFolder)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeUploadFailed, "Failed to upload image", err)
	}
	site.PhotoURL = url
	if err := s.repo.Save(ctx, site); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update site", err)
	}
	s.invalidate(ctx, site.ID)
	return site, nil
}

func (s *SiteService) Search(ctx context.Context, query string) (dto.SiteSearchResult, error) {
	sites, err := s.repo.List(ctx)
	if err != nil {
		return dto.SiteSearchResult{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to load sites", err)
	}
	return RankSites(query, sites), nil
}

// QRPayloads returns the strings a QR code for the site should encode.
func (s *SiteService) QRPayloads(ctx context.Context, id string) (dto.SiteQRPayloads, error) {
	site, err := s.Get(ctx, id)
	if err != nil {
		return dto.SiteQRPayloads{}, err
	}
	jsonPayload, prefixed, err := geofence.EncodePayloads(site.ID)
	if err != nil {
		return dto.SiteQRPayloads{}, errors.NewAppError(errors.ErrCodeInvalidSiteID, "Site id cannot be encoded", err)
	}
	return dto.SiteQRPayloads{
		SiteID:   site.ID,
		JSON:     jsonPayload,
		Prefixed: prefixed,
	}, nil
}

func (s *SiteService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, siteCacheKey(id)); err != nil {
		s.logger.Error("site cache invalidate %s: %v", id, err)
	}
}
