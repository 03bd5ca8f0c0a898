package controllers

import (
	"geocheckin/dto"
	"geocheckin/response"
	"geocheckin/services"

	"github.com/gin-gonic/gin"
)

type SiteController struct {
	sites *services.SiteService
}

func NewSiteController(sites *services.SiteService) *SiteController {
	return &SiteController{sites: sites}
}

// ListSites godoc
// @Summary  List sites, optionally filtered by a fuzzy name query
// @Tags     sites
// @Produce  json
// @Security BearerAuth
// @Param    q query string false "name query"
// @Success  200 {object} response.Response
// @Router   /sites [get]
func (sc *SiteController) ListSites(c *gin.Context) {
	result, err := sc.sites.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, result)
}

func (sc *SiteController) GetSite(c *gin.Context) {
	site, err := sc.sites.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, site)
}

// CreateSite godoc
// @Summary  Create a site
// @Tags     sites
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.CreateSiteRequest true "site"
// @Success  201 {object} response.Response
// @Router   /sites [post]
func (sc *SiteController) CreateSite(c *gin.Context) {
	var req dto.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid site: "+err.Error())
		return
	}

	userID, _, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	site, err := sc.sites.Create(c.Request.Context(), req, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, site)
}

func (sc *SiteController) UpdateSite(c *gin.Context) {
	var req dto.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid site: "+err.Error())
		return
	}

	site, err := sc.sites.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, site)
}

func (sc *SiteController) DeleteSite(c *gin.Context) {
	if err := sc.sites.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.SuccessWithMessage(c, "Site deleted", nil)
}

// UploadSitePhoto accepts a multipart "file" field.
func (sc *SiteController) UploadSitePhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read file")
		return
	}
	defer file.Close()

	site, err := sc.sites.UploadPhoto(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, site)
}

// GetSiteQR godoc
// @Summary  Payload strings to encode in a site's QR code
// @Tags     sites
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "site id"
// @Success  200 {object} response.Response
// @Router   /sites/{id}/qr [get]
func (sc *SiteController) GetSiteQR(c *gin.Context) {
	payloads, err := sc.sites.QRPayloads(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, payloads)
}
