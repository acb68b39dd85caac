package v1

import (
	"errors"
	"net/http"
	"net/url"
	"path"

	"github.com/nzwalks/backend/internal/domain"
	"github.com/nzwalks/backend/internal/service"
	"github.com/nzwalks/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) initRegionsRoutes(api *gin.RouterGroup) {
	regions := api.Group("/regions")
	{
		regions.GET("", h.getRegions)
		regions.GET("/:id", h.getRegionByID)
		regions.POST("", h.createRegion)
		regions.PUT("/:id", h.updateRegion)
		regions.DELETE("/:id", h.deleteRegion)
	}
}

type regionResponse struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	RegionImageURL *string   `json:"regionImageUrl"`
} // @name RegionDto

type addRegionRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	RegionImageURL *string `json:"regionImageUrl"`
} // @name AddRegionRequestDto

type updateRegionRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	RegionImageURL *string `json:"regionImageUrl"`
} // @name UpdateRegionRequestDto

type regionURI struct {
	ID string `uri:"id" binding:"required,uuid_rfc4122"`
}

func newRegionResponse(region *domain.Region) regionResponse {
	return regionResponse{
		ID:             region.ID,
		Code:           region.Code,
		Name:           region.Name,
		RegionImageURL: region.RegionImageURL,
	}
}

// regionID binds the :id path parameter. A value that is not a UUID does not
// address any region, so the request ends with 404.
func regionID(c *gin.Context) (uuid.UUID, bool) {
	var uri regionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(uri.ID)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return uuid.Nil, false
	}

	return id, true
}

func regionLocation(c *gin.Context, id uuid.UUID) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	location := url.URL{
		Scheme: scheme,
		Host:   c.Request.Host,
		Path:   path.Join(c.Request.URL.Path, id.String()),
	}
	return location.String()
}

// @Summary Get Regions
// @Tags Regions
// @Description Get all regions
// @ModuleID getRegions
// @Accept  json
// @Produce  json
// @Success 200 {array} regionResponse
// @Failure 500 {object} ErrorStruct
// @Router /regions [get]
func (h *Handler) getRegions(c *gin.Context) {
	regions, err := h.services.Regions.GetAll(c.Request.Context())
	if err != nil {
		logger.Error("get regions failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	response := make([]regionResponse, 0, len(regions))
	for i := range regions {
		response = append(response, newRegionResponse(&regions[i]))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get Region By ID
// @Tags Regions
// @Description Get a region by id. The region is returned as a single-element array.
// @ModuleID getRegionByID
// @Accept  json
// @Produce  json
// @Param id path string true "Region ID (UUID)"
// @Success 200 {array} regionResponse
// @Failure 404
// @Failure 500 {object} ErrorStruct
// @Router /regions/{id} [get]
func (h *Handler) getRegionByID(c *gin.Context) {
	id, ok := regionID(c)
	if !ok {
		return
	}

	region, err := h.services.Regions.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		logger.Error("get region failed", zap.Error(err), zap.Stringer("id", id))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, []regionResponse{newRegionResponse(region)})
}

// @Summary Create Region
// @Tags Regions
// @Description Create a new region
// @ModuleID createRegion
// @Accept  json
// @Produce  json
// @Param input body addRegionRequest true "Region"
// @Success 201 {object} regionResponse
// @Header 201 {string} Location "URL of the created region"
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /regions [post]
func (h *Handler) createRegion(c *gin.Context) {
	var req addRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("invalid create region request", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, InvalidRequestBodyCode)
		return
	}

	region := &domain.Region{
		Code:           req.Code,
		Name:           req.Name,
		RegionImageURL: req.RegionImageURL,
	}

	if err := h.services.Regions.Create(c.Request.Context(), region); err != nil {
		if errors.Is(err, service.ErrRegionAlreadyExists) {
			errorResponse(c, http.StatusConflict, RegionAlreadyExistsCode)
			return
		}
		logger.Error("create region failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.Header("Location", regionLocation(c, region.ID))
	c.JSON(http.StatusCreated, newRegionResponse(region))
}

// @Summary Update Region
// @Tags Regions
// @Description Overwrite code, name and image url of a region
// @ModuleID updateRegion
// @Accept  json
// @Produce  json
// @Param id path string true "Region ID (UUID)"
// @Param input body updateRegionRequest true "Region"
// @Success 200 {object} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404
// @Failure 500 {object} ErrorStruct
// @Router /regions/{id} [put]
func (h *Handler) updateRegion(c *gin.Context) {
	id, ok := regionID(c)
	if !ok {
		return
	}

	region, err := h.services.Regions.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		logger.Error("get region failed", zap.Error(err), zap.Stringer("id", id))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	var req updateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("invalid update region request", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, InvalidRequestBodyCode)
		return
	}

	region.Code = req.Code
	region.Name = req.Name
	region.RegionImageURL = req.RegionImageURL

	if err := h.services.Regions.Update(c.Request.Context(), region); err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		logger.Error("update region failed", zap.Error(err), zap.Stringer("id", id))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, newRegionResponse(region))
}

// @Summary Delete Region
// @Tags Regions
// @Description Delete a region and return its last state
// @ModuleID deleteRegion
// @Accept  json
// @Produce  json
// @Param id path string true "Region ID (UUID)"
// @Success 200 {object} regionResponse
// @Failure 404
// @Failure 500 {object} ErrorStruct
// @Router /regions/{id} [delete]
func (h *Handler) deleteRegion(c *gin.Context) {
	id, ok := regionID(c)
	if !ok {
		return
	}

	region, err := h.services.Regions.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		logger.Error("get region failed", zap.Error(err), zap.Stringer("id", id))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	if err := h.services.Regions.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		logger.Error("delete region failed", zap.Error(err), zap.Stringer("id", id))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, newRegionResponse(region))
}
