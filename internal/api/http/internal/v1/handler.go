package v1

import (
	"github.com/nzwalks/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @title Region API
// @version 1.0
// @description CRUD API for regions

// @BasePath /api

type Handler struct {
	services *service.Services
}

func NewHandler(services *service.Services) *Handler {
	return &Handler{
		services: services,
	}
}

// Init mounts the v1 routes directly on api; existing clients call
// /api/regions without a version segment.
func (h *Handler) Init(api *gin.RouterGroup) {
	h.initRegionsRoutes(api)
}
