package api

import (
	"github.com/gin-gonic/gin"

	"github.com/windrow-lab/windrow/internal/schema"
)

// Service provides the dataset schema management API.
type Service struct {
	registry  *schema.Registry
	validator *schema.Validator
}

// NewService creates a new dataset schema API service.
func NewService(reg *schema.Registry, val *schema.Validator) *Service {
	return &Service{
		registry:  reg,
		validator: val,
	}
}

// RegisterRoutes registers the dataset schema API routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	handler := NewHandler(s.registry, s.validator)

	r.GET("/v1/datasets", handler.HandleList)
	r.POST("/v1/datasets", handler.HandleRegister)

	// Sub-paths stay static so the row ingestion routes can share the
	// /v1/datasets/:name prefix.
	datasets := r.Group("/v1/datasets/:name")
	{
		datasets.GET("/schema", handler.HandleGet)
		datasets.POST("/validate", handler.HandleValidate)
	}
}
