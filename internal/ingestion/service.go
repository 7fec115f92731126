package ingestion

import (
	"github.com/gin-gonic/gin"

	"github.com/windrow-lab/windrow/internal/core/storage"
	"github.com/windrow-lab/windrow/internal/schema"
)

type Service struct {
	registry         *schema.Registry
	validator        *schema.Validator
	store            storage.RowStore
	maxBodySizeBytes int
}

func NewService(reg *schema.Registry, val *schema.Validator, repo storage.RowStore, maxBodySizeMB int) *Service {
	if reg == nil {
		panic("ingestion: registry must not be nil")
	}
	if val == nil {
		panic("ingestion: validator must not be nil")
	}
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		registry:         reg,
		validator:        val,
		store:            repo,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the row ingestion routes. They share the
// /v1/datasets/:name prefix with the schema API, whose sub-paths stay
// static to leave this namespace free.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/datasets/:name/rows", s.IngestHandler)
	r.GET("/v1/datasets/:name/rows", s.ListRowsHandler)
}
