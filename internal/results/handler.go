package results

import (
	"errors"
	"net/http"

	httperr "github.com/windrow-lab/windrow/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all results API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/jobs", s.HandleListJobs)
	r.GET("/v1/jobs/:name/results", s.HandleQueryResults)
}

// HandleListJobs handles GET /v1/jobs
func (s *Service) HandleListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, s.ListJobs())
}

// HandleQueryResults handles GET /v1/jobs/:name/results
// Query parameters: from_seq, limit
func (s *Service) HandleQueryResults(c *gin.Context) {
	var query struct {
		FromSeq int64 `form:"from_seq" binding:"omitempty,min=0"`
		Limit   int   `form:"limit" binding:"omitempty,min=1,max=1000"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	req := ResultsQueryRequest{
		Job:     c.Param("name"),
		FromSeq: query.FromSeq,
		Limit:   query.Limit,
	}

	resp, err := s.QueryResults(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpJobNotFoundError,
				Message:   "Unknown job",
				Details:   err.Error(),
			})
			return
		}
		if errors.Is(err, ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid results query",
				Details:   err.Error(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to query results",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
