package preview

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/windrow-lab/windrow/internal/core/errors"
	"github.com/windrow-lab/windrow/internal/core/rolling"
)

// RegisterRoutes registers the preview endpoints on the router.
func (s *Service) RegisterRoutes(r *gin.Engine) {
	r.POST("/v1/preview", s.HandlePreview)
	r.GET("/v1/operators", s.HandleListOperators)
}

// HandlePreview evaluates a rolling computation over the values in the
// request body and returns the rolled slots.
func (s *Service) HandlePreview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, httperr.HttpInvalidJsonError, "Invalid request body", err.Error())
		return
	}

	resp, err := s.Evaluate(req)
	if err != nil {
		switch {
		case errors.Is(err, rolling.ErrUnsupportedAggregation):
			writeError(c, http.StatusUnprocessableEntity, httperr.HttpUnsupportedAggregation, "Operator not supported for element type", err.Error())
		case errors.Is(err, ErrInvalidPreview):
			writeError(c, http.StatusBadRequest, httperr.HttpInvalidQueryError, "Invalid preview request", err.Error())
		default:
			slog.Error("Failed to evaluate preview", "error", err)
			writeError(c, http.StatusInternalServerError, httperr.HttpInternalError, "Failed to evaluate preview", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleListOperators returns the operator eligibility matrix.
func (s *Service) HandleListOperators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dtypes": s.OperatorMatrix()})
}

func writeError(c *gin.Context, status int, errorType, message string, details interface{}) {
	c.JSON(status, httperr.ErrorResponse{
		ErrorType: errorType,
		Message:   message,
		Details:   details,
	})
}
