package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/windrow-lab/windrow/internal/schema"
)

// Handler handles dataset schema management HTTP requests.
type Handler struct {
	registry  *schema.Registry
	validator *schema.Validator
}

// NewHandler creates a new dataset schema API handler.
func NewHandler(reg *schema.Registry, val *schema.Validator) *Handler {
	return &Handler{
		registry:  reg,
		validator: val,
	}
}

// RegisterDatasetRequest is the request body for POST /v1/datasets.
type RegisterDatasetRequest struct {
	Name       string `json:"name"`
	Version    int    `json:"version"`
	Format     string `json:"format"`     // "yaml" or "protobuf"
	Definition string `json:"definition"` // Raw schema content
	StrictMode *bool  `json:"strict_mode,omitempty"`
}

// DatasetResponse is the response body for dataset schema operations.
// Fields is the compiled column layout, so clients see what the
// definition resolved to.
type DatasetResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Version     int                `json:"version"`
	Format      string             `json:"format"`
	State       string             `json:"state"`
	StrictMode  bool               `json:"strict_mode"`
	Fingerprint string             `json:"fingerprint"`
	CreatedAt   string             `json:"created_at"`
	Fields      []schema.FieldSpec `json:"fields"`
}

// ListedDatasetResponse is the list payload for dataset schema discovery.
// For YAML schemas, Definition contains parsed JSON-compatible data.
type ListedDatasetResponse struct {
	Name       string      `json:"name"`
	Version    int         `json:"version"`
	Format     string      `json:"format"`
	StrictMode bool        `json:"strict_mode"`
	State      string      `json:"state"`
	Definition interface{} `json:"definition"`
}

// ErrorResponse is the error response body.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleRegister handles POST /v1/datasets. The definition is compiled
// before it is stored, so a malformed schema never registers.
func (h *Handler) HandleRegister(c *gin.Context) {
	var req RegisterDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_json", Message: "Invalid JSON body"})
		return
	}

	format := schema.Format(req.Format)
	if format != schema.FormatYaml && format != schema.FormatProtobuf {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_format", Message: "format must be yaml or protobuf"})
		return
	}

	strict := true
	if req.StrictMode != nil {
		strict = *req.StrictMode
	}

	// Compile the candidate before registering anything.
	candidate := &schema.Dataset{
		Name:        req.Name,
		Version:     req.Version,
		Format:      format,
		Definition:  []byte(req.Definition),
		Fingerprint: schema.ComputeFingerprint([]byte(req.Definition)),
		StrictMode:  strict,
	}
	compiled, err := h.validator.Compile(c.Request.Context(), candidate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_definition", Message: err.Error()})
		return
	}

	ds, err := h.registry.Register(c.Request.Context(), req.Name, req.Version, format, []byte(req.Definition), strict)
	if err != nil {
		if errors.Is(err, schema.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "already_exists", Message: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "registration_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(ds, compiled))
}

// HandleGet handles GET /v1/datasets/{name}/schema. The version query
// parameter selects a version; default is the latest active one.
func (h *Handler) HandleGet(c *gin.Context) {
	name := c.Param("name")

	ds, ok := h.lookupDataset(c, name)
	if !ok {
		return
	}

	compiled, err := h.validator.Compile(c.Request.Context(), ds)
	if err != nil {
		slog.Error("Dataset schema compile error", "dataset", ds.Name, "version", ds.Version, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to compile dataset schema"})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(ds, compiled))
}

// HandleList handles GET /v1/datasets.
func (h *Handler) HandleList(c *gin.Context) {
	// Optional filter by dataset name
	name := c.Query("dataset")

	datasets, err := h.registry.List(c.Request.Context(), name)
	if err != nil {
		slog.Error("Dataset schema list error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to list dataset schemas"})
		return
	}

	responses := make([]*ListedDatasetResponse, len(datasets))
	for i, ds := range datasets {
		resp, convErr := h.toListedResponse(ds)
		if convErr != nil {
			slog.Error("Dataset schema list conversion error", "error", convErr, "dataset", ds.Name, "version", ds.Version)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to convert schema definition"})
			return
		}
		responses[i] = resp
	}

	c.JSON(http.StatusOK, responses)
}

// HandleValidate handles POST /v1/datasets/{name}/validate (dry-run).
func (h *Handler) HandleValidate(c *gin.Context) {
	name := c.Param("name")

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_json", Message: "Invalid JSON body"})
		return
	}

	ds, ok := h.lookupDataset(c, name)
	if !ok {
		return
	}

	if err := h.validator.ValidateRow(c.Request.Context(), ds, data); err != nil {
		resp := ErrorResponse{Error: "validation_failed", Message: err.Error()}
		if detailer, ok := err.(schema.ValidationDetailer); ok {
			resp.Details = detailer.Details()
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"dataset": ds.Name,
		"version": ds.Version,
	})
}

// lookupDataset resolves the name plus optional version query parameter.
// Writes the error response and returns ok=false on failure.
func (h *Handler) lookupDataset(c *gin.Context, name string) (*schema.Dataset, bool) {
	versionStr := c.Query("version")
	if versionStr == "" {
		ds, err := h.registry.Latest(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "dataset_not_found", Message: err.Error()})
			return nil, false
		}
		return ds, true
	}

	version, err := strconv.Atoi(versionStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_version", Message: "version must be an integer"})
		return nil, false
	}
	ds, err := h.registry.Get(c.Request.Context(), name, version)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "dataset_not_found", Message: err.Error()})
		return nil, false
	}
	return ds, true
}

func (h *Handler) toResponse(ds *schema.Dataset, compiled *schema.CompiledDataset) *DatasetResponse {
	return &DatasetResponse{
		ID:          ds.ID,
		Name:        ds.Name,
		Version:     ds.Version,
		Format:      string(ds.Format),
		State:       string(ds.State),
		StrictMode:  ds.StrictMode,
		Fingerprint: ds.Fingerprint,
		CreatedAt:   ds.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Fields:      compiled.Fields,
	}
}

func (h *Handler) toListedResponse(ds *schema.Dataset) (*ListedDatasetResponse, error) {
	resp := &ListedDatasetResponse{
		Name:       ds.Name,
		Version:    ds.Version,
		Format:     string(ds.Format),
		StrictMode: ds.StrictMode,
		State:      string(ds.State),
	}

	if ds.Format == schema.FormatYaml {
		var parsed map[string]interface{}
		if err := yaml.Unmarshal(ds.Definition, &parsed); err != nil {
			return nil, err
		}
		resp.Definition = parsed
		return resp, nil
	}

	resp.Definition = map[string]interface{}{
		"raw": string(ds.Definition),
	}
	return resp, nil
}
