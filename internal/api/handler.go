// Package api is the HTTP boundary: request routing, body validation,
// response serialization, and error-to-status-code mapping. It contains no
// lifecycle logic of its own.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stratusops/stratus/internal/fleet"
	"github.com/stratusops/stratus/internal/telemetry"
)

// Lifecycle is the transition surface the handlers need.
type Lifecycle interface {
	Launch(ctx context.Context, spec fleet.LaunchSpec) (fleet.Instance, error)
	Start(ctx context.Context, id string) (fleet.Instance, error)
	Stop(ctx context.Context, id string) (fleet.Instance, error)
	Terminate(ctx context.Context, id string) (fleet.Instance, error)
}

// Instances is the read surface the handlers need.
type Instances interface {
	List(ctx context.Context, filter fleet.ListFilter) ([]fleet.Instance, error)
	Get(ctx context.Context, id string) (fleet.Instance, error)
}

// Summarizer produces the fleet status summary.
type Summarizer interface {
	Summarize(ctx context.Context) (fleet.Summary, error)
}

// API wires the core services to HTTP routes.
type API struct {
	lifecycle Lifecycle
	instances Instances
	summary   Summarizer
	metrics   *telemetry.Metrics
	logger    zerolog.Logger
}

// NewAPI creates the HTTP handler set.
func NewAPI(lifecycle Lifecycle, instances Instances, summary Summarizer, metrics *telemetry.Metrics, logger zerolog.Logger) *API {
	return &API{
		lifecycle: lifecycle,
		instances: instances,
		summary:   summary,
		metrics:   metrics,
		logger:    logger,
	}
}

// Routes builds the gin engine with all instance routes registered.
func (a *API) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger(a.logger, a.metrics), gin.Recovery())

	router.GET("/healthz", a.health)

	v1 := router.Group("/api/v1/instances")
	v1.POST("", a.createInstance)
	v1.GET("", a.listInstances)
	v1.GET("/status/summary", a.statusSummary)
	v1.GET("/:id", a.getInstance)
	v1.POST("/:id/start", a.startInstance)
	v1.POST("/:id/stop", a.stopInstance)
	v1.POST("/:id/tags", a.updateTags)
	v1.DELETE("/:id", a.terminateInstance)

	return router
}

type createInstanceRequest struct {
	Name            string `json:"name" binding:"required"`
	InstanceType    string `json:"instance_type" binding:"required"`
	AMIID           string `json:"ami_id" binding:"required"`
	KeyPairName     string `json:"key_pair_name" binding:"required"`
	SecurityGroupID string `json:"security_group_id" binding:"required"`
	Environment     string `json:"environment"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	InstanceID string `json:"instance_id,omitempty"`
}

func (a *API) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) createInstance(c *gin.Context) {
	var req createInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "validation", Message: err.Error()})
		return
	}
	if req.Environment == "" {
		req.Environment = "development"
	}

	inst, err := a.lifecycle.Launch(c.Request.Context(), fleet.LaunchSpec{
		Name:            req.Name,
		InstanceType:    req.InstanceType,
		ImageID:         req.AMIID,
		KeyPairName:     req.KeyPairName,
		SecurityGroupID: req.SecurityGroupID,
		Environment:     req.Environment,
	})
	if err != nil {
		a.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inst)
}

func (a *API) listInstances(c *gin.Context) {
	filter := fleet.ListFilter{
		Environment:  c.Query("environment"),
		InstanceType: c.Query("instance_type"),
	}

	instances, err := a.instances.List(c.Request.Context(), filter)
	if err != nil {
		a.renderError(c, err)
		return
	}
	if instances == nil {
		instances = []fleet.Instance{}
	}

	c.JSON(http.StatusOK, instances)
}

func (a *API) getInstance(c *gin.Context) {
	inst, err := a.instances.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

func (a *API) startInstance(c *gin.Context) {
	inst, err := a.lifecycle.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

func (a *API) stopInstance(c *gin.Context) {
	inst, err := a.lifecycle.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

func (a *API) terminateInstance(c *gin.Context) {
	inst, err := a.lifecycle.Terminate(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

func (a *API) statusSummary(c *gin.Context) {
	summary, err := a.summary.Summarize(c.Request.Context())
	if err != nil {
		a.renderError(c, err)
		return
	}

	a.metrics.RecordInstancesObserved(c.Request.Context(), int64(summary.TotalInstances))
	c.JSON(http.StatusOK, summary)
}

// updateTags is deliberately unimplemented; no provider call is made.
func (a *API) updateTags(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, errorResponse{
		Error:      "not_implemented",
		Message:    "tag update is not implemented",
		InstanceID: c.Param("id"),
	})
}

// renderError maps the domain error taxonomy onto HTTP status codes.
func (a *API) renderError(c *gin.Context, err error) {
	var notFound *fleet.NotFoundError
	var invalidState *fleet.InvalidStateError
	var providerErr *fleet.ProviderError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, errorResponse{
			Error: "not_found", Message: notFound.Error(), InstanceID: notFound.ID,
		})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, errorResponse{
			Error: "invalid_state", Message: invalidState.Error(), InstanceID: invalidState.ID,
		})
	case errors.As(err, &providerErr):
		a.logger.Error().Err(err).Str("instance_id", providerErr.ID).Msg("provider call failed")
		c.JSON(http.StatusBadGateway, errorResponse{
			Error: "provider_error", Message: providerErr.Error(), InstanceID: providerErr.ID,
		})
	default:
		a.logger.Error().Err(err).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "internal", Message: err.Error(),
		})
	}
}
