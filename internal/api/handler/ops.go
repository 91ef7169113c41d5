// Package handler provides HTTP handlers for the healthboard API.
package handler

import (
	"net/http"
	"time"

	"github.com/healthboard/healthboard/internal/api/models"
	"github.com/healthboard/healthboard/internal/api/response"
	"github.com/healthboard/healthboard/internal/session"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	sessions  *session.Controller
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, sessions *session.Controller) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		sessions:  sessions,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Ready means at least one fetch cycle has completed, successfully or not;
// a deployment that cannot reach Graph at all stays not-ready.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Current()

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	if state.FetchedAt.IsZero() && state.LastError == nil {
		health.Status = models.HealthStatusDegraded
		health.Details = map[string]interface{}{"reason": "no fetch cycle completed yet"}
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem and upstream status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	state := h.sessions.Current()

	overall := models.HealthStatusOK
	upstream := models.UpstreamStatus{
		Status:      models.HealthStatusOK,
		PartialData: state.PartialData,
	}
	if !state.FetchedAt.IsZero() {
		fetchedAt := models.Timestamp(state.FetchedAt)
		upstream.LastSuccessAt = &fetchedAt
	}
	if state.LastError != nil {
		overall = models.HealthStatusDegraded
		upstream.Status = models.HealthStatusFail
		msg := state.LastError.Error()
		upstream.Message = &msg
	} else if state.PartialData {
		overall = models.HealthStatusDegraded
		upstream.Status = models.HealthStatusDegraded
	}

	autoRefresh := models.HealthStatusOK
	if !h.sessions.AutoRefreshRunning() {
		autoRefresh = models.HealthStatusDegraded
	}

	status := models.SystemStatus{
		Status: overall,
		Time:   now,
		Subsystems: []models.SubsystemStatus{
			{Name: "auto-refresh", Status: autoRefresh},
		},
		Upstream: &upstream,
	}
	response.JSON(w, r, http.StatusOK, status)
}
