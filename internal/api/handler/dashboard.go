package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/healthboard/healthboard/internal/api/models"
	"github.com/healthboard/healthboard/internal/api/response"
	"github.com/healthboard/healthboard/internal/dashboard"
	"github.com/healthboard/healthboard/internal/prefs"
	"github.com/healthboard/healthboard/internal/session"
)

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	sessions *session.Controller
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(sessions *session.Controller) *DashboardHandler {
	return &DashboardHandler{sessions: sessions}
}

// GetDashboard handles GET /v1/dashboard - the full card grid.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Current()

	signedInAs := ""
	if identity := h.sessions.Identity(); identity != nil {
		signedInAs = identity.Name
		if signedInAs == "" {
			signedInAs = identity.Username
		}
	}

	view := dashboard.RenderGrid(state.Services, dashboard.GridOptions{
		Mode:        h.sessions.DisplayMode(r.Context()),
		AutoRefresh: h.sessions.AutoRefreshRunning(),
		LastUpdated: state.FetchedAt,
		PartialData: state.PartialData,
		SignedInAs:  signedInAs,
		Err:         state.LastError,
	})
	response.JSON(w, r, http.StatusOK, view)
}

// GetServiceDetail handles GET /v1/dashboard/services/{service} - the issue
// detail for one service.
func (h *DashboardHandler) GetServiceDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "service")
	if name == "" {
		response.BadRequest(w, r, "service name is required", nil)
		return
	}

	state := h.sessions.Current()
	for _, svc := range state.Services {
		if strings.EqualFold(svc.Service, name) {
			response.JSON(w, r, http.StatusOK, dashboard.RenderDetail(svc))
			return
		}
	}

	response.NotFound(w, r, "unknown service: "+name)
}

// Refresh handles POST /v1/dashboard/refresh - run one fetch cycle now.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Refresh(r.Context()); err != nil {
		response.UpstreamError(w, r, "service health fetch failed: "+err.Error())
		return
	}

	state := h.sessions.Current()
	response.JSON(w, r, http.StatusOK, models.RefreshResponse{
		FetchedAt:   models.Timestamp(state.FetchedAt),
		PartialData: state.PartialData,
		Services:    len(state.Services),
	})
}

// SetAutoRefresh handles PUT /v1/dashboard/auto-refresh - start or stop the
// refresh timer.
func (h *DashboardHandler) SetAutoRefresh(w http.ResponseWriter, r *http.Request) {
	var input models.AutoRefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if input.Enabled == nil {
		response.BadRequest(w, r, "enabled is required", []models.FieldError{
			{Field: "enabled", Message: "required"},
		})
		return
	}

	if *input.Enabled {
		// The timer outlives this request; it stops with the server.
		h.sessions.StartAutoRefresh(context.Background())
	} else {
		h.sessions.StopAutoRefresh()
	}

	response.JSON(w, r, http.StatusOK, models.AutoRefreshResponse{
		Enabled:         h.sessions.AutoRefreshRunning(),
		IntervalSeconds: int(h.sessions.Interval().Seconds()),
	})
}

// GetAutoRefresh handles GET /v1/dashboard/auto-refresh.
func (h *DashboardHandler) GetAutoRefresh(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.AutoRefreshResponse{
		Enabled:         h.sessions.AutoRefreshRunning(),
		IntervalSeconds: int(h.sessions.Interval().Seconds()),
	})
}

// GetDisplayMode handles GET /v1/dashboard/display-mode.
func (h *DashboardHandler) GetDisplayMode(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.DisplayModeResponse{
		Mode: string(h.sessions.DisplayMode(r.Context())),
	})
}

// SetDisplayMode handles PUT /v1/dashboard/display-mode.
func (h *DashboardHandler) SetDisplayMode(w http.ResponseWriter, r *http.Request) {
	var input models.DisplayModeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	mode := prefs.DisplayMode(input.Mode)
	if err := h.sessions.SetDisplayMode(r.Context(), mode); err != nil {
		if errors.Is(err, session.ErrInvalidDisplayMode) {
			response.BadRequest(w, r, "invalid display mode", []models.FieldError{
				{Field: "mode", Message: "must be one of standard, kiosk, compact"},
			})
			return
		}
		response.InternalError(w, r, "failed to persist display mode")
		return
	}

	response.JSON(w, r, http.StatusOK, models.DisplayModeResponse{Mode: input.Mode})
}
