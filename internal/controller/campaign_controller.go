package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/vallasmx/campaign-analytics-backend/internal/errors"
	"github.com/vallasmx/campaign-analytics-backend/internal/model"
	"github.com/vallasmx/campaign-analytics-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// parseDateParam returns nil when the query param is absent.
func parseDateParam(r *http.Request, key string) (*model.Date, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListCampaigns handles GET /campaigns with pagination and optional filters.
func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	tipoCampania := r.URL.Query().Get("tipo_campania")

	startDate, err := parseDateParam(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := parseDateParam(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := c.CampaignService.ListCampaigns(skip, limit, tipoCampania, startDate, endDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch campaigns")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetCampaign handles GET /campaigns/{name} and returns the campaign with its
// periods and sites.
func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	detail, err := c.CampaignService.GetCampaignDetail(name)
	if err != nil {
		if appErrors.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch campaign")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// SearchByDate handles GET /campaigns/search-by-date. Both bounds are
// required and the window must not be inverted.
func (c *CampaignController) SearchByDate(w http.ResponseWriter, r *http.Request) {
	startRaw := r.URL.Query().Get("start_date")
	endRaw := r.URL.Query().Get("end_date")
	if startRaw == "" || endRaw == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	start, err := model.ParseDate(startRaw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := model.ParseDate(endRaw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	campaigns, err := c.CampaignService.SearchByDate(start, end)
	if err != nil {
		if errors.Is(err, appErrors.ErrInvalidDateRange) {
			writeError(w, http.StatusBadRequest, "Start date must be before end date")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to search campaigns")
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

type createCampaignRequest struct {
	model.Campaign
	Periods []model.CampaignPeriod `json:"periods"`
	Sites   []model.CampaignSite   `json:"sites"`
}

// CreateCampaign handles POST /campaigns. The route is wrapped by the bearer
// auth middleware.
func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if body.FechaInicio.After(body.FechaFin) {
		writeError(w, http.StatusBadRequest, "fecha_inicio must not be after fecha_fin")
		return
	}

	created, err := c.CampaignService.CreateCampaign(&body.Campaign, body.Periods, body.Sites)
	if err != nil {
		if appErrors.IsConflict(err) {
			writeError(w, http.StatusBadRequest, "Campaign with this name already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create campaign")
		return
	}
	writeJSON(w, http.StatusOK, created)
}
