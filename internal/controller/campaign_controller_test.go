package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vallasmx/campaign-analytics-backend/internal/auth"
	"github.com/vallasmx/campaign-analytics-backend/internal/controller"
	appErrors "github.com/vallasmx/campaign-analytics-backend/internal/errors"
	"github.com/vallasmx/campaign-analytics-backend/internal/middleware"
	"github.com/vallasmx/campaign-analytics-backend/internal/model"
	"github.com/vallasmx/campaign-analytics-backend/internal/service"
)

// stubCampaignRepo keeps campaigns in a name-sorted slice and mirrors the
// repository's filter predicates.
type stubCampaignRepo struct {
	campaigns []*model.Campaign
	periods   map[string][]model.CampaignPeriod
	sites     map[string][]model.CampaignSite
}

func (m *stubCampaignRepo) ListCampaigns(offset, limit int, tipoCampania string, startDate, endDate *model.Date) ([]*model.Campaign, int, error) {
	matched := []*model.Campaign{}
	for _, c := range m.campaigns {
		if tipoCampania != "" && c.TipoCampania != tipoCampania {
			continue
		}
		if startDate != nil && endDate != nil {
			if c.FechaInicio.Before(*startDate) || c.FechaFin.After(*endDate) {
				continue
			}
		}
		matched = append(matched, c)
	}
	total := len(matched)
	if offset > total {
		return []*model.Campaign{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *stubCampaignRepo) GetByName(name string) (*model.Campaign, error) {
	for _, c := range m.campaigns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, appErrors.NewCampaignNotFound(name)
}

func (m *stubCampaignRepo) GetDetail(name string) (*model.Campaign, []model.CampaignPeriod, []model.CampaignSite, error) {
	c, err := m.GetByName(name)
	if err != nil {
		return nil, nil, nil, err
	}
	return c, m.periods[name], m.sites[name], nil
}

func (m *stubCampaignRepo) SearchByDateRange(start, end model.Date) ([]*model.Campaign, error) {
	matched := []*model.Campaign{}
	for _, c := range m.campaigns {
		if !c.FechaInicio.After(end) && !c.FechaFin.Before(start) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (m *stubCampaignRepo) CreateWithDetails(c *model.Campaign, periods []model.CampaignPeriod, sites []model.CampaignSite) error {
	for _, existing := range m.campaigns {
		if existing.Name == c.Name {
			return appErrors.NewCampaignExists(c.Name)
		}
	}
	m.campaigns = append(m.campaigns, c)
	if m.periods == nil {
		m.periods = map[string][]model.CampaignPeriod{}
		m.sites = map[string][]model.CampaignSite{}
	}
	m.periods[c.Name] = periods
	m.sites[c.Name] = sites
	return nil
}

func newTestRouter(repo *stubCampaignRepo, tokens *auth.TokenManager) *chi.Mux {
	svc := &service.CampaignService{CampaignRepo: repo}
	ctrl := &controller.CampaignController{CampaignService: svc}

	r := chi.NewRouter()
	r.Get("/campaigns", ctrl.ListCampaigns)
	r.Get("/campaigns/search-by-date", ctrl.SearchByDate)
	r.Get("/campaigns/{name}", ctrl.GetCampaign)
	if tokens != nil {
		r.With(middleware.RequireAuth(tokens)).Post("/campaigns", ctrl.CreateCampaign)
	} else {
		r.Post("/campaigns", ctrl.CreateCampaign)
	}
	return r
}

func seedCampaigns(n int) *stubCampaignRepo {
	repo := &stubCampaignRepo{
		periods: map[string][]model.CampaignPeriod{},
		sites:   map[string][]model.CampaignSite{},
	}
	for i := 0; i < n; i++ {
		repo.campaigns = append(repo.campaigns, &model.Campaign{
			Name:         fmt.Sprintf("campaign_%d", i),
			TipoCampania: "mensual",
			FechaInicio:  model.NewDate(2025, time.January, 1),
			FechaFin:     model.NewDate(2025, time.January, 31),
		})
	}
	return repo
}

type pageResponse struct {
	Data     []model.Campaign `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

func TestListCampaignsResponseShape(t *testing.T) {
	router := newTestRouter(seedCampaigns(6), nil)

	req := httptest.NewRequest("GET", "/campaigns?skip=5&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res pageResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Total != 6 {
		t.Errorf("expected total 6, got %d", res.Total)
	}
	if len(res.Data) != 1 || res.Data[0].Name != "campaign_5" {
		t.Errorf("expected [campaign_5], got %+v", res.Data)
	}
	if res.Page != 0 || res.PageSize != 10 {
		t.Errorf("expected page=0 pageSize=10, got %d %d", res.Page, res.PageSize)
	}
}

func TestListCampaignsRejectsMalformedDate(t *testing.T) {
	router := newTestRouter(seedCampaigns(1), nil)

	req := httptest.NewRequest("GET", "/campaigns?start_date=01/02/2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetCampaignDetailAndNotFound(t *testing.T) {
	repo := seedCampaigns(1)
	repo.periods["campaign_0"] = []model.CampaignPeriod{{ID: 1, CampaignName: "campaign_0", Period: "P1"}}
	repo.sites["campaign_0"] = []model.CampaignSite{{ID: 1, CampaignName: "campaign_0", CodigoDelSitio: "MX-001"}}
	router := newTestRouter(repo, nil)

	req := httptest.NewRequest("GET", "/campaigns/campaign_0", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var detail struct {
		Name    string                 `json:"name"`
		Periods []model.CampaignPeriod `json:"periods"`
		Sites   []model.CampaignSite   `json:"sites"`
	}
	if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if detail.Name != "campaign_0" || len(detail.Periods) != 1 || len(detail.Sites) != 1 {
		t.Errorf("unexpected detail: %+v", detail)
	}

	req = httptest.NewRequest("GET", "/campaigns/non_existent", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSearchByDateValidation(t *testing.T) {
	router := newTestRouter(seedCampaigns(1), nil)

	// Inverted window.
	req := httptest.NewRequest("GET", "/campaigns/search-by-date?start_date=2025-02-01&end_date=2025-01-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("inverted range: expected 400, got %d", w.Code)
	}

	// Missing params.
	req = httptest.NewRequest("GET", "/campaigns/search-by-date?start_date=2025-01-01", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing end_date: expected 400, got %d", w.Code)
	}

	// Overlapping window matches even though the campaign is not contained.
	req = httptest.NewRequest("GET", "/campaigns/search-by-date?start_date=2025-01-15&end_date=2025-01-20", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var found []model.Campaign
	if err := json.NewDecoder(w.Body).Decode(&found); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("expected 1 overlapping campaign, got %d", len(found))
	}
}

func createBody(name string) *bytes.Reader {
	body := map[string]interface{}{
		"name":          name,
		"tipo_campania": "mensual",
		"fecha_inicio":  "2025-01-01",
		"fecha_fin":     "2025-01-31",
		"periods": []map[string]interface{}{
			{"period": "P1", "impactos_periodo_personas": 100, "impactos_periodo_vehiculos": 50},
		},
		"sites": []map[string]interface{}{
			{"codigo_del_sitio": "MX-001", "tipo_de_mueble": "valla", "tipo_de_anuncio": "cartelera",
				"estado": "CDMX", "municipio": "Coyoacan", "zm": "ZMVM"},
		},
	}
	b, _ := json.Marshal(body)
	return bytes.NewReader(b)
}

func TestCreateCampaignRequiresToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Minute)
	router := newTestRouter(seedCampaigns(0), tokens)

	req := httptest.NewRequest("POST", "/campaigns", createBody("nueva"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	token, err := tokens.Issue("admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req = httptest.NewRequest("POST", "/campaigns", createBody("nueva"))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", w.Code, w.Body.String())
	}

	var created model.Campaign
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Name != "nueva" {
		t.Errorf("expected created campaign nueva, got %q", created.Name)
	}
}

func TestCreateCampaignDuplicateName(t *testing.T) {
	repo := seedCampaigns(0)
	router := newTestRouter(repo, nil)

	req := httptest.NewRequest("POST", "/campaigns", createBody("repetida"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first create: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest("POST", "/campaigns", createBody("repetida"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate create: expected 400, got %d", w.Code)
	}
	if len(repo.campaigns) != 1 {
		t.Errorf("duplicate create must not persist anything, have %d campaigns", len(repo.campaigns))
	}
}

func TestCreateCampaignRejectsInvertedDates(t *testing.T) {
	router := newTestRouter(seedCampaigns(0), nil)

	body := map[string]interface{}{
		"name":          "alreves",
		"tipo_campania": "mensual",
		"fecha_inicio":  "2025-02-01",
		"fecha_fin":     "2025-01-01",
	}
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/campaigns", bytes.NewReader(b))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
