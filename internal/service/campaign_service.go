package service

import (
	appErrors "github.com/vallasmx/campaign-analytics-backend/internal/errors"
	"github.com/vallasmx/campaign-analytics-backend/internal/model"
	"github.com/vallasmx/campaign-analytics-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
}

// CampaignPage is the paginated listing response.
type CampaignPage struct {
	Data     []model.Campaign `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// CampaignDetail is a campaign with all of its periods and sites.
type CampaignDetail struct {
	model.Campaign
	Periods []model.CampaignPeriod `json:"periods"`
	Sites   []model.CampaignSite   `json:"sites"`
}

// ListCampaigns clamps the pagination window, applies the optional filters
// and computes page = skip/limit for the response.
func (s *CampaignService) ListCampaigns(skip, limit int, tipoCampania string, startDate, endDate *model.Date) (*CampaignPage, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	ptrs, total, err := s.CampaignRepo.ListCampaigns(skip, limit, tipoCampania, startDate, endDate)
	if err != nil {
		return nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	return &CampaignPage{
		Data:     campaigns,
		Total:    total,
		Page:     skip / limit,
		PageSize: limit,
	}, nil
}

func (s *CampaignService) GetCampaign(name string) (*model.Campaign, error) {
	return s.CampaignRepo.GetByName(name)
}

func (s *CampaignService) GetCampaignDetail(name string) (*CampaignDetail, error) {
	c, periods, sites, err := s.CampaignRepo.GetDetail(name)
	if err != nil {
		return nil, err
	}
	return &CampaignDetail{
		Campaign: *c,
		Periods:  periods,
		Sites:    sites,
	}, nil
}

// SearchByDate returns campaigns whose run overlaps [start, end].
func (s *CampaignService) SearchByDate(start, end model.Date) ([]model.Campaign, error) {
	if start.After(end) {
		return nil, appErrors.ErrInvalidDateRange
	}

	ptrs, err := s.CampaignRepo.SearchByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}
	return campaigns, nil
}

// CreateCampaign rejects duplicate names up front, then creates the campaign
// and all children atomically. The repository maps a concurrent duplicate
// insert to the same conflict error.
func (s *CampaignService) CreateCampaign(c *model.Campaign, periods []model.CampaignPeriod, sites []model.CampaignSite) (*model.Campaign, error) {
	existing, err := s.CampaignRepo.GetByName(c.Name)
	if err != nil && !appErrors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewCampaignExists(c.Name)
	}

	if err := s.CampaignRepo.CreateWithDetails(c, periods, sites); err != nil {
		return nil, err
	}
	return c, nil
}
