package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	appErrors "github.com/vallasmx/campaign-analytics-backend/internal/errors"
	"github.com/vallasmx/campaign-analytics-backend/internal/model"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

const campaignColumns = `name, tipo_campania, fecha_inicio, fecha_fin,
	universo_zona_metro, impactos_personas, impactos_vehiculos,
	frecuencia_calculada, frecuencia_promedio, alcance,
	nse_ab, nse_c, nse_cmas, nse_d, nse_dmas, nse_e,
	edad_0a14, edad_15a19, edad_20a24, edad_25a34, edad_35a44, edad_45a64, edad_65mas,
	hombres, mujeres`

type CampaignRepositoryInterface interface {
	// ListCampaigns returns one pagination window plus the total match count.
	// The date pair filters by containment and only applies when both bounds
	// are present. Offset/limit are assumed pre-validated by the service.
	ListCampaigns(offset, limit int, tipoCampania string, startDate, endDate *model.Date) ([]*model.Campaign, int, error)
	GetByName(name string) (*model.Campaign, error)
	GetDetail(name string) (*model.Campaign, []model.CampaignPeriod, []model.CampaignSite, error)
	// SearchByDateRange matches campaigns whose run overlaps the window.
	SearchByDateRange(start, end model.Date) ([]*model.Campaign, error)
	// CreateWithDetails inserts the campaign and all children in one
	// transaction. Nothing persists if any insert fails.
	CreateWithDetails(c *model.Campaign, periods []model.CampaignPeriod, sites []model.CampaignSite) error
}

type CampaignRepository struct {
	DB *sql.DB
}

func scanCampaign(row interface{ Scan(...interface{}) error }) (*model.Campaign, error) {
	var c model.Campaign
	err := row.Scan(
		&c.Name, &c.TipoCampania, &c.FechaInicio, &c.FechaFin,
		&c.UniversoZonaMetro, &c.ImpactosPersonas, &c.ImpactosVehiculos,
		&c.FrecuenciaCalculada, &c.FrecuenciaPromedio, &c.Alcance,
		&c.NseAB, &c.NseC, &c.NseCmas, &c.NseD, &c.NseDmas, &c.NseE,
		&c.Edad0a14, &c.Edad15a19, &c.Edad20a24, &c.Edad25a34,
		&c.Edad35a44, &c.Edad45a64, &c.Edad65mas,
		&c.Hombres, &c.Mujeres,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, tipoCampania string, startDate, endDate *model.Date) ([]*model.Campaign, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if tipoCampania != "" {
		where += fmt.Sprintf(" AND tipo_campania=$%d", argPos)
		args = append(args, tipoCampania)
		argPos++
	}
	// Containment: the campaign's whole run must fall inside the window.
	if startDate != nil && endDate != nil {
		where += fmt.Sprintf(" AND fecha_inicio >= $%d AND fecha_fin <= $%d", argPos, argPos+1)
		args = append(args, *startDate, *endDate)
		argPos += 2
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) GetByName(name string) (*model.Campaign, error) {
	row := r.DB.QueryRow(`SELECT `+campaignColumns+` FROM campaigns WHERE name=$1`, name)
	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, appErrors.NewCampaignNotFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

// GetDetail eager-loads all periods and sites along with the campaign.
// Children are not paginated.
func (r *CampaignRepository) GetDetail(name string) (*model.Campaign, []model.CampaignPeriod, []model.CampaignSite, error) {
	c, err := r.GetByName(name)
	if err != nil {
		return nil, nil, nil, err
	}

	periods := []model.CampaignPeriod{}
	rows, err := r.DB.Query(`
		SELECT id, campaign_name, period, impactos_periodo_personas, impactos_periodo_vehiculos
		FROM campaign_periods WHERE campaign_name=$1 ORDER BY id`, name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p model.CampaignPeriod
		if err := rows.Scan(&p.ID, &p.CampaignName, &p.Period, &p.ImpactosPeriodoPersonas, &p.ImpactosPeriodoVehiculos); err != nil {
			return nil, nil, nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, err
	}

	sites := []model.CampaignSite{}
	siteRows, err := r.DB.Query(`
		SELECT id, campaign_name, codigo_del_sitio, tipo_de_mueble, tipo_de_anuncio,
		       estado, municipio, zm,
		       frecuencia_catorcenal, frecuencia_mensual,
		       impactos_catorcenal, impactos_mensuales, alcance_mensual
		FROM campaign_sites WHERE campaign_name=$1 ORDER BY id`, name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list sites: %w", err)
	}
	defer siteRows.Close()
	for siteRows.Next() {
		var s model.CampaignSite
		if err := siteRows.Scan(&s.ID, &s.CampaignName, &s.CodigoDelSitio, &s.TipoDeMueble, &s.TipoDeAnuncio,
			&s.Estado, &s.Municipio, &s.ZM,
			&s.FrecuenciaCatorcenal, &s.FrecuenciaMensual,
			&s.ImpactosCatorcenal, &s.ImpactosMensuales, &s.AlcanceMensual); err != nil {
			return nil, nil, nil, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, s)
	}
	if err := siteRows.Err(); err != nil {
		return nil, nil, nil, err
	}

	return c, periods, sites, nil
}

func (r *CampaignRepository) SearchByDateRange(start, end model.Date) ([]*model.Campaign, error) {
	rows, err := r.DB.Query(`SELECT `+campaignColumns+` FROM campaigns
		WHERE fecha_inicio <= $1 AND fecha_fin >= $2 ORDER BY name ASC`, end, start)
	if err != nil {
		return nil, fmt.Errorf("search campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CampaignRepository) CreateWithDetails(c *model.Campaign, periods []model.CampaignPeriod, sites []model.CampaignSite) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin create campaign: %w", err)
	}
	defer tx.Rollback()

	// Parent first so a duplicate name fails before any child insert runs.
	_, err = tx.Exec(`
		INSERT INTO campaigns (`+campaignColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)`,
		c.Name, c.TipoCampania, c.FechaInicio, c.FechaFin,
		c.UniversoZonaMetro, c.ImpactosPersonas, c.ImpactosVehiculos,
		c.FrecuenciaCalculada, c.FrecuenciaPromedio, c.Alcance,
		c.NseAB, c.NseC, c.NseCmas, c.NseD, c.NseDmas, c.NseE,
		c.Edad0a14, c.Edad15a19, c.Edad20a24, c.Edad25a34,
		c.Edad35a44, c.Edad45a64, c.Edad65mas,
		c.Hombres, c.Mujeres,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return appErrors.NewCampaignExists(c.Name)
		}
		return fmt.Errorf("insert campaign: %w", err)
	}

	for i := range periods {
		p := &periods[i]
		err = tx.QueryRow(`
			INSERT INTO campaign_periods (campaign_name, period, impactos_periodo_personas, impactos_periodo_vehiculos)
			VALUES ($1,$2,$3,$4) RETURNING id`,
			c.Name, p.Period, p.ImpactosPeriodoPersonas, p.ImpactosPeriodoVehiculos,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert period: %w", err)
		}
		p.CampaignName = c.Name
	}

	for i := range sites {
		s := &sites[i]
		err = tx.QueryRow(`
			INSERT INTO campaign_sites (campaign_name, codigo_del_sitio, tipo_de_mueble, tipo_de_anuncio,
				estado, municipio, zm,
				frecuencia_catorcenal, frecuencia_mensual,
				impactos_catorcenal, impactos_mensuales, alcance_mensual)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id`,
			c.Name, s.CodigoDelSitio, s.TipoDeMueble, s.TipoDeAnuncio,
			s.Estado, s.Municipio, s.ZM,
			s.FrecuenciaCatorcenal, s.FrecuenciaMensual,
			s.ImpactosCatorcenal, s.ImpactosMensuales, s.AlcanceMensual,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert site: %w", err)
		}
		s.CampaignName = c.Name
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create campaign: %w", err)
	}
	return nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
