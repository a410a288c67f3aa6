package model

// Campaign is an advertising campaign keyed by its unique name. The metric
// columns come from the agency's reach studies and are nullable because older
// campaigns were measured with fewer indicators.
type Campaign struct {
	Name         string `db:"name" json:"name"`
	TipoCampania string `db:"tipo_campania" json:"tipo_campania"`
	FechaInicio  Date   `db:"fecha_inicio" json:"fecha_inicio"`
	FechaFin     Date   `db:"fecha_fin" json:"fecha_fin"`

	UniversoZonaMetro   *int64   `db:"universo_zona_metro" json:"universo_zona_metro"`
	ImpactosPersonas    *int64   `db:"impactos_personas" json:"impactos_personas"`
	ImpactosVehiculos   *int64   `db:"impactos_vehiculos" json:"impactos_vehiculos"`
	FrecuenciaCalculada *float64 `db:"frecuencia_calculada" json:"frecuencia_calculada"`
	FrecuenciaPromedio  *float64 `db:"frecuencia_promedio" json:"frecuencia_promedio"`
	Alcance             *int64   `db:"alcance" json:"alcance"`

	// Socioeconomic segment shares.
	NseAB   *float64 `db:"nse_ab" json:"nse_ab"`
	NseC    *float64 `db:"nse_c" json:"nse_c"`
	NseCmas *float64 `db:"nse_cmas" json:"nse_cmas"`
	NseD    *float64 `db:"nse_d" json:"nse_d"`
	NseDmas *float64 `db:"nse_dmas" json:"nse_dmas"`
	NseE    *float64 `db:"nse_e" json:"nse_e"`

	// Age bracket shares.
	Edad0a14  *float64 `db:"edad_0a14" json:"edad_0a14"`
	Edad15a19 *float64 `db:"edad_15a19" json:"edad_15a19"`
	Edad20a24 *float64 `db:"edad_20a24" json:"edad_20a24"`
	Edad25a34 *float64 `db:"edad_25a34" json:"edad_25a34"`
	Edad35a44 *float64 `db:"edad_35a44" json:"edad_35a44"`
	Edad45a64 *float64 `db:"edad_45a64" json:"edad_45a64"`
	Edad65mas *float64 `db:"edad_65mas" json:"edad_65mas"`

	// Gender shares.
	Hombres *float64 `db:"hombres" json:"hombres"`
	Mujeres *float64 `db:"mujeres" json:"mujeres"`
}

// CampaignPeriod is a sub-interval of a campaign's run with its own impact
// counts. Identity is a surrogate id assigned by the database.
type CampaignPeriod struct {
	ID                       int    `db:"id" json:"id"`
	CampaignName             string `db:"campaign_name" json:"campaign_name"`
	Period                   string `db:"period" json:"period"`
	ImpactosPeriodoPersonas  int64  `db:"impactos_periodo_personas" json:"impactos_periodo_personas"`
	ImpactosPeriodoVehiculos int64  `db:"impactos_periodo_vehiculos" json:"impactos_periodo_vehiculos"`
}

// CampaignSite is a physical placement (billboard, bus shelter, ...) booked
// for a campaign.
type CampaignSite struct {
	ID             int    `db:"id" json:"id"`
	CampaignName   string `db:"campaign_name" json:"campaign_name"`
	CodigoDelSitio string `db:"codigo_del_sitio" json:"codigo_del_sitio"`
	TipoDeMueble   string `db:"tipo_de_mueble" json:"tipo_de_mueble"`
	TipoDeAnuncio  string `db:"tipo_de_anuncio" json:"tipo_de_anuncio"`
	Estado         string `db:"estado" json:"estado"`
	Municipio      string `db:"municipio" json:"municipio"`
	ZM             string `db:"zm" json:"zm"`

	FrecuenciaCatorcenal *float64 `db:"frecuencia_catorcenal" json:"frecuencia_catorcenal"`
	FrecuenciaMensual    *float64 `db:"frecuencia_mensual" json:"frecuencia_mensual"`
	ImpactosCatorcenal   *int64   `db:"impactos_catorcenal" json:"impactos_catorcenal"`
	ImpactosMensuales    *int64   `db:"impactos_mensuales" json:"impactos_mensuales"`
	AlcanceMensual       *float64 `db:"alcance_mensual" json:"alcance_mensual"`
}
