package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// Init opens the Postgres connection from env vars and pings it. DATABASE_URL
// wins when set; otherwise the DSN is assembled from the DB_* parts.
func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASSWORD")
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		name := os.Getenv("DB_NAME")

		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			user, pass, host, port, name,
		)
	}

	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err = DB.Ping(); err != nil {
		log.Fatalf("failed to ping DB: %v", err)
	}

	log.Println("connected to database")
}

// Migrate creates the schema when it does not exist yet. Children reference
// campaigns by name, so a campaign row must commit before its periods/sites.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS campaigns (
			name TEXT PRIMARY KEY,
			tipo_campania TEXT NOT NULL,
			fecha_inicio DATE NOT NULL,
			fecha_fin DATE NOT NULL,
			universo_zona_metro BIGINT,
			impactos_personas BIGINT,
			impactos_vehiculos BIGINT,
			frecuencia_calculada DOUBLE PRECISION,
			frecuencia_promedio DOUBLE PRECISION,
			alcance BIGINT,
			nse_ab DOUBLE PRECISION,
			nse_c DOUBLE PRECISION,
			nse_cmas DOUBLE PRECISION,
			nse_d DOUBLE PRECISION,
			nse_dmas DOUBLE PRECISION,
			nse_e DOUBLE PRECISION,
			edad_0a14 DOUBLE PRECISION,
			edad_15a19 DOUBLE PRECISION,
			edad_20a24 DOUBLE PRECISION,
			edad_25a34 DOUBLE PRECISION,
			edad_35a44 DOUBLE PRECISION,
			edad_45a64 DOUBLE PRECISION,
			edad_65mas DOUBLE PRECISION,
			hombres DOUBLE PRECISION,
			mujeres DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS campaign_periods (
			id SERIAL PRIMARY KEY,
			campaign_name TEXT NOT NULL REFERENCES campaigns(name),
			period TEXT NOT NULL,
			impactos_periodo_personas BIGINT NOT NULL,
			impactos_periodo_vehiculos BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS campaign_sites (
			id SERIAL PRIMARY KEY,
			campaign_name TEXT NOT NULL REFERENCES campaigns(name),
			codigo_del_sitio TEXT NOT NULL,
			tipo_de_mueble TEXT NOT NULL,
			tipo_de_anuncio TEXT NOT NULL,
			estado TEXT NOT NULL,
			municipio TEXT NOT NULL,
			zm TEXT NOT NULL,
			frecuencia_catorcenal DOUBLE PRECISION,
			frecuencia_mensual DOUBLE PRECISION,
			impactos_catorcenal BIGINT,
			impactos_mensuales BIGINT,
			alcance_mensual DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			hashed_password TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
