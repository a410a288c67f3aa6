// Bulk-loads the campaign CSV exports into Postgres. Safe to re-run: existing
// campaign names are skipped.
package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/lib/pq"

	"github.com/vallasmx/campaign-analytics-backend/internal/db"
	"github.com/vallasmx/campaign-analytics-backend/internal/model"
)

const (
	agrupadoFile = "data/bd_campanias_agrupado.csv"
	periodosFile = "data/bd_campanias_periodos.csv"
	sitiosFile   = "data/bd_campanias_sitios.csv"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		log.Fatal(err)
	}

	campaigns, err := readCSV(agrupadoFile)
	if err != nil {
		log.Fatalf("failed to read %s: %v", agrupadoFile, err)
	}
	inserted := 0
	for _, row := range campaigns {
		ok, err := insertCampaign(conn, row)
		if err != nil {
			log.Fatalf("failed to insert campaign %q: %v", row["name"], err)
		}
		if ok {
			inserted++
		}
	}
	fmt.Printf("Seeded campaigns: %d new\n", inserted)

	periods, err := readCSV(periodosFile)
	if err != nil {
		log.Fatalf("failed to read %s: %v", periodosFile, err)
	}
	for _, row := range periods {
		if err := insertPeriod(conn, row); err != nil {
			log.Fatalf("failed to insert period for %q: %v", row["name"], err)
		}
	}
	fmt.Printf("Seeded periods: %d\n", len(periods))

	sites, err := readCSV(sitiosFile)
	if err != nil {
		log.Fatalf("failed to read %s: %v", sitiosFile, err)
	}
	for _, row := range sites {
		if err := insertSite(conn, row); err != nil {
			log.Fatalf("failed to insert site for %q: %v", row["name"], err)
		}
	}
	fmt.Printf("Seeded sites: %d\n", len(sites))

	fmt.Println("Database seeding completed successfully!")
}

// readCSV returns one map per record, keyed by the header row.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cleanNumber normalizes malformed delimiter-formatted numerics: a value like
// "12-34" (a number the spreadsheet turned into a date) truncates to its
// first segment.
func cleanNumber(s string) string {
	if i := strings.Index(s, "-"); i > 0 {
		return s[:i]
	}
	return s
}

func optInt(s string) *int64 {
	s = cleanNumber(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some exports carry float-formatted integers.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil
		}
		n = int64(f)
	}
	return &n
}

func optFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func reqInt(s string) int64 {
	if p := optInt(s); p != nil {
		return *p
	}
	return 0
}

func insertCampaign(conn *sql.DB, row map[string]string) (bool, error) {
	fechaInicio, err := model.ParseDate(row["fecha_inicio"])
	if err != nil {
		return false, err
	}
	fechaFin, err := model.ParseDate(row["fecha_fin"])
	if err != nil {
		return false, err
	}

	res, err := conn.Exec(`
		INSERT INTO campaigns (name, tipo_campania, fecha_inicio, fecha_fin,
			universo_zona_metro, impactos_personas, impactos_vehiculos,
			frecuencia_calculada, frecuencia_promedio, alcance,
			nse_ab, nse_c, nse_cmas, nse_d, nse_dmas, nse_e,
			edad_0a14, edad_15a19, edad_20a24, edad_25a34, edad_35a44, edad_45a64, edad_65mas,
			hombres, mujeres)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
		ON CONFLICT (name) DO NOTHING`,
		row["name"], row["tipo_campania"], fechaInicio, fechaFin,
		optInt(row["universo_zona_metro"]), optInt(row["impactos_personas"]), optInt(row["impactos_vehiculos"]),
		optFloat(row["frecuencia_calculada"]), optFloat(row["frecuencia_promedio"]), optInt(row["alcance"]),
		optFloat(row["nse_ab"]), optFloat(row["nse_c"]), optFloat(row["nse_cmas"]),
		optFloat(row["nse_d"]), optFloat(row["nse_dmas"]), optFloat(row["nse_e"]),
		optFloat(row["edad_0a14"]), optFloat(row["edad_15a19"]), optFloat(row["edad_20a24"]),
		optFloat(row["edad_25a34"]), optFloat(row["edad_35a44"]), optFloat(row["edad_45a64"]),
		optFloat(row["edad_65mas"]),
		optFloat(row["hombres"]), optFloat(row["mujeres"]),
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func insertPeriod(conn *sql.DB, row map[string]string) error {
	// The vehicle impact column ships with the accented header in some
	// exports.
	vehiculos := row["impactos_periodo_vehiculos"]
	if vehiculos == "" {
		vehiculos = row["impactos_periodo_vehículos"]
	}

	_, err := conn.Exec(`
		INSERT INTO campaign_periods (campaign_name, period, impactos_periodo_personas, impactos_periodo_vehiculos)
		VALUES ($1,$2,$3,$4)`,
		row["name"], row["period"], reqInt(row["impactos_periodo_personas"]), reqInt(vehiculos),
	)
	return err
}

func insertSite(conn *sql.DB, row map[string]string) error {
	_, err := conn.Exec(`
		INSERT INTO campaign_sites (campaign_name, codigo_del_sitio, tipo_de_mueble, tipo_de_anuncio,
			estado, municipio, zm,
			frecuencia_catorcenal, frecuencia_mensual,
			impactos_catorcenal, impactos_mensuales, alcance_mensual)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		row["name"], row["codigo_del_sitio"], row["tipo_de_mueble"], row["tipo_de_anuncio"],
		row["estado"], row["municipio"], row["zm"],
		optFloat(row["frecuencia_catorcenal"]), optFloat(row["frecuencia_mensual"]),
		optInt(row["impactos_catorcenal"]), optInt(row["impactos_mensuales"]),
		optFloat(row["alcance_mensual"]),
	)
	return err
}
