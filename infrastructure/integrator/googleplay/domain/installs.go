package playdomain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var ErrMissingColumn = errors.New("coluna obrigatória ausente no relatório de instalações")

// Colunas do relatório stats/installs/installs_{pkg}_{YYYYMM}_overview.csv
const (
	ColumnDate                 = "Date"
	ColumnPackageName          = "Package Name"
	ColumnDailyDeviceInstalls  = "Daily Device Installs"
	ColumnDailyUserInstalls    = "Daily User Installs"
	ColumnDailyUserUninstalls  = "Daily User Uninstalls"
	ColumnActiveDeviceInstalls = "Active Device Installs"
)

const installsReportDateLayout = "2006-01-02"

// InstallsRow é uma linha diária do relatório de instalações
type InstallsRow struct {
	Date                 time.Time
	PackageName          string
	DailyDeviceInstalls  float64
	DailyUserInstalls    float64
	DailyUserUninstalls  float64
	ActiveDeviceInstalls float64
}

// InstallsReportObject monta o nome do objeto no bucket de relatórios do Play Console
func InstallsReportObject(packageName string, date time.Time) string {
	return fmt.Sprintf("stats/installs/installs_%s_%s_overview.csv", packageName, date.Format("200601"))
}

// ParseInstallsReport lê o CSV já decodificado para UTF-8. As colunas são localizadas
// pelo cabeçalho, já que o Play Console adiciona colunas novas sem aviso.
func ParseInstallsReport(r io.Reader) ([]InstallsRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cabeçalho do relatório: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	required := []string{ColumnDate, ColumnDailyDeviceInstalls, ColumnDailyUserInstalls, ColumnDailyUserUninstalls, ColumnActiveDeviceInstalls}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var rows []InstallsRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao ler linha do relatório: %w", err)
		}

		row, err := parseInstallsRecord(record, columns)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseInstallsRecord(record []string, columns map[string]int) (InstallsRow, error) {
	field := func(name string) string {
		index, ok := columns[name]
		if !ok || index >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[index])
	}

	date, err := time.Parse(installsReportDateLayout, field(ColumnDate))
	if err != nil {
		return InstallsRow{}, fmt.Errorf("data inválida no relatório: %w", err)
	}

	row := InstallsRow{Date: date, PackageName: field(ColumnPackageName)}

	values := []struct {
		column string
		target *float64
	}{
		{ColumnDailyDeviceInstalls, &row.DailyDeviceInstalls},
		{ColumnDailyUserInstalls, &row.DailyUserInstalls},
		{ColumnDailyUserUninstalls, &row.DailyUserUninstalls},
		{ColumnActiveDeviceInstalls, &row.ActiveDeviceInstalls},
	}
	for _, value := range values {
		raw := field(value.column)
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return InstallsRow{}, fmt.Errorf("valor inválido em %s: %w", value.column, err)
		}
		*value.target = parsed
	}

	return row, nil
}

// FindInstallsRow procura a linha do dia no relatório mensal
func FindInstallsRow(rows []InstallsRow, date time.Time) (InstallsRow, bool) {
	for _, row := range rows {
		if row.Date.Equal(date) {
			return row, true
		}
	}
	return InstallsRow{}, false
}
