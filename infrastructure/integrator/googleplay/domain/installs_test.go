package playdomain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstallsReport(t *testing.T) {
	content := "\ufeffDate,Package Name,Daily Device Installs,Daily User Installs,Daily User Uninstalls,Active Device Installs,Install events\n" +
		"2024-05-01,com.example.app,22,20,3,1500,30\n" +
		"2024-05-02,com.example.app,,,,,\n"

	rows, err := ParseInstallsReport(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, InstallsRow{
		Date:                 time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PackageName:          "com.example.app",
		DailyDeviceInstalls:  22,
		DailyUserInstalls:    20,
		DailyUserUninstalls:  3,
		ActiveDeviceInstalls: 1500,
	}, rows[0])
	assert.Zero(t, rows[1].DailyUserInstalls)

	row, ok := FindInstallsRow(rows, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "com.example.app", row.PackageName)

	_, ok = FindInstallsRow(rows, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestParseInstallsReport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{
			name:    "Coluna obrigatória ausente",
			content: "Date,Package Name\n2024-05-01,com.example.app\n",
			err:     ErrMissingColumn,
		},
		{
			name:    "Data inválida",
			content: "Date,Daily Device Installs,Daily User Installs,Daily User Uninstalls,Active Device Installs\n01/05/2024,1,1,1,1\n",
		},
		{
			name:    "Número inválido",
			content: "Date,Daily Device Installs,Daily User Installs,Daily User Uninstalls,Active Device Installs\n2024-05-01,um,1,1,1\n",
		},
		{
			name:    "Arquivo vazio",
			content: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseInstallsReport(strings.NewReader(tt.content))

			assert.Nil(t, rows)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestInstallsReportObject(t *testing.T) {
	object := InstallsReportObject("com.example.app", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "stats/installs/installs_com.example.app_202405_overview.csv", object)
}
