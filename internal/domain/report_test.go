package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeReport(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ads := NewMetricPoint(SourceAds, date, map[string]float64{MetricImpressions: 1000, MetricClicks: 50})
	play := NewMetricPoint(SourcePlay, date, map[string]float64{MetricInstalls: 30})

	tests := []struct {
		name           string
		ads            *MetricPoint
		play           *MetricPoint
		expectedStatus ReportStatus
		eligible       bool
	}{
		{
			name:           "Ambas as fontes presentes - relatório completo",
			ads:            ads,
			play:           play,
			expectedStatus: ReportStatusComplete,
			eligible:       true,
		},
		{
			name:           "Somente Ads - relatório parcial",
			ads:            ads,
			expectedStatus: ReportStatusPartial,
			eligible:       true,
		},
		{
			name:           "Somente Play - relatório parcial",
			play:           play,
			expectedStatus: ReportStatusPartial,
			eligible:       true,
		},
		{
			name:           "Nenhuma fonte - relatório parcial e inelegível",
			expectedStatus: ReportStatusPartial,
			eligible:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := MergeReport(date, tt.ads, tt.play)

			assert.Equal(t, tt.expectedStatus, report.Status)
			assert.Equal(t, tt.eligible, report.IsEligible())
			assert.Equal(t, tt.ads != nil, report.HasSource(SourceAds))
			assert.Equal(t, tt.play != nil, report.HasSource(SourcePlay))
		})
	}
}

func TestMergeReport_Deterministic(t *testing.T) {
	date := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	ads := NewMetricPoint(SourceAds, date, map[string]float64{MetricImpressions: 1000, MetricClicks: 50, MetricCost: 12.5})
	play := NewMetricPoint(SourcePlay, date, map[string]float64{MetricInstalls: 30, MetricReviews: 4})

	first, err := json.Marshal(MergeReport(date, ads, play))
	require.NoError(t, err)

	second, err := json.Marshal(MergeReport(date, ads, play))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `"date":"2024-05-01"`)
	assert.Contains(t, string(first), `"status":"complete"`)
}

func TestMergeReport_DoesNotShareInputs(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ads := NewMetricPoint(SourceAds, date, map[string]float64{MetricClicks: 50})

	report := MergeReport(date, ads, nil)
	ads.Metrics[MetricClicks] = 999

	value, ok := report.Ads.Value(MetricClicks)
	assert.True(t, ok)
	assert.Equal(t, 50.0, value)
}

func TestDailyReport_MissingSources(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	report := MergeReport(date, NewMetricPoint(SourceAds, date, nil), nil)

	assert.Equal(t, []Source{SourcePlay}, report.MissingSources())
	assert.True(t, report.Ads.IsEmpty())
	assert.True(t, report.IsEligible())
}
