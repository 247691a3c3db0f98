package domain

import (
	"sort"
	"time"
)

type Source string

const (
	SourceAds  Source = "google_ads"
	SourcePlay Source = "google_play"
)

// Nomes das métricas produzidas pelos adaptadores de fonte
const (
	MetricImpressions = "impressions"
	MetricClicks      = "clicks"
	MetricCost        = "cost"
	MetricConversions = "conversions"
	MetricCTR         = "ctr"
	MetricAverageCPC  = "average_cpc"
	MetricCampaigns   = "campaigns"

	MetricInstalls             = "installs"
	MetricUninstalls           = "uninstalls"
	MetricDeviceInstalls       = "device_installs"
	MetricActiveDeviceInstalls = "active_device_installs"
	MetricReviews              = "reviews"
	MetricAverageRating        = "average_rating"
)

// MetricPoint representa as métricas de uma fonte para um único dia.
// Não deve ser alterado depois de criado; use NewMetricPoint para copiar o mapa de entrada.
type MetricPoint struct {
	Date    time.Time          `json:"date"`
	Source  Source             `json:"source"`
	Metrics map[string]float64 `json:"metrics"`
}

func NewMetricPoint(source Source, date time.Time, metrics map[string]float64) *MetricPoint {
	copied := make(map[string]float64, len(metrics))
	for name, value := range metrics {
		copied[name] = value
	}

	return &MetricPoint{
		Date:    NormalizeDate(date),
		Source:  source,
		Metrics: copied,
	}
}

func (m *MetricPoint) Value(name string) (float64, bool) {
	if m == nil {
		return 0, false
	}

	value, ok := m.Metrics[name]
	return value, ok
}

// IsEmpty indica que a fonte respondeu, mas sem métricas para o dia
func (m *MetricPoint) IsEmpty() bool {
	return m == nil || len(m.Metrics) == 0
}

// Names retorna os nomes das métricas em ordem alfabética
func (m *MetricPoint) Names() []string {
	if m == nil {
		return nil
	}

	names := make([]string, 0, len(m.Metrics))
	for name := range m.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (m *MetricPoint) clone() *MetricPoint {
	if m == nil {
		return nil
	}

	return NewMetricPoint(m.Source, m.Date, m.Metrics)
}
