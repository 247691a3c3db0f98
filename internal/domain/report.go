package domain

import (
	"encoding/json"
	"time"
)

type ReportStatus string

const (
	ReportStatusPartial  ReportStatus = "partial"
	ReportStatusComplete ReportStatus = "complete"
)

// DailyReport é a visão combinada de Ads e Play para um dia.
// Status é complete somente quando as duas fontes estão presentes.
type DailyReport struct {
	Date   time.Time    `json:"date"`
	Ads    *MetricPoint `json:"google_ads"`
	Play   *MetricPoint `json:"google_play"`
	Status ReportStatus `json:"status"`
}

// MergeReport combina as métricas de Ads e Play em um relatório diário.
// É uma função pura: as mesmas entradas produzem sempre o mesmo relatório
// e os pontos recebidos não são compartilhados com o resultado.
func MergeReport(date time.Time, ads, play *MetricPoint) *DailyReport {
	report := &DailyReport{
		Date:   NormalizeDate(date),
		Ads:    ads.clone(),
		Play:   play.clone(),
		Status: ReportStatusPartial,
	}

	if report.Ads != nil && report.Play != nil {
		report.Status = ReportStatusComplete
	}

	return report
}

// IsEligible indica se o relatório tem dados suficientes para gerar recomendações
func (r *DailyReport) IsEligible() bool {
	return r != nil && (r.Ads != nil || r.Play != nil)
}

func (r *DailyReport) HasSource(source Source) bool {
	if r == nil {
		return false
	}

	switch source {
	case SourceAds:
		return r.Ads != nil
	case SourcePlay:
		return r.Play != nil
	}

	return false
}

// MissingSources lista as fontes ausentes do relatório
func (r *DailyReport) MissingSources() []Source {
	var missing []Source
	for _, source := range []Source{SourceAds, SourcePlay} {
		if !r.HasSource(source) {
			missing = append(missing, source)
		}
	}

	return missing
}

type dailyReportJSON struct {
	Date   string       `json:"date"`
	Ads    *MetricPoint `json:"google_ads"`
	Play   *MetricPoint `json:"google_play"`
	Status ReportStatus `json:"status"`
}

func (r DailyReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(dailyReportJSON{
		Date:   FormatDate(r.Date),
		Ads:    r.Ads,
		Play:   r.Play,
		Status: r.Status,
	})
}

func (r *DailyReport) UnmarshalJSON(data []byte) error {
	var raw dailyReportJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := ParseDate(raw.Date)
	if err != nil {
		return err
	}

	*r = DailyReport{Date: date, Ads: raw.Ads, Play: raw.Play, Status: raw.Status}
	return nil
}
