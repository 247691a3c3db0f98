package domain

import (
	"encoding/json"
	"time"
)

type RecommendationCategory string

const (
	CategoryBudget       RecommendationCategory = "budget"
	CategoryCreative     RecommendationCategory = "creative"
	CategoryTargeting    RecommendationCategory = "targeting"
	CategoryStoreListing RecommendationCategory = "store_listing"
)

var RecommendationCategories = []RecommendationCategory{
	CategoryBudget,
	CategoryCreative,
	CategoryTargeting,
	CategoryStoreListing,
}

func (c RecommendationCategory) IsValid() bool {
	for _, category := range RecommendationCategories {
		if c == category {
			return true
		}
	}

	return false
}

// Source retorna a fonte de dados que a categoria precisa para fazer sentido
func (c RecommendationCategory) Source() Source {
	if c == CategoryStoreListing {
		return SourcePlay
	}

	return SourceAds
}

type Recommendation struct {
	ID         string                 `json:"id"`
	Category   RecommendationCategory `json:"category"`
	Text       string                 `json:"text"`
	Confidence float64                `json:"confidence"`
}

// RecommendationSet é o artefato persistido por dia
type RecommendationSet struct {
	Date               time.Time        `json:"date"`
	GeneratedAt        time.Time        `json:"generated_at"`
	SourceReportStatus ReportStatus     `json:"source_report_status"`
	Recommendations    []Recommendation `json:"recommendations"`
}

type recommendationSetJSON struct {
	Date               string           `json:"date"`
	GeneratedAt        time.Time        `json:"generated_at"`
	SourceReportStatus ReportStatus     `json:"source_report_status"`
	Recommendations    []Recommendation `json:"recommendations"`
}

func (s RecommendationSet) MarshalJSON() ([]byte, error) {
	recommendations := s.Recommendations
	if recommendations == nil {
		recommendations = []Recommendation{}
	}

	return json.Marshal(recommendationSetJSON{
		Date:               FormatDate(s.Date),
		GeneratedAt:        s.GeneratedAt.UTC(),
		SourceReportStatus: s.SourceReportStatus,
		Recommendations:    recommendations,
	})
}

func (s *RecommendationSet) UnmarshalJSON(data []byte) error {
	var raw recommendationSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := ParseDate(raw.Date)
	if err != nil {
		return err
	}

	*s = RecommendationSet{
		Date:               date,
		GeneratedAt:        raw.GeneratedAt,
		SourceReportStatus: raw.SourceReportStatus,
		Recommendations:    raw.Recommendations,
	}
	return nil
}
