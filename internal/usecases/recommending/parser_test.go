package recommending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var testDate = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func completeReport() *domain.DailyReport {
	return domain.MergeReport(testDate,
		domain.NewMetricPoint(domain.SourceAds, testDate, map[string]float64{domain.MetricImpressions: 1000, domain.MetricCost: 50}),
		domain.NewMetricPoint(domain.SourcePlay, testDate, map[string]float64{domain.MetricInstalls: 20}),
	)
}

func playOnlyReport() *domain.DailyReport {
	return domain.MergeReport(testDate, nil, domain.NewMetricPoint(domain.SourcePlay, testDate, map[string]float64{domain.MetricInstalls: 20}))
}

func TestParseCompletion(t *testing.T) {
	completion := &domain.Completion{
		Arguments: `{"recommendations":[
			{"id":"b1","category":"budget","text":"Aumentar orçamento da campanha de busca","confidence":0.8},
			{"id":"s1","category":"store_listing","text":"  Atualizar capturas de tela  ","confidence":0.55}
		]}`,
		FinishReason: "stop",
	}

	recommendations, err := ParseCompletion(completion, completeReport(), 15)
	require.NoError(t, err)

	assert.Equal(t, []domain.Recommendation{
		{ID: "b1", Category: domain.CategoryBudget, Text: "Aumentar orçamento da campanha de busca", Confidence: 0.8},
		{ID: "s1", Category: domain.CategoryStoreListing, Text: "Atualizar capturas de tela", Confidence: 0.55},
	}, recommendations)
}

func TestParseCompletion_ContentFallback(t *testing.T) {
	completion := &domain.Completion{
		Content: `{"recommendations":[{"category":"creative","text":"Testar novo vídeo","confidence":0}]}`,
	}

	recommendations, err := ParseCompletion(completion, completeReport(), 15)
	require.NoError(t, err)

	require.Len(t, recommendations, 1)
	assert.Len(t, recommendations[0].ID, 10)
	assert.Equal(t, domain.CategoryCreative, recommendations[0].Category)
	assert.Zero(t, recommendations[0].Confidence)
}

func TestParseCompletion_DropsCategoriesWithoutSource(t *testing.T) {
	completion := &domain.Completion{
		Arguments: `{"recommendations":[
			{"id":"1","category":"budget","text":"a","confidence":0.5},
			{"id":"2","category":"store_listing","text":"b","confidence":0.5},
			{"id":"3","category":"targeting","text":"c","confidence":0.5}
		]}`,
	}

	recommendations, err := ParseCompletion(completion, playOnlyReport(), 15)
	require.NoError(t, err)

	require.Len(t, recommendations, 1)
	assert.Equal(t, "2", recommendations[0].ID)
}

func TestParseCompletion_Limit(t *testing.T) {
	completion := &domain.Completion{
		Arguments: `{"recommendations":[
			{"id":"1","category":"budget","text":"a","confidence":0.5},
			{"id":"2","category":"creative","text":"b","confidence":0.5},
			{"id":"3","category":"targeting","text":"c","confidence":0.5}
		]}`,
	}

	recommendations, err := ParseCompletion(completion, completeReport(), 2)
	require.NoError(t, err)

	require.Len(t, recommendations, 2)
	assert.Equal(t, "1", recommendations[0].ID)
	assert.Equal(t, "2", recommendations[1].ID)
}

func TestParseCompletion_EmptyList(t *testing.T) {
	recommendations, err := ParseCompletion(&domain.Completion{Arguments: `{"recommendations":[]}`}, completeReport(), 15)

	require.NoError(t, err)
	assert.Empty(t, recommendations)
}

func TestParseCompletion_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		completion *domain.Completion
	}{
		{name: "Resposta nula", completion: nil},
		{name: "Resposta vazia", completion: &domain.Completion{}},
		{name: "Resposta truncada", completion: &domain.Completion{Arguments: `{"recommendations":[]}`, FinishReason: domain.FinishReasonLength}},
		{name: "JSON inválido", completion: &domain.Completion{Arguments: `{"recommendations":[`}},
		{name: "Texto livre", completion: &domain.Completion{Content: "Aumente o orçamento."}},
		{name: "Sem campo recommendations", completion: &domain.Completion{Arguments: `{"actions":[]}`}},
		{name: "recommendations não é lista", completion: &domain.Completion{Arguments: `{"recommendations":{"id":"1"}}`}},
		{name: "Categoria desconhecida", completion: &domain.Completion{Arguments: `{"recommendations":[{"category":"pricing","text":"a","confidence":0.5}]}`}},
		{name: "Texto vazio", completion: &domain.Completion{Arguments: `{"recommendations":[{"category":"budget","text":"   ","confidence":0.5}]}`}},
		{name: "Confiança acima de 1", completion: &domain.Completion{Arguments: `{"recommendations":[{"category":"budget","text":"a","confidence":1.2}]}`}},
		{name: "Confiança negativa", completion: &domain.Completion{Arguments: `{"recommendations":[{"category":"budget","text":"a","confidence":-0.1}]}`}},
		{name: "Confiança ausente", completion: &domain.Completion{Arguments: `{"recommendations":[{"category":"budget","text":"a"}]}`}},
		{name: "Confiança como texto", completion: &domain.Completion{Arguments: `{"recommendations":[{"category":"budget","text":"a","confidence":"alta"}]}`}},
		{name: "Item não é objeto", completion: &domain.Completion{Arguments: `{"recommendations":["aumentar orçamento"]}`}},
		{name: "Ids repetidos", completion: &domain.Completion{Arguments: `{"recommendations":[
			{"id":"1","category":"budget","text":"a","confidence":0.5},
			{"id":"1","category":"creative","text":"b","confidence":0.5}]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recommendations, err := ParseCompletion(tt.completion, completeReport(), 15)

			assert.Nil(t, recommendations)
			assert.ErrorIs(t, err, domain.ErrMalformedGeneration)
			assert.Equal(t, domain.FailureKindMalformedGeneration, domain.KindOf(err))
		})
	}
}
