package googleads

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleads/adsclient"
	adsdomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/pkg/utils"
)

const campaignQuery = `SELECT campaign.id, campaign.name, campaign.status, metrics.impressions, metrics.clicks, metrics.cost_micros, metrics.conversions, segments.date FROM campaign WHERE segments.date = '%s'`

// maxPages protege contra um nextPageToken que nunca termina
const maxPages = 50

type AdsIntegrator struct {
	cfg    *config.Config
	Client adsclient.Client
}

func New(cfg *config.Config, client adsclient.Client) *AdsIntegrator {
	return &AdsIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *AdsIntegrator) Source() domain.Source {
	return domain.SourceAds
}

// Fetch busca as métricas de todas as campanhas da conta para o dia
func (s *AdsIntegrator) Fetch(ctx context.Context, date time.Time) (*domain.MetricPoint, error) {
	customerID := s.cfg.GoogleAds.NormalizedCustomerID()
	if customerID == "" {
		return nil, domain.NewSourceError(domain.FailureKindPermanentSource, domain.SourceAds, fmt.Errorf("GOOGLE_ADS_CUSTOMER_ID não configurado"))
	}

	query := fmt.Sprintf(campaignQuery, domain.FormatDate(date))

	var rows []adsdomain.Row
	pageToken := ""
	for page := 0; ; page++ {
		if page == maxPages {
			return nil, domain.NewSourceError(domain.FailureKindPermanentSource, domain.SourceAds,
				fmt.Errorf("consulta de campanhas excedeu o limite de %d páginas", maxPages))
		}

		resp, err := s.Client.Search(ctx, customerID, query, pageToken)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"customer_id": customerID,
				"date":        domain.FormatDate(date),
				"error":       err.Error(),
			}).Warn("googleads: falha ao consultar campanhas")
			return nil, err
		}

		rows = append(rows, resp.Results...)
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	metrics, err := AggregateRows(rows)
	if err != nil {
		return nil, domain.NewSourceError(domain.FailureKindPermanentSource, domain.SourceAds, err)
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": customerID,
		"date":        domain.FormatDate(date),
		"campaigns":   len(rows),
	}).Debug("googleads: métricas obtidas com sucesso")

	return domain.NewMetricPoint(domain.SourceAds, date, metrics), nil
}

// AggregateRows soma as métricas das campanhas e calcula CTR e CPC médio da conta.
// Sem linhas, o resultado é um mapa vazio: a fonte respondeu, mas não houve veiculação.
func AggregateRows(rows []adsdomain.Row) (map[string]float64, error) {
	metrics := map[string]float64{}
	if len(rows) == 0 {
		return metrics, nil
	}

	var impressions, clicks, costMicros int64
	var conversions float64
	for _, row := range rows {
		rowImpressions, err := parseInt(row.Metrics.Impressions)
		if err != nil {
			return nil, fmt.Errorf("impressions da campanha %s: %w", row.Campaign.ID, err)
		}
		rowClicks, err := parseInt(row.Metrics.Clicks)
		if err != nil {
			return nil, fmt.Errorf("clicks da campanha %s: %w", row.Campaign.ID, err)
		}
		rowCost, err := parseInt(row.Metrics.CostMicros)
		if err != nil {
			return nil, fmt.Errorf("cost_micros da campanha %s: %w", row.Campaign.ID, err)
		}

		impressions += rowImpressions
		clicks += rowClicks
		costMicros += rowCost
		conversions += row.Metrics.Conversions
	}

	cost := float64(costMicros) / 1e6

	metrics[domain.MetricImpressions] = float64(impressions)
	metrics[domain.MetricClicks] = float64(clicks)
	metrics[domain.MetricCost] = utils.RoundWithTwoDecimalPlace(cost)
	metrics[domain.MetricConversions] = utils.RoundWithTwoDecimalPlace(conversions)
	metrics[domain.MetricCampaigns] = float64(len(rows))

	if impressions > 0 {
		metrics[domain.MetricCTR] = float64(clicks) / float64(impressions)
	}
	if clicks > 0 {
		metrics[domain.MetricAverageCPC] = utils.RoundWithTwoDecimalPlace(cost / float64(clicks))
	}

	return metrics, nil
}

// A API omite campos zerados
func parseInt(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}
