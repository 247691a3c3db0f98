package googleplay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	playdomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/domain"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/playclient"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/pkg/utils"
)

const maxReviewPages = 20

type PlayIntegrator struct {
	cfg    *config.Config
	Client playclient.Client
}

func New(cfg *config.Config, client playclient.Client) *PlayIntegrator {
	return &PlayIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *PlayIntegrator) Source() domain.Source {
	return domain.SourcePlay
}

// Fetch reúne as avaliações do dia e, com bucket configurado, as instalações do relatório mensal
func (s *PlayIntegrator) Fetch(ctx context.Context, date time.Time) (*domain.MetricPoint, error) {
	packageName := s.cfg.GooglePlay.PackageName
	if packageName == "" {
		return nil, domain.NewSourceError(domain.FailureKindPermanentSource, domain.SourcePlay, fmt.Errorf("GOOGLE_PLAY_PACKAGE_NAME não configurado"))
	}

	date = domain.NormalizeDate(date)
	logger := logrus.WithFields(logrus.Fields{
		"package_name": packageName,
		"date":         domain.FormatDate(date),
	})

	metrics, err := s.reviewMetrics(ctx, packageName, date)
	if err != nil {
		logger.WithField("error", err.Error()).Warn("googleplay: falha ao consultar avaliações")
		return nil, err
	}

	if s.cfg.GooglePlay.ReportsBucket != "" {
		installs, err := s.installMetrics(ctx, packageName, date)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("googleplay: falha ao consultar relatório de instalações")
			return nil, err
		}
		for name, value := range installs {
			metrics[name] = value
		}
	}

	logger.WithField("metrics", len(metrics)).Debug("googleplay: métricas obtidas com sucesso")

	return domain.NewMetricPoint(domain.SourcePlay, date, metrics), nil
}

// reviewMetrics conta as avaliações cujo último comentário do usuário caiu no dia.
// A API devolve as avaliações da mais recente para a mais antiga.
func (s *PlayIntegrator) reviewMetrics(ctx context.Context, packageName string, date time.Time) (map[string]float64, error) {
	start := date
	end := date.AddDate(0, 0, 1)

	var count int
	var ratingSum float64
	pageToken := ""

	for page := 0; ; page++ {
		// sem chegar ao dia dentro do limite, zero avaliações seria um falso "sem atividade"
		if page == maxReviewPages {
			return nil, domain.NewSourceError(domain.FailureKindPermanentSource, domain.SourcePlay,
				fmt.Errorf("avaliações do dia além do limite de %d páginas", maxReviewPages))
		}

		resp, err := s.Client.ListReviews(ctx, packageName, pageToken)
		if err != nil {
			return nil, err
		}

		reachedOlder := false
		for _, review := range resp.Reviews {
			comment := review.LastUserComment()
			if comment == nil {
				continue
			}

			modifiedAt, err := comment.LastModified.Time()
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"review_id": review.ReviewID,
					"error":     err.Error(),
				}).Warn("googleplay: avaliação com data inválida ignorada")
				continue
			}

			switch {
			case modifiedAt.Before(start):
				reachedOlder = true
			case modifiedAt.Before(end):
				count++
				ratingSum += float64(comment.StarRating)
			}
		}

		if reachedOlder || resp.TokenPagination.NextPageToken == "" {
			break
		}
		pageToken = resp.TokenPagination.NextPageToken
	}

	metrics := map[string]float64{}
	if count > 0 {
		metrics[domain.MetricReviews] = float64(count)
		metrics[domain.MetricAverageRating] = utils.RoundWithTwoDecimalPlace(ratingSum / float64(count))
	}

	return metrics, nil
}

// installMetrics lê a linha do dia no relatório do mês. Relatório ou linha ausentes
// significam que o Play Console ainda não publicou os números: as métricas são omitidas.
func (s *PlayIntegrator) installMetrics(ctx context.Context, packageName string, date time.Time) (map[string]float64, error) {
	object := playdomain.InstallsReportObject(packageName, date)

	rows, err := s.Client.DownloadInstallsReport(ctx, s.cfg.GooglePlay.ReportsBucket, object)
	if errors.Is(err, playclient.ErrReportNotFound) {
		logrus.WithField("object", object).Info("googleplay: relatório de instalações ainda não disponível")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	row, ok := playdomain.FindInstallsRow(rows, date)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"object": object,
			"date":   domain.FormatDate(date),
		}).Info("googleplay: dia ainda não consta no relatório de instalações")
		return nil, nil
	}

	return map[string]float64{
		domain.MetricInstalls:             row.DailyUserInstalls,
		domain.MetricUninstalls:           row.DailyUserUninstalls,
		domain.MetricDeviceInstalls:       row.DailyDeviceInstalls,
		domain.MetricActiveDeviceInstalls: row.ActiveDeviceInstalls,
	}, nil
}
