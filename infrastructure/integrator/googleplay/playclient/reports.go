package playclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleapi"
	playdomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DownloadInstallsReport baixa o relatório mensal do bucket do Play Console.
// Os relatórios são UTF-16 com BOM.
func (c *GooglePlayClient) DownloadInstallsReport(ctx context.Context, bucket, object string) ([]playdomain.InstallsRow, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media",
		strings.TrimRight(c.cfg.GooglePlay.StorageURL, "/"),
		url.PathEscape(bucket),
		url.PathEscape(object),
	)

	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return nil, withSource(err)
	}

	body, err := googleapi.Do(ctx, c.httpClient, req, domain.SourcePlay)
	if err != nil {
		var apiErr *googleapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	rows, err := playdomain.ParseInstallsReport(transform.NewReader(bytes.NewReader(body), decoder))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"bucket": bucket,
			"object": object,
			"error":  err.Error(),
		}).Error("Erro ao interpretar relatório de instalações")
		return nil, domain.NewSourceError(domain.FailureKindPermanentSource, domain.SourcePlay, err)
	}

	return rows, nil
}

func withSource(err error) error {
	var syncErr *domain.SyncError
	if errors.As(err, &syncErr) && syncErr.Source == "" {
		syncErr.Source = domain.SourcePlay
	}
	return err
}
