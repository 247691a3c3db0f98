package googleplay

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	playdomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/domain"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/mocks"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/playclient"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"go.uber.org/mock/gomock"
)

const (
	testPackage = "com.example.app"
	testBucket  = "pubsite_prod_rev_0123"
	testObject  = "stats/installs/installs_com.example.app_202405_overview.csv"
)

var testDate = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func newTestConfig(bucket string) *config.Config {
	return &config.Config{GooglePlay: config.GooglePlay{PackageName: testPackage, ReportsBucket: bucket, ReviewsPageSize: 100}}
}

func review(id string, at time.Time, rating int) playdomain.Review {
	return playdomain.Review{
		ReviewID: id,
		Comments: []playdomain.Comment{{
			UserComment: &playdomain.UserComment{
				StarRating:   rating,
				LastModified: playdomain.Timestamp{Seconds: strconv.FormatInt(at.Unix(), 10)},
			},
		}},
	}
}

func TestPlayIntegrator_Fetch(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		setup    func(client *mocks.MockClient)
		expected map[string]float64
	}{
		{
			name:   "Avaliações do dia em duas páginas",
			bucket: "",
			setup: func(client *mocks.MockClient) {
				gomock.InOrder(
					client.EXPECT().ListReviews(gomock.Any(), testPackage, "").Return(&playdomain.ReviewsResponse{
						Reviews: []playdomain.Review{
							review("r0", testDate.Add(30*time.Hour), 1),
							review("r1", testDate.Add(20*time.Hour), 5),
							review("r2", testDate.Add(10*time.Hour), 4),
						},
						TokenPagination: playdomain.TokenPagination{NextPageToken: "next"},
					}, nil),
					client.EXPECT().ListReviews(gomock.Any(), testPackage, "next").Return(&playdomain.ReviewsResponse{
						Reviews: []playdomain.Review{
							review("r3", testDate.Add(time.Hour), 3),
							review("r4", testDate.Add(-time.Hour), 1),
						},
						TokenPagination: playdomain.TokenPagination{NextPageToken: "ignored"},
					}, nil),
				)
			},
			expected: map[string]float64{
				domain.MetricReviews:       3,
				domain.MetricAverageRating: 4,
			},
		},
		{
			name:   "Avaliações e instalações",
			bucket: testBucket,
			setup: func(client *mocks.MockClient) {
				client.EXPECT().ListReviews(gomock.Any(), testPackage, "").Return(&playdomain.ReviewsResponse{
					Reviews: []playdomain.Review{review("r1", testDate.Add(2*time.Hour), 5)},
				}, nil)
				client.EXPECT().DownloadInstallsReport(gomock.Any(), testBucket, testObject).Return([]playdomain.InstallsRow{
					{Date: testDate.AddDate(0, 0, -1), DailyUserInstalls: 99},
					{Date: testDate, DailyUserInstalls: 20, DailyUserUninstalls: 3, DailyDeviceInstalls: 22, ActiveDeviceInstalls: 1500},
				}, nil)
			},
			expected: map[string]float64{
				domain.MetricReviews:              1,
				domain.MetricAverageRating:        5,
				domain.MetricInstalls:             20,
				domain.MetricUninstalls:           3,
				domain.MetricDeviceInstalls:       22,
				domain.MetricActiveDeviceInstalls: 1500,
			},
		},
		{
			name:   "Relatório ainda não publicado",
			bucket: testBucket,
			setup: func(client *mocks.MockClient) {
				client.EXPECT().ListReviews(gomock.Any(), testPackage, "").Return(&playdomain.ReviewsResponse{}, nil)
				client.EXPECT().DownloadInstallsReport(gomock.Any(), testBucket, testObject).Return(nil, playclient.ErrReportNotFound)
			},
			expected: map[string]float64{},
		},
		{
			name:   "Dia ausente no relatório",
			bucket: testBucket,
			setup: func(client *mocks.MockClient) {
				client.EXPECT().ListReviews(gomock.Any(), testPackage, "").Return(&playdomain.ReviewsResponse{}, nil)
				client.EXPECT().DownloadInstallsReport(gomock.Any(), testBucket, testObject).Return([]playdomain.InstallsRow{
					{Date: testDate.AddDate(0, 0, -1), DailyUserInstalls: 99},
				}, nil)
			},
			expected: map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockClient(ctrl)
			tt.setup(mockClient)

			point, err := New(newTestConfig(tt.bucket), mockClient).Fetch(context.Background(), testDate)
			require.NoError(t, err)

			assert.Equal(t, domain.SourcePlay, point.Source)
			assert.Equal(t, testDate, point.Date)
			assert.Equal(t, tt.expected, point.Metrics)
		})
	}
}

func TestPlayIntegrator_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		setup    func(client *mocks.MockClient)
		expected domain.FailureKind
	}{
		{
			name:     "Pacote não configurado",
			cfg:      &config.Config{},
			setup:    func(client *mocks.MockClient) {},
			expected: domain.FailureKindPermanentSource,
		},
		{
			name: "Falha transitória nas avaliações",
			cfg:  newTestConfig(""),
			setup: func(client *mocks.MockClient) {
				client.EXPECT().ListReviews(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, domain.NewSourceError(domain.FailureKindTransientSource, domain.SourcePlay, errors.New("503")))
			},
			expected: domain.FailureKindTransientSource,
		},
		{
			name: "Dia não alcançado dentro do limite de páginas",
			cfg:  newTestConfig(""),
			setup: func(client *mocks.MockClient) {
				newer := review("recente", testDate.AddDate(0, 0, 3), 5)
				client.EXPECT().ListReviews(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&playdomain.ReviewsResponse{
						Reviews:         []playdomain.Review{newer},
						TokenPagination: playdomain.TokenPagination{NextPageToken: "mais"},
					}, nil).
					Times(maxReviewPages)
			},
			expected: domain.FailureKindPermanentSource,
		},
		{
			name: "Sem permissão no bucket",
			cfg:  newTestConfig(testBucket),
			setup: func(client *mocks.MockClient) {
				client.EXPECT().ListReviews(gomock.Any(), gomock.Any(), gomock.Any()).Return(&playdomain.ReviewsResponse{}, nil)
				client.EXPECT().DownloadInstallsReport(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, domain.NewSourceError(domain.FailureKindAuth, domain.SourcePlay, errors.New("403")))
			},
			expected: domain.FailureKindAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockClient(ctrl)
			tt.setup(mockClient)

			point, err := New(tt.cfg, mockClient).Fetch(context.Background(), testDate)

			assert.Nil(t, point)
			assert.Equal(t, tt.expected, domain.KindOf(err))
		})
	}
}
