package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/database"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/migration"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var testDate = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func newTestSet() *domain.RecommendationSet {
	return &domain.RecommendationSet{
		Date:               testDate,
		GeneratedAt:        time.Date(2024, 5, 2, 8, 1, 0, 0, time.UTC),
		SourceReportStatus: domain.ReportStatusPartial,
		Recommendations: []domain.Recommendation{
			{ID: "r1", Category: domain.CategoryBudget, Text: "Aumentar orçamento da campanha de busca", Confidence: 0.8},
		},
	}
}

func newMockRepository(t *testing.T) (RecommendationSetRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRecommendationSetRepository(&database.Connection{DB: db, Driver: database.DriverPostgres}), mock
}

func TestRecommendationSetRepository_Put(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`INSERT INTO recommendation_sets \(date,generated_at,source_report_status,payload\) VALUES \(\$1,\$2,\$3,\$4\) ON CONFLICT \(date\) DO UPDATE SET`).
		WithArgs("2024-05-01", "2024-05-02T08:01:00Z", "partial", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Put(context.Background(), testDate, newTestSet())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationSetRepository_Create(t *testing.T) {
	tests := []struct {
		name        string
		rows        int64
		expectedErr error
	}{
		{name: "Data nova - grava o conjunto", rows: 1},
		{name: "Data já processada - conflito", rows: 0, expectedErr: domain.ErrAlreadyProcessed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)

			mock.ExpectExec(`INSERT INTO recommendation_sets .* ON CONFLICT \(date\) DO NOTHING`).
				WithArgs("2024-05-01", sqlmock.AnyArg(), "partial", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			err := repo.Create(context.Background(), testDate, newTestSet())

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecommendationSetRepository_Create_DateMismatch(t *testing.T) {
	repo, mock := newMockRepository(t)

	err := repo.Create(context.Background(), testDate.AddDate(0, 0, 1), newTestSet())

	assert.ErrorIs(t, err, ErrDateMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationSetRepository_Get(t *testing.T) {
	t.Run("Conjunto encontrado", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		payload := `{"date":"2024-05-01","generated_at":"2024-05-02T08:01:00Z","source_report_status":"partial","recommendations":[{"id":"r1","category":"budget","text":"Aumentar orçamento","confidence":0.8}]}`
		mock.ExpectQuery(`SELECT payload FROM recommendation_sets WHERE date = \$1`).
			WithArgs("2024-05-01").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

		set, err := repo.Get(context.Background(), testDate)

		require.NoError(t, err)
		assert.Equal(t, testDate, set.Date)
		assert.Equal(t, domain.ReportStatusPartial, set.SourceReportStatus)
		assert.Len(t, set.Recommendations, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conjunto inexistente", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT payload FROM recommendation_sets`).
			WithArgs("2024-05-01").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}))

		set, err := repo.Get(context.Background(), testDate)

		assert.NoError(t, err)
		assert.Nil(t, set)
	})

	t.Run("Erro no banco", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT payload FROM recommendation_sets`).
			WillReturnError(errors.New("connection refused"))

		set, err := repo.Get(context.Background(), testDate)

		assert.Error(t, err)
		assert.Nil(t, set)
	})
}

func TestRecommendationSetRepository_Exists(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT 1 FROM recommendation_sets WHERE date = \$1 LIMIT 1`).
		WithArgs("2024-05-01").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`SELECT 1 FROM recommendation_sets WHERE date = \$1 LIMIT 1`).
		WithArgs("2024-05-02").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.Exists(context.Background(), testDate)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), testDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendationSetRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := database.NewConnection(ctx, config.Database{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "gads.db"),
	})
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, migration.Migrate(ctx, conn))

	repo := NewRecommendationSetRepository(conn)

	require.NoError(t, repo.Create(ctx, testDate, newTestSet()))
	assert.ErrorIs(t, repo.Create(ctx, testDate, newTestSet()), domain.ErrAlreadyProcessed)

	replacement := newTestSet()
	replacement.SourceReportStatus = domain.ReportStatusComplete
	require.NoError(t, repo.Put(ctx, testDate, replacement))

	stored, err := repo.Get(ctx, testDate)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusComplete, stored.SourceReportStatus)

	dates, err := repo.ListDates(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{testDate}, dates)
}

func TestRecommendationSetRepository_ListDates(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		query string
	}{
		{name: "Com limite", limit: 5, query: `^SELECT date FROM recommendation_sets ORDER BY date DESC LIMIT 5$`},
		{name: "Limite zero lista todas", limit: 0, query: `^SELECT date FROM recommendation_sets ORDER BY date DESC$`},
		{name: "Limite negativo lista todas", limit: -1, query: `^SELECT date FROM recommendation_sets ORDER BY date DESC$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)

			mock.ExpectQuery(tt.query).
				WillReturnRows(sqlmock.NewRows([]string{"date"}).AddRow("2024-05-02").AddRow("2024-05-01"))

			dates, err := repo.ListDates(context.Background(), tt.limit)

			require.NoError(t, err)
			assert.Equal(t, []time.Time{testDate.AddDate(0, 0, 1), testDate}, dates)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
