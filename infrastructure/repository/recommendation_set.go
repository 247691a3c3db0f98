package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/database"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	recommendationSetsTable = "recommendation_sets"
)

var ErrDateMismatch = errors.New("a data do conjunto difere da chave informada")

// RecommendationSetRepository guarda no máximo um conjunto de recomendações por dia
type RecommendationSetRepository interface {
	Get(ctx context.Context, date time.Time) (*domain.RecommendationSet, error)
	Exists(ctx context.Context, date time.Time) (bool, error)
	// Put grava o conjunto substituindo o existente, de forma atômica
	Put(ctx context.Context, date time.Time, set *domain.RecommendationSet) error
	// Create grava o conjunto somente se a data ainda não existir; caso contrário retorna domain.ErrAlreadyProcessed
	Create(ctx context.Context, date time.Time, set *domain.RecommendationSet) error
	ListDates(ctx context.Context, limit int) ([]time.Time, error)
}

type recommendationSetRepository struct {
	conn *database.Connection
}

func NewRecommendationSetRepository(conn *database.Connection) RecommendationSetRepository {
	return &recommendationSetRepository{
		conn: conn,
	}
}

func (r *recommendationSetRepository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(r.conn.Placeholder())
}

func (r *recommendationSetRepository) Get(ctx context.Context, date time.Time) (*domain.RecommendationSet, error) {
	query, args, err := r.builder().
		Select("payload").
		From(recommendationSetsTable).
		Where(squirrel.Eq{"date": domain.FormatDate(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var payload string
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar recomendações: %w", err)
	}

	set := &domain.RecommendationSet{}
	if err := json.Unmarshal([]byte(payload), set); err != nil {
		return nil, fmt.Errorf("erro ao deserializar recomendações: %w", err)
	}

	return set, nil
}

func (r *recommendationSetRepository) Exists(ctx context.Context, date time.Time) (bool, error) {
	query, args, err := r.builder().
		Select("1").
		From(recommendationSetsTable).
		Where(squirrel.Eq{"date": domain.FormatDate(date)}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var found int
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao verificar recomendações: %w", err)
	}

	return true, nil
}

func (r *recommendationSetRepository) Put(ctx context.Context, date time.Time, set *domain.RecommendationSet) error {
	insert, err := r.insert(date, set)
	if err != nil {
		return err
	}

	query, args, err := insert.
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				generated_at = EXCLUDED.generated_at,
				source_report_status = EXCLUDED.source_report_status,
				payload = EXCLUDED.payload,
				updated_at = CURRENT_TIMESTAMP
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}

	return nil
}

func (r *recommendationSetRepository) Create(ctx context.Context, date time.Time, set *domain.RecommendationSet) error {
	insert, err := r.insert(date, set)
	if err != nil {
		return err
	}

	query, args, err := insert.Suffix("ON CONFLICT (date) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapExecError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyProcessed, domain.FormatDate(date))
	}

	return nil
}

// ListDates retorna as datas mais recentes primeiro; limit <= 0 lista todas
func (r *recommendationSetRepository) ListDates(ctx context.Context, limit int) ([]time.Time, error) {
	builder := r.builder().
		Select("date").
		From(recommendationSetsTable).
		OrderBy("date DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("erro ao escanear data: %w", err)
		}

		date, err := domain.ParseDate(value)
		if err != nil {
			return nil, fmt.Errorf("erro ao converter data: %w", err)
		}
		dates = append(dates, date)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return dates, nil
}

func (r *recommendationSetRepository) insert(date time.Time, set *domain.RecommendationSet) (squirrel.InsertBuilder, error) {
	if err := checkDate(date, set); err != nil {
		return squirrel.InsertBuilder{}, err
	}

	payload, err := json.Marshal(set)
	if err != nil {
		return squirrel.InsertBuilder{}, fmt.Errorf("erro ao serializar recomendações: %w", err)
	}

	return r.builder().
		Insert(recommendationSetsTable).
		Columns("date", "generated_at", "source_report_status", "payload").
		Values(
			domain.FormatDate(date),
			set.GeneratedAt.UTC().Format(time.RFC3339Nano),
			string(set.SourceReportStatus),
			string(payload),
		), nil
}

func checkDate(date time.Time, set *domain.RecommendationSet) error {
	if set == nil {
		return errors.New("conjunto de recomendações vazio")
	}

	if domain.FormatDate(set.Date) != domain.FormatDate(date) {
		return fmt.Errorf("%w: %s != %s", ErrDateMismatch, domain.FormatDate(set.Date), domain.FormatDate(date))
	}

	return nil
}

func wrapExecError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
