package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/repository"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const fileExtension = ".json"

// RecommendationSetStore grava um arquivo <dir>/<YYYY-MM-DD>.json por dia.
// Put usa arquivo temporário + rename e Create usa arquivo temporário + hard link,
// que falha se o destino já existir.
type RecommendationSetStore struct {
	dir string
}

func NewRecommendationSetStore(dir string) (repository.RecommendationSetRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de recomendações: %w", err)
	}

	return &RecommendationSetStore{dir: dir}, nil
}

func (s *RecommendationSetStore) path(date time.Time) string {
	return filepath.Join(s.dir, domain.FormatDate(date)+fileExtension)
}

func (s *RecommendationSetStore) Get(ctx context.Context, date time.Time) (*domain.RecommendationSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.path(date))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler recomendações: %w", err)
	}

	set := &domain.RecommendationSet{}
	if err := json.Unmarshal(content, set); err != nil {
		return nil, fmt.Errorf("erro ao deserializar recomendações: %w", err)
	}

	return set, nil
}

func (s *RecommendationSetStore) Exists(ctx context.Context, date time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(s.path(date))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao verificar recomendações: %w", err)
	}

	return true, nil
}

func (s *RecommendationSetStore) Put(ctx context.Context, date time.Time, set *domain.RecommendationSet) error {
	tmp, err := s.writeTemp(ctx, date, set)
	if err != nil {
		return err
	}

	if err := os.Rename(tmp, s.path(date)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("erro ao gravar recomendações: %w", err)
	}

	return nil
}

func (s *RecommendationSetStore) Create(ctx context.Context, date time.Time, set *domain.RecommendationSet) error {
	tmp, err := s.writeTemp(ctx, date, set)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, s.path(date)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyProcessed, domain.FormatDate(date))
		}
		return fmt.Errorf("erro ao gravar recomendações: %w", err)
	}

	return nil
}

func (s *RecommendationSetStore) ListDates(ctx context.Context, limit int) ([]time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar recomendações: %w", err)
	}

	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExtension) {
			continue
		}

		date, err := domain.ParseDate(strings.TrimSuffix(name, fileExtension))
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	if limit > 0 && len(dates) > limit {
		dates = dates[:limit]
	}

	return dates, nil
}

func (s *RecommendationSetStore) writeTemp(ctx context.Context, date time.Time, set *domain.RecommendationSet) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if set == nil {
		return "", errors.New("conjunto de recomendações vazio")
	}

	if domain.FormatDate(set.Date) != domain.FormatDate(date) {
		return "", fmt.Errorf("%w: %s != %s", repository.ErrDateMismatch, domain.FormatDate(set.Date), domain.FormatDate(date))
	}

	content, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("erro ao serializar recomendações: %w", err)
	}

	file, err := os.CreateTemp(s.dir, "."+domain.FormatDate(date)+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}

	if _, err := file.Write(content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("erro ao escrever arquivo temporário: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("erro ao sincronizar arquivo temporário: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", err
	}

	return file.Name(), nil
}
