package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/database"
)

// Os tipos usados são aceitos tanto pelo PostgreSQL quanto pelo SQLite
var statements = []string{
	`CREATE TABLE IF NOT EXISTS recommendation_sets (
		date                 TEXT PRIMARY KEY,
		generated_at         TEXT NOT NULL,
		source_report_status TEXT NOT NULL,
		payload              TEXT NOT NULL,
		created_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendation_sets_generated_at ON recommendation_sets(generated_at)`,
}

// Migrate cria as tabelas necessárias, se ainda não existirem
func Migrate(ctx context.Context, conn *database.Connection) error {
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migração %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"driver":     conn.Driver,
		"statements": len(statements),
	}).Info("Migrações aplicadas com sucesso")

	return nil
}
