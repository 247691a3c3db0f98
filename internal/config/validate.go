package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Validate confere os valores carregados antes de qualquer componente ser montado
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "configuração inválida")
	}

	if _, err := cron.ParseStandard(c.DailySync.CronSchedule); err != nil {
		return errors.Wrapf(err, "DAILY_SYNC_CRON inválido: %q", c.DailySync.CronSchedule)
	}

	if _, err := time.LoadLocation(c.DailySync.Timezone); err != nil {
		return errors.Wrapf(err, "DAILY_SYNC_TIMEZONE inválido: %q", c.DailySync.Timezone)
	}

	if c.Auth.Enabled && c.Auth.Secret == "" {
		return errors.New("AUTH_SECRET é obrigatório quando AUTH_ENABLED=true")
	}

	if c.Store.Driver == "file" && c.Store.FileDir == "" {
		return errors.New("STORE_FILE_DIR é obrigatório quando STORE_DRIVER=file")
	}

	return nil
}
