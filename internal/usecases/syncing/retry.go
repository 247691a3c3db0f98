package syncing

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

// RetryPolicy define tentativas, espera entre elas e o prazo de cada tentativa.
// TimeoutKind é o tipo de falha atribuído quando o prazo da tentativa esgota.
type RetryPolicy struct {
	MaxAttempts int
	Initial     time.Duration
	Max         time.Duration
	Multiplier  float64
	Timeout     time.Duration
	TimeoutKind domain.FailureKind
}

func FetchPolicy(cfg config.DailySync) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.FetchMaxAttempts,
		Initial:     cfg.BackoffInitial,
		Max:         cfg.BackoffMax,
		Multiplier:  cfg.BackoffMultiplier,
		Timeout:     cfg.FetchTimeout,
		TimeoutKind: domain.FailureKindTransientSource,
	}
}

func GeneratePolicy(cfg config.DailySync) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.GenerateMaxAttempts,
		Initial:     cfg.BackoffInitial,
		Max:         cfg.BackoffMax,
		Multiplier:  cfg.BackoffMultiplier,
		Timeout:     cfg.GenerateTimeout,
		TimeoutKind: domain.FailureKindGenerationTimeout,
	}
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.Initial > 0 {
		b.InitialInterval = p.Initial
	}
	if p.Max > 0 {
		b.MaxInterval = p.Max
	}
	if p.Multiplier >= 1 {
		b.Multiplier = p.Multiplier
	}
	return b
}

func (p RetryPolicy) timeoutKind() domain.FailureKind {
	if p.TimeoutKind == domain.FailureKindNone {
		return domain.FailureKindTransientSource
	}
	return p.TimeoutKind
}

// attemptTimedOut converte o estouro do prazo da tentativa no tipo de falha da política.
// Erros já classificados com outro tipo são mantidos.
func attemptTimedOut(attemptCtx context.Context, policy RetryPolicy, err error) error {
	if !errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return err
	}

	switch domain.KindOf(err) {
	case domain.FailureKindUnexpected, domain.FailureKindCancelled:
		return domain.NewSyncError(policy.timeoutKind(), err)
	}

	return err
}

func (p RetryPolicy) maxTries() uint {
	if p.MaxAttempts < 1 {
		return 1
	}
	return uint(p.MaxAttempts)
}

// retry executa op até obter sucesso, um erro não recuperável ou esgotar as tentativas.
// Cada tentativa tem seu próprio prazo; o contexto pai só interrompe entre tentativas.
// Retorna o número de tentativas feitas.
func retry[T any](
	ctx context.Context,
	policy RetryPolicy,
	onAttempt func(attempt int, err error),
	op func(ctx context.Context) (T, error),
) (T, int, error) {
	attempts := 0

	operation := func() (T, error) {
		attempts++

		attemptCtx := ctx
		if policy.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, policy.Timeout)
			defer cancel()
		}

		result, err := op(attemptCtx)
		if err != nil && ctx.Err() == nil {
			err = attemptTimedOut(attemptCtx, policy, err)
		}

		onAttempt(attempts, err)
		if err == nil {
			return result, nil
		}

		if ctx.Err() != nil {
			return result, backoff.Permanent(domain.NewSyncError(domain.FailureKindCancelled, err))
		}

		if !domain.KindOf(err).IsRetryable() {
			return result, backoff.Permanent(err)
		}

		return result, err
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy.backOff()),
		backoff.WithMaxTries(policy.maxTries()),
		backoff.WithMaxElapsedTime(0),
	)
	if err == nil {
		return result, attempts, nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}

	// cancelado durante a espera entre tentativas
	if ctx.Err() != nil && domain.KindOf(err) != domain.FailureKindCancelled {
		err = domain.NewSyncError(domain.FailureKindCancelled, err)
	}

	return result, attempts, err
}
