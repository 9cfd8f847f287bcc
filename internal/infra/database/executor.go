package database

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	DefaultMaxRetries         = 3
	DefaultRetryDelay         = 1 * time.Second
	DefaultSlowQueryThreshold = 1 * time.Second
)

var (
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: prometheus.DefBuckets,
	})

	queryRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "db_query_retries_total",
		Help: "Total number of query retry attempts",
	})

	queryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "db_query_failures_total",
		Help: "Total number of queries that failed after all retries",
	})

	slowQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "db_slow_queries_total",
		Help: "Total number of queries slower than the configured threshold",
	})
)

// Row é uma linha de resultado genérica (coluna -> valor).
type Row map[string]any

// Result resume o efeito de um statement de escrita.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Conn é uma conexão emprestada do pool. Propriedade exclusiva de uma
// execução em voo; Release devolve ao pool.
type Conn interface {
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	Release() error
}

// Pool empresta conexões. Falha de Acquire passa pela mesma política de
// retry/backoff que a execução do statement.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// QueryExecutor é o contrato que os repositórios enxergam.
type QueryExecutor interface {
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
}

// ExecutorConfig com campos zerados recebe os defaults acima.
type ExecutorConfig struct {
	MaxRetries         int
	RetryDelay         time.Duration
	SlowQueryThreshold time.Duration
}

// Executor executa statements com retries lineares e gerência de ciclo de
// vida da conexão: adquire, executa e libera. A liberação acontece em todos
// os caminhos de saída, exatamente uma vez por aquisição.
type Executor struct {
	pool   Pool
	logger *zap.Logger

	maxRetries int
	retryDelay time.Duration
	slowQuery  time.Duration

	sleep func(time.Duration)
}

func NewExecutor(pool Pool, logger *zap.Logger, cfg ExecutorConfig) *Executor {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = DefaultSlowQueryThreshold
	}
	return &Executor{
		pool:       pool,
		logger:     logger,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		slowQuery:  cfg.SlowQueryThreshold,
		sleep:      time.Sleep,
	}
}

func (e *Executor) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	var rows []Row
	err := e.run(ctx, query, func(ctx context.Context, conn Conn) error {
		var opErr error
		rows, opErr = conn.Query(ctx, query, args...)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (e *Executor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	var res Result
	err := e.run(ctx, query, func(ctx context.Context, conn Conn) error {
		var opErr error
		res, opErr = conn.Exec(ctx, query, args...)
		return opErr
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (e *Executor) run(ctx context.Context, query string, op func(context.Context, Conn) error) error {
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		start := time.Now()
		err := e.attempt(ctx, op)
		duration := time.Since(start)

		if err == nil {
			queryDuration.Observe(duration.Seconds())
			if duration > e.slowQuery {
				slowQueries.Inc()
				e.logger.Warn("slow query",
					zap.String("query", query),
					zap.Duration("duration", duration))
			}
			e.logger.Debug("query succeeded",
				zap.Int("attempt", attempt+1),
				zap.Duration("duration", duration))
			return nil
		}

		lastErr = err
		retryable := isRetryable(err)
		e.logger.Error("query failed",
			zap.String("query", query),
			zap.Int("attempt", attempt+1),
			zap.Duration("duration", duration),
			zap.Bool("retryable", retryable),
			zap.Error(err))

		if !retryable || attempt == e.maxRetries {
			queryFailures.Inc()
			return &QueryError{Query: query, Attempts: attempt + 1, Err: err}
		}

		delay := e.retryDelay * time.Duration(attempt+1)
		e.logger.Info("retrying query", zap.Duration("delay", delay))
		queryRetries.Inc()
		e.sleep(delay)
	}

	// inalcançável: o loop sempre retorna no último attempt
	return &QueryError{Query: query, Attempts: e.maxRetries + 1, Err: lastErr}
}

// attempt adquire uma conexão e roda op. A devolução ao pool é garantida
// via defer, independente do branch que executou.
func (e *Executor) attempt(ctx context.Context, op func(context.Context, Conn) error) error {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := conn.Release(); relErr != nil {
			e.logger.Error("connection release failed", zap.Error(relErr))
		}
	}()

	return op(ctx, conn)
}
