package database

import (
	"context"
)

type BlacklistRepository struct {
	exec QueryExecutor
}

func NewBlacklistRepository(exec QueryExecutor) *BlacklistRepository {
	return &BlacklistRepository{exec: exec}
}

// IsBlacklisted checa a existência do pancard na tabela de bloqueio.
func (r *BlacklistRepository) IsBlacklisted(ctx context.Context, pancard string) (bool, error) {
	rows, err := r.exec.Query(ctx,
		"SELECT pancard FROM blacklisted_pan WHERE pancard = ? LIMIT 1", pancard)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
