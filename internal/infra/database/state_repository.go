package database

import (
	"context"

	"github.com/abhishekdhull21/pos-server/internal/entity"
)

type StateRepository struct {
	exec QueryExecutor
}

func NewStateRepository(exec QueryExecutor) *StateRepository {
	return &StateRepository{exec: exec}
}

// FindByName resolve o estado pelo nome. Linha inativa ou deletada não conta.
func (r *StateRepository) FindByName(ctx context.Context, name string) (*entity.State, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT * FROM master_state
		 WHERE m_state_name = ?
		 AND m_state_active = 1
		 AND m_state_deleted = 0
		 LIMIT 1`, name)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &entity.State{
		StateID: row.Int64("m_state_id"),
		Name:    row.String("m_state_name"),
		Active:  row.Int64("m_state_active"),
		Deleted: row.Int64("m_state_deleted"),
	}, nil
}
