package database

import (
	"context"

	"github.com/abhishekdhull21/pos-server/internal/entity"
)

type UserRepository struct {
	exec QueryExecutor
}

func NewUserRepository(exec QueryExecutor) *UserRepository {
	return &UserRepository{exec: exec}
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entity.User, error) {
	rows, err := r.exec.Query(ctx, "SELECT * FROM users WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &entity.User{
		UserID: row.Int64("user_id"),
		Name:   row.String("name"),
		Email:  row.String("email"),
	}, nil
}
