package database

import (
	"context"
	"fmt"
	"strings"
)

type EmploymentRepository struct {
	exec QueryExecutor
}

func NewEmploymentRepository(exec QueryExecutor) *EmploymentRepository {
	return &EmploymentRepository{exec: exec}
}

func (r *EmploymentRepository) Create(ctx context.Context, data Fields) (int64, error) {
	cols, vals, err := EmploymentSchema.WriteSet(data)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO customer_employment (`%s`) VALUES (%s)",
		strings.Join(cols, "`, `"),
		placeholders(len(cols)))

	res, err := r.exec.Exec(ctx, query, vals...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}
