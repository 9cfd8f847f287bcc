package database

import (
	"context"
	"fmt"
	"strings"
)

type CustomerRepository struct {
	exec QueryExecutor
}

func NewCustomerRepository(exec QueryExecutor) *CustomerRepository {
	return &CustomerRepository{exec: exec}
}

// Create insere o registro de cliente derivado do lead finalizado.
func (r *CustomerRepository) Create(ctx context.Context, data Fields) (int64, error) {
	cols, vals, err := CustomerSchema.WriteSet(data)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO lead_customer (`%s`) VALUES (%s)",
		strings.Join(cols, "`, `"),
		placeholders(len(cols)))

	res, err := r.exec.Exec(ctx, query, vals...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

// ExistsForLead é a trava de idempotência do step final: um cliente por lead.
func (r *CustomerRepository) ExistsForLead(ctx context.Context, leadID int64) (bool, error) {
	rows, err := r.exec.Query(ctx,
		"SELECT customer_id FROM lead_customer WHERE customer_lead_id = ? LIMIT 1", leadID)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
