package database

import (
	"context"

	"github.com/abhishekdhull21/pos-server/internal/entity"
)

type RepaymentRepository struct {
	exec QueryExecutor
}

func NewRepaymentRepository(exec QueryExecutor) *RepaymentRepository {
	return &RepaymentRepository{exec: exec}
}

// GetFullRepaymentDetails junta desembolso e recuperação para um lead.
// Tratado como provedor externo: o shape importa, o SQL é incidental.
func (r *RepaymentRepository) GetFullRepaymentDetails(ctx context.Context, leadID int64) (*entity.RepaymentDetails, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT l.lead_id, l.loan_amount,
		        d.disbursal_amount, d.disbursal_date,
		        rp.emi_amount, rp.total_due, rp.next_due_date, rp.repayment_status
		 FROM leads l
		 JOIN lead_disbursal d ON d.lead_id = l.lead_id
		 LEFT JOIN lead_repayment rp ON rp.lead_id = l.lead_id
		 WHERE l.lead_id = ?
		 ORDER BY d.disbursal_date DESC
		 LIMIT 1`, leadID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &entity.RepaymentDetails{
		LeadID:          row.Int64("lead_id"),
		LoanAmount:      row.Int64("loan_amount"),
		DisbursalAmount: row.Int64("disbursal_amount"),
		DisbursalDate:   row.String("disbursal_date"),
		EMIAmount:       row.Int64("emi_amount"),
		TotalDue:        row.Int64("total_due"),
		NextDueDate:     row.String("next_due_date"),
		RepaymentStatus: row.String("repayment_status"),
	}, nil
}
