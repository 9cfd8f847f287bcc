package database

import (
	"context"

	"github.com/abhishekdhull21/pos-server/internal/entity"
)

type PincodeRepository struct {
	exec QueryExecutor
}

func NewPincodeRepository(exec QueryExecutor) *PincodeRepository {
	return &PincodeRepository{exec: exec}
}

// FindByPincode resolve pincode -> cidade, só considerando linhas ativas.
func (r *PincodeRepository) FindByPincode(ctx context.Context, pincode string) (*entity.PincodeCity, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT * FROM master_pincode
		 WHERE m_pincode_value = ?
		 AND m_pincode_active = 1
		 AND m_pincode_deleted = 0
		 LIMIT 1`, pincode)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &entity.PincodeCity{
		PincodeID: row.Int64("m_pincode_id"),
		Value:     row.String("m_pincode_value"),
		CityID:    row.Int64("m_pincode_city_id"),
		Active:    row.Int64("m_pincode_active"),
		Deleted:   row.Int64("m_pincode_deleted"),
	}, nil
}
