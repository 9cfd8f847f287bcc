package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhishekdhull21/pos-server/internal/entity"
)

// LeadKey identifica um lead pelo id substituto ou pela chave natural.
// Tagged de propósito: nada de adivinhar "é numérico?" a partir da string.
type LeadKey struct {
	column string
	value  any
}

func LeadID(id int64) LeadKey {
	return LeadKey{column: "lead_id", value: id}
}

func LeadPancard(pancard string) LeadKey {
	return LeadKey{column: "pancard", value: pancard}
}

// FindLeadOptions espelha o contrato de leitura: filtros e ordenação só por
// colunas do allow-list, limite opcional.
type FindLeadOptions struct {
	Where   Fields
	OrderBy string
	Order   string
	Limit   int
}

type LeadRepository struct {
	exec QueryExecutor
}

func NewLeadRepository(exec QueryExecutor) *LeadRepository {
	return &LeadRepository{exec: exec}
}

// Find retorna leads conforme as opções. Ausência não é erro.
func (r *LeadRepository) Find(ctx context.Context, opts FindLeadOptions) ([]entity.Lead, error) {
	where, vals, err := LeadSchema.WhereClause(opts.Where)
	if err != nil {
		return nil, err
	}
	order, err := LeadSchema.OrderClause(opts.OrderBy, opts.Order)
	if err != nil {
		return nil, err
	}

	query := "SELECT * FROM leads" + where + order
	if opts.Limit > 0 {
		query += " LIMIT ?"
		vals = append(vals, opts.Limit)
	}

	rows, err := r.exec.Query(ctx, query, vals...)
	if err != nil {
		return nil, err
	}

	leads := make([]entity.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, rowToLead(row))
	}
	return leads, nil
}

// FindOne é o modo "single result": primeira linha ou nil.
func (r *LeadRepository) FindOne(ctx context.Context, opts FindLeadOptions) (*entity.Lead, error) {
	opts.Limit = 1
	leads, err := r.Find(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, nil
	}
	return &leads[0], nil
}

// Create insere um lead novo com os campos do allow-list e devolve o id.
func (r *LeadRepository) Create(ctx context.Context, data Fields) (int64, error) {
	cols, vals, err := LeadSchema.WriteSet(data)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO leads (`%s`) VALUES (%s)",
		strings.Join(cols, "`, `"),
		placeholders(len(cols)))

	res, err := r.exec.Exec(ctx, query, vals...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

// Update grava os campos permitidos no lead identificado pela chave.
func (r *LeadRepository) Update(ctx context.Context, key LeadKey, data Fields) (int64, error) {
	cols, vals, err := LeadSchema.WriteSet(data)
	if err != nil {
		return 0, err
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("`%s` = ?", col)
	}
	vals = append(vals, key.value)

	query := fmt.Sprintf("UPDATE leads SET %s WHERE `%s` = ?",
		strings.Join(sets, ", "), key.column)

	res, err := r.exec.Exec(ctx, query, vals...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Delete existe mas não faz parte do fluxo de steps.
func (r *LeadRepository) Delete(ctx context.Context, key LeadKey) error {
	query := fmt.Sprintf("DELETE FROM leads WHERE `%s` = ?", key.column)
	_, err := r.exec.Exec(ctx, query, key.value)
	return err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func rowToLead(row Row) entity.Lead {
	return entity.Lead{
		LeadID:         row.Int64("lead_id"),
		Pancard:        row.String("pancard"),
		Mobile:         row.String("mobile"),
		Email:          row.String("email"),
		FirstName:      row.String("first_name"),
		Gender:         row.String("gender"),
		DOB:            row.String("dob"),
		Pincode:        row.String("pincode"),
		StateID:        row.NullInt64("state_id"),
		CityID:         row.NullInt64("city_id"),
		LoanAmount:     row.Int64("loan_amount"),
		Obligations:    row.Int64("obligations"),
		MonthlyIncome:  row.Int64("monthly_income"),
		CompanyName:    row.String("company_name"),
		Designation:    row.String("designation"),
		Stage:          row.String("stage"),
		LeadStatusID:   row.Int64("lead_status_id"),
		UserType:       row.String("user_type"),
		BlacklistFlag:  row.Int64("lead_black_list_flag"),
		MobileVerified: row.Int64("lead_is_mobile_verified"),
		QDEConsent:     row.String("qde_consent"),
		Source:         row.String("source"),
		UTMSource:      row.String("utm_source"),
		UTMCampaign:    row.String("utm_campaign"),
		IP:             row.String("ip"),
		CreatedOn:      row.Time("created_on"),
		UpdatedOn:      row.NullTime("updated_on"),
	}
}
