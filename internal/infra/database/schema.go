package database

import (
	"fmt"
	"sort"
	"strings"
)

// Fields é o conjunto de campos canônicos que o caller quer gravar/filtrar.
type Fields map[string]any

// FieldSpec declara o que cada campo canônico pode fazer. Substitui os
// allow-lists re-checados em tempo de execução, função por função.
type FieldSpec struct {
	Column string
	Write  bool
	Filter bool
	Order  bool
}

// Schema é o mapeamento estático campo canônico -> coluna de uma entidade.
type Schema struct {
	Table  string
	Fields map[string]FieldSpec
}

// Validate roda uma vez no startup.
func (s Schema) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("schema without table name")
	}
	seen := make(map[string]string, len(s.Fields))
	for name, spec := range s.Fields {
		if spec.Column == "" {
			return fmt.Errorf("schema %s: field %q has no column", s.Table, name)
		}
		if prev, ok := seen[spec.Column]; ok {
			return fmt.Errorf("schema %s: column %q mapped by both %q and %q", s.Table, spec.Column, prev, name)
		}
		seen[spec.Column] = name
	}
	return nil
}

// WriteSet intersecta data com o allow-list de escrita. Chaves desconhecidas
// (ou não-graváveis) são descartadas em silêncio; conjunto efetivo vazio é
// erro do caller.
func (s Schema) WriteSet(data Fields) ([]string, []any, error) {
	names := make([]string, 0, len(data))
	for name := range data {
		spec, ok := s.Fields[name]
		if !ok || !spec.Write {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, nil, &ValidationError{Message: "no valid fields provided for " + s.Table}
	}
	sort.Strings(names) // SQL determinístico

	cols := make([]string, 0, len(names))
	vals := make([]any, 0, len(names))
	for _, name := range names {
		cols = append(cols, s.Fields[name].Column)
		vals = append(vals, data[name])
	}
	return cols, vals, nil
}

// WhereClause monta o filtro a partir de campos filtráveis. Diferente da
// escrita, chave inválida aqui é rejeitada, não descartada.
func (s Schema) WhereClause(where Fields) (string, []any, error) {
	if len(where) == 0 {
		return "", nil, nil
	}
	names := make([]string, 0, len(where))
	for name := range where {
		spec, ok := s.Fields[name]
		if !ok || !spec.Filter {
			return "", nil, &ValidationError{Field: name, Message: "invalid filter field"}
		}
		names = append(names, name)
	}
	sort.Strings(names)

	clauses := make([]string, 0, len(names))
	vals := make([]any, 0, len(names))
	for _, name := range names {
		clauses = append(clauses, fmt.Sprintf("`%s` = ?", s.Fields[name].Column))
		vals = append(vals, where[name])
	}
	return " WHERE " + strings.Join(clauses, " AND "), vals, nil
}

// OrderClause valida a coluna de ordenação contra o allow-list.
func (s Schema) OrderClause(orderBy, order string) (string, error) {
	if orderBy == "" {
		return "", nil
	}
	spec, ok := s.Fields[orderBy]
	if !ok || !spec.Order {
		return "", &ValidationError{Field: orderBy, Message: "invalid orderBy field"}
	}
	dir := "DESC"
	if strings.EqualFold(order, "ASC") {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY `%s` %s", spec.Column, dir), nil
}

// --- schemas das entidades ---

var LeadSchema = Schema{
	Table: "leads",
	Fields: map[string]FieldSpec{
		"lead_id":                 {Column: "lead_id", Filter: true, Order: true},
		"pancard":                 {Column: "pancard", Write: true, Filter: true},
		"mobile":                  {Column: "mobile", Write: true, Filter: true},
		"email":                   {Column: "email", Write: true, Filter: true},
		"alternate_email":         {Column: "alternate_email", Write: true},
		"first_name":              {Column: "first_name", Write: true},
		"gender":                  {Column: "gender", Write: true},
		"dob":                     {Column: "dob", Write: true},
		"pincode":                 {Column: "pincode", Write: true},
		"state_name":              {Column: "state_name", Write: true},
		"city_name":               {Column: "city_name", Write: true},
		"state_id":                {Column: "state_id", Write: true},
		"city_id":                 {Column: "city_id", Write: true},
		"loan_amount":             {Column: "loan_amount", Write: true},
		"obligations":             {Column: "obligations", Write: true},
		"monthly_income":          {Column: "monthly_income", Write: true},
		"company_name":            {Column: "company_name", Write: true},
		"designation":             {Column: "designation", Write: true},
		"coordinates":             {Column: "coordinates", Write: true},
		"coupon":                  {Column: "coupon", Write: true},
		"rejected_flag":           {Column: "rejectd_flag", Write: true},
		"lead_status_id":          {Column: "lead_status_id", Write: true, Filter: true},
		"qde_consent":             {Column: "qde_consent", Write: true},
		"lead_black_list_flag":    {Column: "lead_black_list_flag", Write: true},
		"lead_is_mobile_verified": {Column: "lead_is_mobile_verified", Write: true},
		"user_type":               {Column: "user_type", Write: true},
		"stage":                   {Column: "stage", Write: true},
		"source":                  {Column: "source", Write: true, Filter: true},
		"utm_source":              {Column: "utm_source", Write: true},
		"utm_campaign":            {Column: "utm_campaign", Write: true},
		"ip":                      {Column: "ip", Write: true},
		"lead_entry_date":         {Column: "lead_entry_date", Write: true},
		"created_on":              {Column: "created_on", Write: true, Filter: true, Order: true},
		"updated_on":              {Column: "updated_on", Write: true},
	},
}

var CustomerSchema = Schema{
	Table: "lead_customer",
	Fields: map[string]FieldSpec{
		"customer_id":          {Column: "customer_id", Filter: true, Order: true},
		"customer_lead_id":     {Column: "customer_lead_id", Write: true, Filter: true},
		"first_name":           {Column: "first_name", Write: true},
		"middle_name":          {Column: "middle_name", Write: true},
		"sur_name":             {Column: "sur_name", Write: true},
		"gender":               {Column: "gender", Write: true},
		"dob":                  {Column: "dob", Write: true},
		"mobile":               {Column: "mobile", Write: true},
		"email":                {Column: "email", Write: true},
		"pancard":              {Column: "pancard", Write: true, Filter: true},
		"state_id":             {Column: "state_id", Write: true},
		"city_id":              {Column: "city_id", Write: true},
		"cr_residence_pincode": {Column: "cr_residence_pincode", Write: true},
		"created_date":         {Column: "created_date", Write: true, Order: true},
	},
}

var EmploymentSchema = Schema{
	Table: "customer_employment",
	Fields: map[string]FieldSpec{
		"employment_id": {Column: "employment_id", Filter: true},
		"lead_id":       {Column: "lead_id", Write: true, Filter: true},
		"emp_email":     {Column: "emp_email", Write: true},
		"created_on":    {Column: "created_on", Write: true, Order: true},
	},
}

// ValidateSchemas é chamado no boot do processo.
func ValidateSchemas() error {
	for _, s := range []Schema{LeadSchema, CustomerSchema, EmploymentSchema} {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
