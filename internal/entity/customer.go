package entity

import (
	"time"
)

// Entidade: Customer
// Criado uma única vez no step final, a partir do Lead enriquecido.
type Customer struct {
	CustomerID     int64     `json:"customer_id"`
	CustomerLeadID int64     `json:"customer_lead_id"`
	FirstName      string    `json:"first_name"`
	MiddleName     string    `json:"middle_name"`
	SurName        string    `json:"sur_name"`
	Gender         string    `json:"gender"`
	DOB            string    `json:"dob"`
	Mobile         string    `json:"mobile"`
	Email          string    `json:"email"`
	Pancard        string    `json:"pancard"`
	StateID        *int64    `json:"state_id"`
	CityID         *int64    `json:"city_id"`
	ResidencePin   string    `json:"cr_residence_pincode"`
	CreatedDate    time.Time `json:"created_date"`
}

// Entidade: Employment
// Registro de emprego vinculado ao lead. Hoje só o e-mail corporativo é
// persistido; os demais campos ficam no próprio lead.
type Employment struct {
	EmploymentID int64     `json:"employment_id"`
	LeadID       int64     `json:"lead_id"`
	EmpEmail     string    `json:"emp_email"`
	CreatedOn    time.Time `json:"created_on"`
}
