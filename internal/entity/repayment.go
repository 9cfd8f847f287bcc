package entity

// RepaymentDetails é o resumo de desembolso/recuperação de um lead.
// A consulta que o produz é tratada como provedor externo opaco.
type RepaymentDetails struct {
	LeadID          int64  `json:"lead_id"`
	LoanAmount      int64  `json:"loan_amount"`
	DisbursalAmount int64  `json:"disbursal_amount"`
	DisbursalDate   string `json:"disbursal_date"`
	EMIAmount       int64  `json:"emi_amount"`
	TotalDue        int64  `json:"total_due"`
	NextDueDate     string `json:"next_due_date"`
	RepaymentStatus string `json:"repayment_status"`
}
