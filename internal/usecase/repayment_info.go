package usecase

import (
	"context"

	"github.com/abhishekdhull21/pos-server/internal/entity"
	"github.com/abhishekdhull21/pos-server/internal/infra/database"
)

// RepaymentInfoUseCase resolve o lead mais recente do pancard e delega ao
// provedor de detalhes de repagamento. Sem cache: toda chamada re-consulta.
type RepaymentInfoUseCase struct {
	Leads      LeadRepositoryInterface
	Repayments RepaymentProviderInterface
}

func NewRepaymentInfoUseCase(leads LeadRepositoryInterface, repayments RepaymentProviderInterface) *RepaymentInfoUseCase {
	return &RepaymentInfoUseCase{Leads: leads, Repayments: repayments}
}

// Execute devolve nil (sem erro) quando não há lead ou o lead não tem id.
func (uc *RepaymentInfoUseCase) Execute(ctx context.Context, pancard string) (*entity.RepaymentDetails, error) {
	lead, err := uc.Leads.FindOne(ctx, database.FindLeadOptions{
		Where:   database.Fields{"pancard": pancard},
		OrderBy: "created_on",
		Order:   "DESC",
	})
	if err != nil {
		return nil, err
	}
	if lead == nil || lead.LeadID == 0 {
		return nil, nil
	}

	return uc.Repayments.GetFullRepaymentDetails(ctx, lead.LeadID)
}
