package usecase

import (
	"context"

	"github.com/abhishekdhull21/pos-server/internal/entity"
	"github.com/abhishekdhull21/pos-server/internal/infra/database"
	"github.com/abhishekdhull21/pos-server/internal/infra/queue"
)

type LeadRepositoryInterface interface {
	Find(ctx context.Context, opts database.FindLeadOptions) ([]entity.Lead, error)
	FindOne(ctx context.Context, opts database.FindLeadOptions) (*entity.Lead, error)
	Create(ctx context.Context, data database.Fields) (int64, error)
	Update(ctx context.Context, key database.LeadKey, data database.Fields) (int64, error)
}

type CustomerRepositoryInterface interface {
	Create(ctx context.Context, data database.Fields) (int64, error)
	ExistsForLead(ctx context.Context, leadID int64) (bool, error)
}

type EmploymentRepositoryInterface interface {
	Create(ctx context.Context, data database.Fields) (int64, error)
}

type StateRepositoryInterface interface {
	FindByName(ctx context.Context, name string) (*entity.State, error)
}

type PincodeRepositoryInterface interface {
	FindByPincode(ctx context.Context, pincode string) (*entity.PincodeCity, error)
}

type BlacklistRepositoryInterface interface {
	IsBlacklisted(ctx context.Context, pancard string) (bool, error)
}

type RepaymentProviderInterface interface {
	GetFullRepaymentDetails(ctx context.Context, leadID int64) (*entity.RepaymentDetails, error)
}

type QueueProducerInterface interface {
	PublishLeadFinalized(ctx context.Context, payload queue.LeadFinalizedPayload) error
}
