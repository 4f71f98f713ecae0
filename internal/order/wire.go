package order

import (
	"go.uber.org/zap"

	"stockdesk/internal/allocation"
	"stockdesk/internal/config"
	"stockdesk/internal/order/controller"
	"stockdesk/internal/order/service"
	"stockdesk/internal/order/usecase"
)

type Module struct {
	Controller *controller.OrderController
	UseCase    *usecase.AllocationUseCase
}

// NewModule builds the order stack on top of whichever storage backend the
// caller selected. observer may be nil.
func NewModule(
	orderRepo usecase.OrderRepository,
	availability usecase.AvailabilityProvider,
	observer service.EvaluationObserver,
	cfg *config.Config,
	logger *zap.Logger,
) (*Module, error) {
	zeroRequested, err := allocation.ParseZeroRequestedPolicy(string(cfg.Allocation.ZeroRequested))
	if err != nil {
		return nil, err
	}

	editPolicy, err := allocation.ParseEditPolicy(string(cfg.Allocation.EditPolicy))
	if err != nil {
		return nil, err
	}

	engine := allocation.NewEngine(allocation.WithZeroRequestedPolicy(zeroRequested))
	allocationSvc := service.NewAllocationService(
		engine,
		editPolicy,
		observer,
		logger,
	)

	uc := usecase.NewAllocationUseCase(
		orderRepo,
		availability,
		allocationSvc,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return &Module{
		Controller: controller.NewOrderController(uc, logger),
		UseCase:    uc,
	}, nil
}
