package stock

import (
	"go.uber.org/zap"
)

type Module struct {
	Controller *Controller
	Service    Service
}

func NewModule(repo Repository, logger *zap.Logger) *Module {
	svc := NewService(repo)
	uc := NewSearchUseCase(svc)
	return &Module{
		Controller: NewController(uc, logger),
		Service:    svc,
	}
}
