package service

import (
	"time"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/domain"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/provider"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

type mcpRegistrationTarget interface {
	Register(registry.Operation) error
}

type mcpRegistrationModule struct {
	name     string
	register func(mcpRegistrationTarget) error
}

const (
	mcpClockOperationsModuleName   = "clock-operations"
	mcpStockOperationsModuleName   = "stock-operations"
	mcpFuturesOperationsModuleName = "futures-operations"
)

func newMCPRegistrationModules(p provider.Provider, now func() time.Time) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpClockOperationsModuleName,
			register: func(target mcpRegistrationTarget) error {
				return registerOperations(target, domain.ClockOperations(now))
			},
		},
		{
			name: mcpStockOperationsModuleName,
			register: func(target mcpRegistrationTarget) error {
				return registerOperations(target, domain.StockOperations(p))
			},
		},
		{
			name: mcpFuturesOperationsModuleName,
			register: func(target mcpRegistrationTarget) error {
				return registerOperations(target, domain.FuturesOperations(p))
			},
		},
	}
}

func registerOperations(target mcpRegistrationTarget, ops []registry.Operation) error {
	for _, op := range ops {
		if err := target.Register(op); err != nil {
			return err
		}
	}
	return nil
}
