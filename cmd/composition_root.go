package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/labelstore"
	"fulfillment/internal/adapters/out/marketplace"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	marketplaceClient ports.MarketplaceClient
	carrierClient     ports.CarrierClient
	labelStore        ports.LabelStore
	labelInspector    ports.LabelInspector
	auditLog          ports.AuditLog

	acceptancePolicy commands.AcceptancePolicy
	labelPolicy      commands.LabelPolicy
	logger           *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	marketplaceClient, err := marketplace.NewClient(marketplace.Config{
		BaseURL: configs.MarketplaceBaseURL,
		APIKey:  configs.MarketplaceAPIKey,
	})
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create marketplace client: %w", err)
	}

	carrierClient, err := carrier.NewClient(carrier.Config{
		BaseURL:        configs.CarrierBaseURL,
		CustomerNumber: configs.CarrierCustomerNumber,
		ContractID:     configs.CarrierContractID,
		PaidByCustomer: configs.CarrierPaidByCustomer,
		APIUser:        configs.CarrierAPIUser,
		APIPassword:    configs.CarrierAPIPassword,
		Sender: carrier.Sender{
			Name:         configs.SenderName,
			Company:      configs.SenderCompany,
			ContactPhone: configs.SenderContactPhone,
			Address:      configs.SenderAddress,
			City:         configs.SenderCity,
			Province:     configs.SenderProvince,
			PostalCode:   configs.SenderPostalCode,
		},
	})
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create carrier client: %w", err)
	}

	labelStore, err := labelstore.NewFileStore(configs.LabelDir)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create label store: %w", err)
	}

	acceptancePolicy := commands.DefaultAcceptancePolicy()
	acceptancePolicy.SettleDelay = configs.SettleDelayDuration()
	if attempts := parseAttempts(configs.MaxValidationAttempts); attempts > 0 {
		acceptancePolicy.MaxValidationAttempts = attempts
	}

	labelPolicy := commands.DefaultLabelPolicy()
	labelPolicy.RetryDelay = configs.LabelRetryDelayDuration()
	if attempts := parseAttempts(configs.MaxLabelAttempts); attempts > 0 {
		labelPolicy.MaxAttempts = attempts
	}

	return CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		marketplaceClient: marketplaceClient,
		carrierClient:     carrierClient,
		labelStore:        labelStore,
		labelInspector:    carrier.NewPDFInspector(),
		auditLog:          auditrepo.NewGormAuditLog(gormDB),
		acceptancePolicy:  acceptancePolicy,
		labelPolicy:       labelPolicy,
		logger:            logger,
	}, nil
}

func (c *CompositionRoot) CreateAcceptOrdersCommandHandler() commands.AcceptOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrdersCommandHandler(f, c.marketplaceClient, c.auditLog, c.acceptancePolicy, c.logger)
}

func (c *CompositionRoot) CreateCreateShippingLabelsCommandHandler() commands.CreateShippingLabelsCommandHandler {
	var f commands.ShippingUoWFactory = FuncShippingUoWFactory(func() commands.ShippingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShippingLabelsCommandHandler(
		f, c.carrierClient, c.labelStore, c.labelInspector, c.auditLog, c.labelPolicy, c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateTrackingCommandHandler() commands.UpdateTrackingCommandHandler {
	var f commands.ShippingUoWFactory = FuncShippingUoWFactory(func() commands.ShippingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTrackingCommandHandler(f, c.marketplaceClient, c.auditLog, c.logger)
}

func (c *CompositionRoot) CreateRunPipelineCommandHandler() commands.RunPipelineCommandHandler {
	return commands.NewRunPipelineCommandHandler(
		c.CreateAcceptOrdersCommandHandler(),
		c.CreateCreateShippingLabelsCommandHandler(),
		c.CreateUpdateTrackingCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateReleaseShipmentCommandHandler() commands.ReleaseShipmentCommandHandler {
	var f commands.ShippingUoWFactory = FuncShippingUoWFactory(func() commands.ShippingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseShipmentCommandHandler(f, c.carrierClient, c.auditLog, c.logger)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFailuresQueryHandler() queries.GetFailuresQueryHandler {
	return queries.NewGetFailuresQueryHandler(c.gormDB)
}

func parseAttempts(raw string) int {
	if raw == "" {
		return 0
	}

	attempts, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return attempts
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncShippingUoWFactory func() commands.ShippingUoW

func (f FuncShippingUoWFactory) Create() commands.ShippingUoW {
	return f()
}
