package service

import (
	"github.com/phenixmation/payables/internal/cache"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/domain/auth"
	"github.com/phenixmation/payables/internal/domain/invoice"
	"github.com/phenixmation/payables/internal/domain/user"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/pdf"
	"github.com/phenixmation/payables/internal/session"
	"github.com/phenixmation/payables/internal/types"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	Session      *session.Session
	PDFGenerator pdf.Generator

	// Repositories
	AuthRepo    auth.Repository
	UserRepo    user.Repository
	InvoiceRepo invoice.Repository

	// Caches
	Cache  cache.Cache
	Drafts *cache.DraftStore
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	session *session.Session,
	pdfGenerator pdf.Generator,
	authRepo auth.Repository,
	userRepo user.Repository,
	invoiceRepo invoice.Repository,
	cache cache.Cache,
	drafts *cache.DraftStore,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		Session:      session,
		PDFGenerator: pdfGenerator,
		AuthRepo:     authRepo,
		UserRepo:     userRepo,
		InvoiceRepo:  invoiceRepo,
		Cache:        cache,
		Drafts:       drafts,
	}
}

// InvoiceDefaults returns the values new invoices and new lines start with
func (p ServiceParams) InvoiceDefaults() invoice.Defaults {
	return invoice.Defaults{
		Currency:       p.Config.Invoice.Currency,
		TaxRatePercent: p.Config.Invoice.DefaultTaxRate(),
		DueInDays:      p.Config.Invoice.DueInDays,
		PaymentMethod:  types.PaymentMethod(p.Config.Invoice.PaymentMethod),
		SupplierID:     p.Config.Invoice.SupplierID,
		UserID:         p.Config.Invoice.UserID,
	}
}
