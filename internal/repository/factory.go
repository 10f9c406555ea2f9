package repository

import (
	"github.com/phenixmation/payables/internal/domain/auth"
	"github.com/phenixmation/payables/internal/domain/invoice"
	"github.com/phenixmation/payables/internal/domain/user"
	"github.com/phenixmation/payables/internal/logger"
	restRepo "github.com/phenixmation/payables/internal/repository/rest"
)

func NewInvoiceRepository(client *restRepo.Client, logger *logger.Logger) invoice.Repository {
	return restRepo.NewInvoiceRepository(client, logger.With("repository", "invoice"))
}

func NewUserRepository(client *restRepo.Client, logger *logger.Logger) user.Repository {
	return restRepo.NewUserRepository(client, logger.With("repository", "user"))
}

func NewAuthRepository(client *restRepo.Client, logger *logger.Logger) auth.Repository {
	return restRepo.NewAuthRepository(client, logger.With("repository", "auth"))
}
