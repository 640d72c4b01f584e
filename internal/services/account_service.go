package services

import (
	"context"

	"wayfare/internal/models/db_models"
	"wayfare/internal/models/request_models"
	"wayfare/internal/models/response_models"
	"wayfare/internal/repositories"
	"wayfare/pkg/utils"
)

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetAccountById(ctx context.Context, id string) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (string, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if account == nil {
		return "", utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyUsed
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrInvalidInput
	}

	account := &db_models.Account{
		Email:        request.Email,
		PasswordHash: hash,
		DisplayName:  request.DisplayName,
		Role:         "user",
	}
	if err := a.accountRepo.InsertTx(account, ctx); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) GetAccountById(ctx context.Context, id string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return &response_models.AccountResponse{
		ID:          account.ID.String(),
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        account.Role,
	}, nil
}
