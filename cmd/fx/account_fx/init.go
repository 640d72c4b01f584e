package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfare/internal/api/controllers"
	"wayfare/internal/repositories"
	"wayfare/internal/services"
)

var Module = fx.Provide(
	provideAccountRepo,
	provideAccountService,
	provideAccountController,
)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(repo repositories.AccountRepository) services.AccountServiceInterface {
	return services.NewAccountService(repo)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
