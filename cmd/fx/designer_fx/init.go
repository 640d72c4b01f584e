package designer_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfare/internal/api/controllers"
	"wayfare/internal/repositories"
	"wayfare/internal/rules"
	"wayfare/internal/services"
	mem "wayfare/pkg/memcache"
	"wayfare/pkg/utils"
)

var Module = fx.Provide(
	provideSessions,
	providePlaceRepo,
	providePlaceService,
	providePlaceController,
	provideDesignerService,
	provideDesignerController,
)

func provideSessions() mem.DesignerSessionStore {
	return mem.NewDesignerSessions()
}

func providePlaceRepo(db *gorm.DB) repositories.PlaceEmbeddingRepository {
	return repositories.NewPlaceEmbeddingRepository(db)
}

func providePlaceService(placeRepo repositories.PlaceEmbeddingRepository, llm utils.LLMClientInterface) services.PlaceServiceInterface {
	return services.NewPlaceService(placeRepo, llm)
}

func providePlaceController(placeService services.PlaceServiceInterface) *controllers.PlaceController {
	return controllers.NewPlaceController(placeService)
}

func provideDesignerService(
	itineraryRepo repositories.ItineraryRepository,
	placeRepo repositories.PlaceEmbeddingRepository,
	llm utils.LLMClientInterface,
	engine *rules.Engine,
	sessions mem.DesignerSessionStore,
) services.DesignerServiceInterface {
	return services.NewDesignerService(itineraryRepo, placeRepo, llm, engine, sessions)
}

func provideDesignerController(designerService services.DesignerServiceInterface) *controllers.DesignerController {
	return controllers.NewDesignerController(designerService)
}
