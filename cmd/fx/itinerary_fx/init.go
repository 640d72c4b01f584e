package itinerary_fx

import (
	"os"
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfare/internal/api/controllers"
	"wayfare/internal/repositories"
	"wayfare/internal/rules"
	"wayfare/internal/services"
)

var Module = fx.Provide(
	ProvideRuleEngine,
	provideItineraryRepo,
	provideItineraryService,
	provideItineraryController,
	provideSegmentController,
)

// ProvideRuleEngine builds the engine from environment configuration:
// WAYFARE_DISABLED_RULES is a comma-separated list of rule ids,
// WAYFARE_SKIP_WARNINGS / WAYFARE_SKIP_INFO suppress those severities.
func ProvideRuleEngine() *rules.Engine {
	cfg := rules.DefaultConfig()
	if raw := os.Getenv("WAYFARE_DISABLED_RULES"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.DisabledRules = append(cfg.DisabledRules, id)
			}
		}
	}
	if os.Getenv("WAYFARE_SKIP_WARNINGS") == "true" {
		cfg.EnableWarnings = false
	}
	if os.Getenv("WAYFARE_SKIP_INFO") == "true" {
		cfg.EnableInfo = false
	}
	return rules.NewEngine(cfg)
}

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(itineraryRepo repositories.ItineraryRepository, engine *rules.Engine) services.ItineraryServiceInterface {
	return services.NewItineraryService(itineraryRepo, engine)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}

func provideSegmentController(itineraryService services.ItineraryServiceInterface) *controllers.SegmentController {
	return controllers.NewSegmentController(itineraryService)
}
