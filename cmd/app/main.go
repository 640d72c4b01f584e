package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"wayfare/cmd/fx/account_fx"
	"wayfare/cmd/fx/db_fx"
	"wayfare/cmd/fx/designer_fx"
	"wayfare/cmd/fx/import_fx"
	"wayfare/cmd/fx/itinerary_fx"
	"wayfare/internal/api/controllers"
	"wayfare/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	app := fx.New(
		db_fx.Module,
		itinerary_fx.Module,
		import_fx.Module,
		designer_fx.Module,
		account_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	segmentController *controllers.SegmentController,
	importController *controllers.ImportController,
	designerController *controllers.DesignerController,
	placeController *controllers.PlaceController,
	accountController *controllers.AccountController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, itineraryController, segmentController, importController, designerController, placeController, accountController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	segmentController *controllers.SegmentController,
	importController *controllers.ImportController,
	designerController *controllers.DesignerController,
	placeController *controllers.PlaceController,
	accountController *controllers.AccountController) {

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/signup", accountController.SignUp)
	accountGroup.POST("/login", accountController.Login)
	accountGroup.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.Use(middleware.JWTAuthMiddleware())
	itineraryGroup.POST("", itineraryController.CreateItinerary)
	itineraryGroup.GET("", itineraryController.ListItineraries)
	itineraryGroup.GET("/:itineraryId", itineraryController.GetItineraryById)
	itineraryGroup.DELETE("/:itineraryId", itineraryController.DeleteItinerary)
	itineraryGroup.GET("/:itineraryId/review", itineraryController.ReviewItinerary)

	itineraryGroup.POST("/:itineraryId/segments", segmentController.AddSegment)
	itineraryGroup.PUT("/:itineraryId/segments/:segmentId", segmentController.UpdateSegment)
	itineraryGroup.DELETE("/:itineraryId/segments/:segmentId", segmentController.DeleteSegment)
	itineraryGroup.POST("/:itineraryId/segments/:segmentId/move", segmentController.MoveSegment)

	importGroup := r.Group("/import")
	importGroup.Use(middleware.JWTAuthMiddleware())
	importGroup.POST("", importController.ImportContent)

	designerGroup := r.Group("/designer")
	designerGroup.Use(middleware.JWTAuthMiddleware())
	designerGroup.POST("/chat", designerController.Chat)

	placeGroup := r.Group("/places")
	placeGroup.Use(middleware.JWTAuthMiddleware())
	placeGroup.GET("/:code", placeController.GetPlaceByCode)
	placeGroup.POST("", middleware.RoleMiddleware("admin"), placeController.CreatePlace)
}
