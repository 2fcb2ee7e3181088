package router

import (
	"utsavdarshan/config"
	"utsavdarshan/internal/handler"
	"utsavdarshan/internal/middleware"
	"utsavdarshan/internal/service"
	"utsavdarshan/pkg/cloudinary"
	"utsavdarshan/pkg/geocode"

	"github.com/gin-gonic/gin"
)

// Setup wires services and handlers over store. cloud and geo may be nil;
// the features that need them then answer 503. The caller owns limiter and
// stops it after the server shuts down.
func Setup(cfg *config.Config, store service.Store, limiter *middleware.InMemoryRateLimiter, cloud cloudinary.Client, geo *geocode.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(), middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(limiter))

	var (
		geocoder service.Geocoder
		places   handler.PlaceFinder
	)
	if geo != nil {
		geocoder, places = geo, geo
	}

	// Services
	dirSvc := service.NewDirectoryService(cfg.Directory, store, store, store)
	regSvc := service.NewRegistrationService(dirSvc, geocoder)
	authSvc := service.NewAuthService(cfg, store)
	importer := service.NewImporter(dirSvc)

	// Handlers
	pandalHandler := handler.NewPandalHandler(dirSvc, regSvc)
	areaHandler := handler.NewAreaHandler(dirSvc)
	uploadHandler := handler.NewUploadHandler(dirSvc, cloud, cfg.Cloudinary.Folder)
	placesHandler := handler.NewPlacesHandler(dirSvc, places)
	geojsonHandler := handler.NewGeoJSONHandler(importer)
	meHandler := handler.NewMeHandler(authSvc, dirSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	healthHandler := handler.NewHealthHandler(store, cfg.Store.Driver)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired()

	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandler.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		api.GET("/pandals", pandalHandler.List)
		api.GET("/featured", pandalHandler.Featured)
		api.GET("/search", pandalHandler.Search)
		api.GET("/nearby", pandalHandler.Nearby)
		api.GET("/areas", areaHandler.List)
		api.GET("/areas/:name", areaHandler.Get)
		api.GET("/filter-options", areaHandler.FilterOptions)
		api.GET("/badges", meHandler.BadgeCatalogue)
		api.GET("/export/pandals.geojson", geojsonHandler.Export)

		pandals := api.Group("/pandals/:id")
		{
			pandals.GET("", pandalHandler.Get)
			pandals.GET("/ratings", pandalHandler.Ratings)
			pandals.GET("/nearby-places", placesHandler.NearbyPlaces)
			pandals.POST("/ratings", authMw, pandalHandler.Rate)
			pandals.POST("/visits", authMw, pandalHandler.Visit)
			pandals.PATCH("", authMw, adminMw, pandalHandler.Update)
			pandals.POST("/image", authMw, adminMw, uploadHandler.UploadPandalImage)
		}
		api.POST("/pandals", authMw, pandalHandler.Register)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("", meHandler.GetProfile)
			me.GET("/visits", meHandler.Visits)
			me.GET("/badges", meHandler.Badges)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.POST("/import", geojsonHandler.Import)
		}
	}
	return r
}
