package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chargesphere/config"
	"chargesphere/cron"
	"chargesphere/database"
	bookingRepoPkg "chargesphere/database/repository/booking"
	reviewRepoPkg "chargesphere/database/repository/review"
	userRepoPkg "chargesphere/database/repository/user"
	"chargesphere/handlers"
	"chargesphere/middleware"
	"chargesphere/routes"
	"chargesphere/services/booking"
	"chargesphere/services/review"
	"chargesphere/services/stations"
	"chargesphere/services/storage"
	"chargesphere/services/user"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.InitDB(); err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := database.Database()

	var (
		authCache    utils.AuthCache
		stationCache stations.Cache
	)
	if err := utils.InitCache(); err != nil {
		logger.Warn("main: Redis unavailable, running without caches", zap.Error(err))
	} else {
		authCache = utils.NewRedisAuthCache(utils.AuthCacheClient)
		stationCache = utils.NewRedisCache(utils.CacheClient, utils.StationCachePrefix)
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo(db)

	// services.
	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Cache:    authCache,
		TokenTTL: time.Duration(cfg.TokenTTLHours) * time.Hour,
	}
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userService.EnsureAdmin(bootCtx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		logger.Error("main: failed to bootstrap admin account", zap.Error(err))
	}
	bootCancel()

	bookingService := &booking.DefaultBookingService{Repo: bookingRepo, Users: userRepo}

	var photos storage.StorageService
	cld, err := storage.NewCloudinaryStorageService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		logger.Warn("main: review photo uploads disabled", zap.Error(err))
	} else {
		photos = cld
	}
	reviewService := &review.DefaultReviewService{Repo: reviewRepo, Users: userRepo, Photos: photos}

	directory := stations.NewOpenChargeMapClient(stations.OpenChargeMapOptions{
		BaseURL:  cfg.StationsBaseURL,
		APIKey:   cfg.StationsAPIKey,
		Relays:   cfg.StationsRelays,
		Timeout:  time.Duration(cfg.StationsTimeoutSeconds) * time.Second,
		Cache:    stationCache,
		CacheTTL: time.Duration(cfg.StationsCacheTTLMinutes) * time.Minute,
	})
	stationService := stations.NewStationService(stations.NewFallbackDirectory(directory), bookingService)
	geocoder := stations.NewPhotonGeocoder(cfg.GeocoderBaseURL)

	stopWorker, err := cron.StartCompletionWorker(cfg, bookingService)
	if err != nil {
		logger.Error("main: completion worker not started", zap.Error(err))
		stopWorker = func() {}
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, 30*time.Second, []*redis.Client{utils.CacheClient, utils.AuthCacheClient}, database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:  userRepo,
		AuthCache: authCache,
		Auth:      handlers.NewAuthHandler(userService),
		User:      handlers.NewUserHandler(userService),
		Booking:   handlers.NewBookingHandler(bookingService),
		Admin:     handlers.NewAdminHandler(userService, bookingService),
		Review:    handlers.NewReviewHandler(reviewService),
		Station:   handlers.NewStationHandler(stationService),
		Geocode:   handlers.NewGeocodeHandler(geocoder),
		Health:    handlers.NewHealthHandler(),
	}

	// Create the Gin router.
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSOrigins)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	stopWorker()
	stopHealth()
	utils.CloseCache()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: MongoDB disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
