package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jenga/config"
	"jenga/database"
	bookingRepoPkg "jenga/database/repository/booking"
	reviewRepoPkg "jenga/database/repository/review"
	serviceRepoPkg "jenga/database/repository/service"
	userRepoPkg "jenga/database/repository/user"
	"jenga/handlers"
	"jenga/middleware"
	"jenga/routes"
	"jenga/services/booking"
	"jenga/services/catalog"
	"jenga/services/review"
	"jenga/services/user"
	"jenga/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	svcRepo := serviceRepoPkg.NewMongoServiceRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo()
	rvRepo := reviewRepoPkg.NewMongoReviewRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()

	idxCtx, cancelIdx := context.WithTimeout(context.Background(), 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"services": svcRepo.EnsureIndexes,
		"bookings": bkRepo.EnsureIndexes,
		"reviews":  rvRepo.EnsureIndexes,
		"users":    usrRepo.EnsureIndexes,
	} {
		if err := ensure(idxCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}
	cancelIdx()

	// services.
	catalogService := catalog.NewDefaultCatalogService(svcRepo, bkRepo, catalog.NewServiceCache(utils.GetCacheClient()))
	bookingService := &booking.DefaultBookingService{
		Repo:    bkRepo,
		Catalog: catalogService,
	}
	reviewService := &review.DefaultReviewService{Repo: rvRepo}
	userService := &user.DefaultUserService{Repo: usrRepo}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		UserRepo: usrRepo,
		Auth:     handlers.NewAuthHandler(userService),
		Users:    handlers.NewUserHandler(userService),
		Services: handlers.NewServiceHandler(catalogService),
		Bookings: handlers.NewBookingHandler(bookingService),
		Reviews:  handlers.NewReviewHandler(reviewService),
	}

	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
