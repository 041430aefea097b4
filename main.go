package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"mindhaven/internal/config"
	"mindhaven/internal/domain/entities"
	Iservices "mindhaven/internal/domain/interfaces/services"
	"mindhaven/internal/infra/auth"
	"mindhaven/internal/infra/handlers"
	"mindhaven/internal/infra/logger"
	"mindhaven/internal/infra/realtime"
	"mindhaven/internal/infra/repository"
	"mindhaven/internal/infra/routes"
	"mindhaven/internal/infra/services"
	"mindhaven/internal/middleware"
	client "mindhaven/internal/pkg"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	mongoClient := client.MongoClient()
	db := mongoClient.Database("MindHaven")

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	contextRepo := repository.NewMongoRepository[entities.ConversationContext](db)
	messageRepo := repository.NewMongoRepository[entities.ChatMessage](db)
	checkInRepo := repository.NewMongoRepository[entities.CheckInRecord](db)
	moodRepo := repository.NewMongoRepository[entities.MoodEntry](db)

	var identitySvc Iservices.IIdentityService = auth.NewTokenService(config.GetEnv("JWT_SECRET"), log)
	var sentimentSvc Iservices.ISentimentService = services.NewSentimentService(log)
	var conversationSvc Iservices.IConversationService = services.NewDialogueService(log, contextRepo, messageRepo, checkInRepo)
	var moodSvc Iservices.IMoodService = services.NewMoodService(log, moodRepo, sentimentSvc)
	var analyticsSvc Iservices.IAnalyticsService = services.NewAnalyticsService(log, messageRepo, moodRepo)

	registry := realtime.NewRegistry(log)
	publisher := realtime.NewDashboardPublisher(log, analyticsSvc, registry, publishInterval())
	registry.SetPresenceListener(publisher)

	chatHandlers := handlers.NewChatHandlers(log, identitySvc, conversationSvc)
	moodHandlers := handlers.NewMoodHandlers(log, identitySvc, moodSvc)
	webSocketHandlers := handlers.NewWebSocketHandlers(log, identitySvc, conversationSvc, registry)

	routes := routes.NewRoutes(
		router,
		chatHandlers,
		moodHandlers,
		webSocketHandlers,
	)

	routes.Init()

	port := config.GetEnvOrDefault("PORT", "8080")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	registry.Drain()
	publisher.Drain()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Error disconnecting from MongoDB: %v", err))
	}

	log.Info("Server stopped gracefully.")
}

func publishInterval() time.Duration {
	raw := config.GetEnvOrDefault("DASHBOARD_PUBLISH_INTERVAL", "5")
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		seconds = 5
	}
	return time.Duration(seconds) * time.Second
}
