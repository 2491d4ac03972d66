package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	discordclient "rmembot/clients/discord"
	"rmembot/config"
	"rmembot/handlers"
	"rmembot/middleware"
	"rmembot/services/reactionusers"
	discordusecase "rmembot/usecases/discord"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackAlertsConfig.WebhookURL,
		Environment: cfg.Environment,
		AppName:     "rmembot",
		LogsURL:     cfg.ServerLogsURL,
	})

	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	discordClient := discordclient.NewDiscordClient(session)
	reactionUsersService := reactionusers.NewReactionUsersService(discordClient, cfg.FetchConcurrency)
	reactionMembersUseCase := discordusecase.NewReactionMembersUseCase(discordClient, reactionUsersService)

	discordHandler := handlers.NewDiscordEventsHandler(
		session,
		discordClient,
		reactionMembersUseCase,
		alertMiddleware,
		discordusecase.ApplicationCommands(),
		cfg.DiscordConfig.GuildID,
	)
	if err := discordHandler.StartBot(); err != nil {
		return err
	}
	defer discordHandler.StopBot()

	router := mux.NewRouter()
	handlers.NewReactionsHTTPHandler(discordClient, reactionUsersService).SetupEndpoints(router)

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	err = handleGracefulShutdown(server)
	alertMiddleware.Wait()
	return err
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
