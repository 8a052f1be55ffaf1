package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/wellbot/wellbot/internal/admin"
	"github.com/wellbot/wellbot/internal/auth"
	"github.com/wellbot/wellbot/internal/chats"
	"github.com/wellbot/wellbot/internal/config"
	"github.com/wellbot/wellbot/internal/db"
	"github.com/wellbot/wellbot/internal/engine"
	"github.com/wellbot/wellbot/internal/feedback"
	"github.com/wellbot/wellbot/internal/kb"
	"github.com/wellbot/wellbot/internal/server"
	"github.com/wellbot/wellbot/internal/translate"
	"github.com/wellbot/wellbot/internal/users"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wellbot chat server",
	Long:  `Starts the wellbot server with the REST API, WebSocket chat and admin endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		// Open database.
		dbPath := filepath.Join(cfg.DataDir, "wellbot.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		// Open the knowledge base, seeding defaults on first run.
		kbPath := filepath.Join(cfg.DataDir, "knowledge_base.json")
		knowledge, err := kb.Open(kbPath)
		if err != nil {
			return fmt.Errorf("opening knowledge base: %w", err)
		}

		// Translation is optional; without it responses stay in English.
		var client translate.Client
		if cfg.Translate.Enabled {
			client = translate.NewGoogleClient(cfg.Translate.Endpoint, time.Duration(cfg.Translate.TimeoutSeconds)*time.Second)
		}
		localizer := translate.NewService(client)

		responder := engine.New(knowledge, localizer, engine.NewContextStore())
		tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, cfg.AdminEmail)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			DataDir:  cfg.DataDir,
			AllowAll: cfg.AllowAllOrigins,
		}, database)

		registerAllRoutes(srv, cfg, database, knowledge, responder, tokens)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "wellbot v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Knowledge base: %s\n", kbPath)

		return srv.Start()
	},
}

// registerAllRoutes wires up all feature routes.
func registerAllRoutes(srv *server.Server, cfg *config.Config, database *db.DB, knowledge *kb.Store, responder *engine.Engine, tokens *auth.Manager) {
	r := srv.Router()

	userStore := users.NewStore(database)
	chatStore := chats.NewStore(database)
	feedbackStore := feedback.NewStore(database)

	users.RegisterRoutes(r, userStore, tokens)
	chats.RegisterRoutes(r, chatStore, userStore, responder, tokens)
	feedback.RegisterRoutes(r, feedbackStore, tokens)

	// Knowledge base management sits behind admin authentication.
	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireAdmin)
		kb.RegisterRoutes(r, knowledge)
	})

	admin.RegisterRoutes(r, admin.Credentials{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, tokens, userStore, chatStore, feedbackStore, knowledge)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
