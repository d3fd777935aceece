package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mohameddacar/xasuusqor/cmd/xasuusqor/handlers"
	"github.com/Mohameddacar/xasuusqor/internal/annotate"
	"github.com/Mohameddacar/xasuusqor/internal/db"
	"github.com/Mohameddacar/xasuusqor/internal/logging"
	"github.com/Mohameddacar/xasuusqor/internal/media"
	"github.com/Mohameddacar/xasuusqor/internal/models"
	"github.com/Mohameddacar/xasuusqor/internal/services"
	"github.com/Mohameddacar/xasuusqor/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// sessionUser is the seeded single-session user. The plan gates media
// limits and AI analysis.
func sessionUser() *models.User {
	return &models.User{
		Name:             "Mohamed Dacar",
		Email:            "mohameddacarmohumed@gmail.com",
		SubscriptionPlan: models.PlanPremium,
		MemberSince:      time.Now().UTC(),
	}
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		user := sessionUser()
		user.ID = "session-user"
		return store.NewMemory(user), nil

	case "sqlite", "":
		database, err := db.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		migrator := db.NewMigrator(database.DB)
		if err := migrator.Initialize(); err != nil {
			return nil, err
		}
		if err := migrator.Up(); err != nil {
			return nil, err
		}
		s := db.NewStore(database)
		if err := s.EnsureUser(ctx, sessionUser()); err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newInvoker() (annotate.ModelInvoker, error) {
	switch cfg.AIProvider {
	case "simulated", "":
		return &annotate.Simulated{}, nil
	case "openai":
		return annotate.NewLLMClient(annotate.LLMConfig{
			APIKey:    cfg.AIAPIKey,
			Endpoint:  cfg.AIAPIEndpoint,
			ModelName: cfg.AIModelName,
		})
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}

func serve() error {
	ctx := context.Background()
	log := logging.L()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	storage, err := media.NewStorage(filepath.Join(cfg.DataDir, "uploads"), "/files/")
	if err != nil {
		return err
	}

	invoker, err := newInvoker()
	if err != nil {
		return err
	}
	annotator := annotate.NewService(invoker, storage, cfg.AnnotationTimeout(), cfg.UploadTimeout())

	hub := newWSHub()
	entrySvc := services.NewEntryService(st, annotator, hub)
	goalSvc := services.NewGoalService(st)
	templateSvc := services.NewTemplateService()
	emailSvc := services.NewEmailIngestService(entrySvc, st)

	journalH := handlers.NewJournalHandler(st)
	entryH := handlers.NewEntryHandler(entrySvc, st)
	goalH := handlers.NewGoalHandler(goalSvc, st)
	userH := handlers.NewUserHandler(st)
	uploadH := handlers.NewUploadHandler(annotator, storage)
	annotateH := handlers.NewAnnotateHandler(annotator)
	insightsH := handlers.NewInsightsHandler(st)
	templateH := handlers.NewTemplateHandler(templateSvc)
	emailH := handlers.NewEmailHandler(emailSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /journals", journalH.List)
	mux.HandleFunc("POST /journals", journalH.Create)
	mux.HandleFunc("PUT /journals/{id}", journalH.Update)
	mux.HandleFunc("DELETE /journals/{id}", journalH.Delete)

	mux.HandleFunc("GET /entries", entryH.List)
	mux.HandleFunc("GET /entries/archive", entryH.Archive)
	mux.HandleFunc("GET /entries/on-this-day", entryH.OnThisDay)
	mux.HandleFunc("POST /entries", entryH.Create)
	mux.HandleFunc("PUT /entries/{id}", entryH.Update)
	mux.HandleFunc("DELETE /entries/{id}", entryH.Delete)

	mux.HandleFunc("GET /goals", goalH.List)
	mux.HandleFunc("POST /goals", goalH.Create)
	mux.HandleFunc("PUT /goals/{id}", goalH.Update)
	mux.HandleFunc("POST /goals/{id}/step", goalH.Step)
	mux.HandleFunc("DELETE /goals/{id}", goalH.Delete)

	mux.HandleFunc("GET /user", userH.Get)
	mux.HandleFunc("POST /uploads", uploadH.Upload)
	mux.HandleFunc("GET /files/{name}", uploadH.Serve)
	mux.HandleFunc("POST /annotate", annotateH.Invoke)
	mux.HandleFunc("GET /insights", insightsH.Get)
	mux.HandleFunc("GET /templates", templateH.List)
	mux.HandleFunc("GET /templates/{name}/draft", templateH.Draft)
	mux.HandleFunc("POST /email-ingest", emailH.Ingest)
	mux.HandleFunc("/ws", handleWebSocket(hub))
	mux.HandleFunc("/api/health", handlers.Health)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server starting", "port", cfg.ServerPort, "store", cfg.StoreBackend, "ai_provider", cfg.AIProvider)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
