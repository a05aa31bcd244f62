package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carelog/carelog/internal/config"
	"github.com/carelog/carelog/internal/domain/accounts"
	"github.com/carelog/carelog/internal/domain/dailylog"
	"github.com/carelog/carelog/internal/domain/patients"
	"github.com/carelog/carelog/internal/domain/summary"
	"github.com/carelog/carelog/internal/platform/auth"
	"github.com/carelog/carelog/internal/platform/db"
	"github.com/carelog/carelog/internal/platform/llm"
	"github.com/carelog/carelog/internal/platform/middleware"
)

// patientOwnershipAdapter adapts the patients repository to the dailylog
// package's PatientSource, translating the not-found sentinel so the two
// packages stay decoupled.
type patientOwnershipAdapter struct {
	repo patients.PatientRepository
}

func (a *patientOwnershipAdapter) EnsureOwned(ctx context.Context, caregiverID, patientID uuid.UUID) error {
	_, err := a.repo.GetByID(ctx, caregiverID, patientID)
	if errors.Is(err, patients.ErrNotFound) {
		return dailylog.ErrNotFound
	}
	return err
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "carelog-server",
		Short: "CareLog caregiver health-tracking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the CareLog API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Token issuer
	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLHours)*time.Hour)

	// LLM client. Nil when no key is configured; summary requests then fail
	// individually instead of blocking startup.
	var llmClient llm.Client
	if cfg.OpenAIAPIKey != "" {
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel,
			time.Duration(cfg.SummaryTimeoutSecs)*time.Second)
		logger.Info().Str("model", cfg.OpenAIModel).Msg("summarization enabled")
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set; summary generation is disabled")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// API groups: register/login are public, everything else requires a token.
	public := e.Group("/api/v1")
	authed := e.Group("/api/v1")
	authed.Use(auth.Middleware(issuer))

	// Service banner and health
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "carelog",
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Repositories
	caregiverRepo := accounts.NewCaregiverRepoPG(pool)
	patientRepo := patients.NewPatientRepoPG(pool)
	medicationRepo := patients.NewMedicationRepoPG(pool)
	logRepo := dailylog.NewDailyLogRepoPG(pool)

	// Accounts domain
	accountsSvc := accounts.NewService(caregiverRepo)
	accountsHandler := accounts.NewHandler(accountsSvc, issuer)
	accountsHandler.RegisterRoutes(public, authed)

	// Patients domain
	patientsSvc := patients.NewService(patientRepo, medicationRepo)
	patientsHandler := patients.NewHandler(patientsSvc)
	patientsHandler.RegisterRoutes(authed)

	// Daily log domain
	logSvc := dailylog.NewService(logRepo, &patientOwnershipAdapter{repo: patientRepo})
	logHandler := dailylog.NewHandler(logSvc)
	logHandler.RegisterRoutes(authed)

	// Summary domain; the patients and dailylog repositories satisfy its
	// source interfaces directly.
	summarySvc := summary.NewService(patientRepo, logRepo, medicationRepo, llmClient)
	summaryHandler := summary.NewHandler(summarySvc)
	summaryHandler.RegisterRoutes(authed)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	return nil
}
