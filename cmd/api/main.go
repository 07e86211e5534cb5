package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/farhanmaulana/clinicdesk/internal/application"
	"github.com/farhanmaulana/clinicdesk/internal/application/analysis"
	apppatients "github.com/farhanmaulana/clinicdesk/internal/application/patients"
	appprescriptions "github.com/farhanmaulana/clinicdesk/internal/application/prescriptions"
	appreports "github.com/farhanmaulana/clinicdesk/internal/application/reports"
	appusers "github.com/farhanmaulana/clinicdesk/internal/application/users"
	"github.com/farhanmaulana/clinicdesk/internal/config"
	dompatients "github.com/farhanmaulana/clinicdesk/internal/domain/patients"
	domprescriptions "github.com/farhanmaulana/clinicdesk/internal/domain/prescriptions"
	domreports "github.com/farhanmaulana/clinicdesk/internal/domain/reports"
	domusers "github.com/farhanmaulana/clinicdesk/internal/domain/users"
	openaiclient "github.com/farhanmaulana/clinicdesk/internal/infra/ai/openai"
	mysqldb "github.com/farhanmaulana/clinicdesk/internal/infra/db/mysql"
	postgresdb "github.com/farhanmaulana/clinicdesk/internal/infra/db/postgres"
	"github.com/farhanmaulana/clinicdesk/internal/infra/extract"
	"github.com/farhanmaulana/clinicdesk/internal/infra/httpserver"
	pdfexport "github.com/farhanmaulana/clinicdesk/internal/infra/pdf"
	minioStore "github.com/farhanmaulana/clinicdesk/internal/infra/storage"
	"github.com/farhanmaulana/clinicdesk/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database per configured driver
	var (
		db               *sql.DB
		patientRepo      dompatients.Repository
		prescriptionRepo domprescriptions.Repository
		reportRepo       domreports.Repository
		userRepo         domusers.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		if err := postgresdb.Migrate(ctx, db); err != nil {
			log.Fatalf("postgres migrate error: %v", err)
		}
		patientRepo = postgresdb.NewPatientRepository(db)
		prescriptionRepo = postgresdb.NewPrescriptionRepository(db)
		reportRepo = postgresdb.NewReportRepository(db)
		userRepo = postgresdb.NewUserRepository(db)
	case "mysql":
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		if err := mysqldb.Migrate(ctx, db); err != nil {
			log.Fatalf("mysql migrate error: %v", err)
		}
		patientRepo = mysqldb.NewPatientRepository(db)
		prescriptionRepo = mysqldb.NewPrescriptionRepository(db)
		reportRepo = mysqldb.NewReportRepository(db)
		userRepo = mysqldb.NewUserRepository(db)
	default:
		log.Fatalf("unknown database driver: %q", cfg.Database.Driver)
	}
	defer db.Close()

	// init minio file store
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	extractor := extract.NewService(store)
	inference := openaiclient.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.TextModel,
		cfg.OpenAI.VisionModel,
		cfg.OpenAITimeout(),
	)

	clock := application.SystemClock{}
	deps := httpserver.Deps{
		Patients:      &apppatients.Service{Repo: patientRepo, Clock: clock},
		Prescriptions: &appprescriptions.Service{Repo: prescriptionRepo, Clock: clock},
		Reports: &appreports.Service{
			Repo:    reportRepo,
			Files:   store,
			Extract: extractor,
			Clock:   clock,
		},
		Users: &appusers.Service{Repo: userRepo},
		Dispatcher: &analysis.Dispatcher{
			Files:   store,
			Extract: extractor,
			AI:      inference,
		},
		Tracker:  analysis.NewTracker(),
		PDF:      pdfexport.NewExporter(),
		Sessions: middleware.NewSessionStore(),
		Health: middleware.HealthHandler(
			map[string]middleware.HealthChecker{
				"database": &middleware.DatabaseHealthChecker{DB: db},
			},
			cfg.OpenAI.APIKey != "",
		),
		RequireAuth: cfg.Server.RequireAuth,
		MaxUpload:   cfg.Uploads.MaxBytes,
	}
	if cfg.Server.RateLimitBurst > 0 && cfg.Server.RateLimitRefill > 0 {
		deps.RateLimiter = middleware.NewRateLimiter(
			cfg.Server.RateLimitBurst,
			cfg.Server.RateLimitRefill,
		)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(deps),
		ReadTimeout: 15 * time.Second,
		// Analyze requests block on the inference service, which can take
		// minutes while the remote model cold-starts.
		WriteTimeout: cfg.OpenAITimeout() + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s (db=%s)", addr, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
