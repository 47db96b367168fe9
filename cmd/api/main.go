package main

import (
	"context"
	"flag"
	"os"
	"time"
	"yamdb/proj/internal/config"
	"yamdb/proj/internal/lib/logger"
	"yamdb/proj/internal/services"
	"yamdb/proj/internal/storage/memory"
	"yamdb/proj/internal/storage/postgres"
	pgmodels "yamdb/proj/internal/storage/postgres/models"
	"yamdb/proj/migrations"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	migrate := flag.Bool("migrate", false, "apply the schema before serving")
	flag.Parse()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	var storage services.Storage
	switch cfg.DB.Driver {
	case "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		storage = services.FromMemory(memory.New())
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
		if err != nil {
			log.Error("failed to connect to database", "errMsg", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		log.Info("database connection established")
		if *migrate {
			if err := migrations.Up(ctx, db.Conn); err != nil {
				log.Error("failed to apply migrations", "errMsg", err.Error())
				os.Exit(1)
			}
			log.Info("migrations applied")
		}
		storage = services.FromPostgres(pgmodels.New(db))
	}

	mailer := services.NewMailer(log, cfg.Mail)
	app := NewApplication(cfg, log, services.New(log, cfg, storage, mailer))
	if err := app.serve(); err != nil {
		log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}
}
