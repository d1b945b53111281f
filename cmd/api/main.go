package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ticketec/order-system/internal/api"
	"github.com/ticketec/order-system/internal/core/domain"
	"github.com/ticketec/order-system/internal/core/ports"
	"github.com/ticketec/order-system/internal/core/service"
	"github.com/ticketec/order-system/internal/infrastructure/db/flatfile"
	"github.com/ticketec/order-system/internal/infrastructure/db/mysql"
	redisdb "github.com/ticketec/order-system/internal/infrastructure/db/redis"
	"github.com/ticketec/order-system/internal/infrastructure/queue"
	"github.com/ticketec/order-system/internal/infrastructure/session"
	"github.com/ticketec/order-system/internal/pkg/config"
	"github.com/ticketec/order-system/pkg/logger"
)

const tokenTTL = 12 * time.Hour

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not up yet
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Durable stores ---
	var (
		credentials ports.CredentialRepository
		tickets     ports.TicketRepository
		db          *sql.DB
	)
	switch cfg.Storage.Backend {
	case config.BackendMySQL:
		db, err = mysql.Open(ctx, mysql.Config{
			User:     cfg.MySQL.User,
			Password: cfg.MySQL.Password,
			Host:     cfg.MySQL.Host,
			Port:     cfg.MySQL.Port,
			Database: cfg.MySQL.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mysql unavailable")
		}
		defer db.Close()
		if err := mysql.EnsureSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("mysql schema init failed")
		}
		credentials = mysql.NewCredentialRepository(db)
		tickets = mysql.NewTicketRepository(db)
	case config.BackendFile:
		credentials, err = flatfile.NewCredentialStore(cfg.Storage.UsersFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.UsersFile).Msg("credentials file unavailable")
		}
		tickets, err = flatfile.NewTicketStore(cfg.Storage.TicketsFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.TicketsFile).Msg("tickets file unavailable")
		}
	}

	// --- Sessions: Redis when configured, in-process memory otherwise ---
	var (
		sessions ports.SessionStore
		rdb      *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer rdb.Close()
		sessions = redisdb.NewSessionStore(rdb)
	} else {
		sessions = session.NewMemoryStore()
	}

	// --- Optional ticket event publishing ---
	var publisher ports.TicketPublisher
	if cfg.AMQP.URL != "" {
		publisher = queue.NewTicketPublisher(cfg.AMQP.URL, log)
	}

	// --- Core services ---
	catalog := domain.DefaultCatalog()
	authService := service.NewAuthService(credentials, sessions, cfg.JWTSecret, tokenTTL, log)
	orderService := service.NewOrderService(catalog)
	ticketService := service.NewTicketService(tickets, publisher, log)

	e := api.NewRouter(api.Deps{
		AuthService:   authService,
		OrderService:  orderService,
		TicketService: ticketService,
		Catalog:       catalog,
		Sessions:      sessions,
		JWTSecret:     cfg.JWTSecret,
		DB:            db,
		Redis:         rdb,
		Logger:        log,
	})

	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Str("env", cfg.Env).
		Str("storage", cfg.Storage.Backend).
		Msg("starting order system")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
