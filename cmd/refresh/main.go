package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/farmaguardia/segovia/backend/internal/config"
	"github.com/farmaguardia/segovia/backend/internal/engine"
	"github.com/farmaguardia/segovia/backend/internal/parser"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
	"github.com/farmaguardia/segovia/backend/internal/report"
	"github.com/farmaguardia/segovia/backend/internal/repository"
	"github.com/farmaguardia/segovia/backend/internal/source"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Refresca los calendarios de todas las regiones en una sola pasada.
// Pensado para ejecutarse desde cron antes de la apertura de las farmacias.
func main() {
	var timeout int
	flag.IntVar(&timeout, "timeout", 300, "tiempo máximo en segundos para refrescar todas las regiones")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuración", "error", err)
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("no se pudo crear el pool de conexiones", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("no se pudo conectar a la base de datos", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	repo := repository.NewRepository(cfg, dbpool, rdb)

	schemaCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := repo.EnsureSchema(schemaCtx); err != nil {
		logger.Error("no se pudo preparar el esquema", "error", err)
		os.Exit(1)
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("no se pudo conectar a rabbitmq", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("no se pudo abrir el canal", "error", err)
		os.Exit(1)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(report.QueueName, true, false, false, false, nil); err != nil {
		logger.Error("no se pudo declarar la cola", "error", err)
		os.Exit(1)
	}

	var backend pdfscan.Backend = pdfscan.CoordinateBackend{}
	if cfg.Source.Backend == source.BackendStream {
		backend = pdfscan.StreamBackend{}
	}

	eng := engine.New(
		source.New(cfg),
		repo,
		repo,
		parser.NewRegistry(backend),
		report.NewPublisher(cfg, ch),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	logger.Info("refrescando calendarios...")

	failed := 0
	for regionID, err := range eng.RefreshAll(ctx) {
		if err != nil {
			logger.Error("no se pudo refrescar la región", slog.String("region", regionID), slog.String("error", err.Error()))
			failed++
			continue
		}
		logger.Info("región refrescada", slog.String("region", regionID))
	}

	if failed > 0 {
		os.Exit(1)
	}
	logger.Info("calendarios refrescados correctamente")
}
