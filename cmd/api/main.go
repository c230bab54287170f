package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/farmaguardia/segovia/backend/internal/config"
	"github.com/farmaguardia/segovia/backend/internal/engine"
	"github.com/farmaguardia/segovia/backend/internal/handler"
	"github.com/farmaguardia/segovia/backend/internal/parser"
	"github.com/farmaguardia/segovia/backend/internal/pdfscan"
	"github.com/farmaguardia/segovia/backend/internal/report"
	"github.com/farmaguardia/segovia/backend/internal/repository"
	"github.com/farmaguardia/segovia/backend/internal/source"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * Logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * Configuración
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuración", "error", err)
		return
	}

	/**********************************************
	 * Base de datos
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("no se pudo crear el pool de conexiones", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool; ping to make sure the database is there
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("no se pudo conectar a la base de datos", "error", err)
		return
	}

	/**********************************************
	 * Redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * Repositorio
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool, rdb)

	schemaCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := repo.EnsureSchema(schemaCtx); err != nil {
		logger.Error("no se pudo preparar el esquema", "error", err)
		return
	}

	/**********************************************
	 * RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("no se pudo conectar a rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("no se pudo abrir el canal", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		report.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("no se pudo declarar la cola", "error", err)
		return
	}

	/**********************************************
	 * Motor de resolución
	 **********************************************/
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

	/**********************************************
	 * Handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, eng)
	if err != nil {
		logger.Error("no se pudo crear el handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * Servidor HTTP
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("arrancando el servidor...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("no se pudo arrancar el servidor", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("apagando el servidor...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("no se pudo apagar el servidor", slog.String("error", err.Error()))
	}
	logger.Info("servidor apagado correctamente")
}
