package repository

import (
	"database/sql"

	"github.com/redis/go-redis/v9"

	"github.com/farmaguardia/segovia/backend/internal/config"
)

// Repository is the persistent schedule store: postgres keeps the parsed
// record lists, redis carries the short-lived freshness marker and the
// per-location refresh lock.
type Repository struct {
	cfg         *config.Config
	dbpool      *sql.DB
	redisClient *redis.Client
}

func NewRepository(cfg *config.Config, dbpool *sql.DB, redisClient *redis.Client) *Repository {
	return &Repository{
		cfg:         cfg,
		dbpool:      dbpool,
		redisClient: redisClient,
	}
}
