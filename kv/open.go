package kv

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/marketing-site-backend/config"
	"github.com/rpupo63/marketing-site-backend/errs"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendS3       = "s3"
)

// Open builds the backend named by STORAGE_BACKEND from the config map.
func Open(ctx context.Context, c map[string]string) (Backend, error) {
	kind := config.GetString(c, "STORAGE_BACKEND", BackendMemory)
	dataDir := config.GetString(c, "DATA_DIR", "data")
	log.Info().Str("backend", kind).Msg("Opening key-value backend")

	switch kind {
	case BackendMemory:
		return NewMemory(config.GetInt(c, "MEMORY_QUOTA_BYTES", 0)), nil
	case BackendFile:
		return NewFile(dataDir)
	case BackendSQLite:
		return NewSQLite(config.GetString(c, "SQLITE_PATH", filepath.Join(dataDir, "blog.db")))
	case BackendPostgres:
		dsn := postgresDSN(c)
		if dsn == "" {
			return nil, errs.NewConfigError("DATABASE_URL", "required for the postgres backend")
		}
		return OpenPostgres(dsn)
	case BackendRedis:
		return NewRedis(
			config.GetString(c, "REDIS_ADDR", "localhost:6379"),
			config.GetString(c, "REDIS_PASSWORD", ""),
			config.GetInt(c, "REDIS_DB", 0),
		), nil
	case BackendMongo:
		dbURL := config.GetString(c, "MONGO_URL", "")
		if dbURL == "" {
			return nil, errs.NewConfigError("MONGO_URL", "required for the mongo backend")
		}
		return NewMongo(ctx, dbURL, config.GetString(c, "MONGO_DBNAME", "site"))
	case BackendS3:
		bucket := config.GetString(c, "S3_BUCKET", "")
		if bucket == "" {
			return nil, errs.NewConfigError("S3_BUCKET", "required for the s3 backend")
		}
		return NewS3(ctx, bucket, config.GetString(c, "S3_PREFIX", ""))
	}
	return nil, errs.NewConfigError("STORAGE_BACKEND", fmt.Sprintf("unknown backend %q", kind))
}

// postgresDSN prefers DATABASE_URL and falls back to the Supabase variables.
func postgresDSN(c map[string]string) string {
	if dsn := config.GetString(c, "DATABASE_URL", ""); dsn != "" {
		return dsn
	}
	host := config.GetString(c, "SUPABASE_DB_HOST", "")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		host,
		config.GetString(c, "SUPABASE_DB_USER", ""),
		config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(c, "SUPABASE_DB_NAME", ""),
		config.GetString(c, "SUPABASE_DB_PORT", "5432"),
	)
}
