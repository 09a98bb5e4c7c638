package app

import (
	"context"
	"log"
	"os"
	"time"

	"puffpoint-backend/db"
	"puffpoint-backend/identity"
	"puffpoint-backend/session"
	"puffpoint-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router  *gin.Engine
	DB      *gorm.DB
	RDB     *redis.Client
	IDP     *identity.Verifier
	Objects storage.ObjectStore
	Config  Config

	appSess *session.AppSessionStore
}

// Config 从环境变量读取
type Config struct {
	RedisAddr      string
	RedisPwd       string
	WebOrigin      string
	SessionTTL     time.Duration
	IdentitySecret string
	IdentityIssuer string
	InviteScheme   string
	NominatimURL   string
	StorageDir     string
	BootstrapAdmin string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := loadConfig()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Identity provider tokens ---
	if cfg.IdentitySecret == "" {
		log.Fatal("IDP_JWT_SECRET is required")
	}
	idp := identity.NewVerifier(cfg.IdentitySecret, cfg.IdentityIssuer)

	// --- Object store ---
	objects, err := storage.NewDiskStore(cfg.StorageDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router: r, DB: dbConn, RDB: rdb, IDP: idp, Objects: objects, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
	return a
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttlSec := get("SESSION_TTL_SECONDS", "86400")
	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(ttlSec + "s"); err == nil {
		ttl = d
	}
	return Config{
		RedisAddr:      get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:       os.Getenv("REDIS_PASSWORD"),
		WebOrigin:      get("WEB_ORIGIN", "https://app.puffpoint.app"),
		SessionTTL:     ttl,
		IdentitySecret: os.Getenv("IDP_JWT_SECRET"),
		IdentityIssuer: get("IDP_ISSUER", "puffpoint-idp"),
		InviteScheme:   get("INVITE_SCHEME", "puffpoint"),
		NominatimURL:   get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		StorageDir:     get("STORAGE_DIR", "./data/objects"),
		BootstrapAdmin: os.Getenv("BOOTSTRAP_ADMIN"),
	}
}
