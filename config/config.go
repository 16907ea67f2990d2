package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAvatarsSubDir    = "avatars"
	DefaultSlidesSubDir     = "slides"
	DefaultThumbnailsSubDir = "thumbnails"
)

const (
	defaultThumbnailQueueSize  = 200
	defaultNumThumbnailWorkers = 4
	defaultThumbnailMaxSize    = 600

	defaultTokenTTL       = 7 * 24 * time.Hour
	defaultAuthorCacheTTL = 5 * time.Minute
)

type Config struct {
	// listen address, e.g. ":8080"
	ListenAddr string

	// database path
	DatabasePath string

	// media storage configuration
	MediaStoragePath string // primary root for uploaded assets
	AvatarsPath      string // full-calculated path for author avatars
	SlidesPath       string // full-calculated path for slide uploads
	ThumbnailsPath   string // full-calculated path for generated thumbnails

	// thumbnail generation settings
	ThumbnailMaxSize int

	// worker settings
	ThumbnailQueueSize  int
	NumThumbnailWorkers int

	// auth settings; the secret lives here rather than in a package-level
	// variable so tests can construct isolated token services
	JWTSecret string
	TokenTTL  time.Duration

	// cached author lookup expiry
	AuthorCacheTTL time.Duration

	// allowed CORS origins
	CORSAllowedOrigins []string

	// seed admin credentials, used only when the users table is empty
	SeedAdminEmail    string
	SeedAdminPassword string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvDurationOrDefault(envVar string, defaultVal time.Duration) time.Duration {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := time.ParseDuration(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %s. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	listenAddr := getEnvOrDefault("LISTEN_ADDR", ":8080")

	dbPath := getEnvOrDefault("DATABASE_PATH", "portfolio.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	avatarSubDir := getEnvOrDefault("AVATARS_SUBDIR", DefaultAvatarsSubDir)
	absAvatarsPath := filepath.Join(absMediaStorage, avatarSubDir)

	slideSubDir := getEnvOrDefault("SLIDES_SUBDIR", DefaultSlidesSubDir)
	absSlidesPath := filepath.Join(absMediaStorage, slideSubDir)

	thumbSubDir := getEnvOrDefault("THUMBNAILS_SUBDIR", DefaultThumbnailsSubDir)
	absThumbnailsPath := filepath.Join(absMediaStorage, thumbSubDir)

	thumbMaxSize := getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize)

	queueSize := getEnvIntOrDefault("THUMBNAIL_QUEUE_SIZE", defaultThumbnailQueueSize)
	numWorkers := getEnvIntOrDefault("NUM_THUMBNAIL_WORKERS", defaultNumThumbnailWorkers)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	tokenTTL := getEnvDurationOrDefault("TOKEN_TTL", defaultTokenTTL)
	authorCacheTTL := getEnvDurationOrDefault("AUTHOR_CACHE_TTL", defaultAuthorCacheTTL)

	corsOrigins := strings.Split(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}

	cfg := Config{
		ListenAddr:          listenAddr,
		DatabasePath:        dbPath,
		MediaStoragePath:    absMediaStorage,
		AvatarsPath:         absAvatarsPath,
		SlidesPath:          absSlidesPath,
		ThumbnailsPath:      absThumbnailsPath,
		ThumbnailMaxSize:    thumbMaxSize,
		ThumbnailQueueSize:  queueSize,
		NumThumbnailWorkers: numWorkers,
		JWTSecret:           jwtSecret,
		TokenTTL:            tokenTTL,
		AuthorCacheTTL:      authorCacheTTL,
		CORSAllowedOrigins:  corsOrigins,
		SeedAdminEmail:      getEnvOrDefault("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:   getEnvOrDefault("SEED_ADMIN_PASSWORD", ""),
	}

	return cfg, nil
}
