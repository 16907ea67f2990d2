package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/arden-cole/portfoliobackend/auth"
	"github.com/arden-cole/portfoliobackend/config"
	"github.com/arden-cole/portfoliobackend/database"
	"github.com/arden-cole/portfoliobackend/handlers"
	"github.com/arden-cole/portfoliobackend/media"
	"github.com/arden-cole/portfoliobackend/models"
	"github.com/arden-cole/portfoliobackend/realtime"
	"github.com/arden-cole/portfoliobackend/repository"
	"github.com/arden-cole/portfoliobackend/workers"
)

const tokenIssuer = "portfoliobackend"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.AvatarsPath, cfg.SlidesPath, cfg.ThumbnailsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypeAvatar:    filepath.Base(cfg.AvatarsPath),
		media.AssetTypeSlide:     filepath.Base(cfg.SlidesPath),
		media.AssetTypeThumbnail: filepath.Base(cfg.ThumbnailsPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}
	mediaProcessor := media.NewProcessor(mediaStore)

	hub := realtime.NewHub()
	go hub.Run()

	log.Printf("Initializing asset processor worker pool (Workers: %d, Queue Size: %d)...", cfg.NumThumbnailWorkers, cfg.ThumbnailQueueSize)
	assetProcessor := workers.NewAssetProcessor(mediaStore, mediaProcessor, hub, cfg.ThumbnailMaxSize, cfg.ThumbnailQueueSize, cfg.NumThumbnailWorkers)
	defer assetProcessor.Stop()

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL, tokenIssuer)

	authorRepo := repository.NewCachedAuthorRepository(repository.NewGormAuthorRepository(db), cfg.AuthorCacheTTL)
	projectRepo := repository.NewGormProjectRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	settingRepo := repository.NewGormSettingRepository(db)

	if err := seedAdminUser(userRepo, cfg); err != nil {
		log.Fatalf("FATAL: Failed to seed admin user: %v", err)
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing media in: %s", cfg.MediaStoragePath)
	log.Printf("Thumbnail max size (longest side): %dpx", cfg.ThumbnailMaxSize)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	authorHandler := handlers.NewAuthorHandler(authorRepo, userRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo, authorRepo, userRepo)
	settingHandler := handlers.NewSettingHandler(settingRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	galleryHandler := handlers.NewGalleryHandler(authorRepo, projectRepo)
	uploadHandler := handlers.NewUploadHandler(mediaStore, mediaProcessor, assetProcessor)

	editorOrAdmin := handlers.RequireRole(tokens, models.RoleAdmin, models.RoleEditor)
	adminOnly := handlers.RequireRole(tokens, models.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(handlers.RequireAuth(tokens)).Get("/me", authHandler.CurrentUser)
			r.With(adminOnly).Post("/register", authHandler.Register)
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", authorHandler.ListAuthors)
			// new authors have no grants yet, so only admins create them
			r.With(adminOnly).Post("/", authorHandler.CreateAuthor)
			r.Get("/{author_identifier}", authorHandler.GetAuthor)
			r.Group(func(r chi.Router) {
				r.Use(editorOrAdmin)
				r.Put("/{author_id}", authorHandler.UpdateAuthor)
				r.Delete("/{author_id}", authorHandler.DeleteAuthor)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.ListProjects)
			r.With(editorOrAdmin).Post("/", projectHandler.CreateProject)
			r.Get("/{project_identifier}", projectHandler.GetProject)
			r.Group(func(r chi.Router) {
				r.Use(editorOrAdmin)
				r.Put("/{project_id}", projectHandler.UpdateProject)
				r.Delete("/{project_id}", projectHandler.DeleteProject)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingHandler.ListSettings)
			r.Get("/{setting_key}", settingHandler.GetSetting)
			r.With(adminOnly).Put("/{setting_key}", settingHandler.SetSetting)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", userHandler.ListUsers)
			r.Route("/{user_id}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Put("/", userHandler.UpdateUser)
				r.Delete("/", userHandler.DeleteUser)
				r.Route("/grants", func(r chi.Router) {
					r.Get("/", userHandler.ListUserGrants)
					r.Put("/{author_id}", userHandler.SetUserGrant)
					r.Delete("/{author_id}", userHandler.DeleteUserGrant)
				})
			})
		})

		r.Get("/gallery/resolve", galleryHandler.ResolveGallery)

		r.Route("/uploads", func(r chi.Router) {
			r.Use(editorOrAdmin)
			r.Post("/", uploadHandler.UploadAsset)
			r.Get("/", uploadHandler.ListAssets)
			r.Delete("/", uploadHandler.DeleteAsset)
		})
	})

	r.Get("/ws", hub.ServeWS)
	r.Get("/media/*", handlers.MediaServer(cfg.MediaStoragePath))

	fmt.Printf("Server starting on %s\n", cfg.ListenAddr)
	log.Printf("Server listening on %s", cfg.ListenAddr)
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// seedAdminUser bootstraps the first admin account from the environment
// when the users table is empty; it does nothing otherwise.
func seedAdminUser(userRepo repository.UserRepository, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	count, err := userRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := &models.User{Email: cfg.SeedAdminEmail, Role: models.RoleAdmin}
	if err := admin.SetPassword(cfg.SeedAdminPassword); err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}
	if err := userRepo.Create(admin); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}
	log.Printf("Seeded admin user %s", cfg.SeedAdminEmail)
	return nil
}
