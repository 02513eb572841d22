package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"vulnshare/config"
	_ "vulnshare/docs"
	"vulnshare/internal/handler"
	"vulnshare/internal/metrics"
	"vulnshare/internal/model"
	"vulnshare/internal/notifier"
	"vulnshare/internal/repository"
	"vulnshare/internal/security"
	"vulnshare/internal/service"
	"vulnshare/migrations"
)

// @title Vulnshare
// @version 1.0
// @description REST API для обмена файлами с намеренно ослабленной авторизацией

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("файл .env не найден, используются переменные окружения процесса")
	}

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	if err := config.MigrateDatabase(db, migrations.FS, "."); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	ttl := time.Duration(cfg.TTL.S3AndRedis) * time.Second

	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)
	shareRepo := repository.NewShareRepository(db)
	seqRepo := repository.NewSequenceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, ttl)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	auditNotifier := notifier.New(&cfg.Webhook)

	authService := service.NewAuthenticationService(userRepo, seqRepo, jwtService, auditNotifier)
	userService := service.NewUserService(userRepo, seqRepo)
	adminService := service.NewAdminService(userRepo, auditNotifier)
	fileService := service.NewFileService(fileRepo, cacheRepo, seqRepo, s3Service, ttl)
	shareService := service.NewShareService(shareRepo, fileRepo, seqRepo, s3Service, ttl)

	authHandler := handler.NewAuthenticationHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService)
	fileHandler := handler.NewFileHandler(fileService)
	shareHandler := handler.NewShareHandler(shareService)

	router.Use(config.DBMiddleware(db))
	router.Use(metrics.Middleware)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	setupAuthRoutes(router, authHandler, jwtService)
	setupUserRoutes(router, userHandler, adminHandler, jwtService)
	setupFileRoutes(router, fileHandler, jwtService)
	setupShareRoutes(router, shareHandler, jwtService)

	srv.Handler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.With(security.Guard(security.PolicyAnyAuthenticated)).Get("/me", h.Me)
			r.With(security.Guard(security.PolicyAnyAuthenticated)).Post("/logout", h.Logout)
		})
	})
}

// Требования к ролям объявлены на каждом маршруте по отдельности.
// Удаление учётной записи намеренно слабее остальных операций:
// достаточно любого валидного токена.
func setupUserRoutes(r chi.Router, h *handler.UserHandler, ah *handler.AdminHandler, jwtService *security.JWTService) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))

		admin := security.Guard(security.PolicyRoles(model.RoleAdmin))

		r.With(admin).Get("/", h.ListUsers)
		r.With(admin).Post("/", h.CreateUser)
		r.With(admin).Get("/{id}", h.GetUser)
		r.With(admin).Put("/{id}", h.UpdateUser)

		// повышать может и свежеповышенный moderator, цепочка не ограничена
		r.With(security.Guard(security.PolicyRoles(model.RoleModerator, model.RoleAdmin))).
			Post("/{id}/escalate", ah.EscalateRole)

		r.With(security.Guard(security.PolicyAnyAuthenticated)).Delete("/{id}", h.DeleteUser)
	})
}

func setupFileRoutes(r chi.Router, h *handler.FileHandler, jwtService *security.JWTService) {
	r.Route("/api/files", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))

		authenticated := security.Guard(security.PolicyAnyAuthenticated)

		r.With(authenticated).Post("/", h.UploadFile)
		r.With(authenticated).Get("/", h.ListFiles)
		r.With(authenticated).Get("/{id}", h.GetFile)
		r.With(authenticated).Get("/{id}/download", h.DownloadFile)
		r.With(authenticated).Delete("/{id}", h.DeleteFile)

		r.With(security.Guard(security.PolicyRoles(model.RoleModerator, model.RoleAdmin))).
			Put("/{id}/status", h.SetFileStatus)
	})
}

func setupShareRoutes(r chi.Router, h *handler.ShareHandler, jwtService *security.JWTService) {
	r.Route("/api/shares", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))

		authenticated := security.Guard(security.PolicyAnyAuthenticated)

		r.With(authenticated).Post("/", h.CreateShare)
		r.With(authenticated).Get("/", h.ListShares)
		r.With(authenticated).Put("/{id}", h.UpdateShare)
		r.With(authenticated).Delete("/{id}", h.DeleteShare)
	})

	// публичная точка без JWT middleware
	r.With(security.Guard(security.PolicyNone)).Get("/public/shares/{token}", h.ResolvePublicToken)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
