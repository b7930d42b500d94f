// Точка входа сервиса newhires — backend дашборда новых сотрудников.
// Загружает конфигурацию, применяет миграции кадровой БД, подключается
// к кадровой БД и photo store, собирает сервисный слой и API handlers,
// запускает мониторинг зависимостей (topologymetrics) и HTTP-сервер
// с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/hrportal/newhires/internal/api/handlers"
	"github.com/hrportal/newhires/internal/api/middleware"
	"github.com/hrportal/newhires/internal/config"
	"github.com/hrportal/newhires/internal/database"
	"github.com/hrportal/newhires/internal/repository"
	"github.com/hrportal/newhires/internal/server"
	"github.com/hrportal/newhires/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Сервис newhires запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("env", cfg.Env),
	)

	// 3. Применение миграций кадровой БД.
	// Photo store не мигрируется — его схемой владеет другая команда.
	logger.Info("Применение миграций кадровой БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к хранилищам (pgxpool)
	ctx := context.Background()

	hrPool, err := database.Connect(ctx, cfg.DatabaseDSN(), "hr-database", logger)
	if err != nil {
		logger.Error("Ошибка подключения к кадровой БД", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer hrPool.Close()

	photoPool, err := database.Connect(ctx, cfg.PhotoDatabaseDSN(), "photo-store", logger)
	if err != nil {
		logger.Error("Ошибка подключения к photo store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer photoPool.Close()

	// 4.1 Адаптеры pgxpool → *sql.DB для topologymetrics (connection pool mode).
	// Проверка здоровья идёт через существующие пулы соединений,
	// что позволяет обнаружить их исчерпание.
	hrDB := stdlib.OpenDBFromPool(hrPool)
	defer hrDB.Close()
	photoDB := stdlib.OpenDBFromPool(photoPool)
	defer photoDB.Close()

	// 5. Repositories
	employeeRepo := repository.NewEmployeeRepository(hrPool)
	photoRepo := repository.NewPhotoRepository(photoPool)
	bandRepo := repository.NewCareerBandRepository(hrPool)

	// 6. Services
	refsSvc := service.NewReferenceService(
		employeeRepo, bandRepo,
		cfg.DepartmentDenylist,
		cfg.ReferenceCacheSize, cfg.ReferenceCacheTTL,
		logger,
	)
	directorySvc := service.NewDirectoryService(
		employeeRepo, photoRepo, refsSvc,
		logger,
	)

	// 7. topologymetrics — мониторинг зависимостей (кадровая БД + photo store)
	var dephealthSvc *service.DephealthService
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"newhires",
		cfg.DephealthGroup,
		hrDB, cfg.DatabaseURL(),
		photoDB, cfg.PhotoDatabaseURL(),
		cfg.DephealthCheckInterval,
		cfg.DephealthIsEntry,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
		dephealthSvc = nil
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 8. Readiness checkers и handlers
	hrChecker := database.NewReadinessChecker(hrPool, "кадровая БД")
	photoChecker := database.NewReadinessChecker(photoPool, "photo store")
	healthHandler := handlers.NewHealthHandler(hrChecker, photoChecker)

	apiHandler := handlers.NewAPIHandler(healthHandler, directorySvc, refsSvc, logger)

	// 9. Middleware: метрики, логирование и (в production) access gate.
	// Gate не распространяется на probes и метрики.
	middlewares := []func(http.Handler) http.Handler{
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	}
	if cfg.GateEnabled() {
		gate := server.GateWithExclusions(
			middleware.ReferrerGate(cfg.PortalHost, logger),
			"/health", "/metrics",
		)
		middlewares = append(middlewares, gate)
		logger.Info("Access gate включён",
			slog.String("portal_host", cfg.PortalHost),
		)
	} else {
		logger.Info("Access gate выключен",
			slog.String("env", cfg.Env),
		)
	}

	// 10. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, middlewares...)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 11. Graceful shutdown фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Сервис newhires остановлен")
}
