// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// newhires мониторит два PostgreSQL-хранилища:
//   - кадровая БД (critical — без неё список сотрудников пуст)
//   - photo store (non-critical — без него ответ деградирует до аватаров)
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
//   - app_dependency_status — категория статуса
//   - app_dependency_status_detail — детальный статус
package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	"github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/pgcheck"
	"github.com/prometheus/client_golang/prometheus"
)

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга зависимостей.
// Метрики регистрируются в глобальном Prometheus registry.
//
// Оба хранилища проверяются в connection pool mode: проверка выполняется
// через существующий *sql.DB (адаптер pgxpool), что позволяет обнаружить
// исчерпание пула соединений и отражает реальную способность сервиса
// работать с базой данных.
//
// Параметры:
//   - serviceID — имя вершины графа текущего приложения (e.g. "newhires")
//   - group — имя группы в метриках (NH_DEPHEALTH_GROUP)
//   - hrDB / photoDB — *sql.DB, полученные из pgxpool через stdlib.OpenDBFromPool()
//   - hrConnURL / photoConnURL — URL подключений (для метрик/лейблов, не для подключения)
//   - checkInterval — интервал проверки зависимостей (NH_DEPHEALTH_CHECK_INTERVAL)
//   - isEntry — при true добавляет лейбл isentry=yes ко всем зависимостям
func NewDephealthService(
	serviceID string,
	group string,
	hrDB *sql.DB,
	hrConnURL string,
	photoDB *sql.DB,
	photoConnURL string,
	checkInterval time.Duration,
	isEntry bool,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, hrDB, hrConnURL, photoDB, photoConnURL,
		checkInterval, isEntry, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	hrDB *sql.DB,
	hrConnURL string,
	photoDB *sql.DB,
	photoConnURL string,
	checkInterval time.Duration,
	isEntry bool,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, hrDB, hrConnURL, photoDB, photoConnURL,
		checkInterval, isEntry, logger, dephealth.WithRegisterer(registerer))
}

// newDephealthService — внутренний конструктор.
func newDephealthService(
	serviceID string,
	group string,
	hrDB *sql.DB,
	hrConnURL string,
	photoDB *sql.DB,
	photoConnURL string,
	checkInterval time.Duration,
	isEntry bool,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	// Опции зависимости кадровой БД
	hrDepOpts := []dephealth.DependencyOption{
		dephealth.FromURL(hrConnURL),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(true),
	}
	if isEntry {
		hrDepOpts = append(hrDepOpts, dephealth.WithLabel("isentry", "yes"))
	}

	// Опции зависимости photo store: non-critical —
	// при его отказе сервис продолжает отвечать (аватары по умолчанию)
	photoDepOpts := []dephealth.DependencyOption{
		dephealth.FromURL(photoConnURL),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(false),
	}
	if isEntry {
		photoDepOpts = append(photoDepOpts, dephealth.WithLabel("isentry", "yes"))
	}

	opts := make([]dephealth.Option, 0, 3+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.AddDependency("hr-database", dephealth.TypePostgres,
			pgcheck.New(pgcheck.WithDB(hrDB)), hrDepOpts...),
		dephealth.AddDependency("photo-store", dephealth.TypePostgres,
			pgcheck.New(pgcheck.WithDB(photoDB)), photoDepOpts...),
	)
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен (кадровая БД + photo store)")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — имя зависимости, значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}
