// directory.go — конвейер обогащения списка сотрудников.
// Координирует кадровую БД, photo store и справочник карьерных уровней:
// выборка → пакетный матчинг фотографий по нормализованному ФИО →
// подстановка названий уровней → ответ в порядке выборки.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hrportal/newhires/internal/domain/model"
	"github.com/hrportal/newhires/internal/repository"
)

// DefaultAvatarPath — путь к аватару по умолчанию.
// Подставляется, когда в photo store нет совпадения по ФИО.
// Поле с фотографией из кадровой БД не используется никогда:
// photo store — единственный источник фотографий.
const DefaultAvatarPath = "/images/default-avatar.svg"

// Prometheus-метрики конвейера.
var (
	directoryRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nh_directory_requests_total",
		Help: "Общее количество запросов списка сотрудников.",
	})
	directoryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nh_directory_request_duration_seconds",
		Help:    "Длительность обработки запросов списка сотрудников.",
		Buckets: prometheus.DefBuckets,
	})
	photoMatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nh_photo_matches_total",
		Help: "Количество сотрудников с найденной фотографией в photo store.",
	})
	photoMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nh_photo_misses_total",
		Help: "Количество сотрудников без фотографии (аватар по умолчанию).",
	})
)

// DirectoryService — сервис списка сотрудников для дашборда.
type DirectoryService struct {
	employees repository.EmployeeRepository
	photos    repository.PhotoRepository
	refs      *ReferenceService
	logger    *slog.Logger
}

// NewDirectoryService создаёт сервис списка сотрудников.
func NewDirectoryService(
	employees repository.EmployeeRepository,
	photos repository.PhotoRepository,
	refs *ReferenceService,
	logger *slog.Logger,
) *DirectoryService {
	return &DirectoryService{
		employees: employees,
		photos:    photos,
		refs:      refs,
		logger:    logger.With(slog.String("component", "directory_service")),
	}
}

// Employees возвращает обогащённый список сотрудников по фильтрам.
//
// Семантика ошибок: отказ кадровой БД фатален для всего вызова — возвращается
// пустой список, ошибка логируется, наружу не поднимается. Отказ photo store
// или справочника уровней деградирует ответ (аватары по умолчанию /
// «сырые» коды уровней), но не прерывает его.
func (s *DirectoryService) Employees(ctx context.Context, filter repository.EmployeeFilter) []*model.Employee {
	start := time.Now()
	directoryRequestsTotal.Inc()

	rows, err := s.employees.FindActive(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка выборки сотрудников из кадровой БД",
			slog.String("error", err.Error()),
		)
		return []*model.Employee{}
	}

	photos := s.lookupPhotos(ctx, rows)
	bandLabels := s.lookupBandLabels(ctx)

	now := time.Now()
	for _, e := range rows {
		if p, ok := photos[model.NormalizeName(e.FullName)]; ok {
			// Совпадение: подставляем id и фотографию из photo store
			e.ID = p.ID.String()
			e.ImageURL = p.ImageURL
			photoMatchesTotal.Inc()
		} else {
			// Нет совпадения: id кадровой БД и аватар по умолчанию
			e.ImageURL = DefaultAvatarPath
			photoMissesTotal.Inc()
		}

		// Политика «никогда не отдавать null-дату»: NULL в БД заменяется
		// моментом запроса. Замена неточна и задокументирована как таковая.
		if e.CreatedAt == nil {
			t := now
			e.CreatedAt = &t
		}
		if e.FirstWorkingDate == nil {
			t := now
			e.FirstWorkingDate = &t
		}

		e.BandLevel = resolveBandLabel(bandLabels, e.BandLevel)
	}

	duration := time.Since(start)
	directoryDuration.Observe(duration.Seconds())

	s.logger.Debug("Список сотрудников собран",
		slog.Int("rows", len(rows)),
		slog.Int("photo_matches", len(photos)),
		slog.Duration("duration", duration),
	)

	// Порядок выборки (first_working_date DESC) не пересортировывается
	return rows
}

// lookupPhotos выполняет один пакетный запрос к photo store по нормализованным
// ФИО всей выборки. При отказе photo store возвращает пустую карту — каждая
// строка уйдёт в ветку «нет совпадения», ответ не прерывается.
func (s *DirectoryService) lookupPhotos(ctx context.Context, rows []*model.Employee) map[string]*model.Photo {
	if len(rows) == 0 {
		return nil
	}

	names := make([]string, 0, len(rows))
	for _, e := range rows {
		names = append(names, model.NormalizeName(e.FullName))
	}

	photos, err := s.photos.ActiveByNormalizedNames(ctx, names)
	if err != nil {
		s.logger.Error("Ошибка матчинга фотографий, используются аватары по умолчанию",
			slog.String("error", err.Error()),
		)
		return nil
	}
	return photos
}

// lookupBandLabels возвращает карту названий карьерных уровней.
// При отказе справочника возвращает nil — коды уровней останутся «сырыми».
func (s *DirectoryService) lookupBandLabels(ctx context.Context) map[string]string {
	labels, err := s.refs.BandLabels(ctx)
	if err != nil {
		s.logger.Error("Ошибка справочника уровней, коды остаются без подстановки",
			slog.String("error", err.Error()),
		)
		return nil
	}
	return labels
}

// resolveBandLabel возвращает полное название уровня по его коду.
// Код без соответствия в справочнике проходит без изменений —
// никогда не nil и не пустая строка для непустого кода.
func resolveBandLabel(labels map[string]string, code string) string {
	if code == "" {
		return code
	}
	if label, ok := labels[code]; ok && label != "" {
		return label
	}
	return code
}
