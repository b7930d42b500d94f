// reference.go — сервис справочников: подразделения и карьерные уровни.
// Справочники читаются из кадровой БД и кэшируются с коротким TTL.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrportal/newhires/internal/domain/model"
	"github.com/hrportal/newhires/internal/repository"
)

// Ключи кэша справочников.
const (
	cacheKeyDepartments = "departments"
	cacheKeyCareerBands = "careerBands"
)

// ReferenceService — справочники для фильтров дашборда и обогащения.
type ReferenceService struct {
	employees repository.EmployeeRepository
	bands     repository.CareerBandRepository
	// denylist — названия не-операционных подразделений,
	// исключаемые из списка подразделений
	denylist  []string
	depCache  *Cache[[]*model.Department]
	bandCache *Cache[[]*model.CareerBand]
	logger    *slog.Logger
}

// NewReferenceService создаёт сервис справочников.
// cacheSize и cacheTTL задают параметры кэша (одинаковые для обоих справочников).
func NewReferenceService(
	employees repository.EmployeeRepository,
	bands repository.CareerBandRepository,
	denylist []string,
	cacheSize int,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *ReferenceService {
	return &ReferenceService{
		employees: employees,
		bands:     bands,
		denylist:  denylist,
		depCache:  NewCache[[]*model.Department](cacheSize, cacheTTL),
		bandCache: NewCache[[]*model.CareerBand](cacheSize, cacheTTL),
		logger:    logger.With(slog.String("component", "reference_service")),
	}
}

// Departments возвращает список подразделений действующих сотрудников
// (без denylist, по алфавиту). Результат кэшируется.
func (s *ReferenceService) Departments(ctx context.Context) ([]*model.Department, error) {
	if cached, ok := s.depCache.Get(cacheKeyDepartments); ok {
		return cached, nil
	}

	departments, err := s.employees.Departments(ctx, s.denylist)
	if err != nil {
		return nil, fmt.Errorf("получение справочника подразделений: %w", err)
	}

	s.depCache.Set(cacheKeyDepartments, departments)
	return departments, nil
}

// CareerBands возвращает полный справочник карьерных уровней
// в порядке sort_level. Результат кэшируется.
func (s *ReferenceService) CareerBands(ctx context.Context) ([]*model.CareerBand, error) {
	if cached, ok := s.bandCache.Get(cacheKeyCareerBands); ok {
		return cached, nil
	}

	bands, err := s.bands.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение справочника карьерных уровней: %w", err)
	}

	s.bandCache.Set(cacheKeyCareerBands, bands)
	return bands, nil
}

// BandLabels возвращает карту id уровня → полное название.
// Справочник читается целиком один раз на пачку обогащения,
// а не на каждого сотрудника.
func (s *ReferenceService) BandLabels(ctx context.Context) (map[string]string, error) {
	bands, err := s.CareerBands(ctx)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(bands))
	for _, cb := range bands {
		labels[cb.ID] = cb.Name
	}
	return labels, nil
}
