package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hrportal/newhires/internal/domain/model"
)

// Photo store — внешняя БД, схемой владеет другая команда.
// Таблица employees с camelCase-столбцами в кавычках — как есть, не трогаем.
// Матчинг по ФИО без пробельных символов: regexp_replace на стороне SQL
// обязан давать тот же результат, что model.NormalizeName на стороне Go.

// photoColumns — список столбцов photo store для SELECT-запросов.
const photoColumns = `id, "fullName", COALESCE("imageUrl", ''), status`

// PhotoRepository — интерфейс чтения photo store.
type PhotoRepository interface {
	// ActiveByNormalizedNames возвращает active-записи photo store,
	// чьё нормализованное ФИО входит в names, одним запросом.
	// Ключ результата — нормализованное ФИО. Записи с пустым imageUrl
	// пропускаются: отсутствие фотографии — не ошибка, а обычный случай.
	ActiveByNormalizedNames(ctx context.Context, names []string) (map[string]*model.Photo, error)
	// FindByNormalizedName возвращает одну active-запись по нормализованному
	// ФИО или ErrNotFound.
	FindByNormalizedName(ctx context.Context, name string) (*model.Photo, error)
}

// photoRepo — реализация PhotoRepository через pgx.
type photoRepo struct {
	db DBTX
}

// NewPhotoRepository создаёт репозиторий photo store.
func NewPhotoRepository(db DBTX) PhotoRepository {
	return &photoRepo{db: db}
}

// ActiveByNormalizedNames возвращает карту нормализованное ФИО → фото.
// Один запрос на всю пачку вместо запроса на каждого сотрудника.
func (r *photoRepo) ActiveByNormalizedNames(ctx context.Context, names []string) (map[string]*model.Photo, error) {
	result := make(map[string]*model.Photo, len(names))
	if len(names) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE status = 'active'
		  AND regexp_replace("fullName", '\s', '', 'g') = ANY($1)`,
		photoColumns,
	)

	rows, err := r.db.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки фотографий: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := &model.Photo{}
		if err := rows.Scan(&p.ID, &p.FullName, &p.ImageURL, &p.Status); err != nil {
			return nil, fmt.Errorf("ошибка сканирования фотографии: %w", err)
		}
		// Пустой imageUrl приравнивается к отсутствию записи
		if p.ImageURL == "" {
			continue
		}
		key := model.NormalizeName(p.FullName)
		// При дублях побеждает первая запись — как при одиночном lookup
		if _, ok := result[key]; !ok {
			result[key] = p
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	return result, nil
}

// FindByNormalizedName возвращает одну active-запись photo store.
func (r *photoRepo) FindByNormalizedName(ctx context.Context, name string) (*model.Photo, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE status = 'active'
		  AND regexp_replace("fullName", '\s', '', 'g') = $1
		LIMIT 1`,
		photoColumns,
	)

	p := &model.Photo{}
	err := r.db.QueryRow(ctx, query, name).Scan(&p.ID, &p.FullName, &p.ImageURL, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска фотографии: %w", err)
	}
	if p.ImageURL == "" {
		return nil, ErrNotFound
	}
	return p, nil
}
