package repository

import (
	"context"
	"fmt"

	"github.com/hrportal/newhires/internal/domain/model"
)

// CareerBandRepository — интерфейс чтения справочника карьерных уровней.
type CareerBandRepository interface {
	// List возвращает справочник целиком, в порядке sort_level.
	// Id — числовой id в строковом виде (он же raw-значение BandLevel
	// у сотрудника), Name — полное название уровня.
	List(ctx context.Context) ([]*model.CareerBand, error)
}

// careerBandRepo — реализация CareerBandRepository через pgx.
type careerBandRepo struct {
	db DBTX
}

// NewCareerBandRepository создаёт репозиторий справочника уровней.
func NewCareerBandRepository(db DBTX) CareerBandRepository {
	return &careerBandRepo{db: db}
}

// List возвращает полный справочник карьерных уровней.
func (r *careerBandRepo) List(ctx context.Context) ([]*model.CareerBand, error) {
	query := `
		SELECT id::text, name_th
		FROM career_bands
		ORDER BY sort_level, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки карьерных уровней: %w", err)
	}
	defer rows.Close()

	var result []*model.CareerBand
	for rows.Next() {
		cb := &model.CareerBand{}
		if err := rows.Scan(&cb.ID, &cb.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования карьерного уровня: %w", err)
		}
		result = append(result, cb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	return result, nil
}
