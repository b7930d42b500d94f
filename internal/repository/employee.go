package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hrportal/newhires/internal/domain/model"
)

// maxEmployeeRows — жёсткий потолок выборки сотрудников.
// Строки сверх лимита молча отбрасываются — это задокументированное
// ограничение, а не ошибка (дашборд не листает дальше).
const maxEmployeeRows = 1000

// recentWindowDays — окно «нового сотрудника»: первый рабочий день
// не раньше, чем за 90 дней до момента запроса.
const recentWindowDays = 90

// employeeColumns — список столбцов выборки сотрудников для SELECT-запросов.
// DRY: одно место для всех SELECT'ов. NULL-строки сводятся к '' через COALESCE,
// даты остаются nullable — их обрабатывает сервисный слой.
const employeeColumns = `e.id, COALESCE(e.user_ad, ''), e.full_name, COALESCE(e.full_name_en, ''),
	COALESCE(e.nickname, ''), COALESCE(d.code, ''), COALESCE(d.name_th, ''),
	COALESCE(d.name_en, ''), COALESCE(d.nickname, ''), COALESCE(e.emp_code, ''),
	COALESCE(e.email, ''), COALESCE(e.tel, ''), COALESCE(cb.code, ''),
	COALESCE(e.band_id::text, ''), COALESCE(cb.sort_level, 0),
	COALESCE(e.position, ''), e.active, e.current_position_start_date, e.first_working_date`

// employeeFrom — FROM-часть с джойнами справочников кадровой БД.
const employeeFrom = `FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN career_bands cb ON cb.id = e.band_id`

// EmployeeFilter — параметры выборки сотрудников.
// Все поля-указатели опциональны, nil = фильтр не применяется.
type EmployeeFilter struct {
	// StartDate — нижняя граница первого рабочего дня (включительно)
	StartDate *time.Time
	// EndDate — верхняя граница первого рабочего дня (включительно)
	EndDate *time.Time
	// Department — точное совпадение с названием подразделения (name_th)
	Department *string
	// Band — точное совпадение с id карьерного уровня в строковом виде
	Band *string
	// RecentOnly — только сотрудники с первым рабочим днём за последние 90 дней.
	// Комбинируется с явными границами дат: применяются оба ограничения,
	// узкий явный диапазон вне 90-дневного окна даст пустой результат.
	RecentOnly bool
}

// EmployeeRepository — интерфейс чтения кадровой БД.
type EmployeeRepository interface {
	// FindActive возвращает действующих сотрудников по фильтрам,
	// отсортированных по первому рабочему дню (новые первыми),
	// не более maxEmployeeRows строк.
	FindActive(ctx context.Context, filter EmployeeFilter) ([]*model.Employee, error)
	// Departments возвращает отличные названия подразделений действующих
	// сотрудников, кроме перечисленных в denylist, по алфавиту.
	Departments(ctx context.Context, denylist []string) ([]*model.Department, error)
}

// employeeRepo — реализация EmployeeRepository через pgx.
type employeeRepo struct {
	db DBTX
}

// NewEmployeeRepository создаёт репозиторий кадровой БД.
func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepo{db: db}
}

// FindActive возвращает действующих сотрудников по фильтрам.
func (r *employeeRepo) FindActive(ctx context.Context, filter EmployeeFilter) ([]*model.Employee, error) {
	where, args := buildEmployeeWhere(filter, time.Now(), 1)

	query := fmt.Sprintf(
		`SELECT %s %s %s ORDER BY e.first_working_date DESC LIMIT %d`,
		employeeColumns, employeeFrom, where, maxEmployeeRows,
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки сотрудников: %w", err)
	}
	defer rows.Close()

	var result []*model.Employee
	for rows.Next() {
		e := &model.Employee{}
		if err := rows.Scan(
			&e.ID, &e.UserAD, &e.FullName, &e.FullNameEN,
			&e.Nickname, &e.DepartmentCode, &e.Department,
			&e.DepartmentEN, &e.DepartmentNickname, &e.EmpCode,
			&e.Email, &e.Tel, &e.BandCode,
			&e.BandLevel, &e.SortLevel,
			&e.Position, &e.Active, &e.CreatedAt, &e.FirstWorkingDate,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования сотрудника: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	return result, nil
}

// Departments возвращает справочник подразделений по действующим сотрудникам.
// denylist — названия не-операционных подразделений, исключаемые из списка
// даже при наличии действующих сотрудников.
func (r *employeeRepo) Departments(ctx context.Context, denylist []string) ([]*model.Department, error) {
	if denylist == nil {
		denylist = []string{}
	}

	query := `
		SELECT DISTINCT d.code, d.name_th
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE e.active AND d.name_th <> '' AND NOT (d.name_th = ANY($1))
		ORDER BY d.name_th`

	rows, err := r.db.Query(ctx, query, denylist)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки подразделений: %w", err)
	}
	defer rows.Close()

	var result []*model.Department
	for rows.Next() {
		d := &model.Department{}
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования подразделения: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	return result, nil
}

// buildEmployeeWhere строит WHERE-условие и аргументы для выборки сотрудников.
// Условие e.active присутствует всегда — неактивные сотрудники не возвращаются
// ни при каких фильтрах. now — момент запроса для расчёта 90-дневного окна.
// startArg — номер первого $-параметра (для корректной нумерации).
func buildEmployeeWhere(filter EmployeeFilter, now time.Time, startArg int) (whereClause string, args []any) {
	conditions := []string{"e.active"}
	argNum := startArg

	// Нижняя граница первого рабочего дня (включительно)
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("e.first_working_date >= $%d", argNum))
		args = append(args, *filter.StartDate)
		argNum++
	}

	// Верхняя граница первого рабочего дня (включительно)
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("e.first_working_date <= $%d", argNum))
		args = append(args, *filter.EndDate)
		argNum++
	}

	// Окно «нового сотрудника»: дополнительное ограничение,
	// накладывается поверх явных границ
	if filter.RecentOnly {
		conditions = append(conditions, fmt.Sprintf("e.first_working_date >= $%d", argNum))
		args = append(args, now.AddDate(0, 0, -recentWindowDays))
		argNum++
	}

	// Точное совпадение названия подразделения
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("d.name_th = $%d", argNum))
		args = append(args, *filter.Department)
		argNum++
	}

	// Точное совпадение карьерного уровня
	if filter.Band != nil && *filter.Band != "" {
		conditions = append(conditions, fmt.Sprintf("e.band_id::text = $%d", argNum))
		args = append(args, *filter.Band)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
