// employees.go — обработчик GET /api/v1/employees.
// Один endpoint обслуживает два режима, переключаемых query-параметром type:
//   - без type — обогащённый список сотрудников по фильтрам;
//   - type=departments | type=careerBands — справочники для фильтров дашборда.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/hrportal/newhires/internal/api/errors"
	"github.com/hrportal/newhires/internal/domain/model"
	"github.com/hrportal/newhires/internal/repository"
)

// Значения параметра type для режима справочников.
const (
	refTypeDepartments = "departments"
	refTypeCareerBands = "careerBands"
)

// dateLayout — формат дат query-параметров (дашборд передаёт YYYY-MM-DD).
const dateLayout = "2006-01-02"

// handleGetEmployees — реализация GET /api/v1/employees.
//
// Query-параметры:
//
//	startDate, endDate — границы первого рабочего дня (YYYY-MM-DD, включительно)
//	department         — точное название подразделения
//	position           — код карьерного уровня
//	newEmployee=true   — только первый рабочий день за последние 90 дней
//	type               — departments | careerBands (режим справочников)
func (h *APIHandler) handleGetEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Режим справочников: параметры фильтров игнорируются
	if refType := query.Get("type"); refType != "" {
		h.handleReference(w, r, refType)
		return
	}

	filter, err := parseEmployeeFilter(query.Get("startDate"), query.Get("endDate"),
		query.Get("department"), query.Get("position"), query.Get("newEmployee"))
	if err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}

	// Режим списка сотрудников никогда не отвечает 500 на отказ хранилищ:
	// сервисный слой деградирует ответ вплоть до пустого списка
	employees := h.directory.Employees(r.Context(), filter)

	writeJSON(w, http.StatusOK, employeesToItems(employees))
}

// handleReference — режим справочников (type=departments | careerBands).
// Здесь отказ хранилища — это 500: деградировать список фильтров нечем.
func (h *APIHandler) handleReference(w http.ResponseWriter, r *http.Request, refType string) {
	switch refType {
	case refTypeDepartments:
		departments, err := h.refs.Departments(r.Context())
		if err != nil {
			h.logger.Error("Ошибка справочника подразделений",
				slog.String("error", err.Error()),
			)
			apierrors.InternalError(w, "Внутренняя ошибка при получении справочника подразделений")
			return
		}
		writeJSON(w, http.StatusOK, departmentsToItems(departments))

	case refTypeCareerBands:
		bands, err := h.refs.CareerBands(r.Context())
		if err != nil {
			h.logger.Error("Ошибка справочника карьерных уровней",
				slog.String("error", err.Error()),
			)
			apierrors.InternalError(w, "Внутренняя ошибка при получении справочника уровней")
			return
		}
		writeJSON(w, http.StatusOK, careerBandsToItems(bands))

	default:
		apierrors.ValidationError(w,
			fmt.Sprintf("Недопустимое значение type: %q (ожидается departments или careerBands)", refType))
	}
}

// parseEmployeeFilter валидирует query-параметры и строит фильтр выборки.
func parseEmployeeFilter(startDate, endDate, department, position, newEmployee string) (repository.EmployeeFilter, error) {
	var filter repository.EmployeeFilter

	if startDate != "" {
		t, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return filter, fmt.Errorf("некорректный startDate: %q (ожидается YYYY-MM-DD)", startDate)
		}
		filter.StartDate = &t
	}

	if endDate != "" {
		t, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return filter, fmt.Errorf("некорректный endDate: %q (ожидается YYYY-MM-DD)", endDate)
		}
		filter.EndDate = &t
	}

	// Валидация дат: startDate не может быть позже endDate
	if filter.StartDate != nil && filter.EndDate != nil {
		if filter.StartDate.After(*filter.EndDate) {
			return filter, errors.New("startDate не может быть позже endDate")
		}
	}

	if department != "" {
		filter.Department = &department
	}
	if position != "" {
		filter.Band = &position
	}

	// Строго "true" — любое другое значение трактуется как выключенный фильтр
	filter.RecentOnly = newEmployee == "true"

	return filter, nil
}

// employeeItem — запись сотрудника в формате дашборда.
// Имена полей — контракт с фронтендом, менять нельзя
// (в т.ч. несимметричное departmentENG).
type employeeItem struct {
	ID                 string    `json:"id"`
	UserAD             string    `json:"userAD"`
	FullName           string    `json:"fullName"`
	FullNameEN         string    `json:"fullNameEN"`
	Nickname           string    `json:"nickname"`
	ImageURL           string    `json:"imageUrl"`
	DepartmentCode     string    `json:"departmentCode"`
	Department         string    `json:"department"`
	DepartmentEN       string    `json:"departmentENG"`
	DepartmentNickname string    `json:"departmentNickname"`
	EmpCode            string    `json:"empCode"`
	Email              string    `json:"email"`
	Tel                string    `json:"tel"`
	BandCode           string    `json:"bandCode"`
	BandLevel          string    `json:"bandLevel"`
	SortLevel          int       `json:"sortLevel"`
	Position           string    `json:"position"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"createdAt"`
	FirstWorkingDate   time.Time `json:"firstWorkingDate"`
}

// referenceItem — элемент справочника (подразделение или карьерный уровень).
type referenceItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// employeesToItems конвертирует domain-модели в формат дашборда.
// Пустая выборка сериализуется как [], не null.
func employeesToItems(employees []*model.Employee) []employeeItem {
	items := make([]employeeItem, 0, len(employees))
	for _, e := range employees {
		items = append(items, employeeToItem(e))
	}
	return items
}

// employeeToItem конвертирует одну domain-запись в формат дашборда.
// Даты к этому моменту гарантированно не nil (сервисный слой
// подставляет момент запроса вместо NULL).
func employeeToItem(e *model.Employee) employeeItem {
	return employeeItem{
		ID:                 e.ID,
		UserAD:             e.UserAD,
		FullName:           e.FullName,
		FullNameEN:         e.FullNameEN,
		Nickname:           e.Nickname,
		ImageURL:           e.ImageURL,
		DepartmentCode:     e.DepartmentCode,
		Department:         e.Department,
		DepartmentEN:       e.DepartmentEN,
		DepartmentNickname: e.DepartmentNickname,
		EmpCode:            e.EmpCode,
		Email:              e.Email,
		Tel:                e.Tel,
		BandCode:           e.BandCode,
		BandLevel:          e.BandLevel,
		SortLevel:          e.SortLevel,
		Position:           e.Position,
		Active:             e.Active,
		CreatedAt:          *e.CreatedAt,
		FirstWorkingDate:   *e.FirstWorkingDate,
	}
}

func departmentsToItems(departments []*model.Department) []referenceItem {
	items := make([]referenceItem, 0, len(departments))
	for _, d := range departments {
		items = append(items, referenceItem{ID: d.ID, Name: d.Name})
	}
	return items
}

func careerBandsToItems(bands []*model.CareerBand) []referenceItem {
	items := make([]referenceItem, 0, len(bands))
	for _, b := range bands {
		items = append(items, referenceItem{ID: b.ID, Name: b.Name})
	}
	return items
}
