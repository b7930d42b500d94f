package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hrportal/newhires/internal/domain/model"
	"github.com/hrportal/newhires/internal/repository"
	"github.com/hrportal/newhires/internal/service"
)

// --- Моки репозиториев ---

// mockEmployeeRepo — мок кадровой БД на замыканиях.
type mockEmployeeRepo struct {
	findActiveFn  func(ctx context.Context, filter repository.EmployeeFilter) ([]*model.Employee, error)
	departmentsFn func(ctx context.Context, denylist []string) ([]*model.Department, error)
}

func (m *mockEmployeeRepo) FindActive(ctx context.Context, filter repository.EmployeeFilter) ([]*model.Employee, error) {
	return m.findActiveFn(ctx, filter)
}

func (m *mockEmployeeRepo) Departments(ctx context.Context, denylist []string) ([]*model.Department, error) {
	return m.departmentsFn(ctx, denylist)
}

// mockPhotoRepo — мок photo store.
type mockPhotoRepo struct {
	activeByNamesFn func(ctx context.Context, names []string) (map[string]*model.Photo, error)
}

func (m *mockPhotoRepo) ActiveByNormalizedNames(ctx context.Context, names []string) (map[string]*model.Photo, error) {
	return m.activeByNamesFn(ctx, names)
}

func (m *mockPhotoRepo) FindByNormalizedName(_ context.Context, _ string) (*model.Photo, error) {
	return nil, repository.ErrNotFound
}

// mockBandRepo — мок справочника карьерных уровней.
type mockBandRepo struct {
	listFn func(ctx context.Context) ([]*model.CareerBand, error)
}

func (m *mockBandRepo) List(ctx context.Context) ([]*model.CareerBand, error) {
	return m.listFn(ctx)
}

// newTestHandler собирает APIHandler поверх моков хранилищ.
func newTestHandler(emp *mockEmployeeRepo, photos *mockPhotoRepo, bands *mockBandRepo) *APIHandler {
	logger := slog.Default()
	refs := service.NewReferenceService(emp, bands, nil, 8, time.Minute, logger)
	directory := service.NewDirectoryService(emp, photos, refs, logger)
	health := NewHealthHandler(nil, nil)
	return NewAPIHandler(health, directory, refs, logger)
}

// emptyStoresHandler — обработчик поверх пустых, но исправных хранилищ.
func emptyStoresHandler() *APIHandler {
	return newTestHandler(
		&mockEmployeeRepo{
			findActiveFn: func(_ context.Context, _ repository.EmployeeFilter) ([]*model.Employee, error) {
				return nil, nil
			},
			departmentsFn: func(_ context.Context, _ []string) ([]*model.Department, error) {
				return nil, nil
			},
		},
		&mockPhotoRepo{
			activeByNamesFn: func(_ context.Context, _ []string) (map[string]*model.Photo, error) {
				return map[string]*model.Photo{}, nil
			},
		},
		&mockBandRepo{
			listFn: func(_ context.Context) ([]*model.CareerBand, error) {
				return nil, nil
			},
		},
	)
}

// doGet выполняет GET-запрос к обработчику и возвращает recorder.
func doGet(h *APIHandler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.GetEmployees(rec, req)
	return rec
}

// TestGetEmployees_EmptyResultIsArray проверяет, что пустая выборка
// сериализуется как [], а не null.
func TestGetEmployees_EmptyResultIsArray(t *testing.T) {
	rec := doGet(emptyStoresHandler(), "/api/v1/employees")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, ожидался 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, ожидался пустой JSON-массив", got)
	}
}

// TestGetEmployees_FilterParsing проверяет разбор query-параметров в фильтр.
func TestGetEmployees_FilterParsing(t *testing.T) {
	var captured repository.EmployeeFilter

	h := newTestHandler(
		&mockEmployeeRepo{
			findActiveFn: func(_ context.Context, filter repository.EmployeeFilter) ([]*model.Employee, error) {
				captured = filter
				return nil, nil
			},
		},
		&mockPhotoRepo{
			activeByNamesFn: func(_ context.Context, _ []string) (map[string]*model.Photo, error) {
				return map[string]*model.Photo{}, nil
			},
		},
		&mockBandRepo{
			listFn: func(_ context.Context) ([]*model.CareerBand, error) { return nil, nil },
		},
	)

	rec := doGet(h, "/api/v1/employees?startDate=2026-06-01&endDate=2026-08-31&department=Engineering&position=4&newEmployee=true")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, ожидался 200", rec.Code)
	}
	if captured.StartDate == nil || !captured.StartDate.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v, ожидался 2026-06-01", captured.StartDate)
	}
	if captured.EndDate == nil || !captured.EndDate.Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("EndDate = %v, ожидался 2026-08-31", captured.EndDate)
	}
	if captured.Department == nil || *captured.Department != "Engineering" {
		t.Errorf("Department = %v, ожидался Engineering", captured.Department)
	}
	if captured.Band == nil || *captured.Band != "4" {
		t.Errorf("Band = %v, ожидался 4", captured.Band)
	}
	if !captured.RecentOnly {
		t.Error("RecentOnly = false, ожидался true")
	}
}

// TestGetEmployees_NewEmployeeStrictTrue проверяет, что фильтр новых
// сотрудников включается только значением "true".
func TestGetEmployees_NewEmployeeStrictTrue(t *testing.T) {
	for _, value := range []string{"1", "yes", "TRUE", "false"} {
		var captured repository.EmployeeFilter

		h := newTestHandler(
			&mockEmployeeRepo{
				findActiveFn: func(_ context.Context, filter repository.EmployeeFilter) ([]*model.Employee, error) {
					captured = filter
					return nil, nil
				},
			},
			&mockPhotoRepo{
				activeByNamesFn: func(_ context.Context, _ []string) (map[string]*model.Photo, error) {
					return map[string]*model.Photo{}, nil
				},
			},
			&mockBandRepo{
				listFn: func(_ context.Context) ([]*model.CareerBand, error) { return nil, nil },
			},
		)

		doGet(h, "/api/v1/employees?newEmployee="+value)

		if captured.RecentOnly {
			t.Errorf("newEmployee=%q: RecentOnly = true, ожидался false", value)
		}
	}
}

// TestGetEmployees_InvalidDate проверяет 400 на некорректную дату.
func TestGetEmployees_InvalidDate(t *testing.T) {
	rec := doGet(emptyStoresHandler(), "/api/v1/employees?startDate=not-a-date")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, ожидался 400", rec.Code)
	}
}

// TestGetEmployees_StartAfterEnd проверяет 400 при startDate позже endDate.
func TestGetEmployees_StartAfterEnd(t *testing.T) {
	rec := doGet(emptyStoresHandler(), "/api/v1/employees?startDate=2026-08-01&endDate=2026-06-01")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, ожидался 400", rec.Code)
	}
}

// TestGetEmployees_ResponseShape проверяет имена JSON-полей ответа —
// контракт с дашбордом, включая несимметричное departmentENG.
func TestGetEmployees_ResponseShape(t *testing.T) {
	fwd := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	h := newTestHandler(
		&mockEmployeeRepo{
			findActiveFn: func(_ context.Context, _ repository.EmployeeFilter) ([]*model.Employee, error) {
				return []*model.Employee{{
					ID:                 "hr-1",
					UserAD:             "somchai.j",
					FullName:           "สมชาย ใจดี",
					FullNameEN:         "Somchai Jaidee",
					Nickname:           "Chai",
					DepartmentCode:     "ENG",
					Department:         "วิศวกรรม",
					DepartmentEN:       "Engineering",
					DepartmentNickname: "Eng",
					EmpCode:            "10042",
					Email:              "somchai.j@example.com",
					Tel:                "1234",
					BandCode:           "S2",
					BandLevel:          "4",
					SortLevel:          4,
					Position:           "Engineer",
					Active:             true,
					CreatedAt:          &created,
					FirstWorkingDate:   &fwd,
				}}, nil
			},
		},
		&mockPhotoRepo{
			activeByNamesFn: func(_ context.Context, _ []string) (map[string]*model.Photo, error) {
				return map[string]*model.Photo{}, nil
			},
		},
		&mockBandRepo{
			listFn: func(_ context.Context) ([]*model.CareerBand, error) {
				return []*model.CareerBand{{ID: "4", Name: "Senior Engineer"}}, nil
			},
		},
	)

	rec := doGet(h, "/api/v1/employees")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, ожидался 200", rec.Code)
	}

	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, ожидался 1", len(items))
	}

	item := items[0]
	for _, key := range []string{
		"id", "userAD", "fullName", "fullNameEN", "nickname", "imageUrl",
		"departmentCode", "department", "departmentENG", "departmentNickname",
		"empCode", "email", "tel", "bandCode", "bandLevel", "sortLevel",
		"position", "active", "createdAt", "firstWorkingDate",
	} {
		if _, ok := item[key]; !ok {
			t.Errorf("в ответе нет поля %q", key)
		}
	}

	if item["departmentENG"] != "Engineering" {
		t.Errorf("departmentENG = %v, ожидался Engineering", item["departmentENG"])
	}
	if item["bandLevel"] != "Senior Engineer" {
		t.Errorf("bandLevel = %v, ожидалась подстановка названия уровня", item["bandLevel"])
	}
	if item["imageUrl"] != service.DefaultAvatarPath {
		t.Errorf("imageUrl = %v, ожидался аватар по умолчанию", item["imageUrl"])
	}
}

// TestGetEmployees_PrimaryFaultReturns200 проверяет, что отказ кадровой БД
// в режиме списка даёт 200 с пустым массивом, а не 500.
func TestGetEmployees_PrimaryFaultReturns200(t *testing.T) {
	h := newTestHandler(
		&mockEmployeeRepo{
			findActiveFn: func(_ context.Context, _ repository.EmployeeFilter) ([]*model.Employee, error) {
				return nil, errors.New("connection refused")
			},
		},
		&mockPhotoRepo{
			activeByNamesFn: func(_ context.Context, _ []string) (map[string]*model.Photo, error) {
				return map[string]*model.Photo{}, nil
			},
		},
		&mockBandRepo{
			listFn: func(_ context.Context) ([]*model.CareerBand, error) { return nil, nil },
		},
	)

	rec := doGet(h, "/api/v1/employees")

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, ожидался 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, ожидался пустой JSON-массив", got)
	}
}

// TestGetEmployees_ReferenceDepartments проверяет режим type=departments.
func TestGetEmployees_ReferenceDepartments(t *testing.T) {
	h := newTestHandler(
		&mockEmployeeRepo{
			departmentsFn: func(_ context.Context, _ []string) ([]*model.Department, error) {
				return []*model.Department{
					{ID: "ENG", Name: "Engineering"},
					{ID: "HR", Name: "Human Resources"},
				}, nil
			},
		},
		&mockPhotoRepo{},
		&mockBandRepo{},
	)

	rec := doGet(h, "/api/v1/employees?type=departments")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, ожидался 200", rec.Code)
	}

	var items []referenceItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, ожидался 2", len(items))
	}
	if items[0].ID != "ENG" || items[0].Name != "Engineering" {
		t.Errorf("items[0] = %+v, ожидался ENG/Engineering", items[0])
	}
}

// TestGetEmployees_ReferenceCareerBands проверяет режим type=careerBands.
func TestGetEmployees_ReferenceCareerBands(t *testing.T) {
	h := newTestHandler(
		&mockEmployeeRepo{},
		&mockPhotoRepo{},
		&mockBandRepo{
			listFn: func(_ context.Context) ([]*model.CareerBand, error) {
				return []*model.CareerBand{
					{ID: "1", Name: "Junior"},
					{ID: "4", Name: "Senior Engineer"},
				}, nil
			},
		},
	)

	rec := doGet(h, "/api/v1/employees?type=careerBands")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, ожидался 200", rec.Code)
	}

	var items []referenceItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, ожидался 2", len(items))
	}
	if items[1].ID != "4" || items[1].Name != "Senior Engineer" {
		t.Errorf("items[1] = %+v, ожидался 4/Senior Engineer", items[1])
	}
}

// TestGetEmployees_ReferenceFaultReturns500 проверяет, что отказ хранилища
// в режиме справочников — это 500, в отличие от режима списка.
func TestGetEmployees_ReferenceFaultReturns500(t *testing.T) {
	h := newTestHandler(
		&mockEmployeeRepo{
			departmentsFn: func(_ context.Context, _ []string) ([]*model.Department, error) {
				return nil, errors.New("connection refused")
			},
		},
		&mockPhotoRepo{},
		&mockBandRepo{},
	)

	rec := doGet(h, "/api/v1/employees?type=departments")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, ожидался 500", rec.Code)
	}
}

// TestGetEmployees_UnknownReferenceType проверяет 400 на неизвестный type.
func TestGetEmployees_UnknownReferenceType(t *testing.T) {
	rec := doGet(emptyStoresHandler(), "/api/v1/employees?type=offices")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, ожидался 400", rec.Code)
	}
}
