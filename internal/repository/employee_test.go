package repository

import (
	"strings"
	"testing"
	"time"
)

// --- Тесты buildEmployeeWhere ---

// TestBuildEmployeeWhere_Empty проверяет пустой фильтр:
// остаётся только обязательное условие active.
func TestBuildEmployeeWhere_Empty(t *testing.T) {
	where, args := buildEmployeeWhere(EmployeeFilter{}, time.Now(), 1)

	if where != "WHERE e.active" {
		t.Errorf("where = %q, ожидался 'WHERE e.active'", where)
	}
	if len(args) != 0 {
		t.Errorf("args count = %d, ожидался 0", len(args))
	}
}

// TestBuildEmployeeWhere_DateRange проверяет границы первого рабочего дня.
func TestBuildEmployeeWhere_DateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	filter := EmployeeFilter{StartDate: &start, EndDate: &end}

	where, args := buildEmployeeWhere(filter, time.Now(), 1)

	if !strings.Contains(where, "e.first_working_date >= $1") {
		t.Errorf("where = %q, ожидался 'e.first_working_date >= $1'", where)
	}
	if !strings.Contains(where, "e.first_working_date <= $2") {
		t.Errorf("where = %q, ожидался 'e.first_working_date <= $2'", where)
	}
	if len(args) != 2 {
		t.Fatalf("args count = %d, ожидался 2", len(args))
	}
	if args[0] != start || args[1] != end {
		t.Errorf("args = %v, ожидались границы диапазона", args)
	}
}

// TestBuildEmployeeWhere_RecentOnly проверяет 90-дневное окно от момента запроса.
func TestBuildEmployeeWhere_RecentOnly(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	filter := EmployeeFilter{RecentOnly: true}

	where, args := buildEmployeeWhere(filter, now, 1)

	if !strings.Contains(where, "e.first_working_date >= $1") {
		t.Errorf("where = %q, ожидался 'e.first_working_date >= $1'", where)
	}
	if len(args) != 1 {
		t.Fatalf("args count = %d, ожидался 1", len(args))
	}
	want := now.AddDate(0, 0, -90)
	if args[0] != want {
		t.Errorf("args[0] = %v, ожидался %v (now - 90 дней)", args[0], want)
	}
}

// TestBuildEmployeeWhere_RecentOnlyWithRange проверяет комбинацию окна
// и явного диапазона: применяются оба ограничения.
func TestBuildEmployeeWhere_RecentOnlyWithRange(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	filter := EmployeeFilter{StartDate: &start, EndDate: &end, RecentOnly: true}

	where, args := buildEmployeeWhere(filter, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 1)

	// Три условия по дате: >=, <= и окно
	if strings.Count(where, "first_working_date") != 3 {
		t.Errorf("where = %q, ожидались три условия по дате", where)
	}
	if len(args) != 3 {
		t.Errorf("args count = %d, ожидался 3", len(args))
	}
}

// TestBuildEmployeeWhere_Department проверяет точное совпадение подразделения.
func TestBuildEmployeeWhere_Department(t *testing.T) {
	dept := "ฝ่ายบัญชี"
	filter := EmployeeFilter{Department: &dept}

	where, args := buildEmployeeWhere(filter, time.Now(), 1)

	if !strings.Contains(where, "d.name_th = $1") {
		t.Errorf("where = %q, ожидался 'd.name_th = $1'", where)
	}
	if len(args) != 1 || args[0] != dept {
		t.Errorf("args = %v, ожидался [%q]", args, dept)
	}
}

// TestBuildEmployeeWhere_Band проверяет точное совпадение карьерного уровня.
func TestBuildEmployeeWhere_Band(t *testing.T) {
	band := "4"
	filter := EmployeeFilter{Band: &band}

	where, args := buildEmployeeWhere(filter, time.Now(), 1)

	if !strings.Contains(where, "e.band_id::text = $1") {
		t.Errorf("where = %q, ожидался 'e.band_id::text = $1'", where)
	}
	if len(args) != 1 || args[0] != band {
		t.Errorf("args = %v, ожидался [%q]", args, band)
	}
}

// TestBuildEmployeeWhere_EmptyStringsIgnored проверяет, что пустые строки
// в фильтрах не добавляют условий.
func TestBuildEmployeeWhere_EmptyStringsIgnored(t *testing.T) {
	empty := ""
	filter := EmployeeFilter{Department: &empty, Band: &empty}

	where, args := buildEmployeeWhere(filter, time.Now(), 1)

	if where != "WHERE e.active" {
		t.Errorf("where = %q, ожидался 'WHERE e.active'", where)
	}
	if len(args) != 0 {
		t.Errorf("args count = %d, ожидался 0", len(args))
	}
}

// TestBuildEmployeeWhere_AllFilters проверяет нумерацию при полном наборе фильтров.
func TestBuildEmployeeWhere_AllFilters(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	dept := "ฝ่ายบุคคล"
	band := "2"
	filter := EmployeeFilter{
		StartDate:  &start,
		EndDate:    &end,
		Department: &dept,
		Band:       &band,
		RecentOnly: true,
	}

	where, args := buildEmployeeWhere(filter, time.Now(), 1)

	if !strings.Contains(where, "d.name_th = $4") {
		t.Errorf("where = %q, ожидался 'd.name_th = $4'", where)
	}
	if !strings.Contains(where, "e.band_id::text = $5") {
		t.Errorf("where = %q, ожидался 'e.band_id::text = $5'", where)
	}
	if len(args) != 5 {
		t.Errorf("args count = %d, ожидался 5", len(args))
	}
}

// TestBuildEmployeeWhere_StartArgOffset проверяет корректную нумерацию аргументов.
func TestBuildEmployeeWhere_StartArgOffset(t *testing.T) {
	dept := "ฝ่ายไอที"
	filter := EmployeeFilter{Department: &dept}

	where, args := buildEmployeeWhere(filter, time.Now(), 3)

	if !strings.Contains(where, "d.name_th = $3") {
		t.Errorf("where = %q, ожидался 'd.name_th = $3'", where)
	}
	if len(args) != 1 {
		t.Errorf("args count = %d, ожидался 1", len(args))
	}
}
