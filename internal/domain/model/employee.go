// Пакет model — доменные модели сервиса newhires.
// Employee — объединённая запись сотрудника: кадровая БД + фото из photo store.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee — запись сотрудника для дашборда новых сотрудников.
// Собирается из основной кадровой БД (employees/departments/career_bands)
// и обогащается фотографией из photo store (матчинг по нормализованному ФИО).
type Employee struct {
	// ID — идентификатор записи. Если в photo store найдено совпадение,
	// подставляется id оттуда, иначе остаётся id кадровой БД.
	// Подстановка детерминирована: решает только наличие совпадения по ФИО.
	ID string
	// UserAD — учётная запись Active Directory
	UserAD string
	// FullName — полное имя (тайское написание)
	FullName string
	// FullNameEN — полное имя (латиница)
	FullNameEN string
	// Nickname — неформальное имя
	Nickname string
	// ImageURL — URL фотографии из photo store либо путь к аватару по умолчанию.
	// Никогда не пустой.
	ImageURL string
	// DepartmentCode — код подразделения
	DepartmentCode string
	// Department — название подразделения (тайское написание)
	Department string
	// DepartmentEN — название подразделения (латиница)
	DepartmentEN string
	// DepartmentNickname — сокращённое название подразделения
	DepartmentNickname string
	// EmpCode — табельный номер
	EmpCode string
	// Email — рабочая почта
	Email string
	// Tel — рабочий телефон
	Tel string
	// BandCode — буквенный код карьерного уровня (например "S2")
	BandCode string
	// BandLevel — карьерный уровень: до обогащения — id из career_bands
	// в строковом виде, после — полное название уровня (если найдено).
	BandLevel string
	// SortLevel — порядок сортировки уровня в справочнике
	SortLevel int
	// Position — название должности
	Position string
	// Active — признак действующего сотрудника. В ответах всегда true.
	Active bool
	// CreatedAt — дата вступления в текущую должность.
	// NULL в БД заменяется текущим временем (задокументированная потеря точности).
	CreatedAt *time.Time
	// FirstWorkingDate — первый рабочий день. NULL заменяется аналогично.
	FirstWorkingDate *time.Time
}

// Photo — запись photo store: фотография сотрудника,
// сопоставляемая с кадровой БД по ФИО без пробелов.
type Photo struct {
	// ID — UUID записи в photo store
	ID uuid.UUID
	// FullName — ФИО, как оно хранится в photo store
	FullName string
	// ImageURL — URL фотографии
	ImageURL string
	// Status — статус записи: матчатся только active
	Status string
}

// Department — элемент справочника подразделений для фильтров дашборда.
type Department struct {
	ID   string
	Name string
}

// CareerBand — элемент справочника карьерных уровней.
// ID — числовой id в строковом виде, Name — полное название уровня.
type CareerBand struct {
	ID   string
	Name string
}
