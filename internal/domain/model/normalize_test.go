package model

import "testing"

// TestNormalizeName проверяет удаление всех пробельных символов из ФИО.
func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"латиница с одним пробелом", "John Doe", "JohnDoe"},
		{"пробелы по краям", "  John Doe  ", "JohnDoe"},
		{"двойной внутренний пробел", "John  Doe", "JohnDoe"},
		{"тайское имя", "สมชาย ใจดี", "สมชายใจดี"},
		{"тайское имя с лишним пробелом", "สมชาย  ใจดี", "สมชายใจดี"},
		{"табуляция и перевод строки", "John\tDoe\n", "JohnDoe"},
		{"неразрывный пробел", "John\u00a0Doe", "JohnDoe"},
		{"пустая строка", "", ""},
		{"только пробелы", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, ожидалось %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestNormalizeName_Match проверяет, что разные написания одного имени
// дают одинаковый ключ матчинга.
func TestNormalizeName_Match(t *testing.T) {
	a := NormalizeName("สมชาย ใจดี")
	b := NormalizeName("สมชาย  ใจดี")
	if a != b {
		t.Errorf("ключи различаются: %q != %q", a, b)
	}
}
