package model

import (
	"strings"
	"unicode"
)

// NormalizeName приводит ФИО к ключу матчинга между кадровой БД и photo store:
// удаляются ВСЕ пробельные символы, включая внутренние (между частями имени),
// а не только по краям. Одна и та же функция применяется к обеим сторонам
// сравнения — «สมชาย ใจดี» и «สมชาย  ใจดี» (лишний внутренний пробел)
// дают одинаковый ключ.
func NormalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}
