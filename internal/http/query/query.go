// Package query разбирает общие query-параметры списочных запросов:
// limit, page, search и ordering.
package query

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// ParseListOptions извлекает параметры выборки из query-строки запроса.
//
// limit — размер страницы, page — номер страницы, search — префикс
// заголовка, ordering — имя поля сортировки, префикс "-" задаёт
// сортировку по убыванию. Некорректные значения заменяются
// значениями по умолчанию.
func ParseListOptions(r *http.Request) models.ListOptions {
	q := r.URL.Query()

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = models.DefaultPageSize
	}

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	opts := models.ListOptions{
		Page:       page,
		PageSize:   limit,
		Search:     q.Get("search"),
		Descending: strings.HasPrefix(q.Get("ordering"), "-"),
	}
	opts.Normalize()
	return opts
}
