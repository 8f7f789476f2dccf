// Package models содержит параметры выборки списков: пагинацию,
// поиск по префиксу заголовка и порядок сортировки. Значения приходят
// из query-параметров запроса и передаются в слой доступа к данным.
package models

// Пределы пагинации. Размер страницы по умолчанию 10, максимум 10000.
const (
	DefaultPageSize = 10
	MaxPageSize     = 10000
)

// ListOptions параметры постраничной выборки.
// Search задаёт префикс заголовка (пустая строка — без фильтра),
// Descending инвертирует порядок сортировки по дате создания.
type ListOptions struct {
	Page       int    // Номер страницы, начиная с 1
	PageSize   int    // Размер страницы
	Search     string // Префикс для поиска по заголовку
	Descending bool   // Сортировка по убыванию даты
}

// Normalize приводит параметры к допустимым значениям.
func (o *ListOptions) Normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
}

// Offset возвращает смещение выборки для текущей страницы.
func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}
