package service

// Page - страница списка. Current лежит в диапазоне [1, Total] или равен 0 для пустого списка.
type Page[T any] struct {
	Items   []T
	Current int
	Total   int
	HasPrev bool
	HasNext bool
}

// Paginate возвращает страницу page списка items по size элементов. Номер страницы
// приводится к диапазону [1, ceil(len(items)/size)].
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}

	p := Page[T]{Total: (len(items) + size - 1) / size}
	if p.Total == 0 {
		return p
	}

	p.Current = min(max(page, 1), p.Total)
	from := (p.Current - 1) * size
	p.Items = items[from:min(from+size, len(items))]
	p.HasPrev = p.Current > 1
	p.HasNext = p.Current < p.Total

	return p
}

func (p Page[T]) Prev() int {
	if !p.HasPrev {
		return p.Current
	}

	return p.Current - 1
}

func (p Page[T]) Next() int {
	if !p.HasNext {
		return p.Current
	}

	return p.Current + 1
}

func (p Page[T]) Empty() bool {
	return p.Total == 0
}
