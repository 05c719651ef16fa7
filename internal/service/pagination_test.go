package service

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	tests := []struct {
		name        string
		items       []int
		page        int
		wantItems   []int
		wantCurrent int
		wantTotal   int
		wantPrev    bool
		wantNext    bool
	}{
		{
			name:        "первая страница",
			items:       items,
			page:        1,
			wantItems:   []int{1, 2, 3, 4, 5},
			wantCurrent: 1,
			wantTotal:   3,
			wantNext:    true,
		},
		{
			name:        "средняя страница",
			items:       items,
			page:        2,
			wantItems:   []int{6, 7, 8, 9, 10},
			wantCurrent: 2,
			wantTotal:   3,
			wantPrev:    true,
			wantNext:    true,
		},
		{
			name:        "неполная последняя страница",
			items:       items,
			page:        3,
			wantItems:   []int{11, 12},
			wantCurrent: 3,
			wantTotal:   3,
			wantPrev:    true,
		},
		{
			name:        "номер страницы больше количества страниц",
			items:       items,
			page:        10,
			wantItems:   []int{11, 12},
			wantCurrent: 3,
			wantTotal:   3,
			wantPrev:    true,
		},
		{
			name:        "номер страницы меньше единицы",
			items:       items,
			page:        -1,
			wantItems:   []int{1, 2, 3, 4, 5},
			wantCurrent: 1,
			wantTotal:   3,
			wantNext:    true,
		},
		{
			name:        "ровно одна страница",
			items:       items[:5],
			page:        1,
			wantItems:   []int{1, 2, 3, 4, 5},
			wantCurrent: 1,
			wantTotal:   1,
		},
		{
			name:        "пустой список",
			items:       nil,
			page:        1,
			wantCurrent: 0,
			wantTotal:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.items, tt.page, SprayersPerPage)
			assert.Equal(t, tt.wantItems, p.Items)
			assert.Equal(t, tt.wantCurrent, p.Current)
			assert.Equal(t, tt.wantTotal, p.Total)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantTotal == 0, p.Empty())
		})
	}
}

func TestPaginate_TotalPages(t *testing.T) {
	for n := 0; n <= 23; n++ {
		p := Paginate(make([]int, n), 1, 5)
		assert.Equal(t, (n+4)/5, p.Total, "ceil(%d/5)", n)
	}
}

func TestPage_PrevNext(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	first := Paginate(items, 1, 5)
	assert.Equal(t, 1, first.Prev(), "на первой странице переход назад невозможен")
	assert.Equal(t, 2, first.Next())

	last := Paginate(items, 2, 5)
	assert.Equal(t, 1, last.Prev())
	assert.Equal(t, 2, last.Next(), "на последней странице переход вперед невозможен")
}
