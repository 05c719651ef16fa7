package service

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	"github.com/ivanpodgorny/sprayweb/internal/lunar"
	"strings"
	"time"
)

// Board готовит таблицу заказов и панель подробностей строки.
type Board struct {
	client   BoardClient
	lunar    LunarConverter
	location *time.Location
}

type BoardClient interface {
	Orders(ctx context.Context) ([]json.RawMessage, error)
}

type LunarConverter interface {
	FromSolar(t time.Time) lunar.Date
}

// OrderDetail - данные панели подробностей заказа.
type OrderDetail struct {
	Order     entity.Order
	Status    entity.Display
	Payment   entity.Display
	CropType  string
	CreatedAt time.Time
	DesiredAt time.Time
	LunarDate lunar.Date
	ShowCost  bool
}

func NewBoard(c BoardClient, l LunarConverter, loc *time.Location) *Board {
	return &Board{
		client:   c,
		lunar:    l,
		location: loc,
	}
}

// Rows возвращает заказы для таблицы. Каждая запись проверяется на соответствие схеме
// заказа; первая же несоответствующая запись прерывает построение таблицы ошибкой.
func (s *Board) Rows(ctx context.Context) ([]entity.Order, error) {
	raw, err := s.client.Orders(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]entity.Order, 0, len(raw))
	for i, r := range raw {
		o, err := entity.ParseOrder(r)
		if err != nil {
			return nil, fmt.Errorf("order #%d: %w", i, err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Detail возвращает данные панели подробностей заказа. Лунная дата вычисляется
// для того же календарного дня, что и григорианская.
func (s *Board) Detail(o entity.Order) OrderDetail {
	desiredAt := o.DesiredAt(s.location)

	return OrderDetail{
		Order:     o,
		Status:    o.Status.Display(),
		Payment:   entity.PaymentDisplay(o.PaymentStatus),
		CropType:  strings.ToLower(o.CropType),
		CreatedAt: o.CreatedAtTime(s.location),
		DesiredAt: desiredAt,
		LunarDate: s.lunar.FromSolar(desiredAt),
		ShowCost:  o.IsAssigned(),
	}
}

// Find возвращает заказ с идентификатором id из orders.
func Find(orders []entity.Order, id int64) (entity.Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}

	return entity.Order{}, false
}
