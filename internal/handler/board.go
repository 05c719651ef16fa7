package handler

import (
	"context"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	"github.com/ivanpodgorny/sprayweb/internal/service"
	"github.com/ivanpodgorny/sprayweb/internal/view"
	"net/http"
	"strconv"
)

type Board struct {
	board    OrderBoard
	renderer Renderer
}

type OrderBoard interface {
	Rows(ctx context.Context) ([]entity.Order, error)
	Detail(o entity.Order) service.OrderDetail
}

// BoardContent - таблица заказов и открытая панель подробностей строки.
type BoardContent struct {
	Rows      []service.OrderDetail
	Detail    *service.OrderDetail
	CanAssign bool
	CanOpen   bool
}

var boardTitles = map[entity.Role]string{
	entity.RoleFarmer:       "Orders",
	entity.RoleSprayer:      "Assigned orders",
	entity.RoleReceptionist: "Dashboard",
}

var boardNotices = map[string]view.Notice{
	"payment-confirmed": {Positive: true, Text: "Cash payment confirmed."},
	"status-updated":    {Positive: true, Text: "Order status updated."},
}

func NewBoard(b OrderBoard, rnd Renderer) *Board {
	return &Board{
		board:    b,
		renderer: rnd,
	}
}

// Orders отображает таблицу заказов текущего пользователя. Параметр detail открывает
// панель подробностей заказа с этим идентификатором. Назначение исполнителей доступно
// только администратору, карточка заказа - только исполнителю.
func (h *Board) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.board.Rows(r.Context())
	if err != nil {
		internalError(w, r, err)

		return
	}

	var (
		role    = currentRole(r)
		content = BoardContent{
			Rows:      make([]service.OrderDetail, 0, len(orders)),
			CanAssign: role == entity.RoleReceptionist,
			CanOpen:   role == entity.RoleSprayer,
		}
	)
	for _, o := range orders {
		content.Rows = append(content.Rows, h.board.Detail(o))
	}

	if id, err := strconv.ParseInt(r.URL.Query().Get("detail"), 10, 64); err == nil {
		if o, ok := service.Find(orders, id); ok {
			d := h.board.Detail(o)
			content.Detail = &d
		}
	}

	page := view.NewPage(r, boardTitles[role], content)
	if n, ok := boardNotices[r.URL.Query().Get("notice")]; ok {
		page = page.WithNotice(n.Positive, n.Text)
	}

	render(w, r, h.renderer, http.StatusOK, "orders", page)
}

// Booking отображает страницу фермера после регистрации.
func (h *Board) Booking(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.renderer, http.StatusOK, "booking", view.NewPage(r, "Booking", nil))
}

func currentRole(r *http.Request) entity.Role {
	if s, ok := entity.CurrentSession(r.Context()); ok {
		return s.User.Role
	}

	return ""
}
