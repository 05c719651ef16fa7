package handler

import (
	"context"
	"errors"
	"fmt"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/ivanpodgorny/sprayweb/internal/service"
	"github.com/ivanpodgorny/sprayweb/internal/view"
	"net/http"
)

const (
	qrFailure             = "Failed to generate QR"
	confirmPaymentFailure = "Failed to confirm cash payment"
	updateStatusFailure   = "Failed to update order status"
	sprayerOrdersPath     = "/sprayer/assign-orders"
)

// OrderDetail обрабатывает карточку заказа исполнителя и ее команды. Успешная команда
// закрывает карточку, неудачная - отображает карточку повторно с сообщением об ошибке.
type OrderDetail struct {
	workflow OrderWorkflow
	board    OrderBoard
	renderer Renderer
}

type OrderWorkflow interface {
	Order(ctx context.Context, id int64) (entity.Order, error)
	ConfirmPayment(ctx context.Context, orderID int64) error
	UpdateStatus(ctx context.Context, orderID int64, status entity.Status) error
	QRCode(ctx context.Context, orderID int64) (entity.QRCode, error)
}

type OrderContent struct {
	Detail  service.OrderDetail
	Targets []entity.Status
	QR      *entity.QRCode
	QRError string
	Error   string
}

func NewOrderDetail(wf OrderWorkflow, b OrderBoard, rnd Renderer) *OrderDetail {
	return &OrderDetail{
		workflow: wf,
		board:    b,
		renderer: rnd,
	}
}

func (h *OrderDetail) Show(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, func(context.Context, int64, *OrderContent) {})
}

// QRCode отображает карточку заказа с QR-кодом для оплаты.
func (h *OrderDetail) QRCode(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, func(ctx context.Context, id int64, c *OrderContent) {
		qr, err := h.workflow.QRCode(ctx, id)
		if err != nil {
			c.QRError = qrFailure

			return
		}
		c.QR = &qr
	})
}

func (h *OrderDetail) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w)

		return
	}

	if err := h.workflow.ConfirmPayment(r.Context(), id); err != nil {
		h.showError(w, r, confirmPaymentFailure)

		return
	}

	redirect(w, r, sprayerOrdersPath+"?notice=payment-confirmed")
}

// UpdateStatus переводит заказ в статус из поля формы status.
func (h *OrderDetail) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w)

		return
	}

	if err := r.ParseForm(); err != nil {
		badRequest(w)

		return
	}

	err = h.workflow.UpdateStatus(r.Context(), id, entity.ParseStatus(r.PostForm.Get("status")))
	if errors.Is(err, inerr.ErrInvalidTransition) {
		badRequest(w)

		return
	} else if err != nil {
		h.showError(w, r, updateStatusFailure)

		return
	}

	redirect(w, r, sprayerOrdersPath+"?notice=status-updated")
}

func (h *OrderDetail) showError(w http.ResponseWriter, r *http.Request, message string) {
	h.show(w, r, http.StatusBadGateway, func(_ context.Context, _ int64, c *OrderContent) {
		c.Error = message
	})
}

// show загружает заказ и отображает карточку. Функция fill дополняет данные карточки.
func (h *OrderDetail) show(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	fill func(ctx context.Context, id int64, c *OrderContent),
) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w)

		return
	}

	order, err := h.workflow.Order(r.Context(), id)
	if err != nil {
		internalError(w, r, err)

		return
	}

	content := OrderContent{
		Detail:  h.board.Detail(order),
		Targets: entity.TransitionTargets(),
	}
	fill(r.Context(), id, &content)

	render(w, r, h.renderer, status, "order", view.NewPage(r, fmt.Sprintf("Order #%d", id), content))
}
