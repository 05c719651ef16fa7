package service

import (
	"context"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/ivanpodgorny/sprayweb/internal/metrics"
)

const (
	commandConfirmPayment = "confirm_cash_payment"
	commandUpdateStatus   = "update_status"
	commandGenerateQR     = "generate_qr"
)

// Workflow выполняет команды карточки заказа. Каждая команда возвращает ошибку,
// чтобы вызывающий мог отличить неудачу от успеха.
type Workflow struct {
	client WorkflowClient
}

type WorkflowClient interface {
	Order(ctx context.Context, id int64) (entity.Order, error)
	ConfirmCashPayment(ctx context.Context, orderID int64) (string, error)
	UpdateStatus(ctx context.Context, orderID int64, status entity.Status) (string, error)
	GenerateQR(ctx context.Context, orderID int64) (entity.QRCode, error)
}

func NewWorkflow(c WorkflowClient) *Workflow {
	return &Workflow{client: c}
}

func (s *Workflow) Order(ctx context.Context, id int64) (entity.Order, error) {
	return s.client.Order(ctx, id)
}

// ConfirmPayment подтверждает оплату заказа наличными.
func (s *Workflow) ConfirmPayment(ctx context.Context, orderID int64) error {
	_, err := s.client.ConfirmCashPayment(ctx, orderID)
	metrics.OrderCommandsTotal.WithLabelValues(commandConfirmPayment, metrics.Outcome(err)).Inc()

	return err
}

// UpdateStatus переводит заказ в статус status. Статус должен быть одним из
// entity.TransitionTargets, иначе возвращается errors.ErrInvalidTransition.
func (s *Workflow) UpdateStatus(ctx context.Context, orderID int64, status entity.Status) error {
	if !status.IsTransitionTarget() {
		return inerr.ErrInvalidTransition
	}

	_, err := s.client.UpdateStatus(ctx, orderID, status)
	metrics.OrderCommandsTotal.WithLabelValues(commandUpdateStatus, metrics.Outcome(err)).Inc()

	return err
}

func (s *Workflow) QRCode(ctx context.Context, orderID int64) (entity.QRCode, error) {
	qr, err := s.client.GenerateQR(ctx, orderID)
	metrics.OrderCommandsTotal.WithLabelValues(commandGenerateQR, metrics.Outcome(err)).Inc()

	return qr, err
}
