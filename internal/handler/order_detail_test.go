package handler

import (
	"context"
	"errors"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/ivanpodgorny/sprayweb/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/url"
	"testing"
)

type OrderWorkflowMock struct {
	mock.Mock
}

func (m *OrderWorkflowMock) Order(_ context.Context, id int64) (entity.Order, error) {
	args := m.Called(id)

	return args.Get(0).(entity.Order), args.Error(1)
}

func (m *OrderWorkflowMock) ConfirmPayment(_ context.Context, orderID int64) error {
	args := m.Called(orderID)

	return args.Error(0)
}

func (m *OrderWorkflowMock) UpdateStatus(_ context.Context, orderID int64, status entity.Status) error {
	args := m.Called(orderID, status)

	return args.Error(0)
}

func (m *OrderWorkflowMock) QRCode(_ context.Context, orderID int64) (entity.QRCode, error) {
	args := m.Called(orderID)

	return args.Get(0).(entity.QRCode), args.Error(1)
}

func orderRequest(method, target string, form url.Values) *http.Request {
	return withRole(
		withURLParams(newTestRequest(method, target, form), map[string]string{"id": "42"}),
		entity.RoleSprayer,
	)
}

func TestOrderDetail_QRCode(t *testing.T) {
	var (
		order  = entity.Order{ID: 42, Status: entity.StatusAssigned}
		detail = service.OrderDetail{Order: order}
		qr     = entity.QRCode{Data: []byte("png"), ContentType: "image/png"}
	)

	tests := []struct {
		name        string
		qr          entity.QRCode
		err         error
		wantQR      *entity.QRCode
		wantQRError string
	}{
		{
			name:   "QR-код получен",
			qr:     qr,
			wantQR: &qr,
		},
		{
			name:        "ошибка генерации QR-кода",
			err:         errors.New(""),
			wantQRError: "Failed to generate QR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				workflow = &OrderWorkflowMock{}
				board    = &OrderBoardMock{}
				renderer = &RendererMock{}
			)
			workflow.On("Order", int64(42)).Return(order, nil).Once()
			workflow.On("QRCode", int64(42)).Return(tt.qr, tt.err).Once()
			board.On("Detail", order).Return(detail).Once()
			renderer.On("Render", http.StatusOK, "order", noNotice).Return(nil).Once()
			handler := NewOrderDetail(workflow, board, renderer)

			result := sendTestRequest(orderRequest(http.MethodGet, "/sprayer/orders/42/qr", nil), handler.QRCode)
			assert.Equal(t, http.StatusOK, result.StatusCode)
			require.NoError(t, result.Body.Close())

			content, ok := renderer.page.Content.(OrderContent)
			require.True(t, ok)
			assert.Equal(t, detail, content.Detail)
			assert.Equal(t, entity.TransitionTargets(), content.Targets)
			assert.Equal(t, tt.wantQR, content.QR)
			assert.Equal(t, tt.wantQRError, content.QRError)
			workflow.AssertExpectations(t)
			board.AssertExpectations(t)
			renderer.AssertExpectations(t)
		})
	}
}

func TestOrderDetail_ShowOrderUnavailable(t *testing.T) {
	workflow := &OrderWorkflowMock{}
	workflow.On("Order", int64(42)).Return(entity.Order{}, inerr.ErrInvalidOrder).Once()
	handler := NewOrderDetail(workflow, &OrderBoardMock{}, &RendererMock{})

	result := sendTestRequest(orderRequest(http.MethodGet, "/sprayer/orders/42", nil), handler.Show)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	require.NoError(t, result.Body.Close())
	workflow.AssertExpectations(t)
}

func TestOrderDetail_Commands(t *testing.T) {
	order := entity.Order{ID: 42}

	tests := []struct {
		name           string
		prepare        func(m *OrderWorkflowMock)
		handler        func(h *OrderDetail) http.HandlerFunc
		form           url.Values
		wantStatusCode int
		wantLocation   string
		wantError      string
	}{
		{
			name: "оплата подтверждена",
			prepare: func(m *OrderWorkflowMock) {
				m.On("ConfirmPayment", int64(42)).Return(nil).Once()
			},
			handler:        func(h *OrderDetail) http.HandlerFunc { return h.ConfirmPayment },
			wantStatusCode: http.StatusSeeOther,
			wantLocation:   "/sprayer/assign-orders?notice=payment-confirmed",
		},
		{
			name: "ошибка подтверждения оплаты",
			prepare: func(m *OrderWorkflowMock) {
				m.On("ConfirmPayment", int64(42)).Return(errors.New("")).Once()
				m.On("Order", int64(42)).Return(order, nil).Once()
			},
			handler:        func(h *OrderDetail) http.HandlerFunc { return h.ConfirmPayment },
			wantStatusCode: http.StatusBadGateway,
			wantError:      "Failed to confirm cash payment",
		},
		{
			name: "статус обновлен",
			prepare: func(m *OrderWorkflowMock) {
				m.On("UpdateStatus", int64(42), entity.StatusInProgress).Return(nil).Once()
			},
			handler:        func(h *OrderDetail) http.HandlerFunc { return h.UpdateStatus },
			form:           url.Values{"status": {"in_progress"}},
			wantStatusCode: http.StatusSeeOther,
			wantLocation:   "/sprayer/assign-orders?notice=status-updated",
		},
		{
			name: "недопустимый статус",
			prepare: func(m *OrderWorkflowMock) {
				m.On("UpdateStatus", int64(42), entity.StatusCancelled).Return(inerr.ErrInvalidTransition).Once()
			},
			handler:        func(h *OrderDetail) http.HandlerFunc { return h.UpdateStatus },
			form:           url.Values{"status": {"CANCELLED"}},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "ошибка обновления статуса",
			prepare: func(m *OrderWorkflowMock) {
				m.On("UpdateStatus", int64(42), entity.StatusCompleted).Return(errors.New("")).Once()
				m.On("Order", int64(42)).Return(order, nil).Once()
			},
			handler:        func(h *OrderDetail) http.HandlerFunc { return h.UpdateStatus },
			form:           url.Values{"status": {"COMPLETED"}},
			wantStatusCode: http.StatusBadGateway,
			wantError:      "Failed to update order status",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				workflow = &OrderWorkflowMock{}
				board    = &OrderBoardMock{}
				renderer = &RendererMock{}
			)
			tt.prepare(workflow)
			if tt.wantError != "" {
				board.On("Detail", order).Return(service.OrderDetail{Order: order}).Once()
				renderer.On("Render", tt.wantStatusCode, "order", noNotice).Return(nil).Once()
			}
			handler := NewOrderDetail(workflow, board, renderer)

			result := sendTestRequest(orderRequest(http.MethodPost, "/sprayer/orders/42", tt.form), tt.handler(handler))
			assert.Equal(t, tt.wantStatusCode, result.StatusCode)
			assert.Equal(t, tt.wantLocation, result.Header.Get("Location"))
			require.NoError(t, result.Body.Close())
			if tt.wantError != "" {
				content, ok := renderer.page.Content.(OrderContent)
				require.True(t, ok)
				assert.Equal(t, tt.wantError, content.Error, "карточка остается открытой")
			}
			workflow.AssertExpectations(t)
			board.AssertExpectations(t)
			renderer.AssertExpectations(t)
		})
	}
}
