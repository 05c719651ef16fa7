package client

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/imroc/req/v3"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/ivanpodgorny/sprayweb/internal/metrics"
	"strconv"
	"time"
)

// Backend - клиент REST API бэкенда маркетплейса. Все решения о заказах
// (назначение исполнителей, оплата, смена статусов) принимает бэкенд.
type Backend struct {
	req *req.Client
}

type accessTokenContextKey string

const (
	accessTokenKey     accessTokenContextKey = "accessToken"
	defaultQRImageType                       = "image/png"
)

func NewBackend(addr string, timeout time.Duration) *Backend {
	return newBackend(req.C().SetBaseURL(addr).SetTimeout(timeout))
}

func newBackend(c *req.Client) *Backend {
	c.OnBeforeRequest(setAccessToken).OnAfterResponse(countResponse)

	return &Backend{req: c}
}

// WithAccessToken возвращает контекст, запросы с которым будут отправлены
// с токеном доступа в заголовке Authorization. Без него используется токен
// сессии пользователя из контекста, если она есть.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// Orders возвращает записи заказов, доступные текущему пользователю, без разбора:
// проверка схемы выполняется там, где заказ отображается.
func (c *Backend) Orders(ctx context.Context) ([]json.RawMessage, error) {
	respBody := struct {
		Message string            `json:"message"`
		Orders  []json.RawMessage `json:"orders"`
	}{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetSuccessResult(&respBody).
		Get("/order")
	if err != nil {
		return nil, err
	}

	if resp.IsErrorState() {
		return nil, newBackendError(resp)
	}

	return respBody.Orders, nil
}

// Order возвращает заказ по идентификатору.
func (c *Backend) Order(ctx context.Context, id int64) (entity.Order, error) {
	respBody := struct {
		Message string          `json:"message"`
		Order   json.RawMessage `json:"order"`
	}{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetSuccessResult(&respBody).
		SetPathParam("id", formatID(id)).
		Get("/order/{id}")
	if err != nil {
		return entity.Order{}, err
	}

	if resp.IsErrorState() {
		return entity.Order{}, newBackendError(resp)
	}

	return entity.ParseOrder(respBody.Order)
}

// SuggestedSprayers возвращает исполнителей, свободных для заказа в промежутке
// [start, end], заданном в миллисекундах.
func (c *Backend) SuggestedSprayers(ctx context.Context, orderID, start, end int64) ([]entity.Sprayer, error) {
	respBody := struct {
		Message  string           `json:"message"`
		Sprayers []entity.Sprayer `json:"sprayers"`
	}{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetSuccessResult(&respBody).
		SetPathParam("id", formatID(orderID)).
		SetQueryParam("startDate", strconv.FormatInt(start, 10)).
		SetQueryParam("endDate", strconv.FormatInt(end, 10)).
		Get("/order/{id}/suggested-sprayers")
	if err != nil {
		return nil, err
	}

	if resp.IsErrorState() {
		return nil, newBackendError(resp)
	}

	return respBody.Sprayers, nil
}

// AssignSprayers назначает исполнителей на заказ.
func (c *Backend) AssignSprayers(ctx context.Context, orderID int64, sprayerIDs []int64) (entity.Sprayer, error) {
	respBody := struct {
		Message string         `json:"message"`
		DTO     entity.Sprayer `json:"dto"`
	}{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetBody(&struct {
			SprayerIDs []int64 `json:"sprayerIds"`
		}{SprayerIDs: sprayerIDs}).
		SetSuccessResult(&respBody).
		SetPathParam("id", formatID(orderID)).
		Post("/order/{id}/assign-sprayer")
	if err != nil {
		return entity.Sprayer{}, err
	}

	if resp.IsErrorState() {
		return entity.Sprayer{}, newBackendError(resp)
	}

	return respBody.DTO, nil
}

// ConfirmCashPayment подтверждает оплату заказа наличными. Возвращает сообщение бэкенда.
func (c *Backend) ConfirmCashPayment(ctx context.Context, orderID int64) (string, error) {
	return c.postCommand(ctx, "/order/{id}/confirm-cash-payment", orderID, nil)
}

// UpdateStatus переводит заказ в статус status. Возвращает сообщение бэкенда.
func (c *Backend) UpdateStatus(ctx context.Context, orderID int64, status entity.Status) (string, error) {
	return c.postCommand(ctx, "/order/{id}/update-status", orderID, &struct {
		Status entity.Status `json:"status"`
	}{Status: status})
}

// GenerateQR возвращает изображение QR-кода заказа.
func (c *Backend) GenerateQR(ctx context.Context, orderID int64) (entity.QRCode, error) {
	resp, err := c.req.R().
		SetContext(ctx).
		SetPathParam("id", formatID(orderID)).
		Get("/order/{id}/generate-qr")
	if err != nil {
		return entity.QRCode{}, err
	}

	if resp.IsErrorState() {
		return entity.QRCode{}, newBackendError(resp)
	}

	data, err := resp.ToBytes()
	if err != nil {
		return entity.QRCode{}, err
	}

	if len(data) == 0 {
		return entity.QRCode{}, fmt.Errorf("empty qr code for order %d", orderID)
	}

	contentType := resp.GetContentType()
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = defaultQRImageType
	}

	return entity.QRCode{Data: data, ContentType: contentType}, nil
}

func (c *Backend) postCommand(ctx context.Context, path string, orderID int64, body any) (string, error) {
	respBody := struct {
		Message string `json:"message"`
	}{}
	r := c.req.R().
		SetContext(ctx).
		SetSuccessResult(&respBody).
		SetPathParam("id", formatID(orderID))
	if body != nil {
		r.SetBody(body)
	}

	resp, err := r.Post(path)
	if err != nil {
		return "", err
	}

	if resp.IsErrorState() {
		return "", newBackendError(resp)
	}

	return respBody.Message, nil
}

func newBackendError(resp *req.Response) error {
	respBody := struct {
		Message string `json:"message"`
	}{}
	if b, err := resp.ToBytes(); err == nil && len(b) > 0 {
		_ = json.Unmarshal(b, &respBody)
	}

	return &inerr.BackendError{
		StatusCode: resp.StatusCode,
		Message:    respBody.Message,
	}
}

func setAccessToken(_ *req.Client, r *req.Request) error {
	token, _ := r.Context().Value(accessTokenKey).(string)
	if s, ok := entity.CurrentSession(r.Context()); ok && token == "" {
		token = s.AccessToken
	}

	if token != "" {
		r.SetBearerAuthToken(token)
	}

	return nil
}

func countResponse(_ *req.Client, resp *req.Response) error {
	code := "error"
	method := ""
	if resp.Response != nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	if resp.Request != nil {
		method = resp.Request.Method
	}
	metrics.BackendRequestsTotal.WithLabelValues(method, code).Inc()

	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
