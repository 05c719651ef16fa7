package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/shopspring/decimal"
	"time"
)

type Order struct {
	ID                 int64           `json:"id"`
	Location           Location        `json:"location"`
	Address            string          `json:"address"`
	CropType           string          `json:"cropType"`
	FarmerName         string          `json:"farmerName"`
	FarmerPhoneNumber  string          `json:"farmerPhoneNumber"`
	FarmlandArea       float64         `json:"farmlandArea"`
	DesiredDate        int64           `json:"desiredDate"`
	TimeSlot           string          `json:"timeSlot"`
	AssignedSprayerIDs []int64         `json:"assignedSprayerIds"`
	PaymentStatus      bool            `json:"paymentStatus"`
	BookerID           int64           `json:"bookerId"`
	TotalCost          decimal.Decimal `json:"totalCost"`
	CreatedAt          int64           `json:"createdAt"`
	Status             Status          `json:"status"`
	UpdatedAt          int64           `json:"updatedAt"`
	PaymentMethod      string          `json:"paymentMethod"`
	HasFeedback        bool            `json:"hasFeedback"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type jsonKind byte

const (
	kindNumber jsonKind = iota
	kindString
	kindBool
	kindArray
	kindObject
)

var (
	orderSchema = map[string]jsonKind{
		"location":           kindObject,
		"id":                 kindNumber,
		"address":            kindString,
		"cropType":           kindString,
		"farmerName":         kindString,
		"farmerPhoneNumber":  kindString,
		"farmlandArea":       kindNumber,
		"desiredDate":        kindNumber,
		"timeSlot":           kindString,
		"assignedSprayerIds": kindArray,
		"paymentStatus":      kindBool,
		"bookerId":           kindNumber,
		"totalCost":          kindNumber,
		"createdAt":          kindNumber,
		"status":             kindString,
		"updatedAt":          kindNumber,
		"paymentMethod":      kindString,
		"hasFeedback":        kindBool,
	}
	locationSchema = map[string]jsonKind{
		"latitude":  kindNumber,
		"longitude": kindNumber,
	}
)

// ParseOrder проверяет запись заказа, полученную от бэкенда, на соответствие схеме
// и возвращает разобранный заказ. Все поля схемы обязательны, лишние поля игнорируются.
// Любое несоответствие возвращает ошибку, оборачивающую errors.ErrInvalidOrder.
func ParseOrder(raw []byte) (Order, error) {
	order := Order{}
	fields, err := checkSchema(raw, orderSchema)
	if err != nil {
		return order, err
	}

	if _, err := checkSchema(fields["location"], locationSchema); err != nil {
		return order, fmt.Errorf("location: %w", err)
	}

	if err := json.Unmarshal(raw, &order); err != nil {
		return order, fmt.Errorf("%w: %v", inerr.ErrInvalidOrder, err)
	}

	return order, nil
}

// DesiredAt возвращает желаемую дату обработки в часовом поясе loc.
func (o Order) DesiredAt(loc *time.Location) time.Time {
	return time.Unix(o.DesiredDate, 0).In(loc)
}

func (o Order) CreatedAtTime(loc *time.Location) time.Time {
	return time.Unix(o.CreatedAt, 0).In(loc)
}

func (o Order) IsAssigned() bool {
	return o.Status == StatusAssigned
}

func checkSchema(raw []byte, schema map[string]jsonKind) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", inerr.ErrInvalidOrder, err)
	}

	for name, kind := range schema {
		value, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: field %q is required", inerr.ErrInvalidOrder, name)
		}

		if !hasKind(value, kind) {
			return nil, fmt.Errorf("%w: field %q has wrong type", inerr.ErrInvalidOrder, name)
		}
	}

	return fields, nil
}

func hasKind(value json.RawMessage, kind jsonKind) bool {
	v := bytes.TrimSpace(value)
	if len(v) == 0 {
		return false
	}

	switch kind {
	case kindString:
		return v[0] == '"'
	case kindBool:
		return bytes.Equal(v, []byte("true")) || bytes.Equal(v, []byte("false"))
	case kindArray:
		return v[0] == '['
	case kindObject:
		return v[0] == '{'
	default:
		return v[0] == '-' || (v[0] >= '0' && v[0] <= '9')
	}
}
