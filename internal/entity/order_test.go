package entity

import (
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

const validOrder = `{
	"location": {"latitude": 10.762622, "longitude": 106.660172},
	"id": 42,
	"address": "Long An",
	"cropType": "RICE",
	"farmerName": "Nguyen Van A",
	"farmerPhoneNumber": "0901234567",
	"farmlandArea": 2.5,
	"desiredDate": 1718236800,
	"timeSlot": "04:30 - 05:30",
	"assignedSprayerIds": [],
	"paymentStatus": false,
	"bookerId": 7,
	"totalCost": 1250000,
	"createdAt": 1717977600,
	"status": "assigned",
	"updatedAt": 1717977600,
	"paymentMethod": "CASH",
	"hasFeedback": false,
	"extra": "ignored"
}`

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder([]byte(validOrder))
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, StatusAssigned, order.Status)
	assert.True(t, order.IsAssigned())
	assert.True(t, decimal.NewFromInt(1250000).Equal(order.TotalCost))
	assert.Equal(t, 10.762622, order.Location.Latitude)
	assert.Empty(t, order.AssignedSprayerIDs)
}

func TestParseOrder_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "id передан строкой",
			raw:  strings.Replace(validOrder, `"id": 42`, `"id": "42"`, 1),
		},
		{
			name: "отсутствует обязательное поле",
			raw:  strings.Replace(validOrder, `"timeSlot": "04:30 - 05:30",`, "", 1),
		},
		{
			name: "null вместо числа",
			raw:  strings.Replace(validOrder, `"bookerId": 7`, `"bookerId": null`, 1),
		},
		{
			name: "стоимость передана строкой",
			raw:  strings.Replace(validOrder, `"totalCost": 1250000`, `"totalCost": "1250000"`, 1),
		},
		{
			name: "нет координат",
			raw:  strings.Replace(validOrder, `"longitude": 106.660172`, `"lng": 106.660172`, 1),
		},
		{
			name: "не json",
			raw:  "order",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrder([]byte(tt.raw))
			assert.ErrorIs(t, err, inerr.ErrInvalidOrder)
		})
	}
}

func TestOrder_DesiredAt(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	order := Order{DesiredDate: 1718236800}

	first := order.DesiredAt(loc).Format("Mon Jan 02 2006")
	second := order.DesiredAt(loc).Format("Mon Jan 02 2006")
	assert.Equal(t, "Thu Jun 13 2024", first)
	assert.Equal(t, first, second, "повторное форматирование дает тот же день")
}
