package entity

import (
	"encoding/json"
	"strings"
)

// Status - статус жизненного цикла заказа. Набор статусов принадлежит бэкенду,
// все неизвестные значения сводятся к StatusUnknown.
type Status string

const (
	StatusUnknown    Status = "UNKNOWN"
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Display описывает отображение статуса: подпись, иконку и CSS-классы бейджа.
type Display struct {
	Label   string
	Icon    string
	Classes string
}

var statusDisplays = map[Status]Display{
	StatusUnknown:    {Label: "Unknown", Icon: "circle-help", Classes: "text-gray-600 border-gray-300"},
	StatusPending:    {Label: "Pending", Icon: "clock", Classes: "text-yellow-600 border-yellow-300"},
	StatusConfirmed:  {Label: "Confirmed", Icon: "circle-check", Classes: "text-sky-600 border-sky-300"},
	StatusAssigned:   {Label: "Assigned", Icon: "user-check", Classes: "text-red-600 border-red-300"},
	StatusInProgress: {Label: "In progress", Icon: "loader", Classes: "text-blue-600 border-blue-300"},
	StatusCompleted:  {Label: "Completed", Icon: "check-check", Classes: "text-green-600 border-green-300"},
	StatusCancelled:  {Label: "Cancelled", Icon: "circle-x", Classes: "text-zinc-500 border-zinc-300"},
}

var paymentDisplays = map[bool]Display{
	true:  {Label: "Paid", Icon: "badge-check", Classes: "text-green-600 border-green-300"},
	false: {Label: "Unpaid", Icon: "badge-x", Classes: "text-red-600 border-red-300"},
}

// transitionTargets - статусы, которые исполнитель может установить командой update-status.
var transitionTargets = []Status{StatusInProgress, StatusCompleted}

var actionLabels = map[Status]string{
	StatusInProgress: "Accept order",
	StatusCompleted:  "Complete order",
}

// ParseStatus сопоставляет строку со статусом без учета регистра.
func ParseStatus(s string) Status {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := statusDisplays[status]; !ok {
		return StatusUnknown
	}

	return status
}

func (s *Status) UnmarshalJSON(b []byte) error {
	str := ""
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	*s = ParseStatus(str)

	return nil
}

func (s Status) Display() Display {
	if d, ok := statusDisplays[s]; ok {
		return d
	}

	return statusDisplays[StatusUnknown]
}

func (s Status) IsTransitionTarget() bool {
	for _, t := range transitionTargets {
		if t == s {
			return true
		}
	}

	return false
}

// ActionLabel возвращает подпись кнопки перевода заказа в статус s.
func (s Status) ActionLabel() string {
	if label, ok := actionLabels[s]; ok {
		return label
	}

	return s.Display().Label
}

func TransitionTargets() []Status {
	return append([]Status(nil), transitionTargets...)
}

func PaymentDisplay(settled bool) Display {
	return paymentDisplays[settled]
}
