package view

import (
	"encoding/base64"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	"github.com/shopspring/decimal"
	"html/template"
	"strings"
	"time"
)

const (
	dateLayout          = "Mon Jan 02 2006"
	moneyFractionDigits = 3
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":    Date,
		"money":   Money,
		"lower":   strings.ToLower,
		"dataURL": DataURL,
	}
}

func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// Money форматирует сумму в донгах: "đ 1,234,567.5". Дробная часть округляется
// до трех знаков, незначащие нули отбрасываются.
func Money(d decimal.Decimal) string {
	rounded := d.Round(moneyFractionDigits)
	digits, fraction, _ := strings.Cut(rounded.Abs().String(), ".")

	var b strings.Builder
	b.WriteString("đ ")
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if fraction != "" {
		b.WriteByte('.')
		b.WriteString(fraction)
	}

	return b.String()
}

// DataURL возвращает изображение QR-кода в виде data URL для атрибута src.
// Для содержимого, не являющегося изображением, возвращает пустую ссылку.
func DataURL(qr entity.QRCode) template.URL {
	if !strings.HasPrefix(qr.ContentType, "image/") {
		return ""
	}

	return template.URL("data:" + qr.ContentType + ";base64," + base64.StdEncoding.EncodeToString(qr.Data))
}
