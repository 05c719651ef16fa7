package handler

import (
	"context"
	"errors"
	"fmt"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/ivanpodgorny/sprayweb/internal/service"
	"github.com/ivanpodgorny/sprayweb/internal/view"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	resultAssigned = "assigned"
	resultFailed   = "failed"
)

var assignmentNotices = map[string]view.Notice{
	resultAssigned: {Positive: true, Text: "Sprayer assigned successfully!"},
	resultFailed:   {Positive: false, Text: "Failed to assign sprayer. Please try again."},
}

type Assignment struct {
	assigner SprayerAssigner
	renderer Renderer
	location *time.Location
	now      func() time.Time
}

type SprayerAssigner interface {
	Listing(ctx context.Context, orderID int64, now time.Time, page int) service.SprayerListing
	Assign(ctx context.Context, orderID, sprayerID int64, confirmed bool) error
}

type SprayerContent struct {
	OrderID int64
	Listing service.SprayerListing
	Result  string
}

type ConfirmContent struct {
	OrderID   int64
	SprayerID int64
	Page      int
}

func NewAssignment(a SprayerAssigner, rnd Renderer, loc *time.Location) *Assignment {
	return &Assignment{
		assigner: a,
		renderer: rnd,
		location: loc,
		now:      time.Now,
	}
}

// Sprayers отображает страницу исполнителей, свободных для заказа на текущей неделе.
// Параметр result показывает результат последнего назначения.
func (h *Assignment) Sprayers(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		badRequest(w)

		return
	}

	var (
		query   = r.URL.Query()
		content = SprayerContent{
			OrderID: orderID,
			Listing: h.assigner.Listing(r.Context(), orderID, h.now().In(h.location), pageNumber(query.Get("page"))),
		}
		notice, hasResult = assignmentNotices[query.Get("result")]
	)
	if hasResult {
		content.Result = query.Get("result")
	}

	page := view.NewPage(r, fmt.Sprintf("Order #%d", orderID), content)
	if hasResult {
		page = page.WithNotice(notice.Positive, notice.Text)
	}

	render(w, r, h.renderer, http.StatusOK, "sprayers", page)
}

// Assign назначает исполнителя на заказ. Без подтверждения (confirm=yes) отображает
// запрос подтверждения. После отправки команды перенаправляет на список исполнителей
// с результатом назначения.
func (h *Assignment) Assign(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		badRequest(w)

		return
	}

	sprayerID, err := pathID(r, "sprayerID")
	if err != nil {
		badRequest(w)

		return
	}

	if err := r.ParseForm(); err != nil {
		badRequest(w)

		return
	}

	page := pageNumber(r.PostForm.Get("page"))
	err = h.assigner.Assign(r.Context(), orderID, sprayerID, r.PostForm.Get("confirm") == "yes")
	if errors.Is(err, inerr.ErrNotConfirmed) {
		content := ConfirmContent{
			OrderID:   orderID,
			SprayerID: sprayerID,
			Page:      page,
		}
		render(w, r, h.renderer, http.StatusOK, "confirm", view.NewPage(r, "Assign sprayer", content))

		return
	}

	result := resultAssigned
	if err != nil {
		result = resultFailed
	}

	redirect(w, r, listingURL(orderID, page, result))
}

func listingURL(orderID int64, page int, result string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("result", result)

	return fmt.Sprintf("/receptionist/orders/%d/sprayers?%s", orderID, q.Encode())
}
