package service

import (
	"context"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/ivanpodgorny/sprayweb/internal/metrics"
	"go.uber.org/zap"
	"time"
)

const SprayersPerPage = 5

type Assignment struct {
	client AssignmentClient
	logger *zap.Logger
}

type AssignmentClient interface {
	SuggestedSprayers(ctx context.Context, orderID, start, end int64) ([]entity.Sprayer, error)
	AssignSprayers(ctx context.Context, orderID int64, sprayerIDs []int64) (entity.Sprayer, error)
}

// SprayerListing - страница исполнителей, свободных для заказа в течение недели.
type SprayerListing struct {
	Window Window
	Page   Page[entity.Sprayer]
}

func NewAssignment(c AssignmentClient, l *zap.Logger) *Assignment {
	return &Assignment{
		client: c,
		logger: l,
	}
}

// Listing запрашивает исполнителей, свободных для заказа на неделе, содержащей now,
// и возвращает страницу page по SprayersPerPage исполнителей. Ошибка запроса
// записывается в лог, а результат отображается как пустой список.
func (s *Assignment) Listing(ctx context.Context, orderID int64, now time.Time, page int) SprayerListing {
	window := WeekWindow(now)
	sprayers, err := s.client.SuggestedSprayers(ctx, orderID, window.StartMillis(), window.EndMillis())
	if err != nil {
		s.logger.Warn(
			"failed to retrieve sprayers",
			zap.Int64("order", orderID),
			zap.Error(err),
		)
		sprayers = nil
	}

	return SprayerListing{
		Window: window,
		Page:   Paginate(sprayers, page, SprayersPerPage),
	}
}

// Assign назначает исполнителя на заказ. Без подтверждения пользователя команда
// не отправляется и возвращается errors.ErrNotConfirmed.
func (s *Assignment) Assign(ctx context.Context, orderID, sprayerID int64, confirmed bool) error {
	if !confirmed {
		return inerr.ErrNotConfirmed
	}

	_, err := s.client.AssignSprayers(ctx, orderID, []int64{sprayerID})
	metrics.AssignmentsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		s.logger.Info(
			"sprayer assignment failed",
			zap.Int64("order", orderID),
			zap.Int64("sprayer", sprayerID),
			zap.Error(err),
		)
	}

	return err
}
