package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultJobTimeout = 2 * time.Minute

// HolidayRefresher загружает праздники за год из источников
type HolidayRefresher interface {
	Refresh(ctx context.Context, year int) (map[string]string, string, error)
}

// CalendarWarmer прогревает кэш календаря
type CalendarWarmer interface {
	Warm(ctx context.Context, years ...int)
}

// HolidayScheduler по расписанию обновляет праздники текущего и следующего года
type HolidayScheduler struct {
	cronEngine *cron.Cron
	refresher  HolidayRefresher
	calendar   CalendarWarmer
	logger     *logrus.Logger
	spec       string
	timeout    time.Duration
	now        func() time.Time
}

func NewHolidayScheduler(refresher HolidayRefresher, calendar CalendarWarmer, logger *logrus.Logger, spec string) *HolidayScheduler {
	return &HolidayScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		refresher:  refresher,
		calendar:   calendar,
		logger:     logger,
		spec:       spec,
		timeout:    defaultJobTimeout,
		now:        time.Now,
	}
}

// Start регистрирует задачу и запускает планировщик
func (s *HolidayScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.spec, s.RunOnce); err != nil {
		s.logger.WithError(err).WithField("spec", s.spec).Error("Could not add holiday prefetch job")
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.spec).Info("Holiday scheduler started")
	return nil
}

// RunOnce обновляет текущий и следующий год. Ошибки только логируются.
func (s *HolidayScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	year := s.now().Year()
	years := []int{year, year + 1}

	for _, y := range years {
		if _, source, err := s.refresher.Refresh(ctx, y); err != nil {
			s.logger.WithError(err).WithField("year", y).Warn("Holiday prefetch failed")
		} else {
			s.logger.WithFields(logrus.Fields{
				"year":   y,
				"source": source,
			}).Info("Holiday prefetch completed")
		}
	}

	if s.calendar != nil {
		s.calendar.Warm(ctx, years...)
	}
}

func (s *HolidayScheduler) Stop() {
	s.logger.Info("Stopping holiday scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Holiday scheduler stopped")
}
