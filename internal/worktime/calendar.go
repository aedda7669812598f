package worktime

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DateLayout - формат ключа даты в календаре праздников
const DateLayout = "2006-01-02"

var errEmptyCalendar = errors.New("holiday provider returned no calendar")

// HolidayProvider отдает праздники за год: дата (2006-01-02) -> название
type HolidayProvider interface {
	Holidays(ctx context.Context, year int) (map[string]string, error)
}

// HolidayProviderFunc позволяет использовать функцию как HolidayProvider
type HolidayProviderFunc func(ctx context.Context, year int) (map[string]string, error)

func (f HolidayProviderFunc) Holidays(ctx context.Context, year int) (map[string]string, error) {
	return f(ctx, year)
}

// Calendar кэширует праздники по годам на время жизни процесса.
// Год загружается при первом обращении; одновременные запросы одного года
// делают одну загрузку. Ошибки провайдера не кэшируются и не пробрасываются:
// день считается обычным рабочим.
type Calendar struct {
	provider HolidayProvider
	logger   *logrus.Logger

	mu    sync.RWMutex
	years map[int]map[string]string
	group singleflight.Group
}

func NewCalendar(provider HolidayProvider, logger *logrus.Logger) *Calendar {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Calendar{
		provider: provider,
		logger:   logger,
		years:    make(map[int]map[string]string),
	}
}

// IsHoliday проверяет, является ли дата праздником
func (c *Calendar) IsHoliday(ctx context.Context, date time.Time) bool {
	_, ok := c.HolidayName(ctx, date)
	return ok
}

// HolidayName возвращает название праздника, если дата праздничная
func (c *Calendar) HolidayName(ctx context.Context, date time.Time) (string, bool) {
	if c == nil {
		return "", false
	}

	name, ok := c.year(ctx, date.Year())[date.Format(DateLayout)]
	return name, ok
}

// Warm заранее загружает указанные годы
func (c *Calendar) Warm(ctx context.Context, years ...int) {
	for _, y := range years {
		c.year(ctx, y)
	}
}

// Cached сообщает, загружен ли год в кэш
func (c *Calendar) Cached(year int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.years[year]
	return ok
}

func (c *Calendar) year(ctx context.Context, year int) map[string]string {
	c.mu.RLock()
	days, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return days
	}

	if c.provider == nil {
		return nil
	}

	v, err, _ := c.group.Do(strconv.Itoa(year), func() (interface{}, error) {
		fetched, err := c.provider.Holidays(ctx, year)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			return nil, errEmptyCalendar
		}

		c.mu.Lock()
		c.years[year] = fetched
		c.mu.Unlock()

		c.logger.WithFields(logrus.Fields{
			"year":     year,
			"holidays": len(fetched),
		}).Info("Holiday calendar loaded")

		return fetched, nil
	})
	if err != nil {
		c.logger.WithError(err).WithField("year", year).Warn("Holiday calendar unavailable, treating days as regular")
		return nil
	}

	return v.(map[string]string)
}
