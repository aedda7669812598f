package leveling

import (
	"errors"
	"fmt"
)

var ErrInvalidBands = errors.New("invalid level bands")

// Band - полоса уровней с одинаковой стоимостью уровня, начиная с Floor
type Band struct {
	Floor int `yaml:"floor" json:"floor"`
	Cost  int `yaml:"cost" json:"cost"`
}

// Progress - положение внутри текущего уровня
type Progress struct {
	Level           int `json:"level"`
	PointsIntoLevel int `json:"points_into_level"`
	NextLevelCost   int `json:"next_level_cost"`
	PointsToNext    int `json:"points_to_next"`
}

// Calculator переводит накопленные баллы в уровень. Состояния не хранит.
type Calculator struct {
	bands []Band
}

// Default - 100 баллов за уровень до 10-го, 150 до 20-го, 200 до 30-го, дальше 300.
// Рубежи: 1000, 2500, 4500 и 7500 баллов.
func Default() *Calculator {
	c, _ := New([]Band{
		{Floor: 0, Cost: 100},
		{Floor: 10, Cost: 150},
		{Floor: 20, Cost: 200},
		{Floor: 30, Cost: 300},
	})
	return c
}

func New(bands []Band) (*Calculator, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidBands)
	}
	if bands[0].Floor != 0 {
		return nil, fmt.Errorf("%w: first band must start at level 0", ErrInvalidBands)
	}
	for i, b := range bands {
		if b.Cost <= 0 {
			return nil, fmt.Errorf("%w: band %d has non-positive cost", ErrInvalidBands, i)
		}
		if i > 0 && b.Floor <= bands[i-1].Floor {
			return nil, fmt.Errorf("%w: floors must strictly increase", ErrInvalidBands)
		}
	}

	return &Calculator{bands: append([]Band(nil), bands...)}, nil
}

// LevelOf возвращает уровень для количества баллов
func (c *Calculator) LevelOf(points int) int {
	if points <= 0 {
		return 0
	}

	level := 0
	remaining := points
	for i, band := range c.bands {
		// Полоса не достигнута: баллов не хватило на предыдущую
		if level < band.Floor {
			break
		}

		affordable := remaining / band.Cost
		if i+1 < len(c.bands) {
			affordable = min(affordable, c.bands[i+1].Floor-level)
		}

		level += affordable
		remaining -= affordable * band.Cost
	}

	return level
}

// TotalCostForLevel - сколько баллов нужно набрать для уровня
func (c *Calculator) TotalCostForLevel(level int) int {
	if level <= 0 {
		return 0
	}

	total := 0
	for i, band := range c.bands {
		if level <= band.Floor {
			break
		}
		upper := level
		if i+1 < len(c.bands) {
			upper = min(level, c.bands[i+1].Floor)
		}
		total += (upper - band.Floor) * band.Cost
	}
	return total
}

// Progress возвращает уровень и прогресс до следующего
func (c *Calculator) Progress(points int) Progress {
	if points < 0 {
		points = 0
	}

	level := c.LevelOf(points)
	current := c.TotalCostForLevel(level)
	next := c.TotalCostForLevel(level + 1)

	return Progress{
		Level:           level,
		PointsIntoLevel: points - current,
		NextLevelCost:   next - current,
		PointsToNext:    max(0, next-points),
	}
}

// Bands возвращает копию полос
func (c *Calculator) Bands() []Band {
	return append([]Band(nil), c.bands...)
}
