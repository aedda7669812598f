package kpi

import (
	"fmt"
	"sort"

	"shift-payroll-bot/internal/models"
)

// Category - вид KPI, за который начисляется премия
type Category string

const (
	CategoryCSI              Category = "csi"
	CategoryFLR              Category = "flr"
	CategoryGOK              Category = "gok"
	CategoryTarget           Category = "target"
	CategoryDiscipline       Category = "discipline"
	CategoryTesting          Category = "testing"
	CategoryGratitude        Category = "gratitude"
	CategoryMentoring        Category = "mentoring"
	CategoryManualAdjustment Category = "manual_adjustment"
)

var (
	headCategories = []Category{CategoryFLR, CategoryGOK, CategoryTarget}

	specialistCategories = []Category{
		CategoryCSI, CategoryFLR, CategoryGOK, CategoryTarget,
		CategoryDiscipline, CategoryTesting, CategoryGratitude,
		CategoryMentoring, CategoryManualAdjustment,
	}
)

// CategoriesFor возвращает премиальные категории роли в порядке вывода
func CategoriesFor(role models.Role) []Category {
	if role == models.RoleHead {
		return append([]Category(nil), headCategories...)
	}
	return append([]Category(nil), specialistCategories...)
}

// ParseCategory проверяет название категории
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range specialistCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown kpi category %q", s)
}

// Unit - сочетание подразделения и роли, у каждого свои таблицы
type Unit struct {
	Division models.Division
	Role     models.Role
}

func (u Unit) String() string {
	return fmt.Sprintf("%s/%s", u.Division, u.Role)
}

// Tier - строка таблицы: процент выполнения норматива -> процент премии
type Tier struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Premium   float64 `yaml:"premium" json:"premium"`
}

// Tables - пороговые таблицы по подразделениям, ролям и метрикам
type Tables struct {
	units map[Unit]map[Category][]Tier
}

func NewTables() *Tables {
	return &Tables{units: make(map[Unit]map[Category][]Tier)}
}

// Set задает таблицу; ступени хранятся от высшего порога к низшему
func (t *Tables) Set(unit Unit, metric Category, tiers []Tier) {
	sorted := append([]Tier(nil), tiers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})

	if t.units[unit] == nil {
		t.units[unit] = make(map[Category][]Tier)
	}
	t.units[unit][metric] = sorted
}

// Tiers возвращает таблицу для подразделения, роли и метрики
func (t *Tables) Tiers(unit Unit, metric Category) ([]Tier, bool) {
	tiers, ok := t.units[unit][metric]
	return tiers, ok
}

// DefaultTables - таблицы, действующие без внешнего файла
func DefaultTables() *Tables {
	t := NewTables()

	ntpSpec := Unit{Division: models.DivisionNTP, Role: models.RoleSpecialist}
	t.Set(ntpSpec, CategoryCSI, []Tier{{110, 12}, {105, 10}, {100, 8}, {95, 4}})
	t.Set(ntpSpec, CategoryFLR, []Tier{{110, 10}, {100, 7}, {95, 3}})
	t.Set(ntpSpec, CategoryGOK, []Tier{{100, 10}, {95, 6}, {90, 3}})
	t.Set(ntpSpec, CategoryTarget, []Tier{{120, 15}, {110, 12}, {100, 8}, {90, 4}})

	ntpHead := Unit{Division: models.DivisionNTP, Role: models.RoleHead}
	t.Set(ntpHead, CategoryFLR, []Tier{{105, 12}, {100, 9}, {95, 5}})
	t.Set(ntpHead, CategoryGOK, []Tier{{100, 12}, {95, 8}, {90, 4}})
	t.Set(ntpHead, CategoryTarget, []Tier{{120, 20}, {110, 15}, {100, 10}, {90, 5}})

	nckSpec := Unit{Division: models.DivisionNCK, Role: models.RoleSpecialist}
	t.Set(nckSpec, CategoryCSI, []Tier{{105, 10}, {100, 7}, {95, 3}})
	t.Set(nckSpec, CategoryFLR, []Tier{{105, 8}, {100, 6}, {90, 2}})
	t.Set(nckSpec, CategoryGOK, []Tier{{100, 8}, {95, 5}, {90, 2}})
	t.Set(nckSpec, CategoryTarget, []Tier{{115, 14}, {105, 10}, {100, 7}, {90, 3}})

	nckHead := Unit{Division: models.DivisionNCK, Role: models.RoleHead}
	t.Set(nckHead, CategoryFLR, []Tier{{105, 10}, {100, 8}, {95, 4}})
	t.Set(nckHead, CategoryGOK, []Tier{{100, 10}, {95, 7}, {90, 3}})
	t.Set(nckHead, CategoryTarget, []Tier{{115, 18}, {105, 13}, {100, 9}, {90, 4}})

	return t
}
