package models

import (
	"time"
)

// ScheduleDay - одна ячейка графика: подпись дня и сырое значение как в таблице
type ScheduleDay struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_schedule_cell" json:"employee_id"`
	Year       int       `gorm:"not null;uniqueIndex:idx_schedule_cell" json:"year"`
	Month      int       `gorm:"not null;check:month >= 1 AND month <= 12;uniqueIndex:idx_schedule_cell" json:"month"`
	DayLabel   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_schedule_cell" json:"day_label"`
	Additional bool      `gorm:"not null;default:false;uniqueIndex:idx_schedule_cell" json:"additional"`
	RawValue   string    `gorm:"type:text" json:"raw_value"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleDay) TableName() string {
	return "schedule_days"
}

// IsValid проверяет валидность данных
func (d *ScheduleDay) IsValid() bool {
	if d.EmployeeID == 0 {
		return false
	}
	if d.Year < 2000 || d.Year > 2100 {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.DayLabel != ""
}
