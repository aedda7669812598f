package models

import (
	"time"
)

// Holiday - праздничный день из производственного календаря или внешнего API
type Holiday struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"type:varchar(10);uniqueIndex" json:"date"` // 2006-01-02
	Year      int       `gorm:"index" json:"year"`
	Month     int       `gorm:"index" json:"month"`
	Day       int       `json:"day"`
	Name      string    `json:"name"`
	Source    string    `gorm:"type:varchar(32)" json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// HolidayYear отмечает, что праздники за год уже загружены (в том числе пустой список)
type HolidayYear struct {
	Year      int       `gorm:"primaryKey;autoIncrement:false" json:"year"`
	Count     int       `json:"count"`
	Source    string    `gorm:"type:varchar(32)" json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (HolidayYear) TableName() string {
	return "holiday_years"
}
