package models

import (
	"fmt"
	"strings"
	"time"
)

// Division - подразделение сотрудника
type Division string

const (
	DivisionNTP Division = "НТП"
	DivisionNCK Division = "НЦК"
)

// Position - должность, от нее зависят ставка и роль
type Position string

const (
	PositionSpecialist     Position = "Специалист"
	PositionLeadSpecialist Position = "Ведущий специалист"
	PositionExpert         Position = "Эксперт"
	PositionGroupHead      Position = "Руководитель группы"
	PositionDeputyHead     Position = "Заместитель руководителя группы"
)

// Role определяет набор KPI и таблицы премий
type Role int

const (
	RoleSpecialist Role = iota
	RoleHead
)

func (r Role) String() string {
	if r == RoleHead {
		return "head"
	}
	return "specialist"
}

// Role возвращает роль для должности
func (p Position) Role() Role {
	switch p {
	case PositionGroupHead, PositionDeputyHead:
		return RoleHead
	default:
		return RoleSpecialist
	}
}

// ParseDivision разбирает название подразделения без учета регистра
func ParseDivision(s string) (Division, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(DivisionNTP), "NTP":
		return DivisionNTP, nil
	case string(DivisionNCK), "NCK":
		return DivisionNCK, nil
	}
	return "", fmt.Errorf("unknown division %q", s)
}

// ParseRole разбирает роль: specialist или head
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "specialist", "специалист":
		return RoleSpecialist, nil
	case "head", "руководитель":
		return RoleHead, nil
	}
	return RoleSpecialist, fmt.Errorf("unknown role %q", s)
}

// ParsePosition проверяет название должности
func ParsePosition(s string) (Position, error) {
	normalized := strings.Join(strings.Fields(s), " ")
	for _, p := range []Position{PositionSpecialist, PositionLeadSpecialist, PositionExpert, PositionGroupHead, PositionDeputyHead} {
		if strings.EqualFold(normalized, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown position %q", s)
}

type Employee struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FullName  string    `gorm:"uniqueIndex;not null" json:"full_name"`
	Division  Division  `gorm:"type:varchar(20);not null;index" json:"division"`
	Position  Position  `gorm:"type:varchar(64);not null" json:"position"`
	ChatID    int64     `gorm:"index" json:"chat_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName задает имя таблицы в БД
func (Employee) TableName() string {
	return "employees"
}

// Role - роль сотрудника по должности
func (e *Employee) Role() Role {
	return e.Position.Role()
}

// IsValid проверяет заполненность обязательных полей
func (e *Employee) IsValid() bool {
	if strings.TrimSpace(e.FullName) == "" {
		return false
	}
	if e.Division != DivisionNTP && e.Division != DivisionNCK {
		return false
	}
	return e.Position != ""
}
