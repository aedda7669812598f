package repository

import (
	"errors"
	"fmt"
	"strings"

	"shift-payroll-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	Update(employee *models.Employee) error
	Upsert(employee *models.Employee) error
	GetByID(id uint) (*models.Employee, error)
	GetByFullName(fullName string) (*models.Employee, error)
	GetByChatID(chatID int64) (*models.Employee, error)
	BindChat(fullName string, chatID int64) (*models.Employee, error)
	GetAll() ([]*models.Employee, error)
}

type GormEmployeeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEmployeeRepository(db *gorm.DB, logger *logrus.Logger) (*GormEmployeeRepository, error) {
	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate employees table")
		return nil, err
	}

	return &GormEmployeeRepository{db: db, logger: logger}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	employee.FullName = normalizeName(employee.FullName)
	if !employee.IsValid() {
		return ErrInvalidEmployee
	}

	existing, err := r.GetByFullName(employee.FullName)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmployeeExists
	}

	if err := r.db.Create(employee).Error; err != nil {
		r.logger.WithError(err).WithField("full_name", employee.FullName).Error("Failed to create employee")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":        employee.ID,
		"full_name": employee.FullName,
		"division":  employee.Division,
	}).Info("Employee created")
	return nil
}

func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	if !employee.IsValid() {
		return ErrInvalidEmployee
	}

	var existing models.Employee
	result := r.db.First(&existing, employee.ID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return ErrEmployeeNotFound
	}
	if result.Error != nil {
		return result.Error
	}

	return r.db.Save(employee).Error
}

// Upsert создает сотрудника или обновляет подразделение и должность существующего.
// Привязка к чату при этом не сбрасывается.
func (r *GormEmployeeRepository) Upsert(employee *models.Employee) error {
	employee.FullName = normalizeName(employee.FullName)
	if !employee.IsValid() {
		return ErrInvalidEmployee
	}

	existing, err := r.GetByFullName(employee.FullName)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(employee).Error
	}

	existing.Division = employee.Division
	existing.Position = employee.Position
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}

	*employee = *existing
	return nil
}

func (r *GormEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.First(&employee, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetByFullName(fullName string) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Where("full_name = ?", normalizeName(fullName)).First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetByChatID(chatID int64) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Where("chat_id = ?", chatID).First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &employee, nil
}

// BindChat привязывает чат Telegram к сотруднику по ФИО
func (r *GormEmployeeRepository) BindChat(fullName string, chatID int64) (*models.Employee, error) {
	employee, err := r.GetByFullName(fullName)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, fullName)
	}

	result := r.db.Model(employee).Update("chat_id", chatID)
	if result.Error != nil {
		return nil, result.Error
	}
	employee.ChatID = chatID

	r.logger.WithFields(logrus.Fields{
		"full_name": employee.FullName,
		"chat_id":   chatID,
	}).Info("Employee bound to chat")

	return employee, nil
}

func (r *GormEmployeeRepository) GetAll() ([]*models.Employee, error) {
	var employees []*models.Employee
	result := r.db.Order("full_name ASC").Find(&employees)

	if result.Error != nil {
		return nil, result.Error
	}

	return employees, nil
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
