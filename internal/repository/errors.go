package repository

import "errors"

var (
	ErrEmployeeNotFound = errors.New("сотрудник не найден")
	ErrEmployeeExists   = errors.New("сотрудник уже существует")
	ErrInvalidEmployee  = errors.New("некорректные данные сотрудника")
	ErrInvalidSchedule  = errors.New("некорректные данные графика")
)
