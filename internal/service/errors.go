package service

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается репозиториями, когда запись отсутствует
var ErrNotFound = errors.New("not found")

// ValidationError - входные данные нарушают ограничение поля
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

// ReportNotFoundError - отчёта с таким идентификатором нет
type ReportNotFoundError struct {
	ReportID int64
}

func (e *ReportNotFoundError) Error() string {
	return fmt.Sprintf("report %d not found", e.ReportID)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrNotFound)
func (e *ReportNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError - хранилище недоступно или вернуло ошибку
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DeliveryError - не удалось передать уведомление одному подписчику
type DeliveryError struct {
	UserID string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to user %s failed: %v", e.UserID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
