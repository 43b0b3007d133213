package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zgrigoryan/Meal-Planner/internal/models"
)

var (
	ErrValidation       = errors.New("invalid meal input")
	ErrInvalidSelection = errors.New("meal is not available for this slot")
	ErrIncompletePlan   = errors.New("plan is incomplete")
	ErrNotFound         = errors.New("meal not found")
	ErrCannotPlan       = errors.New("every category needs at least one meal")
	ErrNotPlanning      = errors.New("no plan in progress")
	ErrNoPlan           = errors.New("no plan has been committed")
)

// ValidationError names the field that failed format checks.
type ValidationError struct {
	Field string
	Value string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrValidation, err.Field, err.Value)
}

func (err *ValidationError) Unwrap() error {
	return ErrValidation
}

type SelectionError struct {
	Slot     models.Slot
	MealName string
}

func (err *SelectionError) Error() string {
	return fmt.Sprintf("%s: %q for %s", ErrInvalidSelection, err.MealName, err.Slot)
}

func (err *SelectionError) Unwrap() error {
	return ErrInvalidSelection
}

type IncompletePlanError struct {
	Missing []models.Slot
}

func (err *IncompletePlanError) Error() string {
	names := make([]string, 0, len(err.Missing))
	for _, slot := range err.Missing {
		names = append(names, slot.String())
	}
	return fmt.Sprintf("%s: %d of %d slots missing (%s)",
		ErrIncompletePlan, len(err.Missing), models.SlotCount, strings.Join(names, ", "))
}

func (err *IncompletePlanError) Unwrap() error {
	return ErrIncompletePlan
}
