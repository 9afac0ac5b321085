package transform

import (
	"fmt"

	"github.com/campworks/cycleplan/internal/calculation"
	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
)

// PlanTransform defines the interface for all plan transformations.
// Transforms are composable what-if edits of a payment plan used by the
// compare command and the interactive preview.
type PlanTransform interface {
	// Apply returns a modified copy of base. base is never mutated.
	Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error)

	// Name returns a short identifier for this transform (e.g., "shift_start").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.PaymentPlan) error
}

// ApplyTransforms applies a sequence of transforms to a base plan.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *domain.PaymentPlan, transforms []PlanTransform) (*domain.PaymentPlan, error) {
	if base == nil {
		return nil, ierr.NewError("base plan cannot be nil").Mark(ierr.ErrValidation)
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, ierr.NewErrorf("transform at index %d is nil", i).Mark(ierr.ErrValidation)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
// It matches ierr.ErrValidation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

func (e *TransformError) Is(target error) bool {
	return target == ierr.ErrValidation
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

// checkResult rejects a transformed plan whose months no longer form a
// usable cycle.
func checkResult(name string, plan *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	if err := calculation.ValidatePlanWindow(plan.Cycle); err != nil {
		return nil, NewTransformError(name, "apply", "resulting cycle is invalid", err)
	}
	return plan, nil
}

func requireBase(name string, base *domain.PaymentPlan) error {
	if base == nil {
		return NewTransformError(name, "validate", "base plan cannot be nil", nil)
	}
	return nil
}
