package transform

import (
	"sort"
	"strconv"
	"strings"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("shift_start", createShiftStart)
	registry.Register("shift_cycle", createShiftCycle)
	registry.Register("set_end", createSetEnd)
	registry.Register("set_control", createSetControl)
	registry.Register("shift_control", createShiftControl)
	registry.Register("set_tolerance", createSetTolerance)
	registry.Register("scale_total", createScaleTotal)
	registry.Register("set_total", createSetTotal)
	registry.Register("set_fixed_amount", createSetFixedAmount)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, ierr.NewErrorf("unknown transform: %s", name).
			WithHintf("available transforms: %s", strings.Join(r.List(), ", ")).
			Mark(ierr.ErrNotFound)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "shift_start:months=-1"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, ierr.NewErrorf("invalid transform spec format, expected 'name:params', got: %s", spec).
			Mark(ierr.ErrValidation)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, ierr.NewErrorf("invalid parameter format, expected 'key=value', got: %s", paramPair).
					Mark(ierr.ErrValidation)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", ierr.NewErrorf("%s requires '%s' parameter", transform, key).Mark(ierr.ErrValidation)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ierr.WithError(err).WithMessagef("invalid %s value", key).Mark(ierr.ErrValidation)
	}
	return n, nil
}

func monthParam(transform string, params map[string]string, key string) (domain.Month, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	return domain.ParseMonth(s)
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).WithMessagef("invalid %s value", key).Mark(ierr.ErrValidation)
	}
	return d, nil
}

// Factory functions for each transform

func createShiftStart(params map[string]string) (PlanTransform, error) {
	months, err := intParam("shift_start", params, "months")
	if err != nil {
		return nil, err
	}
	return &ShiftStart{Months: months}, nil
}

func createShiftCycle(params map[string]string) (PlanTransform, error) {
	months, err := intParam("shift_cycle", params, "months")
	if err != nil {
		return nil, err
	}
	return &ShiftCycle{Months: months}, nil
}

func createSetEnd(params map[string]string) (PlanTransform, error) {
	month, err := monthParam("set_end", params, "month")
	if err != nil {
		return nil, err
	}
	return &SetEnd{Month: month}, nil
}

func createSetControl(params map[string]string) (PlanTransform, error) {
	month, err := monthParam("set_control", params, "month")
	if err != nil {
		return nil, err
	}
	return &SetControl{Month: month}, nil
}

func createShiftControl(params map[string]string) (PlanTransform, error) {
	months, err := intParam("shift_control", params, "months")
	if err != nil {
		return nil, err
	}
	return &ShiftControl{Months: months}, nil
}

func createSetTolerance(params map[string]string) (PlanTransform, error) {
	months, err := intParam("set_tolerance", params, "months")
	if err != nil {
		return nil, err
	}
	return &SetTolerance{Months: months}, nil
}

func createScaleTotal(params map[string]string) (PlanTransform, error) {
	percent, err := decimalParam("scale_total", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleTotal{Percent: percent}, nil
}

func createSetTotal(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam("set_total", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetTotal{Amount: amount}, nil
}

func createSetFixedAmount(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam("set_fixed_amount", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetFixedAmount{Amount: amount}, nil
}
