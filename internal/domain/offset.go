package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type OffsetUnit string

const (
	UnitMinutes OffsetUnit = "MINUTES"
	UnitHours   OffsetUnit = "HOURS"
	UnitDays    OffsetUnit = "DAYS"
	UnitWeeks   OffsetUnit = "WEEKS"
)

type Direction string

const (
	DirectionBefore Direction = "BEFORE"
	DirectionAfter  Direction = "AFTER"
)

func NewDirection(d string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(d))) {
	case DirectionBefore:
		return DirectionBefore, nil
	case DirectionAfter:
		return DirectionAfter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, d)
	}
}

// Offset is a delta relative to a due date: a positive amount of a unit,
// applied before or after the anchor.
type Offset struct {
	amount    int
	unit      OffsetUnit
	direction Direction
}

func NewOffset(amount int, unit OffsetUnit, direction Direction) (Offset, error) {
	if amount <= 0 {
		return Offset{}, fmt.Errorf("%w: amount must be positive", ErrInvalidOffset)
	}

	switch unit {
	case UnitMinutes, UnitHours, UnitDays, UnitWeeks:
	default:
		return Offset{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidOffset, unit)
	}

	if direction != DirectionBefore && direction != DirectionAfter {
		return Offset{}, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	return Offset{amount: amount, unit: unit, direction: direction}, nil
}

// ParseOffset reads "24_HOURS" or "24,hours". Units are case-insensitive
// and may be singular.
func ParseOffset(spec string, direction Direction) (Offset, error) {
	spec = strings.TrimSpace(spec)

	sep := "_"
	if strings.Contains(spec, ",") {
		sep = ","
	}

	parts := strings.SplitN(spec, sep, 2)
	if len(parts) != 2 {
		return Offset{}, fmt.Errorf("%w: %q", ErrInvalidOffset, spec)
	}

	amount, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Offset{}, fmt.Errorf("%w: %q", ErrInvalidOffset, spec)
	}

	unit, err := parseUnit(parts[1])
	if err != nil {
		return Offset{}, err
	}

	return NewOffset(amount, unit, direction)
}

func MustParseOffset(spec string, direction Direction) Offset {
	o, err := ParseOffset(spec, direction)
	if err != nil {
		panic(err)
	}

	return o
}

func parseUnit(s string) (OffsetUnit, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasSuffix(u, "S") {
		u += "S"
	}

	switch OffsetUnit(u) {
	case UnitMinutes, UnitHours, UnitDays, UnitWeeks:
		return OffsetUnit(u), nil
	default:
		return "", fmt.Errorf("%w: unknown unit %q", ErrInvalidOffset, s)
	}
}

func (o Offset) Amount() int {
	return o.amount
}

func (o Offset) Unit() OffsetUnit {
	return o.unit
}

func (o Offset) Direction() Direction {
	return o.direction
}

// Spec returns the canonical "<amount>_<UNIT>" form.
func (o Offset) Spec() string {
	return strconv.Itoa(o.amount) + "_" + string(o.unit)
}

func (o Offset) String() string {
	return o.Spec() + " " + string(o.direction)
}

func (o Offset) IsZero() bool {
	return o.amount == 0
}

func (o Offset) Equals(other Offset) bool {
	return o.amount == other.amount && o.unit == other.unit && o.direction == other.direction
}

// Apply shifts anchor by the offset. Minutes and hours are absolute
// durations; days and weeks follow the calendar of anchor's location.
func (o Offset) Apply(anchor time.Time) time.Time {
	n := o.amount
	if o.direction == DirectionBefore {
		n = -n
	}

	switch o.unit {
	case UnitMinutes:
		return anchor.Add(time.Duration(n) * time.Minute)
	case UnitHours:
		return anchor.Add(time.Duration(n) * time.Hour)
	case UnitDays:
		return anchor.AddDate(0, 0, n)
	case UnitWeeks:
		return anchor.AddDate(0, 0, 7*n)
	default:
		return anchor
	}
}
