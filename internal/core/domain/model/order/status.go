package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the assignment state of an order.
// It implements a single-shot state machine: a new order starts Unassigned
// and may transition exactly once to Taken when a courier claims it.
//
// State transitions:
//
//	Unassigned ──> Taken
//
// No other transition is valid: Taken is terminal, and there is no path back
// to Unassigned. Status is a value object that validates transitions and
// provides the wire representation used by the API and the database.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Unassigned is the initial status of every newly placed order.
	// Orders in this status are available to be claimed.
	Unassigned

	// Taken indicates the order has been claimed by a courier.
	// This is a terminal state with no further transitions.
	Taken
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Unassigned: "UNASSIGNED",
		Taken:      "TAKEN",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Unassigned: "UNASSIGNED",
		Taken:      "TAKEN",
	}
}

// ParseStatus converts a wire representation into a Status.
// Only the exact uppercase forms "UNASSIGNED" and "TAKEN" are accepted;
// anything else fails with a ValueIsInvalid error.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if s == str {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid order status", s),
	)
}

// Validate checks if the Status value is valid.
// Valid statuses are Unassigned and Taken; Unknown and any other values fail.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ValidateTake checks whether the status allows a claim without performing
// the transition. Only Unassigned orders can be taken; a Taken order fails
// here, which is how a losing racer learns someone else already claimed it.
func (s Status) ValidateTake() error {
	if s != Unassigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to take", s.String()),
		)
	}
	return nil
}

// Take transitions the status to Taken.
//
// Valid transitions:
//   - Unassigned -> Taken
//
// Any other starting status returns an error and leaves no way to complete
// the transition; there is deliberately no reverse operation.
func (s Status) Take() (Status, error) {
	if err := s.ValidateTake(); err != nil {
		return 0, err
	}
	return Taken, nil
}
