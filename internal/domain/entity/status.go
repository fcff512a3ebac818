package entity

import (
	"errors"
	"fmt"
)

// ErrMalformed marks a stored document that violates its expected shape.
var ErrMalformed = errors.New("malformed document")

func malformed(entity, field string) error {
	return fmt.Errorf("%w: %s.%s", ErrMalformed, entity, field)
}

// transitions is a directed graph of legal status changes.
type transitions[S ~string] map[S][]S

func (t transitions[S]) allows(from, to S) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}
