package entity

import (
	"time"
)

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

var withdrawalTransitions = transitions[WithdrawalStatus]{
	WithdrawalPending: {WithdrawalApproved, WithdrawalRejected},
}

func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalPending, WithdrawalApproved, WithdrawalRejected:
		return true
	}
	return false
}

func (s WithdrawalStatus) CanTransition(to WithdrawalStatus) bool {
	return withdrawalTransitions.allows(s, to)
}

// Withdrawal holds funds already debited from the seller's wallet until an admin decides.
type Withdrawal struct {
	ID           int64            `json:"id" bson:"id"`
	SellerID     int64            `json:"sellerId" bson:"sellerId"`
	Amount       int64            `json:"amount" bson:"amount"`
	Status       WithdrawalStatus `json:"status" bson:"status"`
	ReviewedByID *int64           `json:"reviewedById" bson:"reviewedById,omitempty"`
	ReviewedAt   *time.Time       `json:"reviewedAt" bson:"reviewedAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt" bson:"updatedAt"`
}

func (w *Withdrawal) Validate() error {
	switch {
	case w == nil:
		return malformed("withdrawal", "document")
	case w.ID <= 0:
		return malformed("withdrawal", "id")
	case w.SellerID <= 0:
		return malformed("withdrawal", "sellerId")
	case w.Amount <= 0:
		return malformed("withdrawal", "amount")
	case !w.Status.Valid():
		return malformed("withdrawal", "status")
	case w.CreatedAt.IsZero():
		return malformed("withdrawal", "createdAt")
	}
	return nil
}
