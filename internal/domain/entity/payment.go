package entity

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentReleased PaymentStatus = "RELEASED"
)

// Payments move strictly PENDING -> APPROVED -> RELEASED.
var paymentTransitions = transitions[PaymentStatus]{
	PaymentPending:  {PaymentApproved},
	PaymentApproved: {PaymentReleased},
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentApproved, PaymentReleased:
		return true
	}
	return false
}

func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	return paymentTransitions.allows(s, to)
}

type Payment struct {
	ID            int64         `json:"id" bson:"id"`
	PurchaseID    int64         `json:"purchaseId" bson:"purchaseId"`
	ReferenceCode string        `json:"referenceCode" bson:"referenceCode"`
	Amount        int64         `json:"amount" bson:"amount"`
	Status        PaymentStatus `json:"status" bson:"status"`
	BuyerID       int64         `json:"buyerId" bson:"buyerId"`
	SellerID      int64         `json:"sellerId" bson:"sellerId"`
	StudySheetID  int64         `json:"studySheetId" bson:"studySheetId"`
	ApprovedAt    *time.Time    `json:"approvedAt" bson:"approvedAt,omitempty"`
	ApprovedByID  *int64        `json:"approvedById" bson:"approvedById,omitempty"`
	ReleasedAt    *time.Time    `json:"releasedAt" bson:"releasedAt,omitempty"`
	ReleasedByID  *int64        `json:"releasedById" bson:"releasedById,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

func (p *Payment) Validate() error {
	switch {
	case p == nil:
		return malformed("payment", "document")
	case p.ID <= 0:
		return malformed("payment", "id")
	case p.PurchaseID <= 0:
		return malformed("payment", "purchaseId")
	case p.ReferenceCode == "":
		return malformed("payment", "referenceCode")
	case p.Amount < 0:
		return malformed("payment", "amount")
	case !p.Status.Valid():
		return malformed("payment", "status")
	case p.BuyerID <= 0:
		return malformed("payment", "buyerId")
	case p.SellerID <= 0:
		return malformed("payment", "sellerId")
	case p.StudySheetID <= 0:
		return malformed("payment", "studySheetId")
	case p.CreatedAt.IsZero():
		return malformed("payment", "createdAt")
	}
	return nil
}
