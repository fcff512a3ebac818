package entity

import (
	"time"
)

type StudySheetStatus string

const (
	StudySheetPending  StudySheetStatus = "PENDING"
	StudySheetApproved StudySheetStatus = "APPROVED"
	StudySheetRejected StudySheetStatus = "REJECTED"
)

var studySheetTransitions = transitions[StudySheetStatus]{
	StudySheetPending: {StudySheetApproved, StudySheetRejected},
}

func (s StudySheetStatus) Valid() bool {
	switch s {
	case StudySheetPending, StudySheetApproved, StudySheetRejected:
		return true
	}
	return false
}

func (s StudySheetStatus) CanTransition(to StudySheetStatus) bool {
	return studySheetTransitions.allows(s, to)
}

type StudySheet struct {
	ID          int64            `json:"id" bson:"id"`
	OwnerID     int64            `json:"ownerId" bson:"ownerId"`
	CourseID    int64            `json:"courseId" bson:"courseId"`
	CourseCode  string           `json:"courseCode" bson:"courseCode"`
	Title       string           `json:"title" bson:"title"`
	Description *string          `json:"description" bson:"description,omitempty"`
	FileURL     string           `json:"fileUrl" bson:"fileUrl"`
	PriceCents  int64            `json:"priceCents" bson:"priceCents"`
	Status      StudySheetStatus `json:"status" bson:"status"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" bson:"updatedAt"`
}

func (s *StudySheet) Validate() error {
	switch {
	case s == nil:
		return malformed("studySheet", "document")
	case s.ID <= 0:
		return malformed("studySheet", "id")
	case s.OwnerID <= 0:
		return malformed("studySheet", "ownerId")
	case s.CourseID <= 0:
		return malformed("studySheet", "courseId")
	case s.Title == "":
		return malformed("studySheet", "title")
	case s.FileURL == "":
		return malformed("studySheet", "fileUrl")
	case s.PriceCents < 0:
		return malformed("studySheet", "priceCents")
	case !s.Status.Valid():
		return malformed("studySheet", "status")
	case s.CreatedAt.IsZero():
		return malformed("studySheet", "createdAt")
	}
	return nil
}

type StudySheetUpdate struct {
	Title       *string
	Description *string
	FileURL     *string
	PriceCents  *int64
}

type Purchase struct {
	ID           int64     `json:"id" bson:"id"`
	BuyerID      int64     `json:"buyerId" bson:"buyerId"`
	StudySheetID int64     `json:"studySheetId" bson:"studySheetId"`
	AmountCents  int64     `json:"amountCents" bson:"amountCents"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

func (p *Purchase) Validate() error {
	switch {
	case p == nil:
		return malformed("purchase", "document")
	case p.ID <= 0:
		return malformed("purchase", "id")
	case p.BuyerID <= 0:
		return malformed("purchase", "buyerId")
	case p.StudySheetID <= 0:
		return malformed("purchase", "studySheetId")
	case p.AmountCents < 0:
		return malformed("purchase", "amountCents")
	case p.CreatedAt.IsZero():
		return malformed("purchase", "createdAt")
	}
	return nil
}

// PurchaseReceipt is returned to the buyer after checkout.
type PurchaseReceipt struct {
	ID            int64  `json:"id"`
	ReferenceCode string `json:"reference_code"`
	Amount        int64  `json:"amount"`
}

func (r *PurchaseReceipt) Validate() error {
	switch {
	case r == nil:
		return malformed("purchaseReceipt", "document")
	case r.ID <= 0:
		return malformed("purchaseReceipt", "id")
	case r.ReferenceCode == "":
		return malformed("purchaseReceipt", "reference_code")
	case r.Amount < 0:
		return malformed("purchaseReceipt", "amount")
	}
	return nil
}
