package entity

import (
	"time"
)

type LeaseListingStatus string

const (
	LeaseListingPending     LeaseListingStatus = "PENDING"
	LeaseListingApproved    LeaseListingStatus = "APPROVED"
	LeaseListingRejected    LeaseListingStatus = "REJECTED"
	LeaseListingTransferred LeaseListingStatus = "TRANSFERRED"
)

var leaseListingTransitions = transitions[LeaseListingStatus]{
	LeaseListingPending:  {LeaseListingApproved, LeaseListingRejected},
	LeaseListingApproved: {LeaseListingTransferred},
}

func (s LeaseListingStatus) Valid() bool {
	switch s {
	case LeaseListingPending, LeaseListingApproved, LeaseListingRejected, LeaseListingTransferred:
		return true
	}
	return false
}

func (s LeaseListingStatus) CanTransition(to LeaseListingStatus) bool {
	return leaseListingTransitions.allows(s, to)
}

type LeaseListing struct {
	ID           int64              `json:"id" bson:"id"`
	OwnerID      int64              `json:"ownerId" bson:"ownerId"`
	Title        string             `json:"title" bson:"title"`
	Description  *string            `json:"description" bson:"description,omitempty"`
	LineID       *string            `json:"lineId" bson:"lineId,omitempty"`
	Location     string             `json:"location" bson:"location"`
	RentCents    int64              `json:"rentCents" bson:"rentCents"`
	DepositCents int64              `json:"depositCents" bson:"depositCents"`
	StartDate    string             `json:"startDate" bson:"startDate"`
	EndDate      string             `json:"endDate" bson:"endDate"`
	Status       LeaseListingStatus `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (l *LeaseListing) Validate() error {
	switch {
	case l == nil:
		return malformed("leaseListing", "document")
	case l.ID <= 0:
		return malformed("leaseListing", "id")
	case l.OwnerID <= 0:
		return malformed("leaseListing", "ownerId")
	case l.Title == "":
		return malformed("leaseListing", "title")
	case l.Location == "":
		return malformed("leaseListing", "location")
	case l.RentCents < 0:
		return malformed("leaseListing", "rentCents")
	case l.DepositCents < 0:
		return malformed("leaseListing", "depositCents")
	case l.StartDate == "" || l.EndDate == "":
		return malformed("leaseListing", "dates")
	case !l.Status.Valid():
		return malformed("leaseListing", "status")
	case l.CreatedAt.IsZero():
		return malformed("leaseListing", "createdAt")
	}
	return nil
}

// LeaseListingUpdate carries optional field changes. ClearLineID removes the contact id.
type LeaseListingUpdate struct {
	Title        *string
	Description  *string
	LineID       *string
	ClearLineID  bool
	Location     *string
	RentCents    *int64
	DepositCents *int64
	StartDate    *string
	EndDate      *string
}

type InterestRequest struct {
	ID             int64     `json:"id" bson:"id"`
	LeaseListingID int64     `json:"leaseListingId" bson:"leaseListingId"`
	StudentID      int64     `json:"studentId" bson:"studentId"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

func (r *InterestRequest) Validate() error {
	switch {
	case r == nil:
		return malformed("interestRequest", "document")
	case r.ID <= 0:
		return malformed("interestRequest", "id")
	case r.LeaseListingID <= 0:
		return malformed("interestRequest", "leaseListingId")
	case r.StudentID <= 0:
		return malformed("interestRequest", "studentId")
	case r.CreatedAt.IsZero():
		return malformed("interestRequest", "createdAt")
	}
	return nil
}
