package entity

import (
	"time"
)

// Approval is the latest moderation decision recorded for one entity.
// Only one exists per (EntityType, EntityID); a new decision overwrites it.
type Approval struct {
	ID         int64      `json:"id" bson:"id"`
	EntityType EntityType `json:"entityType" bson:"entityType"`
	EntityID   int64      `json:"entityId" bson:"entityId"`
	ReviewerID int64      `json:"reviewerId" bson:"reviewerId"`
	Decision   Decision   `json:"decision" bson:"decision"`
	Reason     *string    `json:"reason" bson:"reason"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func (a *Approval) Validate() error {
	switch {
	case a == nil:
		return malformed("approval", "document")
	case a.ID <= 0:
		return malformed("approval", "id")
	case a.EntityID <= 0:
		return malformed("approval", "entityId")
	case a.ReviewerID <= 0:
		return malformed("approval", "reviewerId")
	case !a.Decision.Valid():
		return malformed("approval", "decision")
	}
	return nil
}
