package entity

import (
	"time"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "PENDING"
	ReportResolved ReportStatus = "RESOLVED"
	ReportRejected ReportStatus = "REJECTED"
)

var reportTransitions = transitions[ReportStatus]{
	ReportPending: {ReportResolved, ReportRejected},
}

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportResolved, ReportRejected:
		return true
	}
	return false
}

func (s ReportStatus) CanTransition(to ReportStatus) bool {
	return reportTransitions.allows(s, to)
}

type ReportTargetType string

const (
	ReportTargetReview        ReportTargetType = "REVIEW"
	ReportTargetTeacherReview ReportTargetType = "TEACHER_REVIEW"
)

func (t ReportTargetType) Valid() bool {
	return t == ReportTargetReview || t == ReportTargetTeacherReview
}

type Report struct {
	ID           int64            `json:"id" bson:"id"`
	ReporterID   int64            `json:"reporterId" bson:"reporterId"`
	TargetType   ReportTargetType `json:"targetType" bson:"targetType"`
	TargetID     int64            `json:"targetId" bson:"targetId"`
	Reason       string           `json:"reason" bson:"reason"`
	Status       ReportStatus     `json:"status" bson:"status"`
	ResolvedByID *int64           `json:"resolvedById" bson:"resolvedById,omitempty"`
	ResolvedAt   *time.Time       `json:"resolvedAt" bson:"resolvedAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt" bson:"updatedAt"`
}

func (r *Report) Validate() error {
	switch {
	case r == nil:
		return malformed("report", "document")
	case r.ID <= 0:
		return malformed("report", "id")
	case r.ReporterID <= 0:
		return malformed("report", "reporterId")
	case !r.TargetType.Valid():
		return malformed("report", "targetType")
	case r.TargetID <= 0:
		return malformed("report", "targetId")
	case !r.Status.Valid():
		return malformed("report", "status")
	case r.CreatedAt.IsZero():
		return malformed("report", "createdAt")
	}
	return nil
}
