package entity

import (
	"time"
)

type EntityType string

const (
	EntityStudySheet    EntityType = "STUDY_SHEET"
	EntityLeaseListing  EntityType = "LEASE_LISTING"
	EntityPayment       EntityType = "PAYMENT"
	EntityWithdrawal    EntityType = "WITHDRAWAL"
	EntityReview        EntityType = "REVIEW"
	EntityTeacherReview EntityType = "TEACHER_REVIEW"
	EntityReport        EntityType = "REPORT"
)

type AuditAction string

const (
	AuditStudySheetApproved    AuditAction = "STUDY_SHEET_APPROVED"
	AuditStudySheetRejected    AuditAction = "STUDY_SHEET_REJECTED"
	AuditStudySheetUpdated     AuditAction = "STUDY_SHEET_UPDATED"
	AuditStudySheetDeleted     AuditAction = "STUDY_SHEET_DELETED"
	AuditLeaseListingApproved  AuditAction = "LEASE_LISTING_APPROVED"
	AuditLeaseListingRejected  AuditAction = "LEASE_LISTING_REJECTED"
	AuditLeaseTransferred      AuditAction = "LEASE_TRANSFERRED"
	AuditPaymentConfirmed      AuditAction = "PAYMENT_CONFIRMED"
	AuditPaymentReleased       AuditAction = "PAYMENT_RELEASED"
	AuditWithdrawalRequested   AuditAction = "WITHDRAWAL_REQUESTED"
	AuditWithdrawalApproved    AuditAction = "WITHDRAWAL_APPROVED"
	AuditWithdrawalRejected    AuditAction = "WITHDRAWAL_REJECTED"
	AuditReviewApproved        AuditAction = "REVIEW_APPROVED"
	AuditReviewRemoved         AuditAction = "REVIEW_REMOVED"
	AuditTeacherReviewApproved AuditAction = "TEACHER_REVIEW_APPROVED"
	AuditTeacherReviewRemoved  AuditAction = "TEACHER_REVIEW_REMOVED"
	AuditReportResolved        AuditAction = "REPORT_RESOLVED"
	AuditReportRejected        AuditAction = "REPORT_REJECTED"
	AuditReportTargetRemoved   AuditAction = "REPORT_TARGET_REMOVED"
)

type AuditLog struct {
	ID         int64       `json:"id" bson:"id"`
	ActorID    int64       `json:"actorId" bson:"actorId"`
	Action     AuditAction `json:"action" bson:"action"`
	EntityType EntityType  `json:"entityType" bson:"entityType"`
	EntityID   int64       `json:"entityId" bson:"entityId"`
	Amount     *int64      `json:"amount" bson:"amount,omitempty"`
	CreatedAt  time.Time   `json:"createdAt" bson:"createdAt"`
}
