package entity

import (
	"time"
)

type ReviewStatus string

const (
	ReviewVisible     ReviewStatus = "VISIBLE"
	ReviewUnderReview ReviewStatus = "UNDER_REVIEW"
	ReviewRemoved     ReviewStatus = "REMOVED"
)

// VISIBLE -> VISIBLE is a moderation re-affirm (teacher reviews get linked on it).
// REMOVED is terminal.
var reviewTransitions = transitions[ReviewStatus]{
	ReviewVisible:     {ReviewUnderReview, ReviewVisible, ReviewRemoved},
	ReviewUnderReview: {ReviewVisible, ReviewRemoved},
}

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewVisible, ReviewUnderReview, ReviewRemoved:
		return true
	}
	return false
}

func (s ReviewStatus) CanTransition(to ReviewStatus) bool {
	return reviewTransitions.allows(s, to)
}

type Review struct {
	ID        int64        `json:"id" bson:"id"`
	StudentID int64        `json:"studentId" bson:"studentId"`
	CourseID  int64        `json:"courseId" bson:"courseId"`
	Rating    int          `json:"rating" bson:"rating"`
	Text      string       `json:"text" bson:"text"`
	Status    ReviewStatus `json:"status" bson:"status"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
}

func (r *Review) Validate() error {
	switch {
	case r == nil:
		return malformed("review", "document")
	case r.ID <= 0:
		return malformed("review", "id")
	case r.StudentID <= 0:
		return malformed("review", "studentId")
	case r.CourseID <= 0:
		return malformed("review", "courseId")
	case r.Rating < 1 || r.Rating > 5:
		return malformed("review", "rating")
	case r.Text == "":
		return malformed("review", "text")
	case !r.Status.Valid():
		return malformed("review", "status")
	case r.CreatedAt.IsZero():
		return malformed("review", "createdAt")
	}
	return nil
}

// ReviewHistory is a snapshot of a review taken right before an edit.
type ReviewHistory struct {
	ID        int64     `json:"id" bson:"id"`
	ReviewID  int64     `json:"reviewId" bson:"reviewId"`
	OldRating int       `json:"oldRating" bson:"oldRating"`
	OldText   string    `json:"oldText" bson:"oldText"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type ReviewVote struct {
	ID        int64     `json:"id" bson:"id"`
	ReviewID  int64     `json:"reviewId" bson:"reviewId"`
	VoterID   int64     `json:"voterId" bson:"voterId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type TeacherReview struct {
	ID             int64        `json:"id" bson:"id"`
	StudentID      int64        `json:"studentId" bson:"studentId"`
	CourseID       int64        `json:"courseId" bson:"courseId"`
	TeacherName    string       `json:"teacherName" bson:"teacherName"`
	NormalizedName string       `json:"normalizedName" bson:"normalizedName"`
	TeacherID      *int64       `json:"teacherId" bson:"teacherId,omitempty"`
	Rating         int          `json:"rating" bson:"rating"`
	Text           string       `json:"text" bson:"text"`
	Status         ReviewStatus `json:"status" bson:"status"`
	ReviewedByID   *int64       `json:"reviewedById" bson:"reviewedById,omitempty"`
	ReviewedAt     *time.Time   `json:"reviewedAt" bson:"reviewedAt,omitempty"`
	DecisionReason *string      `json:"decisionReason" bson:"decisionReason,omitempty"`
	CreatedAt      time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt" bson:"updatedAt"`
}

func (r *TeacherReview) Validate() error {
	switch {
	case r == nil:
		return malformed("teacherReview", "document")
	case r.ID <= 0:
		return malformed("teacherReview", "id")
	case r.StudentID <= 0:
		return malformed("teacherReview", "studentId")
	case r.CourseID <= 0:
		return malformed("teacherReview", "courseId")
	case r.TeacherName == "" || r.NormalizedName == "":
		return malformed("teacherReview", "teacherName")
	case r.Rating < 1 || r.Rating > 5:
		return malformed("teacherReview", "rating")
	case r.Text == "":
		return malformed("teacherReview", "text")
	case !r.Status.Valid():
		return malformed("teacherReview", "status")
	case r.CreatedAt.IsZero():
		return malformed("teacherReview", "createdAt")
	}
	return nil
}

// TeacherReviewDecision is the moderation metadata stamped on a status change.
type TeacherReviewDecision struct {
	TeacherID  *int64
	ReviewerID int64
	Reason     *string
	At         time.Time
}

type TeacherReviewHistory struct {
	ID              int64     `json:"id" bson:"id"`
	TeacherReviewID int64     `json:"teacherReviewId" bson:"teacherReviewId"`
	OldRating       int       `json:"oldRating" bson:"oldRating"`
	OldText         string    `json:"oldText" bson:"oldText"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

type TeacherReviewVote struct {
	ID              int64     `json:"id" bson:"id"`
	TeacherReviewID int64     `json:"teacherReviewId" bson:"teacherReviewId"`
	VoterID         int64     `json:"voterId" bson:"voterId"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}
