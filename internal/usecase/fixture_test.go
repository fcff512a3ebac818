package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studymarket/internal/adapter/repository/memory"
	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/internal/infrastructure/auth"
	"studymarket/internal/infrastructure/ratelimit"
	apperrors "studymarket/pkg/errors"
)

type fixture struct {
	ctx   context.Context
	store *memory.Store
	tx    *Transactor

	hasher    *auth.PasswordHasher
	cooldowns *ratelimit.MemoryCooldownStore

	users       *UserUseCase
	courses     *CourseUseCase
	sheets      *StudySheetUseCase
	leases      *LeaseListingUseCase
	reviews     *ReviewUseCase
	teacherRevs *TeacherReviewUseCase
	moderation  *ModerationUseCase
	payments    *PaymentUseCase
	reports     *ReportUseCase
	withdrawals *WithdrawalUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.NewStore()
	tx := NewTransactor(s, s, s.AuditLogs())
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	cooldowns := ratelimit.NewMemoryCooldownStore()

	return &fixture{
		ctx:         context.Background(),
		store:       s,
		tx:          tx,
		hasher:      hasher,
		cooldowns:   cooldowns,
		users:       NewUserUseCase(s.Users(), s.Payments(), hasher, cooldowns, time.Minute),
		courses:     NewCourseUseCase(s.Courses(), s.Teachers(), s.Reviews(), s.TeacherReviews(), tx),
		sheets:      NewStudySheetUseCase(s.StudySheets(), s.Courses(), s.Purchases(), s.Payments(), s.Approvals(), tx),
		leases:      NewLeaseListingUseCase(s.LeaseListings(), s.InterestRequests(), s.Approvals(), tx),
		reviews:     NewReviewUseCase(s.Reviews(), s.Courses(), s.Reports(), tx),
		teacherRevs: NewTeacherReviewUseCase(s.TeacherReviews(), s.Courses(), s.Reports(), tx),
		moderation:  NewModerationUseCase(s.StudySheets(), s.LeaseListings(), s.Reviews(), s.TeacherReviews(), s.Teachers(), s.Approvals(), tx),
		payments:    NewPaymentUseCase(s.Payments(), s.Users(), tx),
		reports:     NewReportUseCase(s.Reports(), s.Reviews(), s.TeacherReviews(), tx),
		withdrawals: NewWithdrawalUseCase(s.Withdrawals(), s.Users(), tx),
	}
}

func (f *fixture) user(t *testing.T, role entity.Role, balance int64) *entity.User {
	t.Helper()

	id, err := f.store.NextID(f.ctx, repository.SeqUsers)
	require.NoError(t, err)
	hash, err := f.hasher.Hash("secret")
	require.NoError(t, err)

	now := time.Now().UTC()
	u := &entity.User{
		ID:            id,
		Email:         fmt.Sprintf("user%d@example.com", id),
		PasswordHash:  hash,
		Name:          fmt.Sprintf("User %d", id),
		Role:          role,
		WalletBalance: balance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return u
}

// approvedSheet creates a sheet owned by seller and approves it.
func (f *fixture) approvedSheet(t *testing.T, seller, moderator *entity.User, price int64) *entity.StudySheet {
	t.Helper()

	sheet, err := f.sheets.Create(f.ctx, seller.ID, CreateStudySheetInput{
		Title:      "Linear Algebra notes",
		FileURL:    "https://files.example.com/la.pdf",
		PriceCents: price,
		CourseCode: "MATH101",
	})
	require.NoError(t, err)

	approved, err := f.moderation.DecideStudySheet(f.ctx, DecisionInput{
		EntityID: sheet.ID,
		ActorID:  moderator.ID,
		Decision: entity.DecisionApproved,
	})
	require.NoError(t, err)
	return approved
}

func (f *fixture) course(t *testing.T, code string) *entity.Course {
	t.Helper()
	course, err := f.courses.Create(f.ctx, code, code+" course")
	require.NoError(t, err)
	return course
}

func (f *fixture) balance(t *testing.T, userID int64) int64 {
	t.Helper()
	u, err := f.store.Users().GetByID(f.ctx, userID)
	require.NoError(t, err)
	return u.WalletBalance
}

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected *AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.Status)
	if message != "" {
		require.Equal(t, message, appErr.Message)
	}
}
