// Package memory is a transactional in-process implementation of every
// repository interface. A transaction holds the store lock for its whole
// duration and restores a snapshot when it fails, so transactions are
// serializable. Used by tests and single-node development runs.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/logger"
	"studymarket/pkg/utils"
)

type txKey struct{}

type dataset struct {
	counters             map[string]int64
	users                map[int64]entity.User
	courses              map[int64]entity.Course
	teachers             map[int64]entity.Teacher
	courseTeachers       map[int64]entity.CourseTeacher
	studySheets          map[int64]entity.StudySheet
	purchases            map[int64]entity.Purchase
	payments             map[int64]entity.Payment
	approvals            map[int64]entity.Approval
	auditLogs            map[int64]entity.AuditLog
	leaseListings        map[int64]entity.LeaseListing
	interestRequests     map[int64]entity.InterestRequest
	reviews              map[int64]entity.Review
	reviewHistory        map[int64]entity.ReviewHistory
	reviewVotes          map[int64]entity.ReviewVote
	teacherReviews       map[int64]entity.TeacherReview
	teacherReviewHistory map[int64]entity.TeacherReviewHistory
	teacherReviewVotes   map[int64]entity.TeacherReviewVote
	reports              map[int64]entity.Report
	withdrawals          map[int64]entity.Withdrawal
}

func newDataset() *dataset {
	return &dataset{
		counters:             map[string]int64{},
		users:                map[int64]entity.User{},
		courses:              map[int64]entity.Course{},
		teachers:             map[int64]entity.Teacher{},
		courseTeachers:       map[int64]entity.CourseTeacher{},
		studySheets:          map[int64]entity.StudySheet{},
		purchases:            map[int64]entity.Purchase{},
		payments:             map[int64]entity.Payment{},
		approvals:            map[int64]entity.Approval{},
		auditLogs:            map[int64]entity.AuditLog{},
		leaseListings:        map[int64]entity.LeaseListing{},
		interestRequests:     map[int64]entity.InterestRequest{},
		reviews:              map[int64]entity.Review{},
		reviewHistory:        map[int64]entity.ReviewHistory{},
		reviewVotes:          map[int64]entity.ReviewVote{},
		teacherReviews:       map[int64]entity.TeacherReview{},
		teacherReviewHistory: map[int64]entity.TeacherReviewHistory{},
		teacherReviewVotes:   map[int64]entity.TeacherReviewVote{},
		reports:              map[int64]entity.Report{},
		withdrawals:          map[int64]entity.Withdrawal{},
	}
}

// clone copies every collection. Documents are stored by value and never
// mutated through shared pointers, so a shallow map copy is a full snapshot.
func (d *dataset) clone() *dataset {
	return &dataset{
		counters:             maps.Clone(d.counters),
		users:                maps.Clone(d.users),
		courses:              maps.Clone(d.courses),
		teachers:             maps.Clone(d.teachers),
		courseTeachers:       maps.Clone(d.courseTeachers),
		studySheets:          maps.Clone(d.studySheets),
		purchases:            maps.Clone(d.purchases),
		payments:             maps.Clone(d.payments),
		approvals:            maps.Clone(d.approvals),
		auditLogs:            maps.Clone(d.auditLogs),
		leaseListings:        maps.Clone(d.leaseListings),
		interestRequests:     maps.Clone(d.interestRequests),
		reviews:              maps.Clone(d.reviews),
		reviewHistory:        maps.Clone(d.reviewHistory),
		reviewVotes:          maps.Clone(d.reviewVotes),
		teacherReviews:       maps.Clone(d.teacherReviews),
		teacherReviewHistory: maps.Clone(d.teacherReviewHistory),
		teacherReviewVotes:   maps.Clone(d.teacherReviewVotes),
		reports:              maps.Clone(d.reports),
		withdrawals:          maps.Clone(d.withdrawals),
	}
}

type Store struct {
	mu   sync.Mutex
	data *dataset
}

func NewStore() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// acquire locks the store unless ctx already belongs to one of its transactions.
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			logger.Error("transaction panicked, rolled back: %v", p)
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) NextID(ctx context.Context, name string) (int64, error) {
	defer s.acquire(ctx)()
	s.data.counters[name]++
	return s.data.counters[name], nil
}

// CounterValue reports the current value of a sequence without incrementing it.
func (s *Store) CounterValue(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.counters[name]
}

func (s *Store) Users() repository.UserRepository                 { return &userRepo{s} }
func (s *Store) Courses() repository.CourseRepository             { return &courseRepo{s} }
func (s *Store) Teachers() repository.TeacherRepository           { return &teacherRepo{s} }
func (s *Store) StudySheets() repository.StudySheetRepository     { return &studySheetRepo{s} }
func (s *Store) Purchases() repository.PurchaseRepository         { return &purchaseRepo{s} }
func (s *Store) Payments() repository.PaymentRepository           { return &paymentRepo{s} }
func (s *Store) Approvals() repository.ApprovalRepository         { return &approvalRepo{s} }
func (s *Store) AuditLogs() repository.AuditLogRepository         { return &auditLogRepo{s} }
func (s *Store) LeaseListings() repository.LeaseListingRepository { return &leaseListingRepo{s} }
func (s *Store) InterestRequests() repository.InterestRequestRepository {
	return &interestRequestRepo{s}
}
func (s *Store) Reviews() repository.ReviewRepository               { return &reviewRepo{s} }
func (s *Store) TeacherReviews() repository.TeacherReviewRepository { return &teacherReviewRepo{s} }
func (s *Store) Reports() repository.ReportRepository               { return &reportRepo{s} }
func (s *Store) Withdrawals() repository.WithdrawalRepository       { return &withdrawalRepo{s} }

func insert[T any](m map[int64]T, id int64, doc T) error {
	if id <= 0 {
		return fmt.Errorf("insert: invalid id %d", id)
	}
	if _, found := m[id]; found {
		return repository.ErrDuplicate
	}
	m[id] = doc
	return nil
}

func get[T any](m map[int64]T, id int64) (*T, error) {
	doc, ok := m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doc, nil
}

func findOne[T any](m map[int64]T, match func(T) bool) (*T, error) {
	for _, doc := range m {
		if match(doc) {
			out := doc
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func exists[T any](m map[int64]T, match func(T) bool) bool {
	_, err := findOne(m, match)
	return err == nil
}

func collect[T any](m map[int64]T, match func(T) bool, less func(a, b T) bool) []T {
	out := make([]T, 0)
	for _, doc := range m {
		if match == nil || match(doc) {
			out = append(out, doc)
		}
	}
	sortBy(out, less)
	return out
}

func sortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// page expects items in ascending id order.
func page[T any](items []T, p utils.PaginationParams) []T {
	if p.NewestFirst {
		slices.Reverse(items)
	}
	start, end := p.Bounds(len(items))
	return items[start:end]
}

// compareAndSwap applies mutate to the document only if guard accepts its current state.
func compareAndSwap[T any](m map[int64]T, id int64, guard func(T) bool, mutate func(*T)) (*T, error) {
	doc, ok := m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !guard(doc) {
		return nil, repository.ErrConflict
	}
	mutate(&doc)
	m[id] = doc
	out := doc
	return &out, nil
}

func remove[T any](m map[int64]T, id int64) (*T, error) {
	doc, ok := m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m, id)
	return &doc, nil
}

func removeWhere[T any](m map[int64]T, match func(T) bool) int {
	n := 0
	for id, doc := range m {
		if match(doc) {
			delete(m, id)
			n++
		}
	}
	return n
}
