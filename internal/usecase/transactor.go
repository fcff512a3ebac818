package usecase

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/internal/infrastructure/metrics"
	"studymarket/pkg/errors"
	"studymarket/pkg/logger"
)

// Transactor runs multi-document workflows atomically. It also hands out ids
// and appends audit entries on behalf of the workflows it runs.
type Transactor struct {
	txManager repository.TxManager
	sequences repository.SequenceRepository
	auditLogs repository.AuditLogRepository
}

func NewTransactor(
	txManager repository.TxManager,
	sequences repository.SequenceRepository,
	auditLogs repository.AuditLogRepository,
) *Transactor {
	return &Transactor{
		txManager: txManager,
		sequences: sequences,
		auditLogs: auditLogs,
	}
}

// Run executes fn inside one transaction. An *errors.AppError aborts it and is
// returned unchanged; any other failure is logged and reported as a generic
// internal error.
func (t *Transactor) Run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := t.txManager.WithTransaction(ctx, fn)
	elapsed := time.Since(start)

	if err == nil {
		metrics.RecordWorkflow(operation, "committed", elapsed)
		return nil
	}

	appErr, ok := errors.As(err)
	if !ok {
		logger.Error("%s aborted: %v", operation, err)
		metrics.RecordWorkflow(operation, "failed", elapsed)
		return errors.Internal("Internal Server Error", err)
	}

	if appErr.Status >= http.StatusInternalServerError {
		logger.Error("%s aborted: %v", operation, appErr)
		metrics.RecordWorkflow(operation, "failed", elapsed)
	} else {
		logger.Debug("%s rejected: %s", operation, appErr.Message)
		metrics.RecordWorkflow(operation, "rejected", elapsed)
	}
	return appErr
}

func (t *Transactor) NextID(ctx context.Context, name string) (int64, error) {
	return t.sequences.NextID(ctx, name)
}

// Audit appends one entry; amount is optional.
func (t *Transactor) Audit(ctx context.Context, actorID int64, action entity.AuditAction, entityType entity.EntityType, entityID int64, amount *int64) error {
	id, err := t.sequences.NextID(ctx, repository.SeqAuditLogs)
	if err != nil {
		return err
	}
	return t.auditLogs.Append(ctx, &entity.AuditLog{
		ID:         id,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	})
}

// lookupError turns a repository miss into a NotFound for resource.
func lookupError(err error, resource string) error {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NotFound(resource, err)
	}
	return err
}

// transitionError maps a failed compare-and-swap: the document is gone, or its
// status moved and message explains what could not happen.
func transitionError(err error, resource, message string) error {
	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.NotFound(resource, err)
	case stderrors.Is(err, repository.ErrConflict):
		return errors.InvalidState(message)
	}
	return err
}

// normalized checks a document a workflow is about to hand back. A stored
// document that breaks its shape aborts the transaction as an internal error.
func normalized(doc interface{ Validate() error }) error {
	if err := doc.Validate(); err != nil {
		return errors.Internal("Internal Server Error", err)
	}
	return nil
}

func isDuplicate(err error) bool {
	return stderrors.Is(err, repository.ErrDuplicate)
}

func isNotFound(err error) bool {
	return stderrors.Is(err, repository.ErrNotFound)
}

func amountOf(v int64) *int64 {
	return &v
}
