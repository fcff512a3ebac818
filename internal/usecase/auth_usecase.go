package usecase

import (
	"context"
	"strings"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
	"studymarket/pkg/errors"
	"studymarket/pkg/logger"
)

type AuthUseCase struct {
	userRepo  repository.UserRepository
	sequences repository.SequenceRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sequences repository.SequenceRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		sequences: sequences,
		hasher:    hasher,
		tokens:    tokens,
	}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type AuthResult struct {
	AccessToken string `json:"access_token"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errors.BadRequest("Email already exists", nil)
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	id, err := uc.sequences.NextID(ctx, repository.SeqUsers)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:            id,
		Email:         email,
		PasswordHash:  hash,
		Name:          strings.TrimSpace(input.Name),
		Role:          entity.RoleStudent,
		WalletBalance: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, errors.BadRequest("Email already exists", nil)
		}
		return nil, err
	}

	logger.Info("registered user %d", user.ID)
	return uc.issue(user)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return nil, err
	}

	ok, err := uc.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, errors.Internal("Failed to verify password", err)
	}
	if !ok {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	if !user.Role.Valid() {
		return nil, errors.Internal("Unknown user role", nil)
	}
	token, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}
	return &AuthResult{AccessToken: token}, nil
}
