package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mycloud-drive/internal/dto"
	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/pkg/logger"
	"mycloud-drive/internal/pkg/serverutils"
	"mycloud-drive/internal/repository/specification"
	"mycloud-drive/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, creds dto.Credentials) (*dto.RegisterResponse, error)
	Login(ctx context.Context, creds dto.Credentials) (*dto.LoginResponse, error)
	// Authenticate satisfies serverutils.CredentialVerifier.
	Authenticate(ctx context.Context, username, password string) (uuid.UUID, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	tokens     *serverutils.TokenIssuer
	logger     logger.ILogger
	hashCost   int
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, tokens *serverutils.TokenIssuer, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		tokens:     tokens,
		logger:     log,
		hashCost:   bcrypt.DefaultCost,
	}
}

func (s *authService) Register(ctx context.Context, creds dto.Credentials) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: creds.Username})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Username:     creds.Username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("AuthService", "User registered", map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	})
	return &dto.RegisterResponse{Message: "User registered", UserId: user.Id}, nil
}

func (s *authService) Login(ctx context.Context, creds dto.Credentials) (*dto.LoginResponse, error) {
	userID, err := s.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(userID, creds.Username)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return uuid.Nil, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("AuthService", "Stored hash unusable", map[string]interface{}{
				"user_id": user.Id.String(),
				"error":   err.Error(),
			})
		}
		return uuid.Nil, ErrUnauthorized
	}
	return user.Id, nil
}
