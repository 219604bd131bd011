package service

import (
	"context"
	"fmt"
	"time"

	"humanlenk-be/internal/constant"
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/internal/pkg/mailer"
	"humanlenk-be/internal/pkg/serverutils"
	"humanlenk-be/internal/repository/specification"
	"humanlenk-be/internal/repository/unitofwork"
	"humanlenk-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	publisher    IPublisherService
	jwtSecret    string
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	publisher IPublisherService,
	jwtSecret string,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		emailService: emailService,
		publisher:    publisher,
		jwtSecret:    jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         constant.UserRoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := serverutils.GenerateToken(s.jwtSecret, user.Id, user.Role)
	if err != nil {
		return nil, err
	}

	go func() {
		if emailErr := s.emailService.SendWelcome(user.Email, user.Name); emailErr != nil {
			fmt.Printf("Error sending welcome email: %v\n", emailErr)
		}
	}()

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeUserRegistered,
			Data: map[string]interface{}{
				"user_id": user.Id.String(),
				"email":   user.Email,
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.TypeUserRegistered, err)
		}
	}

	return &dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	token, err := serverutils.GenerateToken(s.jwtSecret, user.Id, user.Role)
	if err != nil {
		return nil, err
	}

	// last-activity marker, feeds the admin "active users" count
	if err := uow.UserRepository().Touch(ctx, user.Id); err == nil {
		user.UpdatedAt = time.Now()
	}

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeUserLogin,
			Data: map[string]interface{}{
				"user_id": user.Id.String(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.TypeUserLogin, err)
		}
	}

	return &dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	owned := specification.OwnedBy{UserID: userId}

	fileCount, err := uow.FileRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	messageCount, err := uow.MessageRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	surveyCount, err := uow.SurveyRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserResponse: toUserResponse(user),
		Counts: dto.ProfileCounts{
			Files:    fileCount,
			Messages: messageCount,
			Surveys:  surveyCount,
		},
	}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: *req.Email})
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, apperror.Conflict("Email already in use")
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	res := toUserResponse(user)
	return &res, nil
}

func (s *authService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperror.BadRequest("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uow.UserRepository().Update(ctx, user)
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
