// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "schoolapp/internal/delivery/context"
	"schoolapp/internal/domain/entity"
	domainerrors "schoolapp/internal/domain/errors"
	"schoolapp/internal/domain/repository"
	"schoolapp/internal/domain/service"
	"schoolapp/internal/errors"
	logs "schoolapp/internal/infra/log"
	"schoolapp/internal/usecase"
	"schoolapp/internal/validator"
)

// timingPassword is hashed once and checked against on unknown identifiers so that
// both login failure paths pay for a key derivation.
const timingPassword = "timing-equaliser-Pa55!"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	validator    *validator.Validator
	logger       *slog.Logger
	now          func() time.Time

	dummyMu   sync.Mutex
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Validator    *validator.Validator
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		validator:    params.Validator,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// SignUpTeacher validates the form, hashes the password off the request path and
// stores the user and teacher profile in one transaction.
func (srv *authService) SignUpTeacher(ctx context.Context, input *usecase.SignUpTeacherInput) (*usecase.UserTeacherOutput, error) {
	if err := srv.validator.Validate(input); err != nil {
		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooLong) {
			return nil, domainerrors.ErrInvalidRegistration.WithFields(domainerrors.FieldError{
				Field:   "password",
				Message: "password is too long",
			})
		}

		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Role:         entity.RoleTeacher,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		profile := &entity.TeacherProfile{
			UserID:      user.ID,
			PhoneNumber: input.PhoneNumber,
			Institution: input.Institution,
		}
		if err := repoFactory.TeacherRepo().Create(ctx, profile); err != nil {
			return err
		}
		user.Teacher = profile

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute teacher registration transaction")
	}

	srv.log(ctx).Debug("Teacher registered", slog.Int64("userID", user.ID))
	srv.publishRegistered(ctx, user)

	out := usecase.NewUserTeacherOutput(user)

	return &out, nil
}

// publishRegistered emits the registration event. The account is already committed,
// so a delivery failure is reported but never undoes or fails the signup.
func (srv *authService) publishRegistered(ctx context.Context, user *entity.User) {
	event := &service.UserRegisteredEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role.String(),
		OccurredAt: srv.now().UTC().Format(time.RFC3339),
	}

	if err := srv.publisher.PublishUserRegistered(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish user registered event",
			slog.String("eventID", event.EventID),
			slog.Int64("userID", user.ID),
			slog.Any("error", err),
		)
	}
}

// Login verifies the credentials and issues a session token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.VerifyCredentials(ctx, input.Identifier, input.Password)
	if err != nil {
		return nil, err
	}

	return srv.IssueSession(user)
}

// VerifyCredentials looks the user up by username or email and checks the password.
// Every failure caused by the caller's input is the same ErrBadCredentials.
func (srv *authService) VerifyCredentials(ctx context.Context, identifier, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.equaliseTiming(ctx, password)

			return nil, domainerrors.ErrBadCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by identifier")
	}

	ok, err := srv.hasher.Check(ctx, password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, service.ErrMalformedHash) {
			return nil, errors.Wrap(domainerrors.ErrBadCredentials, "stored hash malformed")
		}

		return nil, errors.Wrap(err, "failed to check password")
	}
	if !ok {
		return nil, domainerrors.ErrBadCredentials
	}

	return user, nil
}

func (srv *authService) equaliseTiming(ctx context.Context, password string) {
	hash, err := srv.timingHash(ctx)
	if err != nil {
		srv.log(ctx).Warn("Timing hash unavailable", slog.Any("error", err))

		return
	}

	_, _ = srv.hasher.Check(ctx, password, hash)
}

// timingHash returns the cached dummy hash, computing it on first use.
// A failed attempt is not cached, so the next unknown identifier retries.
func (srv *authService) timingHash(ctx context.Context) (string, error) {
	srv.dummyMu.Lock()
	defer srv.dummyMu.Unlock()

	if srv.dummyHash == "" {
		hash, err := srv.hasher.Hash(ctx, timingPassword)
		if err != nil {
			return "", errors.Wrap(err, "failed to hash timing password")
		}
		srv.dummyHash = hash
	}

	return srv.dummyHash, nil
}

// IssueSession signs a token carrying the user's identity claims.
func (srv *authService) IssueSession(user *entity.User) (*usecase.LoginOutput, error) {
	token, err := srv.tokenService.Issue(entity.NewClaimSet(user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.LoginOutput{Token: token.Token, ExpiresAt: token.ExpiresAt}, nil
}
