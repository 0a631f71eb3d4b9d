package impl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolapp/config"
	"schoolapp/internal/domain/repository"
	"schoolapp/internal/domain/service"
	"schoolapp/internal/infra/auth"
	logs "schoolapp/internal/infra/log"
	"schoolapp/internal/infra/persistence/postgres"
	mockSvc "schoolapp/internal/mocks/service"
	"schoolapp/internal/testutil"
	"schoolapp/internal/usecase"
	"schoolapp/internal/validator"
)

// authFixtures wires the auth service against an in-memory database.
type authFixtures struct {
	service   usecase.AuthUsecase
	db        *gorm.DB
	userRepo  repository.UserRepository
	tokens    service.TokenService
	publisher *mockSvc.MockEventPublisher
}

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	tokens, err := auth.NewJWTService(&config.Config{Auth: &config.AuthConfig{
		SecretKey: "test_secret_key_very_long_for_testing",
		Issuer:    "https://localhost:5001",
		Audience:  "https://localhost:5001",
		TokenTTL:  3 * time.Hour,
	}})
	require.NoError(t, err)

	return tokens
}

func createTestAuthService(t *testing.T) authFixtures {
	t.Helper()

	db := testutil.NewDB(t)
	userRepo := postgres.NewUserRepository(db)
	tokens := newTestTokenService(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	svc := NewAuthService(AuthServiceParams{
		TxManager:    postgres.NewTransactionManager(db),
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasher(bcrypt.MinCost),
		TokenService: tokens,
		Publisher:    publisher,
		Validator:    validator.New(),
		Logger:       logs.Discard(),
	})

	return authFixtures{
		service:   svc,
		db:        db,
		userRepo:  userRepo,
		tokens:    tokens,
		publisher: publisher,
	}
}

func validSignUpInput(username string) *usecase.SignUpTeacherInput {
	return &usecase.SignUpTeacherInput{
		Username:    username,
		Password:    "Secret#123",
		Email:       username + "@school.example",
		Firstname:   "Jane",
		Lastname:    "Doe",
		PhoneNumber: "+3612345678",
		Institution: "Central High",
	}
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)

	return n
}
