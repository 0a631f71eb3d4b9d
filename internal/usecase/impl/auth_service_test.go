package impl

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	deliverycontext "schoolapp/internal/delivery/context"
	"schoolapp/internal/domain/entity"
	domainerrors "schoolapp/internal/domain/errors"
	"schoolapp/internal/domain/service"
	"schoolapp/internal/errors"
	"schoolapp/internal/usecase"
)

func TestAuthService_SignUpTeacher_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-123")

	var published *service.UserRegisteredEvent
	fx.publisher.EXPECT().
		PublishUserRegistered(mock.Anything, mock.AnythingOfType("*service.UserRegisteredEvent")).
		Run(func(_ context.Context, event *service.UserRegisteredEvent) { published = event }).
		Return(nil).
		Once()

	output, err := fx.service.SignUpTeacher(ctx, validSignUpInput("jdoe"))

	require.NoError(t, err)
	assert.Positive(t, output.ID)
	assert.Equal(t, "jdoe", output.Username)
	assert.Equal(t, "jdoe@school.example", output.Email)
	assert.Equal(t, entity.RoleTeacher, output.Role)
	assert.Equal(t, "+3612345678", output.PhoneNumber)
	assert.Equal(t, "Central High", output.Institution)

	stored, err := fx.userRepo.FindTeacherByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret#123", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
	assert.Equal(t, stored.ID, stored.Teacher.UserID)

	require.NotNil(t, published)
	assert.Equal(t, "req-123", published.RequestID)
	assert.Equal(t, output.ID, published.UserID)
	assert.Equal(t, "Teacher", published.Role)
	assert.NotEmpty(t, published.EventID)
	assert.NotEmpty(t, published.OccurredAt)
}

func TestAuthService_SignUpTeacher_LongestNames(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	fx.publisher.EXPECT().PublishUserRegistered(mock.Anything, mock.Anything).Return(nil).Once()

	input := validSignUpInput("longname")
	input.Firstname = strings.Repeat("a", 255)
	input.Lastname = strings.Repeat("b", 255)

	output, err := fx.service.SignUpTeacher(ctx, input)
	require.NoError(t, err)
	assert.Len(t, output.Firstname, 255)

	stored, err := fx.userRepo.FindByUsername(ctx, "longname")
	require.NoError(t, err)
	assert.Equal(t, input.Lastname, stored.Lastname)

	input = validSignUpInput("toolong")
	input.Firstname = strings.Repeat("a", 256)
	_, err = fx.service.SignUpTeacher(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRegistration)
}

func TestAuthService_SignUpTeacher_ValidationErrors(t *testing.T) {
	fx := createTestAuthService(t)

	input := validSignUpInput("j")
	input.Email = "not-an-email"
	input.Password = "weakpassword"

	_, err := fx.service.SignUpTeacher(context.Background(), input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRegistration)

	appErr := domainerrors.Classify(err)
	assert.Equal(t, domainerrors.KindInvalidRegistration, appErr.Kind())

	fields := map[string]bool{}
	for _, f := range appErr.Fields() {
		fields[f.Field] = true
		assert.NotEmpty(t, f.Message)
	}
	assert.Equal(t, map[string]bool{"username": true, "email": true, "password": true}, fields)
	assert.Zero(t, countRows(t, fx.db, "users"))
}

func TestAuthService_SignUpTeacher_Duplicate(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	fx.publisher.EXPECT().PublishUserRegistered(mock.Anything, mock.Anything).Return(nil).Once()

	_, err := fx.service.SignUpTeacher(ctx, validSignUpInput("jdoe"))
	require.NoError(t, err)

	sameEmail := validSignUpInput("jdoe2")
	sameEmail.Email = "jdoe@school.example"

	for _, input := range []*usecase.SignUpTeacherInput{validSignUpInput("jdoe"), sameEmail} {
		_, err = fx.service.SignUpTeacher(ctx, input)
		require.Error(t, err)
		assert.Equal(t, domainerrors.KindAlreadyExists, domainerrors.KindOf(err))
	}

	assert.Equal(t, int64(1), countRows(t, fx.db, "users"))
	assert.Equal(t, int64(1), countRows(t, fx.db, "teachers"))
}

func TestAuthService_SignUpTeacher_ConcurrentDuplicates(t *testing.T) {
	fx := createTestAuthService(t)
	fx.publisher.EXPECT().PublishUserRegistered(mock.Anything, mock.Anything).Return(nil).Once()

	const attempts = 5

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := fx.service.SignUpTeacher(context.Background(), validSignUpInput("racer"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case domainerrors.KindOf(err) == domainerrors.KindAlreadyExists:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, int64(1), countRows(t, fx.db, "users"))
	assert.Equal(t, int64(1), countRows(t, fx.db, "teachers"))
}

func TestAuthService_SignUpTeacher_PublishFailureKeepsAccount(t *testing.T) {
	fx := createTestAuthService(t)
	fx.publisher.EXPECT().
		PublishUserRegistered(mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).
		Once()

	output, err := fx.service.SignUpTeacher(context.Background(), validSignUpInput("jdoe"))

	require.NoError(t, err)
	assert.Positive(t, output.ID)
	assert.Equal(t, int64(1), countRows(t, fx.db, "users"))
}

func TestAuthService_Login(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	fx.publisher.EXPECT().PublishUserRegistered(mock.Anything, mock.Anything).Return(nil).Once()

	registered, err := fx.service.SignUpTeacher(ctx, validSignUpInput("jdoe"))
	require.NoError(t, err)

	for _, identifier := range []string{"jdoe", "jdoe@school.example"} {
		t.Run(identifier, func(t *testing.T) {
			output, err := fx.service.Login(ctx, &usecase.LoginInput{Identifier: identifier, Password: "Secret#123"})
			require.NoError(t, err)
			assert.NotEmpty(t, output.Token)
			assert.False(t, output.ExpiresAt.IsZero())

			claims, err := fx.tokens.Validate(output.Token)
			require.NoError(t, err)
			assert.Equal(t, registered.ID, claims.SubjectID)
			assert.Equal(t, "jdoe", claims.Username)
			assert.Equal(t, entity.RoleTeacher, claims.Role)
		})
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	fx.publisher.EXPECT().PublishUserRegistered(mock.Anything, mock.Anything).Return(nil).Once()

	_, err := fx.service.SignUpTeacher(ctx, validSignUpInput("jdoe"))
	require.NoError(t, err)

	_, wrongPassword := fx.service.Login(ctx, &usecase.LoginInput{Identifier: "jdoe", Password: "Wrong#1234"})
	_, unknownUser := fx.service.Login(ctx, &usecase.LoginInput{Identifier: "ghost", Password: "Secret#123"})
	_, wrongCase := fx.service.Login(ctx, &usecase.LoginInput{Identifier: "JDOE", Password: "Secret#123"})

	for _, err := range []error{wrongPassword, unknownUser, wrongCase} {
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrBadCredentials)
	}
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.Equal(t, domainerrors.Classify(wrongPassword), domainerrors.Classify(unknownUser))
}

func TestAuthService_VerifyCredentials_MalformedHash(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	broken := &entity.User{
		Username:     "legacy",
		Email:        "legacy@school.example",
		PasswordHash: "not-a-bcrypt-digest",
		Firstname:    "Old",
		Lastname:     "Account",
		Role:         entity.RoleStudent,
	}
	require.NoError(t, fx.userRepo.Create(ctx, broken))

	_, err := fx.service.VerifyCredentials(ctx, "legacy", "Secret#123")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrBadCredentials)
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
}
