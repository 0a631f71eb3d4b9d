package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schoolapp/config"
	"schoolapp/internal/delivery/api/middleware"
	"schoolapp/internal/delivery/api/response"
	"schoolapp/internal/delivery/api/router"
	"schoolapp/internal/delivery/api/router/handler"
	deliverycontext "schoolapp/internal/delivery/context"
	"schoolapp/internal/domain/entity"
	"schoolapp/internal/domain/repository"
	"schoolapp/internal/infra/auth"
	logs "schoolapp/internal/infra/log"
	"schoolapp/internal/infra/persistence/postgres"
	mockSvc "schoolapp/internal/mocks/service"
	"schoolapp/internal/testutil"
	"schoolapp/internal/usecase/impl"
	"schoolapp/internal/validator"
)

const signUpBody = `{
	"username": "jdoe",
	"password": "Secret#123",
	"email": "jdoe@school.example",
	"firstname": "Jane",
	"lastname": "Doe",
	"phoneNumber": "+3612345678",
	"institution": "Central High"
}`

type testServer struct {
	echo     *echo.Echo
	userRepo repository.UserRepository
	hasher   *auth.HashPool
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			SecretKey: "test_secret_key_very_long_for_testing",
			Issuer:    "https://localhost:5001",
			Audience:  "https://localhost:5001",
			TokenTTL:  time.Hour,
		},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	db := testutil.NewDB(t)
	userRepo := postgres.NewUserRepository(db)
	hasher := auth.NewHashPool(auth.NewBcryptHasher(bcrypt.MinCost), 2)
	t.Cleanup(hasher.Stop)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishUserRegistered(mock.Anything, mock.Anything).Return(nil).Maybe()

	logger := logs.Discard()
	v := validator.New()

	authService := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    postgres.NewTransactionManager(db),
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokens,
		Publisher:    publisher,
		Validator:    v,
		Logger:       logger,
	})
	userQueries := impl.NewUserQueryService(impl.UserQueryServiceParams{UserRepo: userRepo})

	r := router.NewRouter(router.RouterParams{
		UserHandler:    handler.NewUserHandler(authService, userQueries),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens),
	})

	return &testServer{
		echo:     NewEcho(cfg, logger, v, r),
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *testServer) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func (s *testServer) login(t *testing.T, identifier, password string) string {
	t.Helper()

	body, err := json.Marshal(map[string]string{"username": identifier, "password": password})
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/users/login", string(body), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotContains(t, out, "expiresAt")

	token, _ := out["token"].(string)
	require.NotEmpty(t, token)

	return token
}

func (s *testServer) seedStudent(t *testing.T, username string) {
	t.Helper()

	hash, err := s.hasher.Hash(context.Background(), "Student#123")
	require.NoError(t, err)
	require.NoError(t, s.userRepo.Create(context.Background(), &entity.User{
		Username:     username,
		Email:        username + "@school.example",
		PasswordHash: hash,
		Firstname:    "Stu",
		Lastname:     "Dent",
		Role:         entity.RoleStudent,
	}))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func TestAPI_SignUpLoginAndMe(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/users/signup", signUpBody, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))

	created := decode[map[string]any](t, rec)
	assert.Equal(t, "jdoe", created["username"])
	assert.Equal(t, "Teacher", created["userRole"])
	assert.Equal(t, "Central High", created["institution"])
	assert.NotContains(t, created, "password")
	assert.NotContains(t, created, "passwordHash")

	for _, identifier := range []string{"jdoe", "jdoe@school.example"} {
		token := srv.login(t, identifier, "Secret#123")

		rec = srv.do(t, http.MethodGet, "/api/users/me", "", token)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decode[map[string]any](t, rec)
		assert.Equal(t, "jdoe", me["username"])
		assert.Equal(t, "Teacher", me["userRole"])
	}
}

func TestAPI_SignUpErrors(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/users/signup", signUpBody, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/users/signup", signUpBody, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	dup := decode[response.ErrorResponse](t, rec)
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, "User with the same username or email already exists", dup.Message)
	assert.Empty(t, dup.Errors)

	rec = srv.do(t, http.MethodPost, "/api/users/signup", `{"username":"x","password":"short","email":"nope"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	invalid := decode[response.ErrorResponse](t, rec)
	fields := map[string]bool{}
	for _, f := range invalid.Errors {
		fields[f.Field] = true
	}
	for _, want := range []string{"username", "password", "email", "firstname", "lastname", "phoneNumber", "institution"} {
		assert.True(t, fields[want], "missing field error for %s", want)
	}

	rec = srv.do(t, http.MethodPost, "/api/users/signup", `{"username":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request input", decode[response.ErrorResponse](t, rec).Message)
}

func TestAPI_LoginFailures(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(t, http.MethodPost, "/api/users/signup", signUpBody, "").Code)

	bodies := []string{
		`{"username":"jdoe","password":"Wrong#1234"}`,
		`{"username":"ghost","password":"Secret#123"}`,
		`{"username":"jdoe"}`,
	}

	var messages []string
	for _, body := range bodies {
		rec := srv.do(t, http.MethodPost, "/api/users/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, body)
		messages = append(messages, decode[response.ErrorResponse](t, rec).Message)
	}
	assert.Equal(t, []string{"Bad Credentials", "Bad Credentials", "Bad Credentials"}, messages)
}

func TestAPI_Authorization(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(t, http.MethodPost, "/api/users/signup", signUpBody, "").Code)
	srv.seedStudent(t, "student1")

	rec := srv.do(t, http.MethodGet, "/api/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/students", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	studentToken := srv.login(t, "student1", "Student#123")
	rec = srv.do(t, http.MethodGet, "/api/users", "", studentToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", decode[response.ErrorResponse](t, rec).Message)

	rec = srv.do(t, http.MethodGet, "/api/students", "", studentToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Listing(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(t, http.MethodPost, "/api/users/signup", signUpBody, "").Code)
	for _, name := range []string{"student1", "student2", "student3"} {
		srv.seedStudent(t, name)
	}
	token := srv.login(t, "jdoe", "Secret#123")

	type page struct {
		Data []struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
			Role     string `json:"userRole"`
		} `json:"data"`
		TotalRecords int64 `json:"totalRecords"`
		TotalPages   int   `json:"totalPages"`
		PageNumber   int   `json:"pageNumber"`
		PageSize     int   `json:"pageSize"`
	}

	rec := srv.do(t, http.MethodGet, "/api/students", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	students := decode[page](t, rec)
	assert.Equal(t, int64(3), students.TotalRecords)
	assert.Equal(t, 1, students.TotalPages)
	assert.Equal(t, 1, students.PageNumber)
	assert.Equal(t, 10, students.PageSize)
	for _, u := range students.Data {
		assert.Equal(t, "Student", u.Role)
	}

	rec = srv.do(t, http.MethodGet, "/api/users?pageNumber=2&pageSize=2", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[page](t, rec)
	assert.Equal(t, int64(4), second.TotalRecords)
	assert.Equal(t, 2, second.TotalPages)
	require.Len(t, second.Data, 2)
	assert.Equal(t, "student2", second.Data[0].Username)
	assert.Equal(t, "student3", second.Data[1].Username)

	rec = srv.do(t, http.MethodGet, "/api/users?role=Teacher", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	teachers := decode[page](t, rec)
	require.Len(t, teachers.Data, 1)
	assert.Equal(t, "jdoe", teachers.Data[0].Username)

	rec = srv.do(t, http.MethodGet, "/api/users?pageNumber=0&pageSize=500", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	invalid := decode[response.ErrorResponse](t, rec)
	require.Len(t, invalid.Errors, 2)
	assert.Equal(t, "pageNumber", invalid.Errors[0].Field)
	assert.Equal(t, "pageSize", invalid.Errors[1].Field)
}

func TestAPI_Lookups(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/api/users/signup", signUpBody, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	srv.seedStudent(t, "student1")
	token := srv.login(t, "jdoe", "Secret#123")

	rec = srv.do(t, http.MethodGet, "/api/users/teachers/jdoe", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	teacher := decode[map[string]any](t, rec)
	assert.Equal(t, "+3612345678", teacher["phoneNumber"])

	rec = srv.do(t, http.MethodGet, "/api/users/teachers/student1", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/users/by-username/student1", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	student := decode[map[string]any](t, rec)
	assert.Equal(t, "Student", student["userRole"])

	for _, target := range []string{"/api/users/abc", "/api/users/0", "/api/users/999"} {
		rec = srv.do(t, http.MethodGet, target, "", token)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "User not found", decode[response.ErrorResponse](t, rec).Message)
	}
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
