package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"schoolapp/config"
	"schoolapp/internal/domain/entity"
	"schoolapp/internal/domain/service"
	"schoolapp/internal/errors"
)

// sessionClaims is the token payload: identity fields plus the registered claims.
type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It refuses to start without a signing secret.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || cfg.Auth.SecretKey == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return newJWTService(cfg.Auth, time.Now), nil
}

func newJWTService(cfg *config.AuthConfig, now func() time.Time) *jwtService {
	return &jwtService{
		secret:   []byte(cfg.SecretKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTL,
		now:      now,
	}
}

// Issue signs claims into a token valid for the configured TTL.
func (s *jwtService) Issue(claims entity.ClaimSet) (*service.SessionToken, error) {
	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	payload := sessionClaims{
		Name:  claims.Username,
		Email: claims.Email,
		Role:  claims.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.SubjectID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	return &service.SessionToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate parses token and returns its claim set.
func (s *jwtService) Validate(token string) (*entity.ClaimSet, error) {
	var payload sessionClaims

	_, err := jwt.ParseWithClaims(token, &payload, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}

	subjectID, err := strconv.ParseInt(payload.Subject, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse token subject")
	}

	return &entity.ClaimSet{
		SubjectID: subjectID,
		Username:  payload.Name,
		Email:     payload.Email,
		Role:      entity.Role(payload.Role),
	}, nil
}
