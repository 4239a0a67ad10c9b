package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lifeline/lifeline-api/internal/model"
)

const (
	tokenIssuer   = "lifeline"
	tokenAudience = "lifeline-api"

	// TokenTTL is the fixed validity window of an issued token.
	TokenTTL = 7 * 24 * time.Hour
)

var (
	ErrSecretNotConfigured = errors.New("JWT_SECRET is not set")
	ErrMissingSubject      = errors.New("token has no user id")
)

// Claims represents the JWT claims for an authenticated user.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Phone  string `json:"phone"`
}

// VerifyStatus is the outcome class of a token verification.
type VerifyStatus int

const (
	TokenValid VerifyStatus = iota
	TokenMalformed
	TokenExpired
	TokenFault
)

// String returns the lowercase name of the status.
func (s VerifyStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenMalformed:
		return "malformed"
	case TokenExpired:
		return "expired"
	default:
		return "fault"
	}
}

// Verification is the result of TokenService.Verify. Claims is set only when
// Status is TokenValid; Err carries the cause otherwise.
type Verification struct {
	Status VerifyStatus
	Claims *Claims
	Err    error
}

// TokenService issues and verifies identity tokens signed with a server secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. An empty secret yields a service that
// refuses to issue tokens.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

// Ready returns ErrSecretNotConfigured when no signing secret is set.
func (s *TokenService) Ready() error {
	if len(s.secret) == 0 {
		return ErrSecretNotConfigured
	}
	return nil
}

// Issue creates a signed token embedding the user's id and phone.
func (s *TokenService) Issue(user *model.User) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: user.ID.Hex(),
		Phone:  user.Phone,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of tokenString. It does not consult storage.
func (s *TokenService) Verify(tokenString string) Verification {
	if err := s.Ready(); err != nil {
		return Verification{Status: TokenFault, Err: err}
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Verification{Status: classify(err), Err: err}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Verification{Status: TokenMalformed, Err: jwt.ErrTokenInvalidClaims}
	}
	if claims.UserID == "" {
		return Verification{Status: TokenMalformed, Err: ErrMissingSubject}
	}

	return Verification{Status: TokenValid, Claims: claims}
}

func classify(err error) VerifyStatus {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidClaims),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return TokenMalformed
	default:
		return TokenFault
	}
}
