package jwt

import (
	"sync"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeStream = "stream"

	streamTokenLifetime = 5 * time.Minute
)

type Service interface {
	GenerateAccessToken(account user.Account) (token string, expiresAt int64, err error)
	GenerateStreamToken(accountID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (accountID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	// RevokeToken and IsTokenRevoked work on the token's jti claim, so a
	// revoked token stays revoked whichever way it is presented.
	RevokeToken(tokenID string, expiresAt time.Time)
	IsTokenRevoked(tokenID string) bool
	// PurgeRevoked forgets revoked tokens that have expired anyway.
	PurgeRevoked(now time.Time) int
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]time.Time
	mu                    sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) *JWTService {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]time.Time),
	}
}

func (j *JWTService) GenerateAccessToken(account user.Account) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"jti":     uuid.NewString(),
		"iat":     time.Now().Unix(),
		"user_id": account.ID,
		"email":   account.Email,
		"name":    account.Name,
		"role":    string(account.Role),
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(tokenID string, expiresAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[tokenID] = expiresAt
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}

func (j *JWTService) PurgeRevoked(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	purged := 0
	for tokenID, exp := range j.revokedTokens {
		if !exp.After(now) {
			delete(j.revokedTokens, tokenID)
			purged++
		}
	}
	return purged
}

// GenerateStreamToken generates a short-lived token for the notification
// event stream, which is opened without an Authorization header.
func (j *JWTService) GenerateStreamToken(accountID string) (token string, expiresIn int, err error) {
	expiresAt := time.Now().Add(streamTokenLifetime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": accountID,
		"type":    TokenTypeStream,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(streamTokenLifetime.Seconds()), nil
}

// ValidateStreamToken validates a stream token and returns the account ID
func (j *JWTService) ValidateStreamToken(tokenString string) (accountID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeStream {
		return "", jwt.ErrInvalidJWT()
	}

	idVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	accountID, ok = idVal.(string)
	if !ok || accountID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return accountID, nil
}
