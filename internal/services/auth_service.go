package services

import (
	"time"

	"electra/internal/domain"
	"electra/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims embedded in staff bearer tokens. The role claim is trusted for the
// token lifetime; a role change only takes effect once the token expires.
type Claims struct {
	StaffID string `json:"staffId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Staff  *repos.StaffRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(staff *repos.StaffRepo, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{Staff: staff, Secret: []byte(secret), TTL: ttl}
}

// Login verifies credentials and issues a signed bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, domain.Staff, error) {
	st, err := s.Staff.ByEmail(email)
	if err != nil {
		return "", domain.Staff{}, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(st.Hash), []byte(password)) != nil {
		return "", domain.Staff{}, ErrBadCreds
	}

	now := time.Now()
	claims := &Claims{
		StaffID: st.ID,
		Email:   st.Email,
		Role:    st.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   st.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.Staff{}, err
	}
	return token, st, nil
}

// ParseToken validates a bearer token and returns its claims. Expired or
// tampered tokens fail here; the role is not re-checked against the database.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
