package jwt

import (
	"errors"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carry the identity the provider established. The API never
// authenticates credentials itself; it only validates the signature and
// maps the claims to an acting employee.
type Claims struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role"`

	jwtlib.RegisteredClaims
}

type Service interface {
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret []byte
}

func NewHMACService(secret string) *HMACService {
	return &HMACService{secret: []byte(secret)}
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c Claims
	token, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
