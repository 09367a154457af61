package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service mints and verifies access tokens. Issuing tokens for real users belongs to the
// identity provider; GenerateAccessToken serves operators and tests.
type Service interface {
	GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error)
	// ParsePrincipal decodes a token string without the HTTP middleware.
	ParsePrincipal(tokenString string) (user.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) GenerateAccessToken(p user.Principal) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]any{
		"user_id":     p.UserID,
		"employee_id": returnValueOrNil(p.EmployeeID),
		"company_id":  p.CompanyID,
		"role":        string(p.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) ParsePrincipal(tokenString string) (user.Principal, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return user.Principal{}, err
	}
	if err := jwt.Validate(token, jwt.WithAcceptableSkew(30*time.Second)); err != nil {
		return user.Principal{}, err
	}

	tokenType, _ := token.Get("type")
	if tokenType != "access" {
		return user.Principal{}, jwt.ErrInvalidJWT()
	}

	userID, _ := token.Get("user_id")
	roleClaim, _ := token.Get("role")
	roleStr, _ := roleClaim.(string)
	role, err := user.ParseRole(roleStr)
	if err != nil {
		return user.Principal{}, err
	}

	p := user.Principal{Role: role}
	p.UserID, _ = userID.(string)
	if companyID, ok := token.Get("company_id"); ok {
		p.CompanyID, _ = companyID.(string)
	}
	if employeeID, ok := token.Get("employee_id"); ok {
		if s, ok := employeeID.(string); ok && s != "" {
			p.EmployeeID = &s
		}
	}
	return p, nil
}

func returnValueOrNil(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
