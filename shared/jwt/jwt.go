package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/forum/shared/domain"
	internal_errors "github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/logger"
)

type JwtService interface {
	NewToken(identity domain.Identity) (string, error)
	DecodeToken(jwtStr string) (*domain.Identity, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(identity domain.Identity) (string, error) {
	if identity.Name == "" {
		return "", errors.New("Can't create token for empty name")
	}
	claims := jwt.MapClaims{}
	claims["name"] = identity.Name
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("signing token", "error", err)
		return "", errors.New("Can't create token")
	}

	return tokenString, nil
}

// DecodeToken verifies jwtStr and returns the identity it carries.
func (j *Jwt) DecodeToken(jwtStr string) (*domain.Identity, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		logger.Log.Debug("decoding token", "error", err)
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token signature", StatusCode: http.StatusUnauthorized}
	}

	if !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}
	name, ok := claims["name"].(string)
	if !ok || name == "" {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	return &domain.Identity{Name: name}, nil
}
