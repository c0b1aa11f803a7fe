package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// RoleAdmin - роль, дающая право изменять банк вопросов
const RoleAdmin = "admin"

const tokenIssuer = "trivia-questions-api"

// AdminClaims содержит поля токена администратора
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет токены администратора, подписанные HMAC-секретом
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService создает сервис токенов и возвращает ошибку при пустом секрете
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required for TokenService")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// IssueAdminToken создает токен администратора для subject
func (s *TokenService) IssueAdminToken(subject string) (string, error) {
	now := time.Now()
	claims := &AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] Ошибка генерации токена для %s: %v", subject, err)
		return "", err
	}
	return tokenString, nil
}

// ParseAdminToken проверяет подпись, срок действия и роль токена
func (s *TokenService) ParseAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Проверяем метод подписи токена
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, errors.New("token is malformed")
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return nil, errors.New("token is expired")
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return nil, errors.New("token signature is invalid")
			}
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims.Issuer != tokenIssuer {
		return nil, fmt.Errorf("unexpected token issuer: %s", claims.Issuer)
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("token role %q is not allowed", claims.Role)
	}
	return claims, nil
}
