package auth

import (
	"items-backend/internal/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const Issuer = "items-backend"

// AppClaims carries the token id in RegisteredClaims.ID (the "jti" claim);
// it is the key of the session row backing the token.
type AppClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (c *AppClaims) TokenID() string {
	return c.ID
}

func GenerateJWT(user *models.User, tokenID, secret string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := &AppClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func VerifyJWT(tokenString, secret string, opts ...jwt.ParserOption) (*AppClaims, error) {
	opts = append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	}, opts...)

	token, err := jwt.ParseWithClaims(tokenString, &AppClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AppClaims); ok && token.Valid {
		if claims.ID == "" {
			return nil, jwt.ErrTokenInvalidId
		}
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}
