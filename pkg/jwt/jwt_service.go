package jwt

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/utils"
)

const defaultExpireMinutes = 120

type (
	JWTService interface {
		GenerateToken(userID string, email string, username string) string
		ValidateToken(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (*UserClaims, error)
	}

	UserClaims struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		expire    time.Duration
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("JWT_SECRET")
}

func getExpire() time.Duration {
	minutes, err := strconv.Atoi(utils.GetConfig("JWT_EXPIRE_MIN"))
	if err != nil || minutes <= 0 {
		minutes = defaultExpireMinutes
	}
	return time.Duration(minutes) * time.Minute
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "RECIPESHARE",
		expire:    getExpire(),
	}
}

// NewJWTServiceWith builds a service with explicit key and TTL, bypassing the
// process-wide config.
func NewJWTServiceWith(secretKey string, expire time.Duration) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "RECIPESHARE",
		expire:    expire,
	}
}

func (j *jwtService) GenerateToken(userID string, email string, username string) string {
	claims := UserClaims{
		email,
		username,
		jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &UserClaims{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (*UserClaims, error) {
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*UserClaims)
	if !ok || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
