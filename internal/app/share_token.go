package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// ShareTokenService signs short-lived score proofs so a result card shared
// outside the game can be verified without storing anything server side.
type ShareTokenService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// ShareClaims is the verified content of a share token.
type ShareClaims struct {
	UserID string
	Game   Game
	Score  int
}

func NewShareTokenService(secret, issuer string, ttl time.Duration) *ShareTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ShareTokenService{secret: secret, issuer: issuer, ttl: ttl}
}

// GenerateToken signs a score proof for the given user and game.
func (s *ShareTokenService) GenerateToken(userID string, game Game, score int) (string, error) {
	if s == nil {
		return "", fmt.Errorf("share token service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if !ValidGame(game) {
		return "", fmt.Errorf("unknown game: %s", game)
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("share token config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"sub":   userID,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.ttl).Unix(),
		"game":  string(game),
		"score": score,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyToken checks the signature and expiry and returns the proven claims.
func (s *ShareTokenService) VerifyToken(tokenString string) (ShareClaims, error) {
	if s == nil || s.secret == "" {
		return ShareClaims{}, fmt.Errorf("share token config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return ShareClaims{}, fmt.Errorf("invalid share token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ShareClaims{}, fmt.Errorf("invalid share token claims")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return ShareClaims{}, fmt.Errorf("invalid share token issuer")
	}

	sub, _ := claims["sub"].(string)
	game, _ := claims["game"].(string)
	score, _ := claims["score"].(float64)
	return ShareClaims{UserID: sub, Game: Game(game), Score: int(score)}, nil
}
