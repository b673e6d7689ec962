package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"antrian-fm/config"
	"antrian-fm/internal/status"
	"antrian-fm/models"
	"antrian-fm/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and validates admin sessions. The token itself is a
// signed, expiring JWT; the session is additionally tracked in Redis so that
// logout revokes it before expiry.
type AuthService struct {
	app    core.App
	redis  *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewAuthService(app core.App, redisClient *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		app:    app,
		redis:  redisClient,
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
	}
}

// Login checks the bcrypt password hash and, on success, returns the session
// plus its bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.AdminSession, string, error) {
	record, err := s.app.FindFirstRecordByFilter("admins", "username = {:username}", dbx.Params{"username": username})
	if err != nil {
		return models.AdminSession{}, "", adminLookupErr(err)
	}

	hash := record.GetString("password_hash")
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.AdminSession{}, "", status.ErrInvalidCredentials
	}

	session := models.AdminSession{
		ID:        record.Id,
		Username:  record.GetString("username"),
		FullName:  record.GetString("full_name"),
		LoginTime: time.Now(),
	}

	jti, err := utils.GenerateCode(8)
	if err != nil {
		return models.AdminSession{}, "", fmt.Errorf("generate session id: %w", err)
	}

	token, err := signSessionToken(s.secret, session, jti, s.ttl)
	if err != nil {
		return models.AdminSession{}, "", fmt.Errorf("sign session token: %w", err)
	}

	if err := s.storeSession(ctx, jti, session.ID); err != nil {
		return models.AdminSession{}, "", fmt.Errorf("store session: %w", err)
	}
	return session, token, nil
}

// Validate checks signature and expiry of a bearer token, then verifies the
// session is still live in Redis.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (models.AdminSession, error) {
	session, jti, err := parseSessionToken(s.secret, tokenString)
	if err != nil {
		return models.AdminSession{}, err
	}

	exists, err := s.redis.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		return models.AdminSession{}, fmt.Errorf("session lookup: %w", err)
	}
	if exists == 0 {
		return models.AdminSession{}, status.ErrSessionExpired
	}
	return session, nil
}

// Logout revokes the session behind the token. Expired or garbage tokens are
// treated as already logged out.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	_, jti, err := parseSessionToken(s.secret, tokenString)
	if err != nil {
		return nil
	}
	return s.revokeSession(ctx, jti)
}

func (s *AuthService) storeSession(ctx context.Context, jti, adminID string) error {
	return s.redis.Set(ctx, sessionKey(jti), adminID, s.ttl).Err()
}

func (s *AuthService) revokeSession(ctx context.Context, jti string) error {
	return s.redis.Del(ctx, sessionKey(jti)).Err()
}

// adminLookupErr keeps unknown usernames indistinguishable from bad
// passwords while letting store failures surface as what they are.
func adminLookupErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return status.ErrInvalidCredentials
	}
	return fmt.Errorf("admin lookup: %w", err)
}

func sessionKey(jti string) string {
	return fmt.Sprintf("admin:session:%s", jti)
}

func signSessionToken(secret []byte, session models.AdminSession, jti string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":       session.ID,
		"username":  session.Username,
		"full_name": session.FullName,
		"jti":       jti,
		"iat":       session.LoginTime.Unix(),
		"exp":       session.LoginTime.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseSessionToken(secret []byte, tokenString string) (models.AdminSession, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return models.AdminSession{}, "", status.ErrSessionExpired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.AdminSession{}, "", status.ErrSessionExpired
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return models.AdminSession{}, "", status.ErrSessionExpired
	}

	session := models.AdminSession{}
	session.ID, _ = claims["sub"].(string)
	session.Username, _ = claims["username"].(string)
	session.FullName, _ = claims["full_name"].(string)
	if iat, ok := claims["iat"].(float64); ok {
		session.LoginTime = time.Unix(int64(iat), 0)
	}
	return session, jti, nil
}
