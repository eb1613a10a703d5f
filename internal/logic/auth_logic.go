package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthLogic account registration, login and token handling
type AuthLogic struct {
	db  *gorm.DB
	cfg config.AuthConfig
}

// NewAuthLogic creates the auth business logic.
func NewAuthLogic(db *gorm.DB, cfg config.AuthConfig) *AuthLogic {
	return &AuthLogic{db: db, cfg: cfg}
}

// Register creates a new account with a bcrypt password hash.
func (a *AuthLogic) Register(email, password, name string, role model.UserRole) (*model.UserModel, error) {
	if email == "" || password == "" || name == "" {
		return nil, validationError("email, password and name are required")
	}
	if len(password) < 8 {
		return nil, validationError("password must be at least 8 characters")
	}
	switch role {
	case model.UserRoleClient, model.UserRoleFreelancer:
	case "":
		role = model.UserRoleClient
	default:
		return nil, validationError("invalid role")
	}

	var existing model.UserModel
	err := a.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, conflictError("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.UserModel{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := a.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns a signed token.
func (a *AuthLogic) Login(email, password string) (string, *model.UserModel, error) {
	var user model.UserModel
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		// same message for unknown email and bad password
		return "", nil, validationError("invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, validationError("invalid email or password")
	}

	token, err := a.IssueToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// IssueToken signs an HS256 token carrying user id and role.
func (a *AuthLogic) IssueToken(user *model.UserModel) (string, error) {
	ttl := time.Duration(a.cfg.TokenTTLHours) * time.Hour
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"user_id": user.Id,
		"role":    string(user.Role),
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.JWTSecret))
}

// ParseToken validates a token and extracts user id and role.
func (a *AuthLogic) ParseToken(tokenStr string) (int64, model.UserRole, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.cfg.JWTSecret), nil
	})
	if err != nil {
		return 0, "", err
	}
	if !token.Valid {
		return 0, "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", jwt.ErrTokenMalformed
	}
	userId, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", jwt.ErrTokenMalformed
	}
	role, _ := claims["role"].(string)

	return int64(userId), model.UserRole(role), nil
}

// GetUser loads one account.
func (a *AuthLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := a.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
