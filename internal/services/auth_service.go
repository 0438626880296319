package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aokimura/coursenavi/internal/config"
	"github.com/aokimura/coursenavi/internal/dto"
	"github.com/aokimura/coursenavi/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSSONotConfigured   = errors.New("identity provider sign-in is not configured")
)

// ProfileDefaults are the user fields filled in when a record is created
// lazily on first sign-in. Zero fields fall back to the configured defaults.
type ProfileDefaults struct {
	Program  string
	Year     int
	Semester string
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	idp *IdentityProviderClient
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	var idp *IdentityProviderClient
	if cfg.IdPJWKSURL != "" {
		idp = NewIdentityProviderClient(cfg.IdPIssuer, cfg.IdPJWKSURL, cfg.IdPAudience)
	}
	return &AuthService{
		db:  db,
		cfg: cfg,
		idp: idp,
	}
}

// CurrentUser resolves an external subject identifier to the internal user
// record. Returns (nil, nil) when no user exists for that identity.
func (s *AuthService) CurrentUser(externalAuthID string) (*models.User, error) {
	if externalAuthID == "" {
		return nil, ErrNotAuthenticated
	}
	var user models.User
	err := s.db.Where("external_auth_id = ?", externalAuthID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// EnsureUser returns the id of the user owning externalAuthID, creating the
// record on first sight. Safe to call repeatedly: the unique index on
// external_auth_id serializes concurrent first calls, and a duplicate-key
// rejection is treated as "already exists".
func (s *AuthService) EnsureUser(externalAuthID, email string, overrides *ProfileDefaults) (uuid.UUID, error) {
	if externalAuthID == "" {
		return uuid.Nil, ErrNotAuthenticated
	}

	var user models.User
	err := s.db.Where("external_auth_id = ?", externalAuthID).First(&user).Error
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if email == "" {
		email = externalAuthID + "@sso.local"
	}

	// An account registered earlier with the same email gets the external
	// identity attached instead of a second record.
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		if err := s.db.Model(&existing).Updates(map[string]interface{}{
			"external_auth_id": externalAuthID,
			"auth_provider":    "sso",
		}).Error; err != nil {
			return uuid.Nil, fmt.Errorf("failed to link identity: %w", err)
		}
		return existing.ID, nil
	}

	profile := ProfileDefaults{
		Program:  s.cfg.DefaultProgram,
		Year:     s.cfg.DefaultYear,
		Semester: s.cfg.DefaultSemester,
	}
	if overrides != nil {
		if overrides.Program != "" {
			profile.Program = overrides.Program
		}
		if overrides.Year > 0 {
			profile.Year = overrides.Year
		}
		if overrides.Semester != "" {
			profile.Semester = overrides.Semester
		}
	}

	user = models.User{
		ID:             uuid.New(),
		ExternalAuthID: &externalAuthID,
		Email:          email,
		Password:       "",
		AuthProvider:   "sso",
		Program:        profile.Program,
		Year:           profile.Year,
		Semester:       profile.Semester,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent first sign-in won the insert; use its row.
			var winner models.User
			if ferr := s.db.Where("external_auth_id = ?", externalAuthID).First(&winner).Error; ferr == nil {
				return winner.ID, nil
			}
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

// TokenSignIn verifies a provider identity token, resolves (or creates) the
// local user and issues our own token pair.
func (s *AuthService) TokenSignIn(req *dto.TokenSignInRequest) (*dto.AuthResponse, error) {
	if s.idp == nil {
		return nil, ErrSSONotConfigured
	}
	if req.IdentityToken == "" {
		return nil, ErrNotAuthenticated
	}

	claims, err := s.idp.VerifyToken(req.IdentityToken)
	if err != nil {
		slog.Error("identity token verification failed", "error", err)
		return nil, fmt.Errorf("failed to verify identity token: %w", err)
	}

	email := claims.Email
	if email == "" {
		email = req.Email
	}

	userID, err := s.EnsureUser(claims.Sub, email, &ProfileDefaults{
		Program:  req.Program,
		Year:     req.Year,
		Semester: req.Semester,
	})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	program := req.Program
	if program == "" {
		program = s.cfg.DefaultProgram
	}
	year := req.Year
	if year <= 0 {
		year = s.cfg.DefaultYear
	}
	semester := req.Semester
	if semester == "" {
		semester = s.cfg.DefaultSemester
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Password:     string(hash),
		AuthProvider: "email",
		Program:      program,
		Year:         year,
		Semester:     semester,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// GetUser loads a user by internal id, for the /me endpoint.
func (s *AuthService) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if user.AuthProvider != "sso" {
		if password == "" {
			return errors.New("password is required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
		tx.Where("user_id = ?", userID).Delete(&models.Review{})
		tx.Where("user_id = ?", userID).Delete(&models.ScheduleItem{})
		tx.Where("reporter_id = ?", userID).Delete(&models.ReviewReport{})
		return tx.Delete(&user).Error
	})
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Program:  user.Program,
			Year:     user.Year,
			Semester: user.Semester,
			IsSSO:    user.AuthProvider == "sso",
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"email":  user.Email,
		"is_sso": user.AuthProvider == "sso",
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
