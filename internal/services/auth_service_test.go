package services

import (
	"testing"

	"github.com/aokimura/coursenavi/internal/dto"
	"github.com/aokimura/coursenavi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserCreatesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	firstID, err := svc.EnsureUser("idp|user-1", "alice@example.com", nil)
	require.NoError(t, err)

	secondID, err := svc.EnsureUser("idp|user-1", "alice@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureUserAppliesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	userID, err := svc.EnsureUser("idp|user-1", "alice@example.com", nil)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, "Undeclared", user.Program)
	assert.Equal(t, 1, user.Year)
	assert.Equal(t, "Fall 2024", user.Semester)
	assert.Equal(t, "sso", user.AuthProvider)
}

func TestEnsureUserOverrides(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	userID, err := svc.EnsureUser("idp|user-1", "alice@example.com", &ProfileDefaults{
		Program: "Information Systems",
		Year:    3,
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, "Information Systems", user.Program)
	assert.Equal(t, 3, user.Year)
	// Unset override falls back to the configured default.
	assert.Equal(t, "Fall 2024", user.Semester)
}

func TestEnsureUserLinksExistingEmailAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	userID, err := svc.EnsureUser("idp|user-1", "alice@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, "sso", user.AuthProvider)
	require.NotNil(t, user.ExternalAuthID)
	assert.Equal(t, "idp|user-1", *user.ExternalAuthID)
}

func TestEnsureUserRequiresSubject(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.EnsureUser("", "alice@example.com", nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCurrentUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.CurrentUser("idp|ghost")
	require.NoError(t, err)
	assert.Nil(t, user)

	userID, err := svc.EnsureUser("idp|user-1", "alice@example.com", nil)
	require.NoError(t, err)

	user, err = svc.CurrentUser("idp|user-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.False(t, resp.User.IsSSO)

	_, err = svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked after use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	reviewSvc := NewReviewService(db)
	scheduleSvc := NewScheduleService(db)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	course := createCourse(t, db, 101, "Introduction to Programming")

	_, err = reviewSvc.SubmitReview(resp.User.ID, course.ID, 4, "Solid intro course")
	require.NoError(t, err)
	_, err = scheduleSvc.SaveItem(resp.User.ID, "Fall 2024", "Monday", 2, course.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAccount(resp.User.ID, "wrong"), ErrInvalidCredentials)

	require.NoError(t, svc.DeleteAccount(resp.User.ID, "hunter2hunter2"))

	var reviews, items int64
	db.Model(&models.Review{}).Where("user_id = ?", resp.User.ID).Count(&reviews)
	db.Model(&models.ScheduleItem{}).Where("user_id = ?", resp.User.ID).Count(&items)
	assert.Equal(t, int64(0), reviews)
	assert.Equal(t, int64(0), items)

	_, err = svc.GetUser(resp.User.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
