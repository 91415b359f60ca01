package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
)

// mockAuthRepository implements AuthRepository for tests.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	profiles     map[uuid.UUID]*models.Profile
	sessions     map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		profiles:     make(map[uuid.UUID]*models.Profile),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) List(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	var users []models.User
	for _, u := range m.usersByID {
		users = append(users, *u)
	}
	return users, len(users), nil
}

func (m *mockAuthRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if profile, ok := m.profiles[userID]; ok {
		return profile, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	delete(m.sessions, refreshToken)
	return nil
}

func (m *mockAuthRepository) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	var sessions []models.Session
	for _, s := range m.sessions {
		if s.UserID == userID {
			sessions = append(sessions, *s)
		}
	}
	return sessions, nil
}

func (m *mockAuthRepository) DeleteSessionByID(ctx context.Context, sessionID, userID uuid.UUID) error {
	for token, s := range m.sessions {
		if s.ID == sessionID && s.UserID == userID {
			delete(m.sessions, token)
			return nil
		}
	}
	return nil
}

func (m *mockAuthRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if user, ok := m.usersByID[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
	}, map[string]string{"ip": "127.0.0.1"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("user ID must be set")
	}
	if res.User.Role != models.RoleUser {
		t.Fatalf("self-registered accounts must get the user role, got %q", res.User.Role)
	}
	if res.Profile == nil || res.Profile.DisplayName == "" {
		t.Fatalf("profile must be created with a display name")
	}
	if len(repo.sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(repo.sessions))
	}

	loginRes, err := service.Login(ctx, LoginInput{
		Email:    "test@example.com",
		Password: "password123",
	}, nil)
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	if loginRes.TokenPair.AccessToken == "" {
		t.Fatalf("expected an access token")
	}
}

func TestAuthService_EmailCaseInsensitive(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)
	ctx := context.Background()

	if _, err := service.Register(ctx, RegisterInput{
		Email:    "Binh.Nguyen@Example.com",
		Password: "password123",
	}, nil); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if _, ok := repo.usersByEmail["binh.nguyen@example.com"]; !ok {
		t.Fatalf("account must be stored under the lowercased email")
	}

	if _, err := service.Register(ctx, RegisterInput{
		Email:    "binh.nguyen@EXAMPLE.com",
		Password: "password123",
	}, nil); err == nil {
		t.Fatalf("case-variant re-registration must be rejected as a duplicate")
	}
	if len(repo.usersByEmail) != 1 {
		t.Fatalf("expected one account, got %d", len(repo.usersByEmail))
	}

	if _, err := service.Login(ctx, LoginInput{
		Email:    "  BINH.NGUYEN@example.com  ",
		Password: "password123",
	}, nil); err != nil {
		t.Fatalf("login with a case/space variant of the email failed: %v", err)
	}
}

func TestAuthService_RegisterRejectsWeakPassword(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "weak@example.com",
		Password: "short",
	}, nil)
	if err == nil {
		t.Fatalf("expected password policy error")
	}
	if len(repo.usersByEmail) != 0 {
		t.Fatalf("no account may be created on validation failure")
	}
}

func TestAuthService_LoginRejectsDisabledAccount(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "blocked@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     false,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	if _, err := service.Login(context.Background(), LoginInput{
		Email:    "blocked@example.com",
		Password: "password123",
	}, nil); err == nil {
		t.Fatalf("disabled accounts must not log in")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	tokenPair, accessExp, refreshExp, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("failed to generate tokens: %v", err)
	}
	if accessExp.After(refreshExp) {
		t.Fatalf("access must expire before refresh")
	}

	repo.sessions[tokenPair.RefreshToken] = &models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	newPair, err := service.Refresh(ctx, tokenPair.RefreshToken, nil)
	if err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}

	if newPair.RefreshToken == tokenPair.RefreshToken {
		t.Fatalf("expected a rotated refresh token")
	}
	if _, ok := repo.sessions[tokenPair.RefreshToken]; ok {
		t.Fatalf("old session must be removed on rotation")
	}
}

func TestAuthService_UpdateProfileValidation(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	userID := uuid.New()

	badDistrict := "Hoàn Cầu"
	err := service.UpdateProfile(ctx, &models.Profile{
		UserID:            userID,
		DisplayName:       "Nguyen Van A",
		PreferredDistrict: &badDistrict,
	})
	if err == nil {
		t.Fatalf("unknown preferred district must be rejected")
	}

	district := "Tây Hồ"
	phone := "0912345678"
	err = service.UpdateProfile(ctx, &models.Profile{
		UserID:            userID,
		DisplayName:       "Nguyen Van A",
		Phone:             &phone,
		PreferredDistrict: &district,
	})
	if err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
	if _, ok := repo.profiles[userID]; !ok {
		t.Fatalf("profile must be stored")
	}
}
