//go:build !integration

package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stableCraft/domain"
	"stableCraft/pkg/utils"

	"github.com/go-playground/validator/v10"
)

const testVerificationKey = "0123456789abcdef"

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo(seed ...domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[uint]domain.User{}, nextID: 1}
	for _, u := range seed {
		f.users[u.ID] = u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return errors.New("user not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdateEmailVerification(_ context.Context, id uint, isVerified bool) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.IsVerified = isVerified
	f.users[id] = u
	return nil
}

type fakeNotif struct {
	toEmail string
	subject string
	message string
	sent    int
}

func (f *fakeNotif) SendEmail(toName, toEmail, subject, message string) error {
	f.toEmail = toEmail
	f.subject = subject
	f.message = message
	f.sent++
	return nil
}

type fakeTokenStore struct {
	sessions map[string]string // token -> userID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{sessions: map[string]string{}}
}

func (f *fakeTokenStore) StoreToken(_ context.Context, userID, token string, _ domain.TokenData, _ time.Duration) error {
	f.sessions[token] = userID
	return nil
}

func (f *fakeTokenStore) ValidateToken(_ context.Context, token string) (string, error) {
	uid, ok := f.sessions[token]
	if !ok {
		return "", errors.New("token not found or expired")
	}
	return uid, nil
}

func (f *fakeTokenStore) DeleteToken(_ context.Context, _, token string) error {
	delete(f.sessions, token)
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	return string(hash)
}

func newTestService(repo *fakeUserRepo, notif *fakeNotif, store *fakeTokenStore) *userService {
	return NewUserService(repo, validator.New(), notif, store, testVerificationKey, "http://localhost:9090")
}

func TestRegisterAndVerifyEmail(t *testing.T) {
	repo := newFakeUserRepo()
	notif := &fakeNotif{}
	svc := newTestService(repo, notif, newFakeTokenStore())

	got, err := svc.Register(context.Background(), &domain.User{
		FullName: "Avery Quinn",
		Email:    "avery@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got.Role != RolePlayer {
		t.Errorf("Role = %q, want %q", got.Role, RolePlayer)
	}
	if got.IsVerified {
		t.Error("new users must start unverified")
	}
	if got.Password != "" {
		t.Error("password must be blanked in the response")
	}
	if notif.sent != 1 || notif.toEmail != "avery@example.com" {
		t.Fatalf("verification email not sent: %+v", notif)
	}

	// pull the activation code out of the email body
	idx := strings.Index(notif.message, "email-verification/")
	if idx < 0 {
		t.Fatalf("no activation link in email: %q", notif.message)
	}
	rest := notif.message[idx+len("email-verification/"):]
	code := strings.SplitN(rest, "</br>", 2)[0]

	if err := svc.VerifyEmail(context.Background(), code); err != nil {
		t.Fatalf("VerifyEmail() error = %v", err)
	}

	stored, err := repo.FindByID(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !stored.IsVerified {
		t.Error("user must be verified after VerifyEmail")
	}

	// the code is single-use
	if err := svc.VerifyEmail(context.Background(), code); err == nil || !strings.Contains(err.Error(), "invalid or expired") {
		t.Errorf("second VerifyEmail() error = %v, want invalid or expired", err)
	}
}

func TestRegister_Rejections(t *testing.T) {
	repo := newFakeUserRepo(domain.User{ID: 1, Email: "taken@example.com"})
	svc := newTestService(repo, &fakeNotif{}, newFakeTokenStore())

	tests := []struct {
		name    string
		user    domain.User
		wantErr string
	}{
		{
			name:    "invalid email",
			user:    domain.User{FullName: "A", Email: "not-an-email", Password: "hunter22"},
			wantErr: "invalid email format",
		},
		{
			name:    "short password",
			user:    domain.User{FullName: "A", Email: "a@example.com", Password: "abc"},
			wantErr: "password must be at least 6 characters",
		},
		{
			name:    "duplicate email",
			user:    domain.User{FullName: "A", Email: "taken@example.com", Password: "hunter22"},
			wantErr: "email already exists",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := tc.user
			_, err := svc.Register(context.Background(), &u)
			if err == nil || err.Error() != tc.wantErr {
				t.Errorf("Register() error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestLogin_SessionLifecycle(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	repo := newFakeUserRepo(domain.User{
		ID:         1,
		FullName:   "Avery Quinn",
		Email:      "avery@example.com",
		Password:   mustHash(t, "hunter22"),
		IsVerified: true,
		Role:       RolePlayer,
	})
	store := newFakeTokenStore()
	svc := newTestService(repo, &fakeNotif{}, store)

	token, user, err := svc.Login(context.Background(), "avery@example.com", "hunter22", "10.0.0.1", "tests")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.Password != "" {
		t.Error("password must be blanked")
	}

	uid, err := svc.ValidateTokenFromRedis(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateTokenFromRedis() error = %v", err)
	}
	if uid != "1" {
		t.Errorf("session user id = %q, want 1", uid)
	}

	if err := svc.Logout(context.Background(), 1, token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.ValidateTokenFromRedis(context.Background(), token); err == nil {
		t.Error("token must be invalid after logout")
	}
}

func TestLogin_Rejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	repo := newFakeUserRepo(
		domain.User{ID: 1, Email: "avery@example.com", Password: mustHash(t, "hunter22"), IsVerified: true, Role: RolePlayer},
		domain.User{ID: 2, Email: "new@example.com", Password: mustHash(t, "hunter22"), IsVerified: false, Role: RolePlayer},
	)
	svc := newTestService(repo, &fakeNotif{}, newFakeTokenStore())

	if _, _, err := svc.Login(context.Background(), "avery@example.com", "wrong", "", ""); err == nil || err.Error() != "incorrect password" {
		t.Errorf("wrong password error = %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "new@example.com", "hunter22", "", ""); err == nil || err.Error() != "email address has not been verified" {
		t.Errorf("unverified login error = %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "hunter22", "", ""); err == nil {
		t.Error("unknown email must not log in")
	}
}

func TestRefreshToken_RotatesSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	repo := newFakeUserRepo(domain.User{
		ID: 1, Email: "avery@example.com", Password: mustHash(t, "hunter22"), IsVerified: true, Role: RolePlayer,
	})
	store := newFakeTokenStore()
	svc := newTestService(repo, &fakeNotif{}, store)

	oldToken, _, err := svc.Login(context.Background(), "avery@example.com", "hunter22", "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	newToken, user, err := svc.RefreshToken(context.Background(), oldToken, "10.0.0.2", "tests")
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if newToken == oldToken {
		t.Error("refresh must issue a different token")
	}
	if user.ID != 1 {
		t.Errorf("user ID = %d, want 1", user.ID)
	}

	if _, err := svc.ValidateTokenFromRedis(context.Background(), oldToken); err == nil {
		t.Error("old token must be retired")
	}
	if _, err := svc.ValidateTokenFromRedis(context.Background(), newToken); err != nil {
		t.Errorf("new token must be valid, got %v", err)
	}

	if _, _, err := svc.RefreshToken(context.Background(), "bogus", "", ""); err == nil {
		t.Error("unknown token must not refresh")
	}
}

func TestUpdateUser(t *testing.T) {
	repo := newFakeUserRepo(
		domain.User{ID: 1, FullName: "Avery", Email: "avery@example.com", Role: RolePlayer},
		domain.User{ID: 2, FullName: "Brook", Email: "brook@example.com", Role: RolePlayer},
	)
	svc := newTestService(repo, &fakeNotif{}, newFakeTokenStore())

	got, err := svc.UpdateUser(context.Background(), 1, &domain.User{FullName: "Avery Quinn", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if got.FullName != "Avery Quinn" || got.Role != RoleAdmin {
		t.Errorf("update not applied: %+v", got)
	}

	if _, err := svc.UpdateUser(context.Background(), 1, &domain.User{Role: "wizard"}); err == nil || err.Error() != "invalid role" {
		t.Errorf("invalid role error = %v", err)
	}

	if _, err := svc.UpdateUser(context.Background(), 1, &domain.User{Email: "brook@example.com"}); err == nil || err.Error() != "email already exists" {
		t.Errorf("duplicate email error = %v", err)
	}
}
