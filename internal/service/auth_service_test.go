package service

import (
	"testing"

	"retail-pos-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*model.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(newFakeUserRepo())

	resp, err := svc.Register(&RegisterRequest{
		Name:     "Store Owner",
		Email:    "owner@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", resp.Email)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	login, err := svc.Login("owner@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, resp.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(&RegisterRequest{Name: "A", Email: "dup@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{Name: "B", Email: "dup@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(&RegisterRequest{Name: "A", Email: "not-an-email", Password: "supersecret"})
	assert.Error(t, err)

	_, err = svc.Register(&RegisterRequest{Name: "A", Email: "a@example.com", Password: "short"})
	assert.Error(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	_, err := svc.Register(&RegisterRequest{Name: "A", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Login("a@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown account returns the same error as a wrong password
	_, err = svc.Login("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDoesNotLeakPasswordHash(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Register(&RegisterRequest{Name: "A", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	stored := repo.users["a@example.com"]
	assert.NotEqual(t, "supersecret", stored.Password, "password must be hashed at rest")
}
