package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	byID    map[string]*User
	nextID  int
	failGet error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*User{}}
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return nil, r.failGet
	}
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

// plainHasher keeps tests fast; it is not a real hash.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(h, p string) error {
	if h != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Email:     "  John@Example.com ",
		Password:  "password123",
		FirstName: "John",
		LastName:  "Doe",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), plainHasher{})

	u, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "john@example.com", u.Email)
	assert.Equal(t, RolePetOwner, u.Role)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.Phone)
	assert.Equal(t, "hashed:password123", u.PasswordHash)

	_, err = svc.Register(ctx, validRegister())
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), plainHasher{})

	req := validRegister()
	req.Email = "   "
	_, err := svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailRequired)

	req = validRegister()
	req.Password = "short"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	req = validRegister()
	req.LastName = " "
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRegisterPropagatesRepoFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failGet = errors.New("connection refused")
	svc := NewService(repo, plainHasher{})

	_, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})

	created, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	u, err := svc.Login(ctx, "JOHN@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "john@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.byID[created.ID].IsActive = false
	_, err = svc.Login(ctx, "john@example.com", "password123")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), plainHasher{})

	created, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	phone := "+15551234567"
	first := " Johnny "
	u, err := svc.UpdateProfile(ctx, created.ID, UpdateProfileRequest{FirstName: &first, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", u.FirstName)
	assert.Equal(t, "Doe", u.LastName)
	require.NotNil(t, u.Phone)
	assert.Equal(t, phone, *u.Phone)
	assert.Equal(t, "Johnny Doe", u.FullName())

	empty := ""
	_, err = svc.UpdateProfile(ctx, created.ID, UpdateProfileRequest{LastName: &empty})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.UpdateProfile(ctx, "missing", UpdateProfileRequest{FirstName: &first})
	assert.ErrorIs(t, err, ErrNotFound)
}
