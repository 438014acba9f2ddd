package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"spotbook/internal/db"
	"spotbook/internal/entities"
	"spotbook/internal/parking"
	"spotbook/internal/repository"
)

func TestAdminService_CreateSpot(t *testing.T) {
	spots := &fakeSpotRepo{}
	svc := NewAdminService(spots, &fakeUserRepo{}, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateSpot(ctx, entities.CreateSpotRequest{Code: "U1", Location: "Level -1", Type: "garage"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, parking.CategoryUnderground, created.Category)
	assert.Nil(t, created.AvailableDate)

	guest, err := svc.CreateSpot(ctx, entities.CreateSpotRequest{Code: "G1", Type: "guest", AvailableDate: "2024-06-12"})
	require.NoError(t, err)
	require.NotNil(t, guest.AvailableDate)
	assert.Equal(t, "2024-06-12", guest.AvailableDate.String())

	tests := []struct {
		name string
		req  entities.CreateSpotRequest
		want error
	}{
		{"unknown type", entities.CreateSpotRequest{Code: "X1", Type: "roof"}, parking.ErrInvalidInput},
		{"guest without date", entities.CreateSpotRequest{Code: "G2", Type: "guest"}, parking.ErrInvalidInput},
		{"date on outside spot", entities.CreateSpotRequest{Code: "O2", Type: "outside", AvailableDate: "2024-06-12"}, parking.ErrInvalidInput},
		{"duplicate code", entities.CreateSpotRequest{Code: "U1", Type: "underground"}, repository.ErrDuplicateCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSpot(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	listed, err := svc.ListSpots(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, svc.DeleteSpot(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteSpot(ctx, created.ID), repository.ErrNotFound)
}

func TestAdminService_Users(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAdminService(&fakeSpotRepo{}, users, zap.NewNop())
	ctx := context.Background()

	u, err := svc.EnsureUser(ctx, "u1", "u1@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", u.Email)

	u, err = svc.EnsureUser(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", u.Email)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

type fakeAdminRepo struct {
	admins map[string]db.Admin
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*db.Admin, error) {
	a, ok := f.admins[email]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAdminRepo) Create(_ context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	if f.admins == nil {
		f.admins = make(map[string]db.Admin)
	}
	f.admins[email] = db.Admin{ID: int64(len(f.admins) + 1), Email: email, PasswordHash: string(hash)}
	return nil
}

type fakeIssuer struct {
	ttl time.Duration
}

func (f *fakeIssuer) IssueAdminToken(adminID int64, email string, ttl time.Duration, _ time.Time) (string, error) {
	f.ttl = ttl
	return "token-for-" + email, nil
}

func TestAdminAuthService(t *testing.T) {
	repo := &fakeAdminRepo{}
	issuer := &fakeIssuer{}
	svc := NewAdminAuthService(repo, issuer, 30*time.Minute)
	ctx := context.Background()

	assert.Error(t, svc.CreateAdmin(ctx, "", "password1"))
	assert.Error(t, svc.CreateAdmin(ctx, "admin@example.com", "short"))
	require.NoError(t, svc.CreateAdmin(ctx, "admin@example.com", "correct horse"))

	tok, err := svc.Login(ctx, "admin@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "token-for-admin@example.com", tok)
	assert.Equal(t, 30*time.Minute, issuer.ttl)

	_, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

type fakeJobRepo struct {
	expired []int64
	today   parking.Date
	deleted []int64
	findErr error
}

func (f *fakeJobRepo) ExpiredGuestSpotIDs(_ context.Context, today parking.Date) ([]int64, error) {
	f.today = today
	return f.expired, f.findErr
}

func (f *fakeJobRepo) DeleteSpots(_ context.Context, ids []int64) (int64, error) {
	f.deleted = append(f.deleted, ids...)
	return int64(len(ids)), nil
}

func TestJobService_CleanupGuestSpots(t *testing.T) {
	repo := &fakeJobRepo{expired: []int64{4, 9}}
	svc := NewJobService(repo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 6, 12, 23, 30, 0, 0, time.UTC) }

	n, err := svc.CleanupGuestSpots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, []int64{4, 9}, repo.deleted)
	assert.Equal(t, "2024-06-12", repo.today.String())

	empty := &fakeJobRepo{}
	n, err = NewJobService(empty, zap.NewNop()).CleanupGuestSpots(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, empty.deleted)

	failing := &fakeJobRepo{findErr: errors.New("timeout")}
	_, err = NewJobService(failing, zap.NewNop()).CleanupGuestSpots(context.Background())
	assert.Error(t, err)
}

func TestJobService_Schedule(t *testing.T) {
	svc := NewJobService(&fakeJobRepo{}, zap.NewNop())
	c := cron.New()

	require.NoError(t, svc.Schedule(c, "0 3 * * *", time.Minute))
	assert.Len(t, c.Entries(), 1)
	assert.Error(t, svc.Schedule(c, "every night", time.Minute))
}
