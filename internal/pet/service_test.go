package pet

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/request"
)

type fakeRepo struct {
	pets   map[string]*Pet
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{pets: map[string]*Pet{}}
}

func (r *fakeRepo) Create(_ context.Context, p *Pet) error {
	r.nextID++
	p.ID = fmt.Sprintf("pet-%d", r.nextID)
	p.CreatedAt = time.Unix(int64(r.nextID), 0)
	cp := *p
	r.pets[p.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string, _ request.ListParams) ([]*Pet, int, error) {
	var out []*Pet
	for _, p := range r.pets {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, p *Pet) error {
	if _, ok := r.pets[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	r.pets[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pets[id]; !ok {
		return ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *fakeRepo) SetPhoto(_ context.Context, id, url string) error {
	p, ok := r.pets[id]
	if !ok {
		return ErrNotFound
	}
	p.PhotoURL = &url
	return nil
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	rex, err := svc.Create(ctx, "owner-1", CreateRequest{Name: " Rex ", Type: TypeDog})
	require.NoError(t, err)
	assert.Equal(t, "Rex", rex.Name)
	assert.Equal(t, "owner-1", rex.OwnerID)

	_, err = svc.Create(ctx, "owner-1", CreateRequest{Name: "Tom", Type: TypeCat})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-2", CreateRequest{Name: "Polly", Type: TypeBird})
	require.NoError(t, err)

	pets, total, err := svc.List(ctx, "owner-1", request.ListParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Tom", pets[0].Name)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	_, err := svc.Create(ctx, "owner-1", CreateRequest{Name: "  ", Type: TypeDog})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, "owner-1", CreateRequest{Name: "Rex", Type: "DRAGON"})
	assert.ErrorIs(t, err, ErrInvalidType)

	g := Gender("UNKNOWN")
	_, err = svc.Create(ctx, "owner-1", CreateRequest{Name: "Rex", Type: TypeDog, Gender: &g})
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestOtherOwnersPetIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	rex, err := svc.Create(ctx, "owner-1", CreateRequest{Name: "Rex", Type: TypeDog})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "owner-2", rex.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	name := "Stolen"
	_, err = svc.Update(ctx, "owner-2", rex.ID, UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "owner-2", rex.ID), ErrNotFound)
	assert.ErrorIs(t, svc.SetPhoto(ctx, "owner-2", rex.ID, "/v1/photos/x"), ErrNotFound)

	got, err := svc.Get(ctx, "owner-1", rex.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
	assert.Nil(t, got.PhotoURL)
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	breed := "Beagle"
	rex, err := svc.Create(ctx, "owner-1", CreateRequest{Name: "Rex", Type: TypeDog, Breed: &breed})
	require.NoError(t, err)

	age := 4
	neutered := true
	updated, err := svc.Update(ctx, "owner-1", rex.ID, UpdateRequest{Age: &age, IsNeutered: &neutered})
	require.NoError(t, err)
	assert.Equal(t, "Rex", updated.Name)
	require.NotNil(t, updated.Breed)
	assert.Equal(t, "Beagle", *updated.Breed)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 4, *updated.Age)
	assert.True(t, updated.IsNeutered)

	bad := Type("DRAGON")
	_, err = svc.Update(ctx, "owner-1", rex.ID, UpdateRequest{Type: &bad})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestDeleteAndFind(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	rex, err := svc.Create(ctx, "owner-1", CreateRequest{Name: "Rex", Type: TypeDog})
	require.NoError(t, err)

	found, err := svc.Find(ctx, rex.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "owner-1", found.OwnerID)

	require.NoError(t, svc.Delete(ctx, "owner-1", rex.ID))

	found, err = svc.Find(ctx, rex.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
