package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"registry-service/internal/models"
	"registry-service/internal/query"
)

type fakeDesignerStore struct {
	designers []models.Designer
	created   []models.DesignerDraft
}

func (s *fakeDesignerStore) GetAll(context.Context) ([]models.Designer, error) {
	return s.designers, nil
}

func (s *fakeDesignerStore) GetByID(_ context.Context, id string) (*models.Designer, error) {
	for i := range s.designers {
		if s.designers[i].ID == id {
			return &s.designers[i], nil
		}
	}
	return nil, nil
}

func (s *fakeDesignerStore) Create(_ context.Context, draft models.DesignerDraft) (*models.Designer, error) {
	s.created = append(s.created, draft)
	d, err := models.NewDesigner(fmt.Sprintf("d-%d", len(s.created)), draft.FullName, draft.WorkingHours)
	if err != nil {
		return nil, err
	}
	s.designers = append(s.designers, *d)
	return d, nil
}

func (s *fakeDesignerStore) Update(_ context.Context, id string, _ models.DesignerPatch) (*models.Designer, error) {
	return s.GetByID(context.Background(), id)
}

func (s *fakeDesignerStore) Delete(context.Context, string) error { return nil }

type emptyObjectStore struct{}

func (emptyObjectStore) GetAll(context.Context) ([]models.Object3D, error) { return nil, nil }
func (emptyObjectStore) GetByID(context.Context, string) (*models.Object3D, error) {
	return nil, nil
}
func (emptyObjectStore) Create(context.Context, models.ObjectDraft) (*models.Object3D, error) {
	return nil, nil
}
func (emptyObjectStore) Update(context.Context, string, models.Object3DPatch) (*models.Object3D, error) {
	return nil, nil
}
func (emptyObjectStore) Delete(context.Context, string) error { return nil }

func newTestService(designers []models.Designer) (*DesignerService, *fakeDesignerStore) {
	store := &fakeDesignerStore{designers: designers}
	cache := query.NewCache(store, emptyObjectStore{}, nil, zap.NewNop())
	return NewDesignerService(store, cache, zap.NewNop()), store
}

func rosterOf(n int) []models.Designer {
	designers := make([]models.Designer, 0, n)
	for i := 0; i < n; i++ {
		designers = append(designers, models.Designer{
			ID:       fmt.Sprintf("d-%d", i),
			FullName: fmt.Sprintf("Designer %02d", i),
		})
	}
	return designers
}

func TestListPagination(t *testing.T) {
	svc, _ := newTestService(rosterOf(25))
	ctx := context.Background()

	page, err := svc.List(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 25, page.Total)

	page, err = svc.List(ctx, "", 3, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, "Designer 20", page.Items[0].FullName)

	page, err = svc.List(ctx, "", 9, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items, "a page past the end is empty, not an error")
	assert.Equal(t, 25, page.Total)

	page, err = svc.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page, "page defaults to the first")
	assert.Equal(t, 10, page.RowsPerPage)
}

func TestListFilterIsCaseInsensitiveContains(t *testing.T) {
	svc, _ := newTestService([]models.Designer{
		{ID: "d-1", FullName: "Ada Lovelace"},
		{ID: "d-2", FullName: "Grace Hopper"},
		{ID: "d-3", FullName: "Radia Perlman"},
	})

	page, err := svc.List(context.Background(), "AD", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Ada Lovelace", page.Items[0].FullName)
	assert.Equal(t, "Radia Perlman", page.Items[1].FullName)
	assert.Equal(t, 2, page.Total)
}

func TestCreateValidatesFullNameLength(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.DesignerDraft{FullName: "Al", WorkingHours: "09:00-18:00"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fullName", verr.Field)

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(ctx, models.DesignerDraft{FullName: string(long), WorkingHours: "09:00-18:00"})
	require.ErrorAs(t, err, &verr)

	assert.Empty(t, store.created, "nothing reaches the store on validation failure")

	d, err := svc.Create(ctx, models.DesignerDraft{FullName: "Ada Lovelace", WorkingHours: "09:00-18:00"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, d.Status)
	require.Len(t, store.created, 1)
}

func TestUpdateValidatesPatchedName(t *testing.T) {
	svc, _ := newTestService(rosterOf(1))

	short := "Al"
	_, err := svc.Update(context.Background(), "d-0", models.DesignerPatch{FullName: &short})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}
