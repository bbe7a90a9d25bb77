package service

import (
	"testing"

	"retail-pos-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBranchRepo struct {
	branches map[uuid.UUID]*model.Branch
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: make(map[uuid.UUID]*model.Branch)}
}

func (r *fakeBranchRepo) Create(branch *model.Branch) error {
	if branch.ID == uuid.Nil {
		branch.ID = uuid.New()
	}
	r.branches[branch.ID] = branch
	return nil
}

func (r *fakeBranchRepo) FindAll(ownerID string) ([]model.Branch, error) {
	var out []model.Branch
	for _, b := range r.branches {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBranchRepo) FindByID(ownerID string, id uuid.UUID) (*model.Branch, error) {
	b, ok := r.branches[id]
	if !ok || b.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *b
	return &copy, nil
}

func (r *fakeBranchRepo) Update(branch *model.Branch) error {
	r.branches[branch.ID] = branch
	return nil
}

func (r *fakeBranchRepo) Delete(ownerID string, id uuid.UUID) error {
	b, ok := r.branches[id]
	if !ok || b.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.branches, id)
	return nil
}

func TestCreateBranchAssignsOwner(t *testing.T) {
	svc := NewBranchService(newFakeBranchRepo())

	b := &model.Branch{Name: "Main Street", Location: "12 Main Street"}
	require.NoError(t, svc.CreateBranch(testOwner, b))
	assert.Equal(t, testOwner, b.OwnerID)
	assert.NotEqual(t, uuid.Nil, b.ID)
}

func TestCreateBranchValidation(t *testing.T) {
	svc := NewBranchService(newFakeBranchRepo())
	assert.Error(t, svc.CreateBranch(testOwner, &model.Branch{Location: "Nowhere"}))
}

func TestUpdateBranchMergesFields(t *testing.T) {
	repo := newFakeBranchRepo()
	svc := NewBranchService(repo)

	b := &model.Branch{Name: "Main Street", Location: "12 Main Street", Manager: "A. Kumar"}
	require.NoError(t, svc.CreateBranch(testOwner, b))

	updated, err := svc.UpdateBranch(testOwner, b.ID, &model.Branch{Manager: "B. Rao", Size: "Large"})
	require.NoError(t, err)
	assert.Equal(t, "Main Street", updated.Name, "name untouched when omitted")
	assert.Equal(t, "B. Rao", updated.Manager)
	assert.Equal(t, "Large", updated.Size)
}

func TestBranchNotFound(t *testing.T) {
	svc := NewBranchService(newFakeBranchRepo())

	_, err := svc.UpdateBranch(testOwner, uuid.New(), &model.Branch{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteBranch(testOwner, uuid.New()), ErrNotFound)
}

func TestBranchScopedToOwner(t *testing.T) {
	repo := newFakeBranchRepo()
	svc := NewBranchService(repo)

	b := &model.Branch{Name: "Owned", Location: "1 Side Street"}
	require.NoError(t, svc.CreateBranch(testOwner, b))

	_, err := svc.UpdateBranch("intruder", b.ID, &model.Branch{Name: "Taken"})
	assert.ErrorIs(t, err, ErrNotFound)

	branches, err := svc.GetAllBranches("intruder")
	require.NoError(t, err)
	assert.Empty(t, branches)
}
