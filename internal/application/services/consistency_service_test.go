package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductStaysArchivedUntilAssigned(t *testing.T) {
	stack := newTestStack(t)

	product, err := stack.Products.Create(ProductInput{Name: "Burger", Category: "Food", Price: 10})
	require.NoError(t, err)
	assert.True(t, product.IsArchived, "unassigned products start archived")

	branch, err := stack.Branches.Create(BranchInput{Name: "Alpha"})
	require.NoError(t, err)

	_, err = stack.Branches.SetAssignments(branch.ID, []string{product.ID})
	require.NoError(t, err)

	reloaded, err := stack.Products.GetByID(product.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsArchived, "first assignment unarchives")
}

func TestProductArchivesOnlyWhenLastBranchDropsIt(t *testing.T) {
	stack := newTestStack(t)

	product, err := stack.Products.Create(ProductInput{Name: "Burger", Category: "Food", Price: 10})
	require.NoError(t, err)
	alpha, err := stack.Branches.Create(BranchInput{Name: "Alpha"})
	require.NoError(t, err)
	beta, err := stack.Branches.Create(BranchInput{Name: "Beta"})
	require.NoError(t, err)

	_, err = stack.Branches.SetAssignments(alpha.ID, []string{product.ID})
	require.NoError(t, err)
	_, err = stack.Branches.SetAssignments(beta.ID, []string{product.ID})
	require.NoError(t, err)

	// Dropped from one of two branches: still sold, still active.
	_, err = stack.Branches.SetAssignments(alpha.ID, nil)
	require.NoError(t, err)
	p, err := stack.Products.GetByID(product.ID)
	require.NoError(t, err)
	assert.False(t, p.IsArchived)

	// Dropped from the last branch: archived.
	_, err = stack.Branches.SetAssignments(beta.ID, nil)
	require.NoError(t, err)
	p, err = stack.Products.GetByID(product.ID)
	require.NoError(t, err)
	assert.True(t, p.IsArchived)

	// Reassigned: active again.
	_, err = stack.Branches.SetAssignments(beta.ID, []string{product.ID})
	require.NoError(t, err)
	p, err = stack.Products.GetByID(product.ID)
	require.NoError(t, err)
	assert.False(t, p.IsArchived)
}

func TestBranchDeleteTriggersReconcile(t *testing.T) {
	stack := newTestStack(t)

	product, err := stack.Products.Create(ProductInput{Name: "Pizza", Category: "Food", Price: 20})
	require.NoError(t, err)
	branch, err := stack.Branches.Create(BranchInput{Name: "Gamma"})
	require.NoError(t, err)
	_, err = stack.Branches.SetAssignments(branch.ID, []string{product.ID})
	require.NoError(t, err)

	require.NoError(t, stack.Branches.Delete(branch.ID))

	p, err := stack.Products.GetByID(product.ID)
	require.NoError(t, err)
	assert.True(t, p.IsArchived, "deleting the only selling branch archives the product")
}

func TestManualReconcileRepairsDriftAndIsIdempotent(t *testing.T) {
	stack := newTestStack(t)

	product, err := stack.Products.Create(ProductInput{Name: "Salad", Category: "Food", Price: 5})
	require.NoError(t, err)

	report, err := stack.Consistency.Reconcile()
	require.NoError(t, err)
	assert.False(t, report.Changed(), "freshly created products are already archived")

	branch, err := stack.Branches.Create(BranchInput{Name: "Alpha"})
	require.NoError(t, err)
	_, err = stack.Branches.SetAssignments(branch.ID, []string{product.ID})
	require.NoError(t, err)

	report, err = stack.Consistency.Reconcile()
	require.NoError(t, err)
	assert.False(t, report.Changed(), "a second pass right after one is a no-op")
}

func TestSetAssignmentsRejectsUnknownProduct(t *testing.T) {
	stack := newTestStack(t)

	branch, err := stack.Branches.Create(BranchInput{Name: "Alpha"})
	require.NoError(t, err)

	_, err = stack.Branches.SetAssignments(branch.ID, []string{"no-such-product"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetAssignmentsDeduplicatesIDs(t *testing.T) {
	stack := newTestStack(t)

	product, err := stack.Products.Create(ProductInput{Name: "Burger", Category: "Food", Price: 10})
	require.NoError(t, err)
	branch, err := stack.Branches.Create(BranchInput{Name: "Alpha"})
	require.NoError(t, err)

	updated, err := stack.Branches.SetAssignments(branch.ID, []string{product.ID, product.ID})
	require.NoError(t, err)
	assert.Len(t, updated.Products, 1)
}
