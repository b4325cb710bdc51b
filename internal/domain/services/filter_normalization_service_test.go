package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

func TestNormalizeBackFillsAncestorsFromBranch(t *testing.T) {
	svc := NewFilterNormalizationService()
	snap := testSnapshot()

	sel := svc.Normalize(catalog.FilterSelection{BranchID: "B1"}, snap)
	assert.Equal(t, "S1", sel.StreetID)
	assert.Equal(t, "R1", sel.RegionID)
}

func TestNormalizeBackFillsRegionFromStreet(t *testing.T) {
	svc := NewFilterNormalizationService()
	snap := testSnapshot()

	sel := svc.Normalize(catalog.FilterSelection{StreetID: "S3"}, snap)
	assert.Equal(t, "R2", sel.RegionID)
	assert.Empty(t, sel.BranchID)
}

func TestNormalizeToleratesDanglingReferences(t *testing.T) {
	svc := NewFilterNormalizationService()
	snap := testSnapshot()

	// An unattached branch and street leave the ancestors unset.
	sel := svc.Normalize(catalog.FilterSelection{BranchID: "B4"}, snap)
	assert.Empty(t, sel.StreetID)
	assert.Empty(t, sel.RegionID)

	sel = svc.Normalize(catalog.FilterSelection{StreetID: "S4"}, snap)
	assert.Empty(t, sel.RegionID)
}

func TestNormalizeKeepsExplicitDescendants(t *testing.T) {
	svc := NewFilterNormalizationService()
	snap := testSnapshot()

	sel := catalog.FilterSelection{RegionID: "R2", StreetID: "S1", BranchID: "B1"}
	got := svc.Normalize(sel, snap)
	assert.Equal(t, sel, got, "fully specified paths pass through untouched")
}

func TestSetRegionClearsDescendants(t *testing.T) {
	svc := NewFilterNormalizationService()

	sel := catalog.FilterSelection{RegionID: "R1", StreetID: "S1", BranchID: "B1", Search: "x"}
	sel = svc.SetRegion(sel, "R2")
	assert.Equal(t, "R2", sel.RegionID)
	assert.Empty(t, sel.StreetID)
	assert.Empty(t, sel.BranchID)
	assert.Equal(t, "x", sel.Search, "non-location fields survive")
}

func TestSetStreetRederivesRegion(t *testing.T) {
	svc := NewFilterNormalizationService()
	snap := testSnapshot()

	sel := catalog.FilterSelection{RegionID: "R1", BranchID: "B1"}
	sel = svc.SetStreet(sel, "S3", snap)
	assert.Equal(t, "S3", sel.StreetID)
	assert.Equal(t, "R2", sel.RegionID, "region follows the new street, not the stale choice")
	assert.Empty(t, sel.BranchID)
}

func TestSetBranchBackFillsPath(t *testing.T) {
	svc := NewFilterNormalizationService()
	snap := testSnapshot()

	sel := svc.SetBranch(catalog.FilterSelection{}, "B2", snap)
	assert.Equal(t, "B2", sel.BranchID)
	assert.Equal(t, "S2", sel.StreetID)
	assert.Equal(t, "R1", sel.RegionID)
}

func TestSetCategoryClearsSubcategory(t *testing.T) {
	svc := NewFilterNormalizationService()

	sel := catalog.FilterSelection{Category: "Food", Subcategory: "Grill"}
	sel = svc.SetCategory(sel, "Drinks")
	assert.Equal(t, "Drinks", sel.Category)
	assert.Empty(t, sel.Subcategory)
}
