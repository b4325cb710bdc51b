package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCatalog builds a small live store:
//
//	Downtown -> Main St -> Alpha: Burger (10), Salad (5)
//	Uptown   -> North St -> Gamma: Pizza (20)
func seedCatalog(t *testing.T, stack *testStack) (burgerID, pizzaID string) {
	t.Helper()

	downtown, err := stack.Regions.Create("Downtown", "")
	require.NoError(t, err)
	uptown, err := stack.Regions.Create("Uptown", "")
	require.NoError(t, err)

	mainSt, err := stack.Streets.Create("Main St", "", &downtown.ID)
	require.NoError(t, err)
	northSt, err := stack.Streets.Create("North St", "", &uptown.ID)
	require.NoError(t, err)

	alpha, err := stack.Branches.Create(BranchInput{Name: "Alpha", StreetID: &mainSt.ID})
	require.NoError(t, err)
	gamma, err := stack.Branches.Create(BranchInput{Name: "Gamma", StreetID: &northSt.ID})
	require.NoError(t, err)

	burger, err := stack.Products.Create(ProductInput{Name: "Burger", Category: "Food", Price: 10})
	require.NoError(t, err)
	salad, err := stack.Products.Create(ProductInput{Name: "Salad", Category: "Food", Price: 5})
	require.NoError(t, err)
	pizza, err := stack.Products.Create(ProductInput{Name: "Pizza", Category: "Food", Price: 20})
	require.NoError(t, err)

	_, err = stack.Branches.SetAssignments(alpha.ID, []string{burger.ID, salad.ID})
	require.NoError(t, err)
	_, err = stack.Branches.SetAssignments(gamma.ID, []string{pizza.ID})
	require.NoError(t, err)

	return burger.ID, pizza.ID
}

func TestQueryUnfiltered(t *testing.T) {
	stack := newTestStack(t)
	seedCatalog(t, stack)

	view, err := stack.Catalog.Query(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 5.0, view.MinPrice)
	assert.Equal(t, 20.0, view.MaxPrice)
}

func TestQueryDecodesRegionSlugAndFilters(t *testing.T) {
	stack := newTestStack(t)
	seedCatalog(t, stack)

	params := url.Values{}
	params.Set("region", "downtown")

	view, err := stack.Catalog.Query(params)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Total)
	for _, row := range view.Rows {
		assert.Equal(t, "Alpha", row.Branch.Name)
		require.NotNil(t, row.Region)
		assert.Equal(t, "Downtown", row.Region.Name)
	}
}

func TestQueryNormalizesBranchSlugToFullPath(t *testing.T) {
	stack := newTestStack(t)
	seedCatalog(t, stack)

	params := url.Values{}
	params.Set("branch", "gamma")

	view, err := stack.Catalog.Query(params)
	require.NoError(t, err)
	require.Equal(t, 1, view.Total)
	assert.Equal(t, "Pizza", view.Rows[0].Product.Name)
	assert.NotEmpty(t, view.Selection.StreetID, "street back-filled from branch")
	assert.NotEmpty(t, view.Selection.RegionID, "region back-filled from street")
}

func TestQueryScalarFiltersAndSort(t *testing.T) {
	stack := newTestStack(t)
	seedCatalog(t, stack)

	params := url.Values{}
	params.Set("minPrice", "6")
	params.Set("sortBy", "price-desc")

	view, err := stack.Catalog.Query(params)
	require.NoError(t, err)
	require.Equal(t, 2, view.Total)
	assert.Equal(t, "Pizza", view.Rows[0].Product.Name)
	assert.Equal(t, "Burger", view.Rows[1].Product.Name)
}

func TestQueryIgnoresMalformedNumbers(t *testing.T) {
	stack := newTestStack(t)
	seedCatalog(t, stack)

	params := url.Values{}
	params.Set("minPrice", "lots")
	params.Set("sortBy", "sideways")

	view, err := stack.Catalog.Query(params)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Total, "malformed filters fail open")
}

func TestShareURLRoundTrip(t *testing.T) {
	stack := newTestStack(t)
	burgerID, _ := seedCatalog(t, stack)

	params := url.Values{}
	params.Set("branch", "alpha")

	shared, err := stack.Catalog.ShareURL(params, "")
	require.NoError(t, err)
	// Normalization back-fills the full path before encoding.
	assert.Equal(t, "/products?branch=alpha&region=downtown&street=main-st", shared)

	productURL, err := stack.Catalog.ShareURL(params, burgerID)
	require.NoError(t, err)
	assert.Equal(t, "/products/"+burgerID+"?branch=alpha&region=downtown&street=main-st", productURL)

	_, err = stack.Catalog.ShareURL(url.Values{}, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotRepairsDriftedRegionStreetLists(t *testing.T) {
	stack := newTestStack(t)

	region, err := stack.Regions.Create("Downtown", "")
	require.NoError(t, err)
	street, err := stack.Streets.Create("Main St", "", &region.ID)
	require.NoError(t, err)

	cached, err := stack.Regions.GetByID(region.ID)
	require.NoError(t, err)
	require.Equal(t, []string{street.ID}, cached.StreetIDs)

	// Simulate a drifted cached entry: the reads above share pointers with
	// the cache, so this corrupts the denormalized list in place.
	cached.StreetIDs = nil

	snap, err := stack.Catalog.Snapshot()
	require.NoError(t, err)
	got := snap.RegionByID(region.ID)
	require.NotNil(t, got)
	assert.Equal(t, []string{street.ID}, got.StreetIDs,
		"snapshot rebuilds street lists from Street.RegionID")
}

func TestExportDocumentShape(t *testing.T) {
	stack := newTestStack(t)
	seedCatalog(t, stack)

	doc, err := stack.Catalog.Export()
	require.NoError(t, err)
	assert.Equal(t, "1.0", doc.ExportVersion)
	assert.False(t, doc.ExportDate.IsZero())
	assert.Len(t, doc.Products, 3)
	assert.Len(t, doc.Branches, 2)
	assert.Len(t, doc.Regions, 2)
	assert.Len(t, doc.Streets, 2)
}

func TestStatsCountArchived(t *testing.T) {
	stack := newTestStack(t)
	seedCatalog(t, stack)

	// One extra product never assigned anywhere.
	ghost, err := stack.Products.Create(ProductInput{Name: "Ghost", Category: "Food", Price: 1})
	require.NoError(t, err)

	stats, err := stack.Catalog.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Regions)
	assert.Equal(t, 2, stats.Streets)
	assert.Equal(t, 2, stats.Branches)
	assert.Equal(t, 4, stats.Products)
	assert.Equal(t, 1, stats.ArchivedProducts)
	assert.Equal(t, []string{ghost.ID}, stats.UnassignedProductIDs)
}
