package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

func newTestEngine() *FilterEngineService {
	return NewFilterEngineService(language.English)
}

func rowKeys(rows []catalog.Row) [][2]string {
	keys := make([][2]string, len(rows))
	for i, r := range rows {
		keys[i] = [2]string{r.Product.ID, r.Branch.ID}
	}
	return keys
}

func TestRowsExpandPerSellingBranch(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	rows := engine.Rows(catalog.FilterSelection{}, snap)

	// Burger sells in two branches and contributes two rows; archived Ghost
	// contributes none.
	assert.Len(t, rows, 4)
	assert.ElementsMatch(t, [][2]string{
		{"P1", "B1"}, {"P1", "B2"}, {"P2", "B3"}, {"P3", "B1"},
	}, rowKeys(rows))
}

func TestRowsResolveLocationPath(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	rows := engine.Rows(catalog.FilterSelection{BranchID: "B1"}, snap)
	require.NotEmpty(t, rows)
	for _, row := range rows {
		require.NotNil(t, row.Street)
		require.NotNil(t, row.Region)
		assert.Equal(t, "S1", row.Street.ID)
		assert.Equal(t, "R1", row.Region.ID)
	}
}

func TestBranchFilterSupersedesWiderTiers(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	// Branch set: street and region of a different area are ignored.
	sel := catalog.FilterSelection{BranchID: "B3", StreetID: "S1", RegionID: "R1"}
	rows := engine.Rows(sel, snap)

	require.Len(t, rows, 1)
	assert.Equal(t, "P2", rows[0].Product.ID)
	assert.Equal(t, "B3", rows[0].Branch.ID)
}

func TestStreetFilterCoversItsBranches(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	rows := engine.Rows(catalog.FilterSelection{StreetID: "S2"}, snap)
	assert.Equal(t, [][2]string{{"P1", "B2"}}, rowKeys(rows))
}

func TestRegionFilterIsTwoHop(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	rows := engine.Rows(catalog.FilterSelection{RegionID: "R1"}, snap)
	assert.ElementsMatch(t, [][2]string{
		{"P1", "B1"}, {"P1", "B2"}, {"P3", "B1"},
	}, rowKeys(rows))
}

func TestPredicatesCombineWithAnd(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	tests := []struct {
		name string
		sel  catalog.FilterSelection
		want []string
	}{
		{"search is case-insensitive substring", catalog.FilterSelection{Search: "URG"}, []string{"P1"}},
		{"subcategory exact", catalog.FilterSelection{Subcategory: "Fresh"}, []string{"P3"}},
		{"min price inclusive", catalog.FilterSelection{MinPrice: floatPtr(10)}, []string{"P1", "P2"}},
		{"max price inclusive", catalog.FilterSelection{MaxPrice: floatPtr(10)}, []string{"P1", "P3"}},
		{"price band", catalog.FilterSelection{MinPrice: floatPtr(6), MaxPrice: floatPtr(15)}, []string{"P1"}},
		{"color from comma list", catalog.FilterSelection{Color: "blue"}, []string{"P1"}},
		{"color no match", catalog.FilterSelection{Color: "green"}, nil},
		{"size", catalog.FilterSelection{Size: "L"}, []string{"P1"}},
		{"search and price AND together", catalog.FilterSelection{Search: "a", MaxPrice: floatPtr(6)}, []string{"P3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := engine.Rows(tt.sel, snap)
			seen := map[string]struct{}{}
			var got []string
			for _, r := range rows {
				if _, ok := seen[r.Product.ID]; !ok {
					seen[r.Product.ID] = struct{}{}
					got = append(got, r.Product.ID)
				}
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestAddingAnyPredicateNeverGrowsRowCount(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	base := len(engine.Rows(catalog.FilterSelection{}, snap))
	require.Positive(t, base)

	narrowings := []struct {
		name string
		sel  catalog.FilterSelection
	}{
		{"search", catalog.FilterSelection{Search: "burger"}},
		{"search no hit", catalog.FilterSelection{Search: "nothing-sells-this"}},
		{"category", catalog.FilterSelection{Category: "Food"}},
		{"subcategory", catalog.FilterSelection{Subcategory: "Grill"}},
		{"min price", catalog.FilterSelection{MinPrice: floatPtr(10)}},
		{"max price", catalog.FilterSelection{MaxPrice: floatPtr(10)}},
		{"color", catalog.FilterSelection{Color: "red"}},
		{"size", catalog.FilterSelection{Size: "L"}},
		{"region", catalog.FilterSelection{RegionID: "R1"}},
		{"street", catalog.FilterSelection{StreetID: "S1"}},
		{"branch", catalog.FilterSelection{BranchID: "B1"}},
	}

	for _, tt := range narrowings {
		t.Run(tt.name, func(t *testing.T) {
			got := len(engine.Rows(tt.sel, snap))
			assert.LessOrEqual(t, got, base, "a narrowing filter cannot add rows")
		})
	}

	// Stacking predicates narrows further, never wider.
	stacked := catalog.FilterSelection{Category: "Food", RegionID: "R1"}
	withMore := stacked
	withMore.MaxPrice = floatPtr(9)
	assert.LessOrEqual(t,
		len(engine.Rows(withMore, snap)),
		len(engine.Rows(stacked, snap)))
}

func TestSortByPrice(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	rows := engine.Rows(catalog.FilterSelection{SortBy: catalog.SortPriceAsc}, snap)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].Product.Price, rows[i].Product.Price)
	}

	rows = engine.Rows(catalog.FilterSelection{SortBy: catalog.SortPriceDesc}, snap)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Product.Price, rows[i].Product.Price)
	}
}

func TestSortByName(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	rows := engine.Rows(catalog.FilterSelection{SortBy: catalog.SortNameAsc}, snap)
	var names []string
	for _, r := range rows {
		names = append(names, r.Product.Name)
	}
	assert.Equal(t, []string{"Burger", "Burger", "Pizza", "Salad"}, names)
}

func TestSortByBranchKeepsGroupsContiguous(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	rows := engine.Rows(catalog.FilterSelection{SortBy: catalog.SortBranchAsc}, snap)
	require.Len(t, rows, 4)

	// Groups concatenate in branch name order and rows of one branch stay
	// together, preserving their relative order.
	var branchNames []string
	for _, r := range rows {
		branchNames = append(branchNames, r.Branch.Name)
	}
	assert.Equal(t, []string{"Alpha", "Alpha", "Beta", "Gamma"}, branchNames)
	assert.Equal(t, "P1", rows[0].Product.ID)
	assert.Equal(t, "P3", rows[1].Product.ID)

	rows = engine.Rows(catalog.FilterSelection{SortBy: catalog.SortBranchDesc}, snap)
	branchNames = branchNames[:0]
	for _, r := range rows {
		branchNames = append(branchNames, r.Branch.Name)
	}
	assert.Equal(t, []string{"Gamma", "Beta", "Alpha", "Alpha"}, branchNames)
}

func TestPriceBoundsDeduplicateProducts(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	rows := engine.Rows(catalog.FilterSelection{}, snap)
	min, max := engine.PriceBounds(rows)
	assert.Equal(t, 5.0, min)
	assert.Equal(t, 20.0, max)

	min, max = engine.PriceBounds(nil)
	assert.Zero(t, min)
	assert.Zero(t, max)
}

func TestProductWithNoMatchingBranchYieldsNoRows(t *testing.T) {
	engine := newTestEngine()
	snap := testSnapshot()

	// Salad is only sold in Downtown; an Uptown view must not show it.
	rows := engine.Rows(catalog.FilterSelection{RegionID: "R2", Search: "salad"}, snap)
	assert.Empty(t, rows)
}
