package catalog

// SortOrder selects how catalog rows are ordered.
type SortOrder string

const (
	SortNone       SortOrder = ""
	SortPriceAsc   SortOrder = "price-asc"
	SortPriceDesc  SortOrder = "price-desc"
	SortNameAsc    SortOrder = "name-asc"
	SortNameDesc   SortOrder = "name-desc"
	SortBranchAsc  SortOrder = "branch-asc"
	SortBranchDesc SortOrder = "branch-desc"
)

// FilterSelection is the ephemeral record of all active filter and sort
// choices for one catalog view. Empty string / nil means "not set"; fields
// combine with logical AND except the location tiers, which supersede each
// other (branch over street over region).
type FilterSelection struct {
	RegionID    string    `json:"regionId,omitempty"`
	StreetID    string    `json:"streetId,omitempty"`
	BranchID    string    `json:"branchId,omitempty"`
	Category    string    `json:"category,omitempty"`
	Subcategory string    `json:"subcategory,omitempty"`
	MinPrice    *float64  `json:"minPrice,omitempty"`
	MaxPrice    *float64  `json:"maxPrice,omitempty"`
	Color       string    `json:"color,omitempty"`
	Size        string    `json:"size,omitempty"`
	Search      string    `json:"search,omitempty"`
	SortBy      SortOrder `json:"sortBy,omitempty"`
}

// IsZero reports whether no filter or sort field is set.
func (f FilterSelection) IsZero() bool {
	return f == FilterSelection{}
}

// Row is one visible catalog entry: a product paired with one branch that
// sells it, plus the branch's resolved location path. Street and Region may
// be nil when the branch is unassigned or a reference dangles.
type Row struct {
	Product *Product `json:"product"`
	Branch  *Branch  `json:"branch"`
	Street  *Street  `json:"street,omitempty"`
	Region  *Region  `json:"region,omitempty"`
}
