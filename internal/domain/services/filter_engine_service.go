package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

// FilterEngineService is the single source of truth for product visibility.
// Every consumer (admin table, public catalog, export) asks this engine for
// rows instead of re-deriving filter logic locally. Given a selection and a
// snapshot it computes the ordered (product, branch, street, region) rows:
//
//  1. archived products are excluded unconditionally,
//  2. the independent predicates AND together,
//  3. the location tiers supersede each other (branch > street > region),
//  4. each surviving product expands to one row per matching branch,
//  5. rows are sorted per the selection's SortBy.
type FilterEngineService struct {
	graph    *LocationGraphService
	collator *collate.Collator
}

// NewFilterEngineService builds an engine whose name ordering follows the
// given locale, matching how display names collate in the UI.
func NewFilterEngineService(locale language.Tag) *FilterEngineService {
	return &FilterEngineService{
		graph:    NewLocationGraphService(),
		collator: collate.New(locale),
	}
}

// Rows computes the visible, ordered catalog rows for one selection.
func (s *FilterEngineService) Rows(sel catalog.FilterSelection, snap *catalog.Snapshot) []catalog.Row {
	var rows []catalog.Row
	for _, p := range snap.Products {
		if p.IsArchived {
			continue
		}
		if !s.matches(p, sel) {
			continue
		}
		for _, b := range s.matchingBranches(p, sel, snap) {
			row := catalog.Row{Product: p, Branch: b}
			if b.StreetID != nil {
				row.Street = snap.StreetByID(*b.StreetID)
			}
			if row.Street != nil && row.Street.RegionID != nil {
				row.Region = snap.RegionByID(*row.Street.RegionID)
			}
			rows = append(rows, row)
		}
	}
	return s.sortRows(rows, sel.SortBy)
}

// PriceBounds returns the min and max product price over the given rows,
// used to seed the price-range control. Zeroes when no rows.
func (s *FilterEngineService) PriceBounds(rows []catalog.Row) (min, max float64) {
	seen := make(map[string]struct{}, len(rows))
	first := true
	for _, row := range rows {
		if _, ok := seen[row.Product.ID]; ok {
			continue
		}
		seen[row.Product.ID] = struct{}{}
		if first || row.Product.Price < min {
			min = row.Product.Price
		}
		if first || row.Product.Price > max {
			max = row.Product.Price
		}
		first = false
	}
	return min, max
}

// matches evaluates the independent, ANDed predicates. Location is handled
// separately by matchingBranches.
func (s *FilterEngineService) matches(p *catalog.Product, sel catalog.FilterSelection) bool {
	if sel.Search != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(sel.Search)) {
			return false
		}
	}
	if sel.Category != "" && p.Category != sel.Category {
		return false
	}
	if sel.Subcategory != "" {
		if p.Subcategory == nil || *p.Subcategory != sel.Subcategory {
			return false
		}
	}
	if sel.MinPrice != nil && p.Price < *sel.MinPrice {
		return false
	}
	if sel.MaxPrice != nil && p.Price > *sel.MaxPrice {
		return false
	}
	if sel.Color != "" && !commaListContains(p.Color, sel.Color) {
		return false
	}
	if sel.Size != "" && !commaListContains(p.Size, sel.Size) {
		return false
	}
	return true
}

// matchingBranches resolves the tier-appropriate branch set for a product:
// the one selected branch, any branch on the selected street, any branch in
// the selected region, or every assigned branch when no location filter is
// set. A product with zero matching branches contributes zero rows.
func (s *FilterEngineService) matchingBranches(p *catalog.Product, sel catalog.FilterSelection, snap *catalog.Snapshot) []*catalog.Branch {
	switch {
	case sel.BranchID != "":
		if b := snap.BranchByID(sel.BranchID); b != nil && b.Sells(p.ID) {
			return []*catalog.Branch{b}
		}
		return nil
	case sel.StreetID != "":
		return sellingBranches(s.graph.BranchesOfStreet(snap, sel.StreetID), p.ID)
	case sel.RegionID != "":
		return sellingBranches(s.graph.BranchesOfRegion(snap, sel.RegionID), p.ID)
	default:
		return sellingBranches(snap.Branches, p.ID)
	}
}

func sellingBranches(branches []*catalog.Branch, productID string) []*catalog.Branch {
	var selling []*catalog.Branch
	for _, b := range branches {
		if b.Sells(productID) {
			selling = append(selling, b)
		}
	}
	return selling
}

// commaListContains parses a comma-joined display cache into trimmed values
// and tests membership. The cache is never assumed authoritative beyond this.
func commaListContains(list *string, value string) bool {
	if list == nil {
		return false
	}
	for _, item := range strings.Split(*list, ",") {
		if strings.TrimSpace(item) == value {
			return true
		}
	}
	return false
}

func (s *FilterEngineService) sortRows(rows []catalog.Row, order catalog.SortOrder) []catalog.Row {
	switch order {
	case catalog.SortPriceAsc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Product.Price < rows[j].Product.Price })
	case catalog.SortPriceDesc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Product.Price > rows[j].Product.Price })
	case catalog.SortNameAsc:
		sort.SliceStable(rows, func(i, j int) bool {
			return s.collator.CompareString(rows[i].Product.Name, rows[j].Product.Name) < 0
		})
	case catalog.SortNameDesc:
		sort.SliceStable(rows, func(i, j int) bool {
			return s.collator.CompareString(rows[i].Product.Name, rows[j].Product.Name) > 0
		})
	case catalog.SortBranchAsc:
		return s.groupByBranch(rows, false)
	case catalog.SortBranchDesc:
		return s.groupByBranch(rows, true)
	}
	return rows
}

// groupByBranch implements the stable group-then-concatenate sort: rows are
// bucketed by branch display name preserving their relative order, the
// branch names are sorted, and the groups are concatenated. Rows from the
// same branch stay contiguous for UI sectioning.
func (s *FilterEngineService) groupByBranch(rows []catalog.Row, desc bool) []catalog.Row {
	groups := make(map[string][]catalog.Row)
	var names []string
	for _, row := range rows {
		name := row.Branch.Name
		if _, ok := groups[name]; !ok {
			names = append(names, name)
		}
		groups[name] = append(groups[name], row)
	}

	sort.SliceStable(names, func(i, j int) bool {
		if desc {
			return s.collator.CompareString(names[i], names[j]) > 0
		}
		return s.collator.CompareString(names[i], names[j]) < 0
	})

	out := make([]catalog.Row, 0, len(rows))
	for _, name := range names {
		out = append(out, groups[name]...)
	}
	return out
}
