package services

import (
	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

// FilterNormalizationService keeps a FilterSelection's hierarchy fields
// coherent: selecting a leaf back-fills its ancestors so the URL and the UI
// always show the full location path, and narrowing a field clears its
// descendants. Back-filling never removes an explicitly chosen descendant.
type FilterNormalizationService struct{}

func NewFilterNormalizationService() *FilterNormalizationService {
	return &FilterNormalizationService{}
}

// Normalize back-fills missing ancestors from the most specific location
// field that is set. A dangling branch or street reference leaves the
// ancestor unset rather than erroring.
func (s *FilterNormalizationService) Normalize(sel catalog.FilterSelection, snap *catalog.Snapshot) catalog.FilterSelection {
	if sel.BranchID != "" && sel.StreetID == "" {
		if b := snap.BranchByID(sel.BranchID); b != nil && b.StreetID != nil {
			sel.StreetID = *b.StreetID
		}
	}
	if sel.StreetID != "" && sel.RegionID == "" {
		if st := snap.StreetByID(sel.StreetID); st != nil && st.RegionID != nil {
			sel.RegionID = *st.RegionID
		}
	}
	return sel
}

// SetRegion narrows the selection to a region, clearing the street and
// branch choices that belonged to the previous path. Passing the empty
// string clears the whole location path.
func (s *FilterNormalizationService) SetRegion(sel catalog.FilterSelection, regionID string) catalog.FilterSelection {
	sel.RegionID = regionID
	sel.StreetID = ""
	sel.BranchID = ""
	return sel
}

// SetStreet narrows to a street, clearing the branch choice. The region is
// re-derived by Normalize rather than trusted from the caller.
func (s *FilterNormalizationService) SetStreet(sel catalog.FilterSelection, streetID string, snap *catalog.Snapshot) catalog.FilterSelection {
	sel.StreetID = streetID
	sel.BranchID = ""
	sel.RegionID = ""
	return s.Normalize(sel, snap)
}

// SetBranch selects a branch and back-fills its street and region.
func (s *FilterNormalizationService) SetBranch(sel catalog.FilterSelection, branchID string, snap *catalog.Snapshot) catalog.FilterSelection {
	sel.BranchID = branchID
	sel.StreetID = ""
	sel.RegionID = ""
	return s.Normalize(sel, snap)
}

// SetCategory changes the category and clears the now-meaningless
// subcategory choice.
func (s *FilterNormalizationService) SetCategory(sel catalog.FilterSelection, category string) catalog.FilterSelection {
	sel.Category = category
	sel.Subcategory = ""
	return sel
}
