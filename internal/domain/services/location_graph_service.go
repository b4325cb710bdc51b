// Package services provides the pure engines at the heart of the directory:
// location graph traversal, filter normalization, archive consistency,
// filter predicate evaluation, and the slug URL codec. Every operation reads
// an immutable snapshot and returns derived values; inputs are never mutated.
package services

import (
	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

// LocationGraphService answers hierarchical membership queries over the
// region/street/branch records. Traversal always recomputes from the
// authoritative back-references (Street.RegionID, Branch.StreetID) rather
// than trusting the denormalized ID lists, so hand-edited data that drifted
// still resolves consistently. Dangling references yield empty results.
type LocationGraphService struct{}

func NewLocationGraphService() *LocationGraphService {
	return &LocationGraphService{}
}

// StreetsOfRegion returns every street whose RegionID equals regionID, in
// snapshot order.
func (s *LocationGraphService) StreetsOfRegion(snap *catalog.Snapshot, regionID string) []*catalog.Street {
	var streets []*catalog.Street
	for _, st := range snap.Streets {
		if st.RegionID != nil && *st.RegionID == regionID {
			streets = append(streets, st)
		}
	}
	return streets
}

// BranchesOfStreet returns every branch whose StreetID equals streetID.
func (s *LocationGraphService) BranchesOfStreet(snap *catalog.Snapshot, streetID string) []*catalog.Branch {
	var branches []*catalog.Branch
	for _, b := range snap.Branches {
		if b.StreetID != nil && *b.StreetID == streetID {
			branches = append(branches, b)
		}
	}
	return branches
}

// BranchesOfRegion is the two-hop join: branches of all streets of the region.
func (s *LocationGraphService) BranchesOfRegion(snap *catalog.Snapshot, regionID string) []*catalog.Branch {
	streetIDs := make(map[string]struct{})
	for _, st := range s.StreetsOfRegion(snap, regionID) {
		streetIDs[st.ID] = struct{}{}
	}

	var branches []*catalog.Branch
	for _, b := range snap.Branches {
		if b.StreetID == nil {
			continue
		}
		if _, ok := streetIDs[*b.StreetID]; ok {
			branches = append(branches, b)
		}
	}
	return branches
}

// RebuildRegionStreetIDs returns fresh StreetIDs lists for every region,
// derived from Street.RegionID, the authoritative side of the relation.
// Keyed by region ID; regions with no streets map to nil.
func (s *LocationGraphService) RebuildRegionStreetIDs(snap *catalog.Snapshot) map[string][]string {
	rebuilt := make(map[string][]string, len(snap.Regions))
	for _, r := range snap.Regions {
		rebuilt[r.ID] = nil
	}
	for _, st := range snap.Streets {
		if st.RegionID == nil {
			continue
		}
		if _, ok := rebuilt[*st.RegionID]; !ok {
			// Dangling region reference; nothing to attach to.
			continue
		}
		rebuilt[*st.RegionID] = append(rebuilt[*st.RegionID], st.ID)
	}
	return rebuilt
}
