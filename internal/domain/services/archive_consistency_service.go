package services

import (
	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

// ArchiveConsistencyService derives each product's IsArchived flag from the
// branch assignment graph: a product is archived iff no branch sells it.
// Reconcile is a full recompute, never a delta patch, which is what makes it
// converge from any intermediate state. It is side-effect-free: callers
// receive a new product slice and decide whether to commit it.
type ArchiveConsistencyService struct{}

func NewArchiveConsistencyService() *ArchiveConsistencyService {
	return &ArchiveConsistencyService{}
}

// ReconcileReport records which products changed state during one pass.
type ReconcileReport struct {
	AutoArchived []string `json:"autoArchived"`
	Unarchived   []string `json:"unarchived"`
}

// Changed reports whether the pass flipped any product.
func (r ReconcileReport) Changed() bool {
	return len(r.AutoArchived) > 0 || len(r.Unarchived) > 0
}

// Flips returns the per-product archived value for every product the pass
// changed, keyed by product ID.
func (r ReconcileReport) Flips() map[string]bool {
	flips := make(map[string]bool, len(r.AutoArchived)+len(r.Unarchived))
	for _, id := range r.AutoArchived {
		flips[id] = true
	}
	for _, id := range r.Unarchived {
		flips[id] = false
	}
	return flips
}

// AssignedProductIDs collects the union of every branch's assignment list.
func (s *ArchiveConsistencyService) AssignedProductIDs(branches []*catalog.Branch) map[string]struct{} {
	assigned := make(map[string]struct{})
	for _, b := range branches {
		for _, ap := range b.Products {
			assigned[ap.ProductID] = struct{}{}
		}
	}
	return assigned
}

// UnassignedProductIDs returns the IDs of products no branch sells, in
// product order.
func (s *ArchiveConsistencyService) UnassignedProductIDs(products []*catalog.Product, branches []*catalog.Branch) []string {
	assigned := s.AssignedProductIDs(branches)
	var unassigned []string
	for _, p := range products {
		if _, ok := assigned[p.ID]; !ok {
			unassigned = append(unassigned, p.ID)
		}
	}
	return unassigned
}

// Reconcile returns a product slice in which IsArchived matches "assigned to
// zero branches" for every product, plus a report of the flips. Products
// whose flag already matches are returned untouched (same pointer), so
// callers can cheaply detect spurious writes. Idempotent: reconciling the
// output against the same branches changes nothing.
func (s *ArchiveConsistencyService) Reconcile(products []*catalog.Product, branches []*catalog.Branch) ([]*catalog.Product, ReconcileReport) {
	assigned := s.AssignedProductIDs(branches)

	var report ReconcileReport
	out := make([]*catalog.Product, len(products))
	for i, p := range products {
		_, isAssigned := assigned[p.ID]
		shouldArchive := !isAssigned
		if p.IsArchived == shouldArchive {
			out[i] = p
			continue
		}

		flipped := *p
		flipped.IsArchived = shouldArchive
		out[i] = &flipped

		if shouldArchive {
			report.AutoArchived = append(report.AutoArchived, p.ID)
		} else {
			report.Unarchived = append(report.Unarchived, p.ID)
		}
	}
	return out, report
}

// ArchivedCount counts the products currently flagged archived.
func (s *ArchiveConsistencyService) ArchivedCount(products []*catalog.Product) int {
	count := 0
	for _, p := range products {
		if p.IsArchived {
			count++
		}
	}
	return count
}
