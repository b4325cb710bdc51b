// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

// CatalogStore implements the catalog cache with a single lock over all
// entity maps; the store is small and reads dominate.
type CatalogStore struct {
	mu sync.RWMutex

	regions  map[string]*catalog.Region
	streets  map[string]*catalog.Street
	branches map[string]*catalog.Branch
	products map[string]*catalog.Product

	allRegionIDs  []string
	allStreetIDs  []string
	allBranchIDs  []string
	allProductIDs []string

	lastUpdated time.Time
}

// NewCatalogStore creates an empty catalog cache store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		regions:  make(map[string]*catalog.Region),
		streets:  make(map[string]*catalog.Street),
		branches: make(map[string]*catalog.Branch),
		products: make(map[string]*catalog.Product),
	}
}

func (cs *CatalogStore) GetRegion(id string) (*catalog.Region, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	r, ok := cs.regions[id]
	return r, ok
}

func (cs *CatalogStore) SetRegion(region *catalog.Region) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.regions[region.ID] = region
	cs.lastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetAllRegionIDs() ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.allRegionIDs == nil {
		return nil, false
	}
	return append([]string(nil), cs.allRegionIDs...), true
}

func (cs *CatalogStore) SetAllRegionIDs(ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	// Non-nil even for zero ids: nil means "not cached", an empty store is
	// a valid cached answer.
	cs.allRegionIDs = append([]string{}, ids...)
	cs.lastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetStreet(id string) (*catalog.Street, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	st, ok := cs.streets[id]
	return st, ok
}

func (cs *CatalogStore) SetStreet(street *catalog.Street) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.streets[street.ID] = street
	cs.lastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetAllStreetIDs() ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.allStreetIDs == nil {
		return nil, false
	}
	return append([]string(nil), cs.allStreetIDs...), true
}

func (cs *CatalogStore) SetAllStreetIDs(ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allStreetIDs = append([]string{}, ids...)
	cs.lastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetBranch(id string) (*catalog.Branch, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	b, ok := cs.branches[id]
	return b, ok
}

func (cs *CatalogStore) SetBranch(branch *catalog.Branch) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.branches[branch.ID] = branch
	cs.lastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetAllBranchIDs() ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.allBranchIDs == nil {
		return nil, false
	}
	return append([]string(nil), cs.allBranchIDs...), true
}

func (cs *CatalogStore) SetAllBranchIDs(ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allBranchIDs = append([]string{}, ids...)
	cs.lastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetProduct(id string) (*catalog.Product, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	p, ok := cs.products[id]
	return p, ok
}

func (cs *CatalogStore) SetProduct(product *catalog.Product) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.products[product.ID] = product
	cs.lastUpdated = time.Now().UTC()
}

func (cs *CatalogStore) GetAllProductIDs() ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.allProductIDs == nil {
		return nil, false
	}
	return append([]string(nil), cs.allProductIDs...), true
}

func (cs *CatalogStore) SetAllProductIDs(ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allProductIDs = append([]string{}, ids...)
	cs.lastUpdated = time.Now().UTC()
}

// InvalidateCatalog drops all cached entities and master lists.
func (cs *CatalogStore) InvalidateCatalog() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.regions = make(map[string]*catalog.Region)
	cs.streets = make(map[string]*catalog.Street)
	cs.branches = make(map[string]*catalog.Branch)
	cs.products = make(map[string]*catalog.Product)
	cs.allRegionIDs = nil
	cs.allStreetIDs = nil
	cs.allBranchIDs = nil
	cs.allProductIDs = nil
	cs.lastUpdated = time.Now().UTC()
}

// LastUpdated reports when the cache last changed.
func (cs *CatalogStore) LastUpdated() time.Time {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.lastUpdated
}
