// Package interfaces defines the caching contracts consumed by the
// cache-first repositories.
package interfaces

import (
	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

// CatalogCache is the in-memory, read-through cache over the store. The
// repositories consult it before the database and write back on load; the
// master ID lists preserve database ordering for FindAll.
type CatalogCache interface {
	GetRegion(id string) (*catalog.Region, bool)
	SetRegion(region *catalog.Region)
	GetAllRegionIDs() ([]string, bool)
	SetAllRegionIDs(ids []string)

	GetStreet(id string) (*catalog.Street, bool)
	SetStreet(street *catalog.Street)
	GetAllStreetIDs() ([]string, bool)
	SetAllStreetIDs(ids []string)

	GetBranch(id string) (*catalog.Branch, bool)
	SetBranch(branch *catalog.Branch)
	GetAllBranchIDs() ([]string, bool)
	SetAllBranchIDs(ids []string)

	GetProduct(id string) (*catalog.Product, bool)
	SetProduct(product *catalog.Product)
	GetAllProductIDs() ([]string, bool)
	SetAllProductIDs(ids []string)

	// InvalidateCatalog drops everything; structural deletes use this
	// rather than tracking cross-entity fallout item by item.
	InvalidateCatalog()
}
