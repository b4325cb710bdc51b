// Package repositories defines the repository interfaces for the directory
// entities. These abstract the persistence details so the engines and
// application services stay decoupled from the database.
package repositories

import (
	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

type RegionRepository interface {
	FindByID(id string) (*catalog.Region, error)
	FindAll() ([]*catalog.Region, error)
	Store(region *catalog.Region) error
	Update(region *catalog.Region) error
	// Delete removes the region and clears RegionID on its streets in one
	// transaction; the streets themselves survive unassigned.
	Delete(id string) error
}

type StreetRepository interface {
	FindByID(id string) (*catalog.Street, error)
	FindByRegionID(regionID string) ([]*catalog.Street, error)
	FindAll() ([]*catalog.Street, error)
	Store(street *catalog.Street) error
	Update(street *catalog.Street) error
	// Delete removes the street and clears StreetID on its branches.
	Delete(id string) error
}

type BranchRepository interface {
	FindByID(id string) (*catalog.Branch, error)
	FindByStreetID(streetID string) ([]*catalog.Branch, error)
	FindAll() ([]*catalog.Branch, error)
	Store(branch *catalog.Branch) error
	Update(branch *catalog.Branch) error
	Delete(id string) error
	// ReplaceAssignments swaps the branch's whole product list atomically.
	ReplaceAssignments(branchID string, products []catalog.AssignedProduct) error
}

type ProductRepository interface {
	FindByID(id string) (*catalog.Product, error)
	// FindAll returns every product including archived ones; visibility is
	// the filter engine's job, not the repository's.
	FindAll() ([]*catalog.Product, error)
	Store(product *catalog.Product) error
	Update(product *catalog.Product) error
	Delete(id string) error
	// ApplyArchiveFlags commits a reconciliation pass's flips in a single
	// transaction. On error no flag is changed, in the database or the
	// cache, so readers never observe a half-applied pass.
	ApplyArchiveFlags(flips map[string]bool) error
}
