// Package catalog defines the application's core directory domain entities:
// the three-level location hierarchy (region, street, branch) and the
// products sold through it.
package catalog

import "time"

type Region struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Notes     string   `json:"notes,omitempty"`
	StreetIDs []string `json:"streetIds,omitempty"`
}

// Street belongs to at most one region. RegionID is the authoritative link;
// Region.StreetIDs is a denormalized mirror rebuilt on read.
type Street struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Notes     string   `json:"notes,omitempty"`
	RegionID  *string  `json:"regionId,omitempty"`
	BranchIDs []string `json:"branchIds,omitempty"`
}

type Branch struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Address   string            `json:"address"`
	Phone     string            `json:"phone"`
	OpenTime  string            `json:"openTime"`
	CloseTime string            `json:"closeTime"`
	StreetID  *string           `json:"streetId,omitempty"`
	Products  []AssignedProduct `json:"products,omitempty"`
}

// AssignedProduct is the branch↔product assignment edge. ProductName is a
// display cache captured at assignment time; the id is authoritative.
type AssignedProduct struct {
	ProductID   string `json:"id"`
	ProductName string `json:"name"`
}

type Product struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Subcategory        *string   `json:"subcategory,omitempty"`
	Price              float64   `json:"price"`
	Color              *string   `json:"color,omitempty"`
	Size               *string   `json:"size,omitempty"`
	SpecialOffer       bool      `json:"specialOffer"`
	DiscountPercentage *float64  `json:"discountPercentage,omitempty"`
	IsArchived         bool      `json:"isArchived"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Snapshot is an immutable read of the whole store. Every engine in
// internal/domain/services is a pure function over one of these.
type Snapshot struct {
	Regions  []*Region  `json:"regions"`
	Streets  []*Street  `json:"streets"`
	Branches []*Branch  `json:"branches"`
	Products []*Product `json:"products"`
}

// ExportDocument is the shareable dump format consumed by external tooling.
type ExportDocument struct {
	Products      []*Product `json:"products"`
	Branches      []*Branch  `json:"branches"`
	Regions       []*Region  `json:"regions"`
	Streets       []*Street  `json:"streets"`
	ExportDate    time.Time  `json:"exportDate"`
	ExportVersion string     `json:"exportVersion"`
}

func (s *Snapshot) RegionByID(id string) *Region {
	for _, r := range s.Regions {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *Snapshot) StreetByID(id string) *Street {
	for _, st := range s.Streets {
		if st.ID == id {
			return st
		}
	}
	return nil
}

func (s *Snapshot) BranchByID(id string) *Branch {
	for _, b := range s.Branches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Snapshot) ProductByID(id string) *Product {
	for _, p := range s.Products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Sells reports whether the branch's assignment list contains the product.
func (b *Branch) Sells(productID string) bool {
	for _, ap := range b.Products {
		if ap.ProductID == productID {
			return true
		}
	}
	return false
}
