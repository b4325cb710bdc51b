package services

import (
	"time"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// testSnapshot builds the store used across the engine tests:
//
//	Downtown (R1): Main St (S1) -> Alpha (B1); Side St (S2) -> Beta (B2)
//	Uptown   (R2): North St (S3) -> Gamma (B3)
//	unattached: Orphan St (S4), Delta (B4)
//
//	Burger (P1, 10.00, Food/Grill, "red, blue", L) sold by B1 and B2
//	Pizza  (P2, 20.00, Food)                       sold by B3
//	Salad  (P3,  5.00, Food/Fresh)                 sold by B1
//	Ghost  (P4) archived, sold nowhere
func testSnapshot() *catalog.Snapshot {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &catalog.Snapshot{
		Regions: []*catalog.Region{
			{ID: "R1", Name: "Downtown", StreetIDs: []string{"S1", "S2"}},
			{ID: "R2", Name: "Uptown", StreetIDs: []string{"S3"}},
		},
		Streets: []*catalog.Street{
			{ID: "S1", Name: "Main St", RegionID: strPtr("R1"), BranchIDs: []string{"B1"}},
			{ID: "S2", Name: "Side St", RegionID: strPtr("R1"), BranchIDs: []string{"B2"}},
			{ID: "S3", Name: "North St", RegionID: strPtr("R2"), BranchIDs: []string{"B3"}},
			{ID: "S4", Name: "Orphan St"},
		},
		Branches: []*catalog.Branch{
			{ID: "B1", Name: "Alpha", StreetID: strPtr("S1"), Products: []catalog.AssignedProduct{
				{ProductID: "P1", ProductName: "Burger"},
				{ProductID: "P3", ProductName: "Salad"},
			}},
			{ID: "B2", Name: "Beta", StreetID: strPtr("S2"), Products: []catalog.AssignedProduct{
				{ProductID: "P1", ProductName: "Burger"},
			}},
			{ID: "B3", Name: "Gamma", StreetID: strPtr("S3"), Products: []catalog.AssignedProduct{
				{ProductID: "P2", ProductName: "Pizza"},
			}},
			{ID: "B4", Name: "Delta"},
		},
		Products: []*catalog.Product{
			{ID: "P1", Name: "Burger", Category: "Food", Subcategory: strPtr("Grill"),
				Price: 10, Color: strPtr("red, blue"), Size: strPtr("L"), CreatedAt: created},
			{ID: "P2", Name: "Pizza", Category: "Food", Price: 20, CreatedAt: created},
			{ID: "P3", Name: "Salad", Category: "Food", Subcategory: strPtr("Fresh"),
				Price: 5, CreatedAt: created},
			{ID: "P4", Name: "Ghost", Category: "Food", Price: 1, IsArchived: true, CreatedAt: created},
		},
	}
}
