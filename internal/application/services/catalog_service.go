package services

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/language"

	domainservices "github.com/MarajLabs/maraj-go/internal/domain/services"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
	"github.com/MarajLabs/maraj-go/internal/domain/repositories"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/performance"
)

// Export document version; bump when the shape changes.
const exportVersion = "1.0"

// CatalogView is the full read-model payload for one filtered catalog view:
// the visible rows plus the price bounds that seed the range control.
type CatalogView struct {
	Rows      []catalog.Row           `json:"rows"`
	Selection catalog.FilterSelection `json:"selection"`
	MinPrice  float64                 `json:"minPrice"`
	MaxPrice  float64                 `json:"maxPrice"`
	Total     int                     `json:"total"`
}

// CatalogStats is the admin dashboard summary of the store. The unassigned
// list backs the "products sold nowhere" alert.
type CatalogStats struct {
	Regions              int      `json:"regions"`
	Streets              int      `json:"streets"`
	Branches             int      `json:"branches"`
	Products             int      `json:"products"`
	ArchivedProducts     int      `json:"archivedProducts"`
	UnassignedProductIDs []string `json:"unassignedProductIds"`
}

// CatalogService is the read side of the store: it assembles snapshots from
// the repositories and answers filtered queries, shareable URLs, exports and
// stats over them.
type CatalogService struct {
	regionRepo  repositories.RegionRepository
	streetRepo  repositories.StreetRepository
	branchRepo  repositories.BranchRepository
	productRepo repositories.ProductRepository

	engine        *domainservices.FilterEngineService
	normalization *domainservices.FilterNormalizationService
	codec         *domainservices.SlugCodecService
	archive       *domainservices.ArchiveConsistencyService
	graph         *domainservices.LocationGraphService

	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewCatalogService(
	regionRepo repositories.RegionRepository,
	streetRepo repositories.StreetRepository,
	branchRepo repositories.BranchRepository,
	productRepo repositories.ProductRepository,
	locale language.Tag,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *CatalogService {
	return &CatalogService{
		regionRepo:    regionRepo,
		streetRepo:    streetRepo,
		branchRepo:    branchRepo,
		productRepo:   productRepo,
		engine:        domainservices.NewFilterEngineService(locale),
		normalization: domainservices.NewFilterNormalizationService(),
		codec:         domainservices.NewSlugCodecService(),
		archive:       domainservices.NewArchiveConsistencyService(),
		graph:         domainservices.NewLocationGraphService(),
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// Snapshot assembles a consistent read of the whole store.
func (s *CatalogService) Snapshot() (*catalog.Snapshot, error) {
	regions, err := s.regionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load regions: %w", err)
	}
	streets, err := s.streetRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load streets: %w", err)
	}
	branches, err := s.branchRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	snap := &catalog.Snapshot{
		Regions:  regions,
		Streets:  streets,
		Branches: branches,
		Products: products,
	}

	// Region street lists are denormalized; rebuild them from the
	// authoritative Street.RegionID side so a drifted entry never leaks into
	// a snapshot. Copies, not in-place: the input regions may be shared with
	// the cache.
	rebuilt := s.graph.RebuildRegionStreetIDs(snap)
	repaired := make([]*catalog.Region, len(snap.Regions))
	for i, r := range snap.Regions {
		region := *r
		region.StreetIDs = rebuilt[r.ID]
		repaired[i] = &region
	}
	snap.Regions = repaired

	return snap, nil
}

// Query answers one filtered catalog request: the URL parameters are decoded
// into a selection (slug parameters included), the selection's location path
// is normalized, and the filter engine computes the visible rows.
func (s *CatalogService) Query(params url.Values) (*CatalogView, error) {
	marker := s.perfTracker.StartOperation("catalog_query")
	defer marker.Complete()

	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	sel := s.decodeSelection(params, snap)
	sel = s.normalization.Normalize(sel, snap)

	rows := s.engine.Rows(sel, snap)
	min, max := s.engine.PriceBounds(rows)

	if rows == nil {
		rows = []catalog.Row{}
	}

	marker.SetSuccess(true)
	s.logger.Perf().Info("Catalog query completed",
		"rows", len(rows), "filtered", !sel.IsZero(), "duration", time.Since(marker.StartTime))

	return &CatalogView{
		Rows:      rows,
		Selection: sel,
		MinPrice:  min,
		MaxPrice:  max,
		Total:     len(rows),
	}, nil
}

// ShareURL renders the given parameters as the canonical shareable catalog
// path: decode, normalize, re-encode. An optional product id pins the URL to
// that product's detail view.
func (s *CatalogService) ShareURL(params url.Values, productID string) (string, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return "", err
	}

	sel := s.decodeSelection(params, snap)
	sel = s.normalization.Normalize(sel, snap)

	if productID != "" {
		if snap.ProductByID(productID) == nil {
			return "", fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return s.codec.ProductURL(productID, sel, snap), nil
	}
	return s.codec.CatalogURL(sel, snap), nil
}

// Export produces the full shareable dump of the store.
func (s *CatalogService) Export() (*catalog.ExportDocument, error) {
	marker := s.perfTracker.StartOperation("catalog_export")
	defer marker.Complete()

	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	marker.SetSuccess(true)
	return &catalog.ExportDocument{
		Products:      snap.Products,
		Branches:      snap.Branches,
		Regions:       snap.Regions,
		Streets:       snap.Streets,
		ExportDate:    time.Now().UTC(),
		ExportVersion: exportVersion,
	}, nil
}

// Stats summarizes the store for the admin dashboard.
func (s *CatalogService) Stats() (*CatalogStats, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return &CatalogStats{
		Regions:              len(snap.Regions),
		Streets:              len(snap.Streets),
		Branches:             len(snap.Branches),
		Products:             len(snap.Products),
		ArchivedProducts:     s.archive.ArchivedCount(snap.Products),
		UnassignedProductIDs: s.archive.UnassignedProductIDs(snap.Products, snap.Branches),
	}, nil
}

// decodeSelection merges the slug-coded location/category parameters with the
// pass-through scalar filters. Malformed numeric values are ignored rather
// than rejected; the filters fail open like the slugs do.
func (s *CatalogService) decodeSelection(params url.Values, snap *catalog.Snapshot) catalog.FilterSelection {
	sel := s.codec.Decode(params, snap)

	sel.Subcategory = params.Get("subcategory")
	sel.Color = params.Get("color")
	sel.Size = params.Get("size")
	sel.Search = params.Get("search")
	sel.SortBy = parseSortOrder(params.Get("sortBy"))

	if v := params.Get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			sel.MinPrice = &f
		}
	}
	if v := params.Get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			sel.MaxPrice = &f
		}
	}
	return sel
}

func parseSortOrder(value string) catalog.SortOrder {
	switch order := catalog.SortOrder(value); order {
	case catalog.SortPriceAsc, catalog.SortPriceDesc,
		catalog.SortNameAsc, catalog.SortNameDesc,
		catalog.SortBranchAsc, catalog.SortBranchDesc:
		return order
	default:
		return catalog.SortNone
	}
}
