package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	persistence "github.com/MarajLabs/maraj-go/internal/infrastructure/persistence/catalog"

	"github.com/MarajLabs/maraj-go/internal/infrastructure/caching/stores"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/database"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/performance"
)

// testStack is a full live stack over an in-memory database, the same wiring
// the container does in production.
type testStack struct {
	Regions     *RegionService
	Streets     *StreetService
	Branches    *BranchService
	Products    *ProductService
	Consistency *ConsistencyService
	Catalog     *CatalogService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewTableCreator().CreateSchema(db))

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)

	cache := stores.NewCatalogStore()
	regionRepo := persistence.NewRegionRepository(db, cache, logger)
	streetRepo := persistence.NewStreetRepository(db, cache, logger)
	branchRepo := persistence.NewBranchRepository(db, cache, logger)
	productRepo := persistence.NewProductRepository(db, cache, logger)

	tracker := performance.NewTracker()
	consistency := NewConsistencyService(productRepo, branchRepo, logger, tracker)

	return &testStack{
		Regions:     NewRegionService(regionRepo, logger),
		Streets:     NewStreetService(streetRepo, regionRepo, logger),
		Branches:    NewBranchService(branchRepo, streetRepo, productRepo, consistency, logger),
		Products:    NewProductService(productRepo, logger),
		Consistency: consistency,
		Catalog: NewCatalogService(regionRepo, streetRepo, branchRepo, productRepo,
			language.English, logger, tracker),
	}
}
