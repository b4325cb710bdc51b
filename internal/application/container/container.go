// Package container wires the application's dependencies together in one
// place so handlers and services receive what they need without reaching for
// globals.
package container

import (
	"fmt"

	"golang.org/x/text/language"

	appservices "github.com/MarajLabs/maraj-go/internal/application/services"
	persistence "github.com/MarajLabs/maraj-go/internal/infrastructure/persistence/catalog"

	"github.com/MarajLabs/maraj-go/internal/infrastructure/caching/interfaces"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/caching/stores"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/database"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/performance"
	"github.com/MarajLabs/maraj-go/pkg/config"
)

// Container holds every long-lived dependency of the running server.
type Container struct {
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
	DB          *database.DB
	Cache       interfaces.CatalogCache

	RegionRepo  *persistence.RegionRepository
	StreetRepo  *persistence.StreetRepository
	BranchRepo  *persistence.BranchRepository
	ProductRepo *persistence.ProductRepository

	AuthService        *appservices.AuthService
	RegionService      *appservices.RegionService
	StreetService      *appservices.StreetService
	BranchService      *appservices.BranchService
	ProductService     *appservices.ProductService
	ConsistencyService *appservices.ConsistencyService
	CatalogService     *appservices.CatalogService
}

// New builds the full dependency graph: logger, database, cache, the
// repositories over them, and the application services on top.
func New(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) (*Container, error) {
	db, err := database.NewConnectionWithLogger(config.DBDriver, config.DBDataSource, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.NewTableCreator().CreateSchema(db.DB); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	cache := stores.NewCatalogStore()

	regionRepo := persistence.NewRegionRepository(db.DB, cache, logger)
	streetRepo := persistence.NewStreetRepository(db.DB, cache, logger)
	branchRepo := persistence.NewBranchRepository(db.DB, cache, logger)
	productRepo := persistence.NewProductRepository(db.DB, cache, logger)

	locale, err := language.Parse(config.CatalogLocale)
	if err != nil {
		logger.Startup().Warn("Invalid catalog locale, falling back to Arabic",
			"locale", config.CatalogLocale, "error", err.Error())
		locale = language.Arabic
	}

	consistencyService := appservices.NewConsistencyService(productRepo, branchRepo, logger, perfTracker)

	c := &Container{
		Logger:      logger,
		PerfTracker: perfTracker,
		DB:          db,
		Cache:       cache,

		RegionRepo:  regionRepo,
		StreetRepo:  streetRepo,
		BranchRepo:  branchRepo,
		ProductRepo: productRepo,

		AuthService:        appservices.NewAuthService(logger),
		RegionService:      appservices.NewRegionService(regionRepo, logger),
		StreetService:      appservices.NewStreetService(streetRepo, regionRepo, logger),
		BranchService:      appservices.NewBranchService(branchRepo, streetRepo, productRepo, consistencyService, logger),
		ProductService:     appservices.NewProductService(productRepo, logger),
		ConsistencyService: consistencyService,
		CatalogService: appservices.NewCatalogService(
			regionRepo, streetRepo, branchRepo, productRepo,
			locale, logger, perfTracker,
		),
	}

	return c, nil
}

// Close releases the container's long-lived resources.
func (c *Container) Close() error {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
