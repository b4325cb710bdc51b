package services

import (
	"fmt"

	domainservices "github.com/MarajLabs/maraj-go/internal/domain/services"

	"github.com/MarajLabs/maraj-go/internal/domain/repositories"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/performance"
)

// ConsistencyService runs the archive reconciliation pass against the live
// store: it loads the products and branches, recomputes every product's
// archived flag from the assignment graph, and commits the flips in one
// transaction. Safe to run at any time; a pass over a consistent store is a
// no-op.
type ConsistencyService struct {
	productRepo repositories.ProductRepository
	branchRepo  repositories.BranchRepository
	engine      *domainservices.ArchiveConsistencyService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewConsistencyService(
	productRepo repositories.ProductRepository,
	branchRepo repositories.BranchRepository,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *ConsistencyService {
	return &ConsistencyService{
		productRepo: productRepo,
		branchRepo:  branchRepo,
		engine:      domainservices.NewArchiveConsistencyService(),
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Reconcile recomputes and persists the archive flags, returning the report
// of what flipped. When nothing flipped, nothing is written.
func (s *ConsistencyService) Reconcile() (domainservices.ReconcileReport, error) {
	marker := s.perfTracker.StartOperation("archive_reconcile")
	defer marker.Complete()

	var report domainservices.ReconcileReport

	products, err := s.productRepo.FindAll()
	if err != nil {
		return report, fmt.Errorf("failed to load products for reconcile: %w", err)
	}
	branches, err := s.branchRepo.FindAll()
	if err != nil {
		return report, fmt.Errorf("failed to load branches for reconcile: %w", err)
	}

	_, report = s.engine.Reconcile(products, branches)
	if !report.Changed() {
		s.logger.Catalog().Debug("Reconcile pass found store consistent",
			"products", len(products), "branches", len(branches))
		marker.SetSuccess(true)
		return report, nil
	}

	if err := s.productRepo.ApplyArchiveFlags(report.Flips()); err != nil {
		return report, fmt.Errorf("failed to apply archive flags: %w", err)
	}

	s.logger.Catalog().Info("Reconcile pass applied archive flips",
		"autoArchived", len(report.AutoArchived), "unarchived", len(report.Unarchived))
	marker.SetSuccess(true)
	return report, nil
}
