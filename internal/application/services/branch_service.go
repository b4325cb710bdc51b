package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
	"github.com/MarajLabs/maraj-go/internal/domain/repositories"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/security"
)

// BranchInput carries the writable branch fields from the API layer.
type BranchInput struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	OpenTime  string  `json:"openTime"`
	CloseTime string  `json:"closeTime"`
	StreetID  *string `json:"streetId"`
}

// BranchService handles branch CRUD and the product assignment edge. Every
// mutation that can change which products are assigned somewhere triggers an
// archive reconciliation pass.
type BranchService struct {
	branchRepo  repositories.BranchRepository
	streetRepo  repositories.StreetRepository
	productRepo repositories.ProductRepository
	consistency *ConsistencyService
	logger      *logging.ChanneledLogger
}

func NewBranchService(
	branchRepo repositories.BranchRepository,
	streetRepo repositories.StreetRepository,
	productRepo repositories.ProductRepository,
	consistency *ConsistencyService,
	logger *logging.ChanneledLogger,
) *BranchService {
	return &BranchService{
		branchRepo:  branchRepo,
		streetRepo:  streetRepo,
		productRepo: productRepo,
		consistency: consistency,
		logger:      logger,
	}
}

func (s *BranchService) GetAll() ([]*catalog.Branch, error) {
	return s.branchRepo.FindAll()
}

func (s *BranchService) GetByID(id string) (*catalog.Branch, error) {
	branch, err := s.branchRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("branch %s: %w", id, ErrNotFound)
	}
	return branch, nil
}

func (s *BranchService) GetByStreet(streetID string) ([]*catalog.Branch, error) {
	return s.branchRepo.FindByStreetID(streetID)
}

func (s *BranchService) Create(input BranchInput) (*catalog.Branch, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	branch := &catalog.Branch{
		ID:        security.GenerateULID(),
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		Phone:     strings.TrimSpace(input.Phone),
		OpenTime:  input.OpenTime,
		CloseTime: input.CloseTime,
		StreetID:  input.StreetID,
		Products:  []catalog.AssignedProduct{},
	}
	if err := s.branchRepo.Store(branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	s.logger.Catalog().Info("Branch created", "id", branch.ID, "name", branch.Name)
	return branch, nil
}

func (s *BranchService) Update(id string, input BranchInput) (*catalog.Branch, error) {
	branch, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	updated := *branch
	updated.Name = strings.TrimSpace(input.Name)
	updated.Address = strings.TrimSpace(input.Address)
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.OpenTime = input.OpenTime
	updated.CloseTime = input.CloseTime
	updated.StreetID = input.StreetID
	if err := s.branchRepo.Update(&updated); err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}

	s.logger.Catalog().Info("Branch updated", "id", id)
	return &updated, nil
}

// Delete removes the branch. Products sold only there lose their last
// assignment, so a reconcile pass follows to archive them.
func (s *BranchService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.branchRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	if _, err := s.consistency.Reconcile(); err != nil {
		return fmt.Errorf("failed to reconcile after branch delete: %w", err)
	}
	s.logger.Catalog().Info("Branch deleted", "id", id)
	return nil
}

// SetAssignments replaces the branch's product list. Product ids are
// validated against the store and names are captured from the products
// themselves, never trusted from the caller. A reconcile pass follows so
// newly assigned products unarchive and newly orphaned ones archive.
func (s *BranchService) SetAssignments(branchID string, productIDs []string) (*catalog.Branch, error) {
	branch, err := s.GetByID(branchID)
	if err != nil {
		return nil, err
	}

	assignments := make([]catalog.AssignedProduct, 0, len(productIDs))
	seen := make(map[string]struct{}, len(productIDs))
	for _, productID := range productIDs {
		if _, dup := seen[productID]; dup {
			continue
		}
		seen[productID] = struct{}{}

		product, err := s.productRepo.FindByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		assignments = append(assignments, catalog.AssignedProduct{
			ProductID:   product.ID,
			ProductName: product.Name,
		})
	}

	if err := s.branchRepo.ReplaceAssignments(branchID, assignments); err != nil {
		return nil, fmt.Errorf("failed to replace assignments: %w", err)
	}
	if _, err := s.consistency.Reconcile(); err != nil {
		return nil, fmt.Errorf("failed to reconcile after assignment change: %w", err)
	}

	s.logger.Catalog().Info("Branch assignments replaced",
		"branchId", branchID, "count", len(assignments))

	updated := *branch
	updated.Products = assignments
	return &updated, nil
}

func (s *BranchService) validate(input BranchInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New("branch name is required")
	}
	if input.StreetID != nil {
		street, err := s.streetRepo.FindByID(*input.StreetID)
		if err != nil {
			return err
		}
		if street == nil {
			return fmt.Errorf("street %s: %w", *input.StreetID, ErrNotFound)
		}
	}
	return nil
}
