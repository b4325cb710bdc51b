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

// ErrNotFound marks lookups for entities that do not exist; handlers map it
// to a 404.
var ErrNotFound = errors.New("not found")

// RegionService handles the region CRUD operations.
type RegionService struct {
	regionRepo repositories.RegionRepository
	logger     *logging.ChanneledLogger
}

func NewRegionService(regionRepo repositories.RegionRepository, logger *logging.ChanneledLogger) *RegionService {
	return &RegionService{regionRepo: regionRepo, logger: logger}
}

func (s *RegionService) GetAll() ([]*catalog.Region, error) {
	return s.regionRepo.FindAll()
}

func (s *RegionService) GetByID(id string) (*catalog.Region, error) {
	region, err := s.regionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, fmt.Errorf("region %s: %w", id, ErrNotFound)
	}
	return region, nil
}

func (s *RegionService) Create(name, notes string) (*catalog.Region, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("region name is required")
	}

	region := &catalog.Region{
		ID:    security.GenerateULID(),
		Name:  name,
		Notes: strings.TrimSpace(notes),
	}
	if err := s.regionRepo.Store(region); err != nil {
		return nil, fmt.Errorf("failed to create region: %w", err)
	}

	s.logger.Catalog().Info("Region created", "id", region.ID, "name", region.Name)
	return region, nil
}

func (s *RegionService) Update(id, name, notes string) (*catalog.Region, error) {
	region, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("region name is required")
	}

	updated := *region
	updated.Name = name
	updated.Notes = strings.TrimSpace(notes)
	if err := s.regionRepo.Update(&updated); err != nil {
		return nil, fmt.Errorf("failed to update region: %w", err)
	}

	s.logger.Catalog().Info("Region updated", "id", id)
	return &updated, nil
}

// Delete removes the region; its streets survive with no region assigned.
func (s *RegionService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.regionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete region: %w", err)
	}
	s.logger.Catalog().Info("Region deleted", "id", id)
	return nil
}
