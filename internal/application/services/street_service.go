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

// StreetService handles the street CRUD operations. A street may be created
// unattached and assigned to a region later.
type StreetService struct {
	streetRepo repositories.StreetRepository
	regionRepo repositories.RegionRepository
	logger     *logging.ChanneledLogger
}

func NewStreetService(
	streetRepo repositories.StreetRepository,
	regionRepo repositories.RegionRepository,
	logger *logging.ChanneledLogger,
) *StreetService {
	return &StreetService{streetRepo: streetRepo, regionRepo: regionRepo, logger: logger}
}

func (s *StreetService) GetAll() ([]*catalog.Street, error) {
	return s.streetRepo.FindAll()
}

func (s *StreetService) GetByID(id string) (*catalog.Street, error) {
	street, err := s.streetRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if street == nil {
		return nil, fmt.Errorf("street %s: %w", id, ErrNotFound)
	}
	return street, nil
}

func (s *StreetService) GetByRegion(regionID string) ([]*catalog.Street, error) {
	return s.streetRepo.FindByRegionID(regionID)
}

func (s *StreetService) Create(name, notes string, regionID *string) (*catalog.Street, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("street name is required")
	}
	if err := s.checkRegion(regionID); err != nil {
		return nil, err
	}

	street := &catalog.Street{
		ID:       security.GenerateULID(),
		Name:     name,
		Notes:    strings.TrimSpace(notes),
		RegionID: regionID,
	}
	if err := s.streetRepo.Store(street); err != nil {
		return nil, fmt.Errorf("failed to create street: %w", err)
	}

	s.logger.Catalog().Info("Street created", "id", street.ID, "name", street.Name)
	return street, nil
}

func (s *StreetService) Update(id, name, notes string, regionID *string) (*catalog.Street, error) {
	street, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("street name is required")
	}
	if err := s.checkRegion(regionID); err != nil {
		return nil, err
	}

	updated := *street
	updated.Name = name
	updated.Notes = strings.TrimSpace(notes)
	updated.RegionID = regionID
	if err := s.streetRepo.Update(&updated); err != nil {
		return nil, fmt.Errorf("failed to update street: %w", err)
	}

	s.logger.Catalog().Info("Street updated", "id", id)
	return &updated, nil
}

// Delete removes the street; its branches survive with no street assigned.
func (s *StreetService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.streetRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete street: %w", err)
	}
	s.logger.Catalog().Info("Street deleted", "id", id)
	return nil
}

func (s *StreetService) checkRegion(regionID *string) error {
	if regionID == nil {
		return nil
	}
	region, err := s.regionRepo.FindByID(*regionID)
	if err != nil {
		return err
	}
	if region == nil {
		return fmt.Errorf("region %s: %w", *regionID, ErrNotFound)
	}
	return nil
}
