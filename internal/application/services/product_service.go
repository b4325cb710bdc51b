package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
	"github.com/MarajLabs/maraj-go/internal/domain/repositories"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/security"
)

// ProductInput carries the writable product fields from the API layer.
type ProductInput struct {
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	Subcategory        *string  `json:"subcategory"`
	Price              float64  `json:"price"`
	Color              *string  `json:"color"`
	Size               *string  `json:"size"`
	SpecialOffer       bool     `json:"specialOffer"`
	DiscountPercentage *float64 `json:"discountPercentage"`
}

// ProductService handles the product CRUD operations. New products start
// archived: they become visible the moment a branch assignment makes the
// reconcile pass unarchive them.
type ProductService struct {
	productRepo repositories.ProductRepository
	logger      *logging.ChanneledLogger
}

func NewProductService(productRepo repositories.ProductRepository, logger *logging.ChanneledLogger) *ProductService {
	return &ProductService{productRepo: productRepo, logger: logger}
}

func (s *ProductService) GetAll() ([]*catalog.Product, error) {
	return s.productRepo.FindAll()
}

func (s *ProductService) GetByID(id string) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return product, nil
}

func (s *ProductService) Create(input ProductInput) (*catalog.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product := &catalog.Product{
		ID:                 security.GenerateULID(),
		Name:               strings.TrimSpace(input.Name),
		Category:           strings.TrimSpace(input.Category),
		Subcategory:        input.Subcategory,
		Price:              input.Price,
		Color:              input.Color,
		Size:               input.Size,
		SpecialOffer:       input.SpecialOffer,
		DiscountPercentage: input.DiscountPercentage,
		IsArchived:         true,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.productRepo.Store(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Catalog().Info("Product created", "id", product.ID, "name", product.Name)
	return product, nil
}

func (s *ProductService) Update(id string, input ProductInput) (*catalog.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	updated := *product
	updated.Name = strings.TrimSpace(input.Name)
	updated.Category = strings.TrimSpace(input.Category)
	updated.Subcategory = input.Subcategory
	updated.Price = input.Price
	updated.Color = input.Color
	updated.Size = input.Size
	updated.SpecialOffer = input.SpecialOffer
	updated.DiscountPercentage = input.DiscountPercentage
	if err := s.productRepo.Update(&updated); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Catalog().Info("Product updated", "id", id)
	return &updated, nil
}

// Delete removes the product and its assignment edges everywhere.
func (s *ProductService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Catalog().Info("Product deleted", "id", id)
	return nil
}

func validateProduct(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New("product name is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return errors.New("product category is required")
	}
	if input.Price < 0 {
		return errors.New("product price must not be negative")
	}
	if input.DiscountPercentage != nil && (*input.DiscountPercentage < 0 || *input.DiscountPercentage > 100) {
		return errors.New("discount percentage must be between 0 and 100")
	}
	return nil
}
