package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/caching/interfaces"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/pkg/config"
)

type ProductRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewProductRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *ProductRepository) FindByID(id string) (*catalog.Product, error) {
	if product, found := r.cache.GetProduct(id); found {
		return product, nil
	}

	product, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	r.cache.SetProduct(product)
	return product, nil
}

// FindAll retrieves every product, archived ones included.
func (r *ProductRepository) FindAll() ([]*catalog.Product, error) {
	if ids, found := r.cache.GetAllProductIDs(); found {
		return r.findByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	r.cache.SetAllProductIDs(ids)
	return r.findByIDs(ids)
}

func (r *ProductRepository) findByIDs(ids []string) ([]*catalog.Product, error) {
	var result []*catalog.Product
	for _, id := range ids {
		product, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			result = append(result, product)
		}
	}
	return result, nil
}

func (r *ProductRepository) Store(product *catalog.Product) error {
	query := `INSERT INTO products (id, name, category, subcategory, price, color, size,
	          special_offer, discount_percentage, is_archived, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing product insert", "id", product.ID)

	_, err := r.db.Exec(query, product.ID, product.Name, product.Category, product.Subcategory,
		product.Price, product.Color, product.Size, product.SpecialOffer,
		product.DiscountPercentage, product.IsArchived, product.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Product insert failed", "error", err.Error(), "id", product.ID)
		return fmt.Errorf("failed to insert product: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Product insert completed", "id", product.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

func (r *ProductRepository) Update(product *catalog.Product) error {
	query := `UPDATE products SET name = ?, category = ?, subcategory = ?, price = ?, color = ?,
	          size = ?, special_offer = ?, discount_percentage = ?, is_archived = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing product update", "id", product.ID)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin product update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(query, product.Name, product.Category, product.Subcategory, product.Price,
		product.Color, product.Size, product.SpecialOffer, product.DiscountPercentage,
		product.IsArchived, product.ID); err != nil {
		r.logger.Database().Error("Product update failed", "error", err.Error(), "id", product.ID)
		return fmt.Errorf("failed to update product: %w", err)
	}

	// The assignment edges denormalize the product name; a rename must reach
	// them too or branch payloads go stale.
	if _, err := tx.Exec(`UPDATE branch_products SET product_name = ? WHERE product_id = ?`,
		product.Name, product.ID); err != nil {
		r.logger.Database().Error("Product name propagation failed", "error", err.Error(), "id", product.ID)
		return fmt.Errorf("failed to propagate product name: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product update: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Product update completed", "id", product.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

// Delete removes the product and its assignment edges in one transaction.
func (r *ProductRepository) Delete(id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing product delete", "id", id)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin product delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM branch_products WHERE product_id = ?`, id); err != nil {
		r.logger.Database().Error("Product assignment delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete product assignments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Product delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product delete: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Product delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery("DELETE product", duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

// ApplyArchiveFlags commits a reconciliation pass's archive flips in a single
// transaction. The cache is touched only after a successful commit, so no
// reader ever sees a half-applied pass.
func (r *ProductRepository) ApplyArchiveFlags(flips map[string]bool) error {
	if len(flips) == 0 {
		return nil
	}

	start := time.Now()
	r.logger.Database().Debug("Applying archive flags", "count", len(flips))

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin archive flag apply: %w", err)
	}
	defer tx.Rollback()

	for id, archived := range flips {
		if _, err := tx.Exec(`UPDATE products SET is_archived = ? WHERE id = ?`, archived, id); err != nil {
			r.logger.Database().Error("Archive flag update failed", "error", err.Error(), "id", id)
			return fmt.Errorf("failed to update archive flag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit archive flags: %w", err)
	}

	for id, archived := range flips {
		if cached, found := r.cache.GetProduct(id); found {
			updated := *cached
			updated.IsArchived = archived
			r.cache.SetProduct(&updated)
		}
	}

	duration := time.Since(start)
	r.logger.Database().Info("Archive flags applied", "count", len(flips), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery("UPDATE products archive flags", duration)
	}
	return nil
}

func (r *ProductRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM products ORDER BY created_at DESC, id`

	start := time.Now()
	r.logger.Database().Debug("Loading all product IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query product IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product ID: %w", err)
		}
		ids = append(ids, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded product IDs from database", "count", len(ids), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return ids, rows.Err()
}

func (r *ProductRepository) loadFromDB(id string) (*catalog.Product, error) {
	query := `SELECT id, name, category, subcategory, price, color, size,
	          special_offer, discount_percentage, is_archived, created_at
	          FROM products WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading product from database", "id", id)

	row := r.db.QueryRow(query, id)

	var product catalog.Product
	err := row.Scan(&product.ID, &product.Name, &product.Category, &product.Subcategory,
		&product.Price, &product.Color, &product.Size, &product.SpecialOffer,
		&product.DiscountPercentage, &product.IsArchived, &product.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan product", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Product loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return &product, nil
}
