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

type BranchRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewBranchRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *BranchRepository {
	return &BranchRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *BranchRepository) FindByID(id string) (*catalog.Branch, error) {
	if branch, found := r.cache.GetBranch(id); found {
		return branch, nil
	}

	branch, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, nil
	}

	r.cache.SetBranch(branch)
	return branch, nil
}

func (r *BranchRepository) FindAll() ([]*catalog.Branch, error) {
	if ids, found := r.cache.GetAllBranchIDs(); found {
		return r.findByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*catalog.Branch{}, nil
	}

	r.cache.SetAllBranchIDs(ids)
	return r.findByIDs(ids)
}

// FindByStreetID retrieves the branches attached to a street, in name order.
func (r *BranchRepository) FindByStreetID(streetID string) ([]*catalog.Branch, error) {
	rows, err := r.db.Query(`SELECT id FROM branches WHERE street_id = ? ORDER BY name`, streetID)
	if err != nil {
		r.logger.Database().Error("Failed to query branches by street", "error", err.Error(), "streetId", streetID)
		return nil, fmt.Errorf("failed to query branches by street: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan branch ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.findByIDs(ids)
}

func (r *BranchRepository) findByIDs(ids []string) ([]*catalog.Branch, error) {
	var result []*catalog.Branch
	for _, id := range ids {
		branch, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if branch != nil {
			result = append(result, branch)
		}
	}
	return result, nil
}

// Store writes the branch row and its assignment edges in one transaction.
func (r *BranchRepository) Store(branch *catalog.Branch) error {
	start := time.Now()
	r.logger.Database().Debug("Executing branch insert", "id", branch.ID)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin branch insert: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO branches (id, name, address, phone, open_time, close_time, street_id)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.Exec(query, branch.ID, branch.Name, branch.Address, branch.Phone,
		branch.OpenTime, branch.CloseTime, branch.StreetID); err != nil {
		r.logger.Database().Error("Branch insert failed", "error", err.Error(), "id", branch.ID)
		return fmt.Errorf("failed to insert branch: %w", err)
	}
	if err := replaceAssignmentEdges(tx, branch.ID, branch.Products); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit branch insert: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Branch insert completed", "id", branch.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

// Update writes the branch row and replaces its assignment edges in one
// transaction.
func (r *BranchRepository) Update(branch *catalog.Branch) error {
	start := time.Now()
	r.logger.Database().Debug("Executing branch update", "id", branch.ID)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin branch update: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE branches SET name = ?, address = ?, phone = ?, open_time = ?, close_time = ?, street_id = ?
	          WHERE id = ?`
	if _, err := tx.Exec(query, branch.Name, branch.Address, branch.Phone,
		branch.OpenTime, branch.CloseTime, branch.StreetID, branch.ID); err != nil {
		r.logger.Database().Error("Branch update failed", "error", err.Error(), "id", branch.ID)
		return fmt.Errorf("failed to update branch: %w", err)
	}
	if err := replaceAssignmentEdges(tx, branch.ID, branch.Products); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit branch update: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Branch update completed", "id", branch.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

// ReplaceAssignments swaps the branch's entire product list atomically
// without touching the branch row itself.
func (r *BranchRepository) ReplaceAssignments(branchID string, products []catalog.AssignedProduct) error {
	start := time.Now()
	r.logger.Database().Debug("Replacing branch assignments", "branchId", branchID, "count", len(products))

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin assignment replace: %w", err)
	}
	defer tx.Rollback()

	if err := replaceAssignmentEdges(tx, branchID, products); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment replace: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Branch assignments replaced", "branchId", branchID, "count", len(products), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery("REPLACE branch_products", duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

// Delete removes the branch and its assignment edges in one transaction.
func (r *BranchRepository) Delete(id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing branch delete", "id", id)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin branch delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM branch_products WHERE branch_id = ?`, id); err != nil {
		r.logger.Database().Error("Branch assignment delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete branch assignments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM branches WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Branch delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit branch delete: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Branch delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery("DELETE branch", duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

func replaceAssignmentEdges(tx *sql.Tx, branchID string, products []catalog.AssignedProduct) error {
	if _, err := tx.Exec(`DELETE FROM branch_products WHERE branch_id = ?`, branchID); err != nil {
		return fmt.Errorf("failed to clear branch assignments: %w", err)
	}
	for _, p := range products {
		if _, err := tx.Exec(`INSERT INTO branch_products (branch_id, product_id, product_name) VALUES (?, ?, ?)`,
			branchID, p.ProductID, p.ProductName); err != nil {
			return fmt.Errorf("failed to insert branch assignment: %w", err)
		}
	}
	return nil
}

func (r *BranchRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM branches ORDER BY name`

	start := time.Now()
	r.logger.Database().Debug("Loading all branch IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query branch IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan branch ID: %w", err)
		}
		ids = append(ids, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded branch IDs from database", "count", len(ids), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return ids, rows.Err()
}

func (r *BranchRepository) loadFromDB(id string) (*catalog.Branch, error) {
	query := `SELECT id, name, address, phone, open_time, close_time, street_id FROM branches WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading branch from database", "id", id)

	row := r.db.QueryRow(query, id)

	var branch catalog.Branch
	err := row.Scan(&branch.ID, &branch.Name, &branch.Address, &branch.Phone,
		&branch.OpenTime, &branch.CloseTime, &branch.StreetID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan branch", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan branch: %w", err)
	}

	products, err := r.loadAssignments(id)
	if err != nil {
		return nil, err
	}
	branch.Products = products

	duration := time.Since(start)
	r.logger.Database().Info("Branch loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return &branch, nil
}

func (r *BranchRepository) loadAssignments(branchID string) ([]catalog.AssignedProduct, error) {
	rows, err := r.db.Query(`SELECT product_id, product_name FROM branch_products WHERE branch_id = ? ORDER BY product_name`, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query branch assignments: %w", err)
	}
	defer rows.Close()

	products := []catalog.AssignedProduct{}
	for rows.Next() {
		var p catalog.AssignedProduct
		if err := rows.Scan(&p.ProductID, &p.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan branch assignment: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
