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

type StreetRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewStreetRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *StreetRepository {
	return &StreetRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *StreetRepository) FindByID(id string) (*catalog.Street, error) {
	if street, found := r.cache.GetStreet(id); found {
		return street, nil
	}

	street, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if street == nil {
		return nil, nil
	}

	r.cache.SetStreet(street)
	return street, nil
}

func (r *StreetRepository) FindAll() ([]*catalog.Street, error) {
	if ids, found := r.cache.GetAllStreetIDs(); found {
		return r.findByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*catalog.Street{}, nil
	}

	r.cache.SetAllStreetIDs(ids)
	return r.findByIDs(ids)
}

// FindByRegionID retrieves the streets attached to a region, in name order.
func (r *StreetRepository) FindByRegionID(regionID string) ([]*catalog.Street, error) {
	rows, err := r.db.Query(`SELECT id FROM streets WHERE region_id = ? ORDER BY name`, regionID)
	if err != nil {
		r.logger.Database().Error("Failed to query streets by region", "error", err.Error(), "regionId", regionID)
		return nil, fmt.Errorf("failed to query streets by region: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan street ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.findByIDs(ids)
}

func (r *StreetRepository) findByIDs(ids []string) ([]*catalog.Street, error) {
	var result []*catalog.Street
	for _, id := range ids {
		street, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if street != nil {
			result = append(result, street)
		}
	}
	return result, nil
}

func (r *StreetRepository) Store(street *catalog.Street) error {
	query := `INSERT INTO streets (id, name, notes, region_id) VALUES (?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing street insert", "id", street.ID)

	_, err := r.db.Exec(query, street.ID, street.Name, street.Notes, street.RegionID)
	if err != nil {
		r.logger.Database().Error("Street insert failed", "error", err.Error(), "id", street.ID)
		return fmt.Errorf("failed to insert street: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Street insert completed", "id", street.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

func (r *StreetRepository) Update(street *catalog.Street) error {
	query := `UPDATE streets SET name = ?, notes = ?, region_id = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing street update", "id", street.ID)

	_, err := r.db.Exec(query, street.Name, street.Notes, street.RegionID, street.ID)
	if err != nil {
		r.logger.Database().Error("Street update failed", "error", err.Error(), "id", street.ID)
		return fmt.Errorf("failed to update street: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Street update completed", "id", street.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

// Delete removes the street and unassigns its branches in one transaction.
func (r *StreetRepository) Delete(id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing street delete", "id", id)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin street delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE branches SET street_id = NULL WHERE street_id = ?`, id); err != nil {
		r.logger.Database().Error("Street branch unassign failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to unassign branches of street: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM streets WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Street delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete street: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit street delete: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Street delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery("DELETE street", duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

func (r *StreetRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM streets ORDER BY name`

	start := time.Now()
	r.logger.Database().Debug("Loading all street IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query street IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query streets: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan street ID: %w", err)
		}
		ids = append(ids, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded street IDs from database", "count", len(ids), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return ids, rows.Err()
}

func (r *StreetRepository) loadFromDB(id string) (*catalog.Street, error) {
	query := `SELECT id, name, notes, region_id FROM streets WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading street from database", "id", id)

	row := r.db.QueryRow(query, id)

	var street catalog.Street
	err := row.Scan(&street.ID, &street.Name, &street.Notes, &street.RegionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan street", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan street: %w", err)
	}

	branchIDs, err := r.loadBranchIDs(id)
	if err != nil {
		return nil, err
	}
	street.BranchIDs = branchIDs

	duration := time.Since(start)
	r.logger.Database().Info("Street loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return &street, nil
}

func (r *StreetRepository) loadBranchIDs(streetID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM branches WHERE street_id = ? ORDER BY name`, streetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches of street: %w", err)
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
	return ids, rows.Err()
}
