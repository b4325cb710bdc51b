// Package catalog provides the sqlite-backed repositories for the directory
// store, following a cache-first strategy: reads consult the in-memory
// catalog cache before the database, writes go to the database first and the
// cache is updated only after success.
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

type RegionRepository struct {
	db     *sql.DB
	cache  interfaces.CatalogCache
	logger *logging.ChanneledLogger
}

func NewRegionRepository(db *sql.DB, cache interfaces.CatalogCache, logger *logging.ChanneledLogger) *RegionRepository {
	return &RegionRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *RegionRepository) FindByID(id string) (*catalog.Region, error) {
	if region, found := r.cache.GetRegion(id); found {
		return region, nil
	}

	region, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, nil
	}

	r.cache.SetRegion(region)
	return region, nil
}

// FindAll retrieves all regions, employing a cache-first strategy over the
// master ID list.
func (r *RegionRepository) FindAll() ([]*catalog.Region, error) {
	if ids, found := r.cache.GetAllRegionIDs(); found {
		return r.findByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*catalog.Region{}, nil
	}

	r.cache.SetAllRegionIDs(ids)
	return r.findByIDs(ids)
}

func (r *RegionRepository) findByIDs(ids []string) ([]*catalog.Region, error) {
	var result []*catalog.Region
	for _, id := range ids {
		region, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if region != nil {
			result = append(result, region)
		}
	}
	return result, nil
}

func (r *RegionRepository) Store(region *catalog.Region) error {
	query := `INSERT INTO regions (id, name, notes) VALUES (?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing region insert", "id", region.ID)

	_, err := r.db.Exec(query, region.ID, region.Name, region.Notes)
	if err != nil {
		r.logger.Database().Error("Region insert failed", "error", err.Error(), "id", region.ID)
		return fmt.Errorf("failed to insert region: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Region insert completed", "id", region.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

func (r *RegionRepository) Update(region *catalog.Region) error {
	query := `UPDATE regions SET name = ?, notes = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing region update", "id", region.ID)

	_, err := r.db.Exec(query, region.Name, region.Notes, region.ID)
	if err != nil {
		r.logger.Database().Error("Region update failed", "error", err.Error(), "id", region.ID)
		return fmt.Errorf("failed to update region: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Region update completed", "id", region.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

// Delete removes the region and unassigns its streets in one transaction.
func (r *RegionRepository) Delete(id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing region delete", "id", id)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin region delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE streets SET region_id = NULL WHERE region_id = ?`, id); err != nil {
		r.logger.Database().Error("Region street unassign failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to unassign streets of region: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM regions WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Region delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete region: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit region delete: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Region delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery("DELETE region", duration)
	}
	r.cache.InvalidateCatalog()
	return nil
}

func (r *RegionRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM regions ORDER BY name`

	start := time.Now()
	r.logger.Database().Debug("Loading all region IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query region IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan region ID: %w", err)
		}
		ids = append(ids, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded region IDs from database", "count", len(ids), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return ids, rows.Err()
}

func (r *RegionRepository) loadFromDB(id string) (*catalog.Region, error) {
	query := `SELECT id, name, notes FROM regions WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading region from database", "id", id)

	row := r.db.QueryRow(query, id)

	var region catalog.Region
	err := row.Scan(&region.ID, &region.Name, &region.Notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan region", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan region: %w", err)
	}

	// StreetIDs is rebuilt from the authoritative street.region_id side so
	// a drifted denormalized list can never survive a reload.
	streetIDs, err := r.loadStreetIDs(id)
	if err != nil {
		return nil, err
	}
	region.StreetIDs = streetIDs

	duration := time.Since(start)
	r.logger.Database().Info("Region loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return &region, nil
}

func (r *RegionRepository) loadStreetIDs(regionID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM streets WHERE region_id = ? ORDER BY name`, regionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query streets of region: %w", err)
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
	return ids, rows.Err()
}
