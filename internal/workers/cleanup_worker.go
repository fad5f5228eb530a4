package workers

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/logger"
)

// tableForResource maps an image directory segment to the table that
// owns it. Directories for unknown segments are left alone.
var tableForResource = map[string]string{
	"applications": "applications",
	"technologies": "technologies",
	"experiences":  "experiences",
	"users":        "users",
}

// CleanupWorker sweeps the upload tree for image directories whose
// owning row was deleted while the file delete failed or the process
// died in between.
type CleanupWorker struct {
	db       *gorm.DB
	basePath string
	interval time.Duration
}

func NewCleanupWorker(db *gorm.DB, basePath string, interval time.Duration) *CleanupWorker {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &CleanupWorker{db: db, basePath: basePath, interval: interval}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			removed, err := w.Sweep(ctx)
			if err != nil {
				logger.Error("orphan sweep failed", "error", err)
			} else if removed > 0 {
				logger.Info("removed orphaned image directories", "count", removed)
			}
		}
	}
}

// Sweep walks basePath/<username>/<resourceType>/<resourceID> and
// removes resource directories with no matching row. It returns the
// number of directories removed.
func (w *CleanupWorker) Sweep(ctx context.Context) (int, error) {
	owners, err := os.ReadDir(w.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, owner := range owners {
		if !owner.IsDir() {
			continue
		}
		ownerDir := filepath.Join(w.basePath, owner.Name())

		resources, err := os.ReadDir(ownerDir)
		if err != nil {
			continue
		}
		for _, resource := range resources {
			table, ok := tableForResource[resource.Name()]
			if !ok || !resource.IsDir() {
				continue
			}
			resourceDir := filepath.Join(ownerDir, resource.Name())

			ids, err := os.ReadDir(resourceDir)
			if err != nil {
				continue
			}
			for _, id := range ids {
				if !id.IsDir() {
					continue
				}
				if err := ctx.Err(); err != nil {
					return removed, err
				}

				var count int64
				err := w.db.WithContext(ctx).Table(table).Where("id = ?", id.Name()).Count(&count).Error
				if err != nil {
					return removed, err
				}
				if count > 0 {
					continue
				}

				orphan := filepath.Join(resourceDir, id.Name())
				if err := os.RemoveAll(orphan); err != nil {
					logger.Warn("failed to remove orphaned directory", "path", orphan, "error", err)
					continue
				}
				removed++
			}
		}
	}
	return removed, nil
}
