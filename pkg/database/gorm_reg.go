package database

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

var (
	modelsMu sync.Mutex
	models   []any
)

// RegisterModels adds models to the migration set. Model packages call it from init.
func RegisterModels(m ...any) {
	modelsMu.Lock()
	defer modelsMu.Unlock()
	models = append(models, m...)
}

// AutoMigrate creates or alters the tables of every registered model.
func AutoMigrate(db *gorm.DB) error {
	modelsMu.Lock()
	pending := append([]any(nil), models...)
	modelsMu.Unlock()
	if len(pending) == 0 {
		return fmt.Errorf("no models registered")
	}
	return db.AutoMigrate(pending...)
}
