// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"fmt"

	"github.com/go-arcade/platform-settings/pkg/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// Manager owns the relational database connection used by the repositories
type Manager interface {
	DB() *gorm.DB
	Close() error
}

type manager struct {
	db *gorm.DB
}

func (m *manager) DB() *gorm.DB {
	return m.db
}

func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB handle: %w", err)
	}
	return sqlDB.Close()
}

// NewManagerFromDB wraps an already opened connection, used by tests and tools
func NewManagerFromDB(db *gorm.DB) Manager {
	return &manager{db: db}
}

// NewManager opens the connection selected by cfg.Driver. Configured replicas
// are registered with dbresolver so ReadDB statements are spread across them.
func NewManager(cfg Database) (Manager, error) {
	primary, replicas, err := cfg.dialectors()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(primary, GormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if len(replicas) > 0 {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas:          replicas,
			Policy:            dbresolver.RandomPolicy{},
			TraceResolverMode: cfg.OutPut,
		}).
			SetMaxOpenConns(cfg.MaxOpenConns).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetConnMaxLifetime(cfg.connMaxLifetime()).
			SetConnMaxIdleTime(cfg.connMaxIdleTime())
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register dbresolver: %w", err)
		}
	}

	if err := configurePool(db, cfg); err != nil {
		return nil, err
	}

	log.Infow("database connected", "driver", cfg.Driver, "replicas", len(replicas))
	return &manager{db: db}, nil
}

func (d Database) dialectors() (gorm.Dialector, []gorm.Dialector, error) {
	switch d.Driver {
	case DriverMySQL, "":
		replicas, err := replicaDialectors(d.MySQL.Replicas, "3306", func(s Source) gorm.Dialector {
			return mysql.Open(mysqlDSN(s))
		})
		return mysql.Open(mysqlDSN(d.MySQL.primary())), replicas, err
	case DriverPostgres:
		pg := d.Postgres
		replicas, err := replicaDialectors(pg.Replicas, "5432", func(s Source) gorm.Dialector {
			return postgres.Open(postgresDSN(s, pg.SSLMode, pg.TimeZone))
		})
		return postgres.Open(postgresDSN(pg.primary(), pg.SSLMode, pg.TimeZone)), replicas, err
	case DriverSQLite:
		return sqlite.Open(d.SQLite.Path), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", d.Driver)
	}
}

func replicaDialectors(sources []Source, defPort string, open func(Source) gorm.Dialector) ([]gorm.Dialector, error) {
	var out []gorm.Dialector
	for _, s := range sources {
		if err := s.validate(); err != nil {
			return nil, err
		}
		out = append(out, open(s.withPort(defPort)))
	}
	return out, nil
}

// GormConfig builds the gorm configuration shared by every driver
func GormConfig(cfg Database) *gorm.Config {
	var gormLogger gormlogger.Interface = gormlogger.Discard
	if cfg.OutPut {
		gormLogger = NewGormLoggerAdapter(gormlogger.Info, cfg.slowThreshold())
	}
	return &gorm.Config{
		Logger: gormLogger,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
	}
}

func configurePool(db *gorm.DB, cfg Database) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.connMaxLifetime())
	sqlDB.SetConnMaxIdleTime(cfg.connMaxIdleTime())

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return nil
}
