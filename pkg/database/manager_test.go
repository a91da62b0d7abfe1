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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

type widget struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string
}

func TestDatabase_SetDefaults(t *testing.T) {
	var d Database
	d.SetDefaults()
	assert.Equal(t, DriverMySQL, d.Driver)
	assert.Equal(t, 20, d.MaxOpenConns)
	assert.Equal(t, 5, d.MaxIdleConns)
	assert.Equal(t, "platform.db", d.SQLite.Path)
}

func TestConnDurations(t *testing.T) {
	var d Database
	assert.Equal(t, 5*time.Minute, d.connMaxLifetime())
	assert.Equal(t, time.Minute, d.connMaxIdleTime())
	assert.Equal(t, time.Second, d.slowThreshold())

	d = Database{MaxLifetime: 10, MaxIdleTime: -1, SlowThreshold: 250}
	assert.Equal(t, 10*time.Second, d.connMaxLifetime())
	assert.Equal(t, time.Minute, d.connMaxIdleTime())
	assert.Equal(t, 250*time.Millisecond, d.slowThreshold())
}

func TestGormLoggerAdapter_LogMode(t *testing.T) {
	l := NewGormLoggerAdapter(gormlogger.Info, time.Second)
	silent := l.LogMode(gormlogger.Silent)

	assert.Equal(t, gormlogger.Info, l.level)
	assert.Equal(t, gormlogger.Silent, silent.(*GormLoggerAdapter).level)

	called := false
	silent.Trace(context.Background(), time.Now(), func() (string, int64) {
		called = true
		return "SELECT 1", 1
	}, nil)
	assert.False(t, called)

	l.Trace(context.Background(), time.Now().Add(-2*time.Second), func() (string, int64) {
		called = true
		return "SELECT 1", 1
	}, errors.New("boom"))
	assert.True(t, called)
}

func TestBuildDSN(t *testing.T) {
	my := MySQLConfig{Host: "db", User: "u", Password: "p", DBName: "platform"}
	assert.Equal(t, "u:p@tcp(db:3306)/platform?charset=utf8mb4&parseTime=True&loc=Local", mysqlDSN(my.primary()))

	pg := PostgresConfig{Host: "pg", User: "u", Password: "p", DBName: "platform", TimeZone: "UTC"}
	assert.Equal(t, "host=pg user=u password=p dbname=platform port=5432 sslmode=disable TimeZone=UTC",
		postgresDSN(pg.primary(), pg.SSLMode, pg.TimeZone))
}

func TestDialectors(t *testing.T) {
	_, replicas, err := Database{Driver: DriverMySQL}.dialectors()
	require.NoError(t, err)
	assert.Empty(t, replicas)

	_, _, err = Database{Driver: DriverMySQL, MySQL: MySQLConfig{Replicas: []Source{{Host: "h"}}}}.dialectors()
	assert.Error(t, err)

	_, replicas, err = Database{Driver: DriverPostgres, Postgres: PostgresConfig{
		Replicas: []Source{{Host: "r1", User: "u", DBName: "db"}, {Host: "r2", User: "u", DBName: "db"}},
	}}.dialectors()
	require.NoError(t, err)
	assert.Len(t, replicas, 2)

	primary, replicas, err := Database{Driver: DriverSQLite, SQLite: SQLiteConfig{Path: "x.db"}}.dialectors()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", primary.Name())
	assert.Nil(t, replicas)
}

func TestNewManager_SQLite(t *testing.T) {
	m, err := NewManager(Database{
		Driver:       DriverSQLite,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		SQLite:       SQLiteConfig{Path: "file:manager_test?mode=memory&cache=shared"},
	})
	require.NoError(t, err)
	defer m.Close()

	db := NewDatabaseAdapter(m).Database()
	require.NoError(t, db.AutoMigrate(&widget{}))
	// table prefix and singular naming
	assert.True(t, db.Migrator().HasTable("t_widget"))

	require.NoError(t, WriteDB(db).Create(&widget{Name: "a"}).Error)
	var got widget
	require.NoError(t, ReadDB(db).First(&got).Error)
	assert.Equal(t, "a", got.Name)
}

func TestNewManager_UnsupportedDriver(t *testing.T) {
	_, err := NewManager(Database{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
