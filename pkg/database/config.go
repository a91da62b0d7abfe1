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
	"time"
)

const (
	dataTablePrefix = "t_"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Source addresses one database server.
type Source struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func (s Source) validate() error {
	if s.Host == "" || s.User == "" || s.DBName == "" {
		return fmt.Errorf("database source %q: host, user and dbname are required", s.Host)
	}
	return nil
}

func (s Source) withPort(def string) Source {
	if s.Port == "" {
		s.Port = def
	}
	return s
}

// MySQLConfig is the primary server plus optional read replicas.
// With no replicas every statement goes to the primary.
type MySQLConfig struct {
	Host     string   `mapstructure:"host"`
	Port     string   `mapstructure:"port"`
	User     string   `mapstructure:"user"`
	Password string   `mapstructure:"password"`
	DBName   string   `mapstructure:"dbname"`
	Replicas []Source `mapstructure:"replicas"`
}

func (c MySQLConfig) primary() Source {
	return Source{Host: c.Host, Port: c.Port, User: c.User, Password: c.Password, DBName: c.DBName}.withPort("3306")
}

type PostgresConfig struct {
	Host     string   `mapstructure:"host"`
	Port     string   `mapstructure:"port"`
	User     string   `mapstructure:"user"`
	Password string   `mapstructure:"password"`
	DBName   string   `mapstructure:"dbname"`
	SSLMode  string   `mapstructure:"sslmode"`
	TimeZone string   `mapstructure:"timezone"`
	Replicas []Source `mapstructure:"replicas"`
}

func (c PostgresConfig) primary() Source {
	return Source{Host: c.Host, Port: c.Port, User: c.User, Password: c.Password, DBName: c.DBName}.withPort("5432")
}

// SQLiteConfig represents a local SQLite file, mostly for development
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// Database selects a driver and carries the pool settings shared by all of them.
// Durations are integers: seconds for the pool, milliseconds for SlowThreshold.
type Database struct {
	Driver        string         `mapstructure:"driver"`
	OutPut        bool           `mapstructure:"output"`
	MaxOpenConns  int            `mapstructure:"maxOpenConns"`
	MaxIdleConns  int            `mapstructure:"maxIdleConns"`
	MaxLifetime   int            `mapstructure:"maxLifeTime"`
	MaxIdleTime   int            `mapstructure:"maxIdleTime"`
	SlowThreshold int            `mapstructure:"slowThreshold"`
	MySQL         MySQLConfig    `mapstructure:"mysql"`
	Postgres      PostgresConfig `mapstructure:"postgres"`
	SQLite        SQLiteConfig   `mapstructure:"sqlite"`
}

// SetDefaults fills pool and driver defaults
func (d *Database) SetDefaults() {
	if d.Driver == "" {
		d.Driver = DriverMySQL
	}
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = 20
	}
	if d.MaxIdleConns <= 0 {
		d.MaxIdleConns = 5
	}
	if d.SQLite.Path == "" {
		d.SQLite.Path = "platform.db"
	}
}

func (d Database) connMaxLifetime() time.Duration {
	return durationOr(d.MaxLifetime, time.Second, 5*time.Minute)
}

func (d Database) connMaxIdleTime() time.Duration {
	return durationOr(d.MaxIdleTime, time.Second, time.Minute)
}

func (d Database) slowThreshold() time.Duration {
	return durationOr(d.SlowThreshold, time.Millisecond, time.Second)
}

func durationOr(n int, unit, def time.Duration) time.Duration {
	if n > 0 {
		return time.Duration(n) * unit
	}
	return def
}

func mysqlDSN(s Source) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		s.User, s.Password, s.Host, s.Port, s.DBName)
}

// postgresDSN builds a libpq keyword/value DSN
func postgresDSN(s Source, sslMode, timeZone string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		s.Host, s.User, s.Password, s.DBName, s.Port, sslMode)
	if timeZone != "" {
		dsn += " TimeZone=" + timeZone
	}
	return dsn
}
