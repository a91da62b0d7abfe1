package database

import (
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// IDatabase is what repositories depend on. It hides pool ownership so a
// repository can never close the connection.
type IDatabase interface {
	Database() *gorm.DB
}

// NewDatabaseAdapter exposes a Manager as IDatabase.
func NewDatabaseAdapter(m Manager) IDatabase {
	return managerDB{m}
}

type managerDB struct{ Manager }

func (m managerDB) Database() *gorm.DB { return m.DB() }

// ReadDB sends the statement to a replica when replicas are configured.
func ReadDB(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Read)
}

// WriteDB pins the statement to the primary, for reads that must see the latest write.
func WriteDB(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Write)
}
