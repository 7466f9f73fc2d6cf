package bundler

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SourceFile stores the original source file contents.
type SourceFile struct {
	FileName string `gorm:"primaryKey"`
	Contents string
}

// Resolution records how one variable reference was bound.
type Resolution struct {
	FileName string `gorm:"primaryKey;index"`
	Seq      int    `gorm:"primaryKey"`
	Name     string
	Kind     string // variable, assign, this or super
	Line     int
	Column   int `gorm:"column:col"`
	Depth    int
	Global   bool
}

// Diagnostic stores a compile-time error found while resolving a file.
type Diagnostic struct {
	FileName string `gorm:"primaryKey;index"`
	Seq      int    `gorm:"primaryKey"`
	Line     int
	Column   int    `gorm:"column:col"`
	Where    string `gorm:"column:lexeme"`
	Message  string
}

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202610180001",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&SourceFile{},
					&Resolution{},
					&Diagnostic{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&Diagnostic{},
					&Resolution{},
					&SourceFile{},
				)
			},
		},
	}
}

// Migrate performs database migrations using gormigrate.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, getMigrations())
	return m.Migrate()
}

// CheckMigration checks if the database schema is up to date.
func CheckMigration(db *gorm.DB) (bool, error) {
	// A missing migrations table means nothing has been applied yet. The silent
	// logger keeps gorm from warning about it on fresh databases.
	var lastMigration string
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Table(gormigrate.DefaultOptions.TableName).
		Select("id").
		Order("id DESC").
		Limit(1).
		Scan(&lastMigration).Error

	if err != nil {
		return false, nil
	}

	migrations := getMigrations()
	if len(migrations) == 0 {
		return true, nil
	}

	expectedLastID := migrations[len(migrations)-1].ID
	return lastMigration == expectedLastID, nil
}
