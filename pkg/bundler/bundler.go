// Package bundler stores resolved programs in a SQLite bundle.
package bundler

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/common"
	"github.com/spicery/lox-resolver/pkg/diagnostic"
	"github.com/spicery/lox-resolver/pkg/resolver"
)

// Bundler handles the bundling process.
type Bundler struct {
	db *gorm.DB
}

// NewBundler opens (creating if needed) the bundle at dbPath.
func NewBundler(dbPath string) (*Bundler, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Bundler{db: db}, nil
}

func (b *Bundler) Migrate() error {
	return Migrate(b.db)
}

func (b *Bundler) CheckMigration() (bool, error) {
	return CheckMigration(b.db)
}

func (b *Bundler) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ProcessProgram replaces everything stored for fileName with the given
// source, resolutions and diagnostics.
func (b *Bundler) ProcessProgram(fileName, source string, program ast.Program, bindings resolver.Bindings, diags []diagnostic.Diagnostic) error {
	resolutions := collectResolutions(fileName, program, bindings)
	return b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_name = ?", fileName).Delete(&Resolution{}).Error; err != nil {
			return fmt.Errorf("failed to clear resolutions: %w", err)
		}
		if err := tx.Where("file_name = ?", fileName).Delete(&Diagnostic{}).Error; err != nil {
			return fmt.Errorf("failed to clear diagnostics: %w", err)
		}
		if err := tx.Save(&SourceFile{FileName: fileName, Contents: source}).Error; err != nil {
			return fmt.Errorf("failed to store source file: %w", err)
		}
		if len(resolutions) > 0 {
			if err := tx.CreateInBatches(resolutions, 100).Error; err != nil {
				return fmt.Errorf("failed to store resolutions: %w", err)
			}
		}
		for i, d := range diags {
			row := &Diagnostic{
				FileName: fileName,
				Seq:      i,
				Line:     d.Span.StartLine,
				Column:   d.Span.StartColumn,
				Where:    d.Where,
				Message:  d.Message,
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to store diagnostic: %w", err)
			}
		}
		return nil
	})
}

// Resolutions returns the stored resolutions of a file in source order.
func (b *Bundler) Resolutions(fileName string) ([]Resolution, error) {
	var rows []Resolution
	err := b.db.Where("file_name = ?", fileName).Order("seq").Find(&rows).Error
	return rows, err
}

// Diagnostics returns the stored diagnostics of a file in report order.
func (b *Bundler) Diagnostics(fileName string) ([]Diagnostic, error) {
	var rows []Diagnostic
	err := b.db.Where("file_name = ?", fileName).Order("seq").Find(&rows).Error
	return rows, err
}

// collectResolutions lists every reference in the program, in the order the
// tree writer visits them.
func collectResolutions(fileName string, program ast.Program, bindings resolver.Bindings) []*Resolution {
	rows := []*Resolution{}
	ast.ToNode(program, func(expr ast.Expr, node *common.Node) {
		var name string
		switch e := expr.(type) {
		case *ast.Variable:
			name = e.Name.Text
		case *ast.Assign:
			name = e.Name.Text
		case *ast.This:
			name = e.Keyword.Text
		case *ast.Super:
			name = e.Keyword.Text
		default:
			return
		}
		depth, resolved := bindings.Distance(expr)
		span := expr.Span()
		rows = append(rows, &Resolution{
			FileName: fileName,
			Seq:      len(rows),
			Name:     name,
			Kind:     node.Name,
			Line:     span.StartLine,
			Column:   span.StartColumn,
			Depth:    depth,
			Global:   !resolved,
		})
	})
	return rows
}
