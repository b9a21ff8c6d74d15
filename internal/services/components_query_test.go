package services

import (
	"testing"

	"github.com/localnerve/sitebuilder/internal/database"
	"github.com/localnerve/sitebuilder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func dryRunSQL(t *testing.T, db *gorm.DB) string {
	t.Helper()
	var comps []models.Component
	stmt := orderedQuery(db.Session(&gorm.Session{DryRun: true}), 7).Find(&comps).Statement
	return stmt.SQL.String()
}

func TestOrderedQueryUsesIndexOnMySQL(t *testing.T) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "sitebuilder:secret@tcp(127.0.0.1:3306)/sitebuilder?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	sql := dryRunSQL(t, db)
	assert.Contains(t, sql, "USE INDEX")
	assert.Contains(t, sql, componentOrderIndex)
	assert.Contains(t, sql, "sitebuilder:ordered_components")
	assert.Contains(t, sql, "ORDER BY")
}

func TestOrderedQueryWithoutIndexHintOnSQLite(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	sql := dryRunSQL(t, db)
	assert.NotContains(t, sql, "USE INDEX")
	assert.Contains(t, sql, "sitebuilder:ordered_components")
}
