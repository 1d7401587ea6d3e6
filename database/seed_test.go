package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger("warn")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestSeedSampleDataIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedSampleData(db))
	require.NoError(t, SeedSampleData(db))

	var tables, shifts int64
	require.NoError(t, db.Model(&models.Table{}).Count(&tables).Error)
	require.NoError(t, db.Model(&models.Shift{}).Count(&shifts).Error)
	assert.EqualValues(t, len(sampleTables), tables)
	assert.EqualValues(t, len(sampleShifts), shifts)
}

func TestSeedKeepsExistingTables(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&models.Table{Name: "Counter", Capacity: 1, Status: models.TableStatusActive}).Error)

	require.NoError(t, SeedSampleData(db))

	var tables []models.Table
	require.NoError(t, db.Find(&tables).Error)
	require.Len(t, tables, 1)
	assert.Equal(t, "Counter", tables[0].Name)

	var shifts int64
	require.NoError(t, db.Model(&models.Shift{}).Count(&shifts).Error)
	assert.EqualValues(t, len(sampleShifts), shifts)
}
