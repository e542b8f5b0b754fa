package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"assetdesk/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProfileModel{},
		&models.EquipmentModel{},
		&models.EditHistoryModel{},
		&models.ComputerDetailModel{},
		&models.WorkOrderModel{},
		&models.OrderHistoryModel{},
		&models.ItConfigModel{},
		&models.CaptchaMetaModel{},
		&models.EmailHistoryModel{},
		&models.PatrolMetaModel{},
		&models.PatrolDetailModel{},
		&models.DepartmentMetaModel{},
		&models.DepartmentRelationModel{},
		&models.DepartmentContactModel{},
	)
	require.NoError(t, err)

	return db
}
