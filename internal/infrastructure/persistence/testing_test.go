package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/societyhub/backend/internal/domain/shared/valueobject"
	"github.com/societyhub/backend/internal/domain/society"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedSociety(t *testing.T, db *gorm.DB) *society.Society {
	t.Helper()

	soc, err := society.NewSociety(
		"Green Meadows", "12 Outer Ring Road", "Bengaluru", "Karnataka", "560066",
		48, valueobject.NewMoneyINRFromFloat(1500),
	)
	require.NoError(t, err)
	require.NoError(t, db.Create(SocietyModelFromEntity(soc)).Error)
	return soc
}

func seedFlat(t *testing.T, db *gorm.DB, societyID uuid.UUID, number string) *society.Flat {
	t.Helper()

	flat, err := society.NewFlat(societyID, number, nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(FlatModelFromEntity(flat)).Error)
	return flat
}
