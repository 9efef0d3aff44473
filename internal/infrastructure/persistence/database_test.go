package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase backs Database tests with sqlmock so no Postgres is needed
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestDatabase_WithLocation(t *testing.T) {
	t.Run("scopes queries to the property", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		locationID := "550e8400-e29b-41d4-a716-446655440000"

		type Room struct {
			ID         uint
			LocationID string
			Name       string
		}

		mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE location_id = \$1`).
			WithArgs(locationID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "location_id", "name"}).
				AddRow(1, locationID, "101-A"))

		var rooms []Room
		require.NoError(t, db.WithLocation(locationID).Find(&rooms).Error)
		require.Len(t, rooms, 1)
		assert.Equal(t, locationID, rooms[0].LocationID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not mutate the shared handle", func(t *testing.T) {
		db, _, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		scoped := db.WithLocation("pg-koramangala")

		assert.NotEqual(t, db.DB, scoped)
	})

	t.Run("panics on empty location ID", func(t *testing.T) {
		db, _, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		assert.Panics(t, func() {
			db.WithLocation("")
		})
	})

	t.Run("location ID is parameterized, never interpolated", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		locationID := "location'; DROP TABLE rooms; --"

		type Room struct {
			ID         uint
			LocationID string
		}

		mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE location_id = \$1`).
			WithArgs(locationID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "location_id"}))

		var rooms []Room
		require.NoError(t, db.WithLocation(locationID).Find(&rooms).Error)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("chains with further conditions and ordering", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		locationID := "pg-hsr-layout"

		type Tenant struct {
			ID         uint
			LocationID string
			Name       string
			Active     bool
		}

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE location_id = \$1 AND active = \$2 ORDER BY name ASC`).
			WithArgs(locationID, true).
			WillReturnRows(sqlmock.NewRows([]string{"id", "location_id", "name", "active"}).
				AddRow(1, locationID, "Asha", true).
				AddRow(2, locationID, "Ravi", true))

		var tenants []Tenant
		err := db.WithLocation(locationID).
			Where("active = ?", true).
			Order("name ASC").
			Find(&tenants).Error
		require.NoError(t, err)
		require.Len(t, tenants, 2)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("chains with pagination", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		locationID := "pg-koramangala"

		type CurrentBill struct {
			ID         uint
			LocationID string
		}

		mock.ExpectQuery(`SELECT \* FROM "current_bills" WHERE location_id = \$1 LIMIT \$2 OFFSET \$3`).
			WithArgs(locationID, 10, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "location_id"}).
				AddRow(6, locationID))

		var bills []CurrentBill
		require.NoError(t, db.WithLocation(locationID).Limit(10).Offset(5).Find(&bills).Error)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("properties get isolated scopes", func(t *testing.T) {
		db, _, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		first := db.WithLocation("pg-koramangala")
		second := db.WithLocation("pg-hsr-layout")

		assert.NotEqual(t, first, second)
	})
}

func TestDatabase_Ping(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	// GORM may ping while opening.
	mock.ExpectPing()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	db := &Database{DB: gormDB}

	mock.ExpectPing()
	assert.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
