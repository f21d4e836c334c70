// database/migrate.go
package database

import (
	"lumber-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.SupplierLocation{},
		&models.LumberLoad{},
		&models.LoadItem{},
		&models.Pack{},
		&models.PackSplitToken{},
	)
	if err != nil {
		return err
	}
	return CreateLoadPackProgressView(db)
}

// CreateLoadPackProgressView builds the maintenance view that aggregates
// pack completion counts per load. The boolean predicate differs per
// dialect, so the statement is assembled per driver.
func CreateLoadPackProgressView(db *gorm.DB) error {
	finished := "p.is_finished"
	if db.Dialector.Name() == "sqlserver" {
		finished = "p.is_finished = 1"
	}

	if err := db.Exec("DROP VIEW IF EXISTS load_pack_progress").Error; err != nil {
		return err
	}

	sql := `CREATE VIEW load_pack_progress AS
		SELECT p.load_id,
			COUNT(*) AS total_packs,
			SUM(CASE WHEN ` + finished + ` THEN 1 ELSE 0 END) AS finished_packs,
			SUM(p.tally_board_feet) AS total_tally_board_feet,
			SUM(p.actual_board_feet) AS total_actual_board_feet
		FROM packs p
		WHERE p.deleted_at IS NULL
		GROUP BY p.load_id`

	return db.Exec(sql).Error
}
