package controllers

import (
	"fmt"

	"lumber-app/models"
	"lumber-app/repositories"
	"lumber-app/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MaintenanceController holds the out-of-band repair passes. Repairs are
// explicit operator actions, never run automatically.
type MaintenanceController struct {
	DB *gorm.DB
}

func NewMaintenanceController(DB *gorm.DB) *MaintenanceController {
	return &MaintenanceController{DB: DB}
}

type DuplicatePackGroup struct {
	LoadId   int64  `json:"load_id,string"`
	PackCode string `json:"pack_code"`
	Count    int    `json:"count"`
}

type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

const duplicateGroupSQL = `
	SELECT load_id, pack_code, COUNT(*) AS count
	FROM packs
	WHERE deleted_at IS NULL
	GROUP BY load_id, pack_code
	HAVING COUNT(*) > 1`

const orphanItemWhere = `deleted_at IS NULL AND NOT EXISTS (
	SELECT 1 FROM lumber_loads l
	WHERE l.id = load_items.load_id AND l.deleted_at IS NULL)`

const orphanPackWhere = `deleted_at IS NULL AND NOT EXISTS (
	SELECT 1 FROM load_items i
	WHERE i.id = packs.item_id AND i.deleted_at IS NULL)`

// GetIntegrityReport is the read-only diagnostic: row counts, duplicate pack
// groups and orphan counts. Nothing is mutated. Duplicates block migration,
// orphans only warn.
func (c *MaintenanceController) GetIntegrityReport(ctx *fiber.Ctx) error {
	tables := []TableCount{}
	subsystemTables := []struct {
		name  string
		model interface{}
	}{
		{"lumber_loads", &models.LumberLoad{}},
		{"load_items", &models.LoadItem{}},
		{"packs", &models.Pack{}},
		{"pack_split_tokens", &models.PackSplitToken{}},
	}
	for _, t := range subsystemTables {
		var count int64
		if err := c.DB.Model(t.model).Count(&count).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		tables = append(tables, TableCount{Table: t.name, Rows: count})
	}

	var groups []DuplicatePackGroup
	if err := c.DB.Raw(duplicateGroupSQL).Scan(&groups).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if groups == nil {
		groups = []DuplicatePackGroup{}
	}

	var orphanItems, orphanPacks int64
	if err := c.DB.Model(&models.LoadItem{}).Where(orphanItemWhere).Count(&orphanItems).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Model(&models.Pack{}).Where(orphanPackWhere).Count(&orphanPacks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	warnings := []string{}
	if orphanItems > 0 {
		warnings = append(warnings, fmt.Sprintf("%d load items have no owning load", orphanItems))
	}
	if orphanPacks > 0 {
		warnings = append(warnings, fmt.Sprintf("%d packs have no owning item", orphanPacks))
	}

	status := "Clean"
	if len(groups) > 0 || len(warnings) > 0 {
		status = "IntegrityViolation"
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Integrity scan complete",
		"data": fiber.Map{
			"status":           status,
			"tables":           tables,
			"duplicate_groups": groups,
			"orphan_items":     orphanItems,
			"orphan_packs":     orphanPacks,
			"safe_to_migrate":  len(groups) == 0,
			"warnings":         warnings,
		},
	})
}

type DeletedPackRow struct {
	ID       uint   `json:"id"`
	LoadId   int64  `json:"load_id,string"`
	PackCode string `json:"pack_code"`
}

// RepairDuplicatePacks keeps the earliest-created pack of every duplicate
// (load, pack_code) group and deletes the rest. Destructive and not
// reversible; every removed row is reported. Running it again right after
// is a no-op.
func (c *MaintenanceController) RepairDuplicatePacks(ctx *fiber.Ctx) error {
	if _, ok := currentUserID(ctx); !ok {
		return unauthorized(ctx)
	}

	var groups []DuplicatePackGroup
	if err := c.DB.Raw(duplicateGroupSQL).Scan(&groups).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	deleted := []DeletedPackRow{}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	touchedLoads := map[types.SnowflakeID]bool{}
	for _, group := range groups {
		var packs []models.Pack
		err := tx.Where("load_id = ? AND pack_code = ?", group.LoadId, group.PackCode).
			Order("created_at ASC, id ASC").Find(&packs).Error
		if err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if len(packs) < 2 {
			continue
		}
		for _, pack := range packs[1:] {
			if err := tx.Unscoped().Delete(&pack).Error; err != nil {
				tx.Rollback()
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
			deleted = append(deleted, DeletedPackRow{ID: pack.ID, LoadId: int64(pack.LoadId), PackCode: pack.PackCode})
		}
		touchedLoads[packs[0].LoadId] = true
	}

	for loadId := range touchedLoads {
		if err := repositories.RecomputeLoadStageFlags(tx, loadId); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Duplicate repair removed %d packs", len(deleted)),
		"data": fiber.Map{
			"groups_found":  len(groups),
			"deleted_count": len(deleted),
			"deleted":       deleted,
		},
	})
}

// RepairOrphans deletes load items whose load is gone, then packs whose item
// is gone. Items must go first: pack orphan detection depends on item
// existence. The two tables are repaired best-effort and reported
// independently.
func (c *MaintenanceController) RepairOrphans(ctx *fiber.Ctx) error {
	if _, ok := currentUserID(ctx); !ok {
		return unauthorized(ctx)
	}

	report := []fiber.Map{}

	itemResult := c.DB.Exec(`DELETE FROM load_items WHERE NOT EXISTS (
		SELECT 1 FROM lumber_loads l
		WHERE l.id = load_items.load_id AND l.deleted_at IS NULL)`)
	entry := fiber.Map{"table": "load_items", "deleted": itemResult.RowsAffected}
	if itemResult.Error != nil {
		entry["error"] = itemResult.Error.Error()
	}
	report = append(report, entry)

	packResult := c.DB.Exec(`DELETE FROM packs WHERE NOT EXISTS (
		SELECT 1 FROM load_items i
		WHERE i.id = packs.item_id AND i.deleted_at IS NULL)`)
	entry = fiber.Map{"table": "packs", "deleted": packResult.RowsAffected}
	if packResult.Error != nil {
		entry["error"] = packResult.Error.Error()
	}
	report = append(report, entry)

	success := itemResult.Error == nil && packResult.Error == nil
	repaired := 0
	for _, e := range report {
		if _, failed := e["error"]; !failed {
			repaired++
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": success,
		"message": fmt.Sprintf("Orphan repair completed on %d of %d tables", repaired, len(report)),
		"data":    report,
	})
}
