package controllers

import (
	"net/http"
	"testing"
	"time"

	"lumber-app/models"
	"lumber-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// seedDuplicatePacks plants two packs with the same (load, pack_code) the way
// legacy imports used to. The composite unique index has to come off first;
// the repair pass exists precisely for rows created before it did.
func seedDuplicatePacks(t *testing.T, db *gorm.DB, loadID int64, itemID int) (keep, drop models.Pack) {
	t.Helper()
	if err := db.Migrator().DropIndex(&models.Pack{}, "uidx_load_pack"); err != nil {
		t.Fatalf("failed to drop unique index: %v", err)
	}

	keep = models.Pack{
		LoadId: types.SnowflakeID(loadID), ItemId: uint(itemID), PackCode: "P-9",
		TallyBoardFeet: decimal.NewFromInt(100), CreatedBy: 1,
	}
	keep.CreatedAt = time.Now().Add(-2 * time.Hour)
	if err := db.Create(&keep).Error; err != nil {
		t.Fatalf("failed to create first duplicate: %v", err)
	}

	drop = models.Pack{
		LoadId: types.SnowflakeID(loadID), ItemId: uint(itemID), PackCode: "P-9",
		TallyBoardFeet: decimal.NewFromInt(120), CreatedBy: 1,
	}
	if err := db.Create(&drop).Error; err != nil {
		t.Fatalf("failed to create second duplicate: %v", err)
	}
	return keep, drop
}

func TestIntegrityReportClean(t *testing.T) {
	app, _ := newTestApp(t)

	createTestLoad(t, app, "R-1001")

	status, out := doJSON(t, app, http.MethodGet, "/maintenance/integrity", nil)
	if status != http.StatusOK {
		t.Fatalf("integrity = %d (%v)", status, out)
	}
	data := dataMap(t, out)
	if data["status"] != "Clean" {
		t.Errorf("status = %v, want Clean", data["status"])
	}
	if data["safe_to_migrate"] != true {
		t.Error("clean store not safe to migrate")
	}
	if groups, _ := data["duplicate_groups"].([]interface{}); len(groups) != 0 {
		t.Errorf("duplicate_groups = %v, want empty", groups)
	}
	tables, _ := data["tables"].([]interface{})
	if len(tables) != 4 {
		t.Errorf("reported %d tables, want 4", len(tables))
	}
}

func TestIntegrityReportFlagsDuplicates(t *testing.T) {
	app, db := newTestApp(t)

	loadID, itemID := createTestLoad(t, app, "R-1001")
	seedDuplicatePacks(t, db, parseSnowflake(t, loadID), itemID)

	status, out := doJSON(t, app, http.MethodGet, "/maintenance/integrity", nil)
	if status != http.StatusOK {
		t.Fatalf("integrity = %d (%v)", status, out)
	}
	data := dataMap(t, out)
	if data["status"] != "IntegrityViolation" {
		t.Errorf("status = %v, want IntegrityViolation", data["status"])
	}
	if data["safe_to_migrate"] != false {
		t.Error("duplicates present but safe_to_migrate is true")
	}
	groups, _ := data["duplicate_groups"].([]interface{})
	if len(groups) != 1 {
		t.Fatalf("duplicate_groups = %v, want one group", groups)
	}
	group := groups[0].(map[string]interface{})
	if group["pack_code"] != "P-9" || group["count"].(float64) != 2 {
		t.Errorf("group = %v, want P-9 x2", group)
	}
}

func TestRepairDuplicatePacksKeepsEarliest(t *testing.T) {
	app, db := newTestApp(t)

	loadID, itemID := createTestLoad(t, app, "R-1001")
	keep, drop := seedDuplicatePacks(t, db, parseSnowflake(t, loadID), itemID)

	status, out := doJSON(t, app, http.MethodPost, "/maintenance/repair/duplicate-packs", nil)
	if status != http.StatusOK {
		t.Fatalf("repair = %d (%v)", status, out)
	}
	data := dataMap(t, out)
	if data["deleted_count"].(float64) != 1 {
		t.Fatalf("deleted_count = %v, want 1", data["deleted_count"])
	}
	deleted := data["deleted"].([]interface{})[0].(map[string]interface{})
	if int(deleted["id"].(float64)) != int(drop.ID) {
		t.Errorf("deleted pack id = %v, want the later row %d", deleted["id"], drop.ID)
	}

	var survivors []models.Pack
	db.Where("pack_code = ?", "P-9").Find(&survivors)
	if len(survivors) != 1 || survivors[0].ID != keep.ID {
		t.Errorf("survivors = %v, want only the earliest row %d", survivors, keep.ID)
	}

	// running the repair again right away is a no-op
	status, out = doJSON(t, app, http.MethodPost, "/maintenance/repair/duplicate-packs", nil)
	if status != http.StatusOK {
		t.Fatalf("second repair = %d (%v)", status, out)
	}
	if data := dataMap(t, out); data["deleted_count"].(float64) != 0 {
		t.Errorf("second repair deleted %v packs, want 0", data["deleted_count"])
	}
}

func TestRepairOrphansItemsBeforePacks(t *testing.T) {
	app, db := newTestApp(t)

	loadID, itemID := createTestLoad(t, app, "R-1001")
	createTestPack(t, app, itemID, "P-1", 500)

	// remove the load out of band, stranding its item and pack
	if err := db.Unscoped().Where("id = ?", parseSnowflake(t, loadID)).
		Delete(&models.LumberLoad{}).Error; err != nil {
		t.Fatalf("failed to strand children: %v", err)
	}

	status, out := doJSON(t, app, http.MethodGet, "/maintenance/integrity", nil)
	if status != http.StatusOK {
		t.Fatalf("integrity = %d (%v)", status, out)
	}
	data := dataMap(t, out)
	if data["orphan_items"].(float64) != 1 {
		t.Errorf("orphan_items = %v, want 1", data["orphan_items"])
	}
	// the pack's item still exists, so only the item counts as orphaned yet
	if data["orphan_packs"].(float64) != 0 {
		t.Errorf("orphan_packs = %v, want 0", data["orphan_packs"])
	}
	if data["safe_to_migrate"] != true {
		t.Error("orphans must warn, not block migration")
	}

	status, out = doJSON(t, app, http.MethodPost, "/maintenance/repair/orphans", nil)
	if status != http.StatusOK {
		t.Fatalf("repair = %d (%v)", status, out)
	}
	report, _ := out["data"].([]interface{})
	if len(report) != 2 {
		t.Fatalf("repair report = %v, want two tables", report)
	}
	items := report[0].(map[string]interface{})
	packs := report[1].(map[string]interface{})
	if items["table"] != "load_items" || items["deleted"].(float64) != 1 {
		t.Errorf("item pass = %v, want 1 deleted load_items row", items)
	}
	// deleting the item in the same pass strands the pack, which the later
	// pack pass must then catch
	if packs["table"] != "packs" || packs["deleted"].(float64) != 1 {
		t.Errorf("pack pass = %v, want 1 deleted packs row", packs)
	}

	var itemCount, packCount int64
	db.Unscoped().Model(&models.LoadItem{}).Count(&itemCount)
	db.Unscoped().Model(&models.Pack{}).Count(&packCount)
	if itemCount != 0 || packCount != 0 {
		t.Errorf("orphans survived repair: %d items, %d packs", itemCount, packCount)
	}
}
