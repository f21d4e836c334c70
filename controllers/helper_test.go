package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"lumber-app/controllers/idgen"
	"lumber-app/database"
	"lumber-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var idgenOnce sync.Once

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	idgenOnce.Do(idgen.Init)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// the in-memory database lives and dies with a single connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	supplier := models.Supplier{SupplierCode: "NHL", SupplierName: "Northern Hardwood Lumber", CreatedBy: 1}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}
	return db
}

// newTestApp wires the controllers behind a stub identity middleware so
// handlers see an authenticated caller without a real token exchange.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	app := fiber.New()
	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("userID", float64(1))
		return ctx.Next()
	})

	loadController := NewLoadController(db)
	packController := NewPackController(db)
	stageController := NewStageController(db)
	maintenanceController := NewMaintenanceController(db)

	app.Post("/loads/bulk", loadController.BulkCreateLoads)
	app.Post("/loads", loadController.CreateLoad)
	app.Get("/loads", loadController.GetAllLoads)
	app.Get("/loads/:id", loadController.GetLoadByID)
	app.Put("/loads/:id", loadController.UpdateLoad)
	app.Delete("/loads/:id", loadController.DeleteLoad)
	app.Post("/loads/:id/po-generated", loadController.MarkPoGenerated)
	app.Post("/loads/:id/arrival", loadController.MarkArrived)
	app.Post("/loads/:id/paid", loadController.MarkPaid)

	app.Post("/packs/item/:id", packController.CreatePacks)
	app.Put("/packs/item/:id/footage", packController.UpdateItemFootage)
	app.Get("/packs/:id", packController.GetPack)
	app.Put("/packs/:id", packController.UpdatePack)
	app.Delete("/packs/:id", packController.DeletePack)
	app.Post("/packs/:id/finish", packController.FinishPack)
	app.Post("/packs/:id/partial-finish", packController.PartialFinishPack)
	app.Post("/packs/:id/reopen", packController.ReopenPack)

	app.Get("/stages/queues/tally-entry", stageController.GetTallyEntryQueue)
	app.Get("/stages/queues/rip-entry", stageController.GetRipEntryQueue)
	app.Get("/stages/queues/inventory-ready", stageController.GetInventoryReadyQueue)
	app.Get("/stages/queues/po-needed", stageController.GetPoNeededQueue)
	app.Get("/stages/queues/paid", stageController.GetPaidQueue)
	app.Get("/stages/loads/:id/explain", stageController.ExplainLoadStages)

	app.Get("/maintenance/integrity", maintenanceController.GetIntegrityReport)
	app.Post("/maintenance/repair/duplicate-packs", maintenanceController.RepairDuplicatePacks)
	app.Post("/maintenance/repair/orphans", maintenanceController.RepairOrphans)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s returned unparseable body: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func dataMap(t *testing.T, out map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := out["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data is not an object: %v", out)
	}
	return data
}

// decField reads a decimal column out of a decoded JSON object; decimals
// marshal as strings but tolerate numeric encoding too.
func decField(t *testing.T, m map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	switch v := m[key].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			t.Fatalf("field %s = %q is not a decimal: %v", key, v, err)
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	default:
		t.Fatalf("field %s has unexpected type %T", key, m[key])
		return decimal.Zero
	}
}

// createTestLoad makes a one-item load through the API and returns the load
// id (snowflake string) and the item id.
func createTestLoad(t *testing.T, app *fiber.App, loadCode string) (string, int) {
	t.Helper()
	status, out := doJSON(t, app, http.MethodPost, "/loads", map[string]interface{}{
		"load_code":   loadCode,
		"supplier_id": 1,
		"items": []map[string]interface{}{
			{"species": "Red Oak", "grade": "FAS", "thickness": "4/4", "est_footage": 5000, "price_per_mbf": 1200},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create load %s = %d, body %v", loadCode, status, out)
	}
	data := dataMap(t, out)
	loadID, ok := data["id"].(string)
	if !ok {
		t.Fatalf("load id missing from %v", data)
	}
	items, ok := data["items"].([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("expected one item on created load, got %v", data["items"])
	}
	itemID := int(items[0].(map[string]interface{})["ID"].(float64))
	return loadID, itemID
}

// createTestPack records one pack under an item and returns its id.
func createTestPack(t *testing.T, app *fiber.App, itemID int, packCode string, tally int) int {
	t.Helper()
	status, out := doJSON(t, app, http.MethodPost, "/packs/item/"+strconv.Itoa(itemID), map[string]interface{}{
		"packs": []map[string]interface{}{
			{"pack_code": packCode, "tally_board_feet": tally, "length": 8},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create pack %s = %d, body %v", packCode, status, out)
	}
	packs, ok := out["data"].([]interface{})
	if !ok || len(packs) != 1 {
		t.Fatalf("expected one created pack, got %v", out["data"])
	}
	return int(packs[0].(map[string]interface{})["ID"].(float64))
}

func parseSnowflake(t *testing.T, id string) int64 {
	t.Helper()
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		t.Fatalf("load id %q is not numeric: %v", id, err)
	}
	return n
}
