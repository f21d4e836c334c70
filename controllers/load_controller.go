package controllers

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"lumber-app/models"
	"lumber-app/repositories"
	"lumber-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// LoadController handles the purchased-load lifecycle.
type LoadController struct {
	DB *gorm.DB
}

func NewLoadController(DB *gorm.DB) *LoadController {
	return &LoadController{DB: DB}
}

// currentUserID pulls the authenticated caller out of the request context.
// Mutations without an identity are rejected as Unauthorized.
func currentUserID(ctx *fiber.Ctx) (int, bool) {
	userID, ok := ctx.Locals("userID").(float64)
	if !ok {
		return 0, false
	}
	return int(userID), true
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Missing caller identity",
	})
}

func paramLoadID(ctx *fiber.Ctx) (types.SnowflakeID, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	return types.SnowflakeID(id), err
}

// isDuplicateKey reports a unique-index violation. The pre-checks catch most
// collisions up front, but a concurrent writer can slip past them and lose
// at the index instead; that loss still has to surface as the structured
// duplicate error, never as a raw driver message.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type LoadItemPayload struct {
	Species     string          `json:"species" validate:"required"`
	Grade       string          `json:"grade" validate:"required"`
	Thickness   string          `json:"thickness" validate:"required"`
	PricePerMbf decimal.Decimal `json:"price_per_mbf"`
	EstFootage  decimal.Decimal `json:"est_footage"`
}

type LoadPayload struct {
	LoadCode       string            `json:"load_code" validate:"required,min=2"`
	SupplierId     uint              `json:"supplier_id" validate:"required"`
	LocationId     uint              `json:"location_id"`
	DeliveryMode   string            `json:"delivery_mode"`
	EstArrivalDate string            `json:"est_arrival_date"`
	Remarks        string            `json:"remarks"`
	Items          []LoadItemPayload `json:"items" validate:"required,min=1,dive"`
}

func (c *LoadController) CreateLoad(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var payload LoadPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var supplier models.Supplier
	if err := c.DB.First(&supplier, payload.SupplierId).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Supplier not found"})
	}

	var existing models.LumberLoad
	if err := c.DB.Where("load_code = ?", payload.LoadCode).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "DuplicateLoadCode",
			"message": "Load code already exists",
			"codes":   []string{payload.LoadCode},
		})
	}

	load := models.LumberLoad{
		LoadCode:       payload.LoadCode,
		SupplierId:     payload.SupplierId,
		LocationId:     payload.LocationId,
		DeliveryMode:   payload.DeliveryMode,
		EstArrivalDate: payload.EstArrivalDate,
		Remarks:        payload.Remarks,
		CreatedBy:      userID,
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&load).Error; err != nil {
		tx.Rollback()
		if isDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "DuplicateLoadCode",
				"message": "Load code already exists",
				"codes":   []string{payload.LoadCode},
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for _, item := range payload.Items {
		loadItem := models.LoadItem{
			LoadId:      load.ID,
			Species:     item.Species,
			Grade:       item.Grade,
			Thickness:   item.Thickness,
			PricePerMbf: item.PricePerMbf,
			EstFootage:  item.EstFootage,
			CreatedBy:   userID,
		}
		if err := tx.Create(&loadItem).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.Preload("Items").First(&load, "id = ?", load.ID)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Load created successfully", "data": load})
}

type BulkLoadEntry struct {
	LoadCode    string          `json:"load_code" validate:"required,min=2"`
	Species     string          `json:"species" validate:"required"`
	Grade       string          `json:"grade" validate:"required"`
	Thickness   string          `json:"thickness" validate:"required"`
	PricePerMbf decimal.Decimal `json:"price_per_mbf"`
	EstFootage  decimal.Decimal `json:"est_footage"`
}

type BulkLoadPayload struct {
	SupplierId     uint            `json:"supplier_id" validate:"required"`
	LocationId     uint            `json:"location_id"`
	DeliveryMode   string          `json:"delivery_mode"`
	EstArrivalDate string          `json:"est_arrival_date"`
	Loads          []BulkLoadEntry `json:"loads" validate:"required,min=1,dive"`
}

// BulkCreateLoads creates a batch of single-item loads sharing supplier and
// delivery fields. The batch is all-or-nothing: one colliding load code,
// inside the batch or against the store, rejects the whole request with
// every colliding code listed.
func (c *LoadController) BulkCreateLoads(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var payload BulkLoadPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var supplier models.Supplier
	if err := c.DB.First(&supplier, payload.SupplierId).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Supplier not found"})
	}

	collidingSet := map[string]bool{}
	seen := map[string]bool{}
	codes := make([]string, 0, len(payload.Loads))
	for _, entry := range payload.Loads {
		if seen[entry.LoadCode] {
			collidingSet[entry.LoadCode] = true
		}
		seen[entry.LoadCode] = true
		codes = append(codes, entry.LoadCode)
	}

	var existing []models.LumberLoad
	if err := c.DB.Where("load_code IN ?", codes).Find(&existing).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	for _, load := range existing {
		collidingSet[load.LoadCode] = true
	}

	if len(collidingSet) > 0 {
		colliding := make([]string, 0, len(collidingSet))
		for code := range collidingSet {
			colliding = append(colliding, code)
		}
		sort.Strings(colliding)
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "DuplicateLoadCode",
			"message": "Duplicate load codes in batch, nothing was created",
			"codes":   colliding,
		})
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	created := make([]models.LumberLoad, 0, len(payload.Loads))
	for _, entry := range payload.Loads {
		load := models.LumberLoad{
			LoadCode:       entry.LoadCode,
			SupplierId:     payload.SupplierId,
			LocationId:     payload.LocationId,
			DeliveryMode:   payload.DeliveryMode,
			EstArrivalDate: payload.EstArrivalDate,
			CreatedBy:      userID,
		}
		if err := tx.Create(&load).Error; err != nil {
			tx.Rollback()
			if isDuplicateKey(err) {
				return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error":   "DuplicateLoadCode",
					"message": "Duplicate load codes in batch, nothing was created",
					"codes":   []string{entry.LoadCode},
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		item := models.LoadItem{
			LoadId:      load.ID,
			Species:     entry.Species,
			Grade:       entry.Grade,
			Thickness:   entry.Thickness,
			PricePerMbf: entry.PricePerMbf,
			EstFootage:  entry.EstFootage,
			CreatedBy:   userID,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		created = append(created, load)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d loads created successfully", len(created)),
		"data":    created,
	})
}

func (c *LoadController) GetAllLoads(ctx *fiber.Ctx) error {
	repo := repositories.NewLoadRepository(c.DB)
	loads, err := repo.ListLoads()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Loads found", "data": loads})
}

func (c *LoadController) GetLoadByID(ctx *fiber.Ctx) error {
	id, err := paramLoadID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var load models.LumberLoad
	if err := c.DB.Preload("Items.Packs").First(&load, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Load not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Load found", "data": load})
}

// loadUpdateAllowList names the fields a partial update may touch. The stage
// flags are derived and never writable through this endpoint.
var loadUpdateAllowList = map[string]bool{
	"load_code":        true,
	"supplier_id":      true,
	"location_id":      true,
	"delivery_mode":    true,
	"est_arrival_date": true,
	"arrival_date":     true,
	"books_entered":    true,
	"paid":             true,
	"remarks":          true,
}

func (c *LoadController) UpdateLoad(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := paramLoadID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var load models.LumberLoad
	if err := c.DB.First(&load, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Load not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var payload map[string]interface{}
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	for field, value := range payload {
		if loadUpdateAllowList[field] {
			updates[field] = value
		}
	}
	if len(updates) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No updatable fields supplied"})
	}

	if newCode, ok := updates["load_code"].(string); ok && newCode != load.LoadCode {
		var other models.LumberLoad
		if err := c.DB.Where("load_code = ? AND id <> ?", newCode, id).First(&other).Error; err == nil {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "DuplicateLoadCode",
				"message": "Load code already exists",
				"codes":   []string{newCode},
			})
		}
	}

	updates["updated_by"] = userID

	if err := c.DB.Model(&load).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.Preload("Items").First(&load, "id = ?", id)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Load updated successfully", "data": load})
}

// DeleteLoad removes the load together with its items and packs in one
// transaction. The load exclusively owns its children.
func (c *LoadController) DeleteLoad(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := paramLoadID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var load models.LumberLoad
	if err := c.DB.First(&load, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Load not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Unscoped().Where("load_id = ?", id).Delete(&models.Pack{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := tx.Unscoped().Where("load_id = ?", id).Delete(&models.LoadItem{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	load.DeletedBy = userID
	if err := tx.Select("deleted_by").Updates(&load).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := tx.Delete(&load).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Load deleted successfully"})
}

// MarkPoGenerated is the callback the purchase-order renderer makes after a
// PO document has been produced for this load.
func (c *LoadController) MarkPoGenerated(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := paramLoadID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var load models.LumberLoad
	if err := c.DB.First(&load, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Load not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"po_generated":    true,
		"po_generated_at": &now,
		"updated_by":      userID,
	}
	if err := c.DB.Model(&load).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order marked generated", "data": load})
}

func (c *LoadController) MarkArrived(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := paramLoadID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var payload struct {
		ArrivalDate string `json:"arrival_date" validate:"required"`
	}
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var load models.LumberLoad
	if err := c.DB.First(&load, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Load not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"arrival_date": payload.ArrivalDate,
		"updated_by":   userID,
	}
	if err := c.DB.Model(&load).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Arrival recorded", "data": load})
}

func (c *LoadController) MarkPaid(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := paramLoadID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var load models.LumberLoad
	if err := c.DB.First(&load, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Load not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"paid":       true,
		"paid_at":    &now,
		"updated_by": userID,
	}
	if err := c.DB.Model(&load).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Load marked paid", "data": load})
}

// upload loads from excel file

type LoadUploadResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

func (c *LoadController) CreateLoadsFromExcel(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".xls") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Only Excel files (.xlsx, .xls) are allowed",
		})
	}

	fileContent, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to open file",
		})
	}
	defer fileContent.Close()

	f, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read Excel file",
		})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No sheets found in Excel file",
		})
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read rows",
		})
	}

	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Excel file must contain header and at least one data row",
		})
	}

	result := LoadUploadResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}

	// Cache for supplier lookups
	supplierCache := make(map[string]uint)

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Columns: LOAD_CODE, SUPPLIER_CODE, SPECIES, GRADE, THICKNESS, EST_FOOTAGE, PRICE_PER_MBF, EST_ARRIVAL
	for i, row := range rows[1:] {
		rowNum := i + 2 // Excel row number (header is row 1)

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		if len(row) < 6 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Insufficient columns (expected at least 6)", rowNum))
			continue
		}

		loadCode := strings.ToUpper(strings.TrimSpace(row[0]))
		supplierCode := strings.ToUpper(strings.TrimSpace(row[1]))
		species := strings.TrimSpace(row[2])
		grade := strings.TrimSpace(row[3])
		thickness := strings.TrimSpace(row[4])
		estFootageStr := strings.TrimSpace(row[5])

		if loadCode == "" || supplierCode == "" || species == "" {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: LOAD_CODE, SUPPLIER_CODE, and SPECIES are required", rowNum))
			continue
		}

		supplierId, cached := supplierCache[supplierCode]
		if !cached {
			var supplier models.Supplier
			if err := tx.Where("supplier_code = ?", supplierCode).First(&supplier).Error; err != nil {
				result.ErrorCount++
				result.ErrorMessages = append(result.ErrorMessages,
					fmt.Sprintf("Row %d: Supplier '%s' not found", rowNum, supplierCode))
				continue
			}
			supplierId = supplier.ID
			supplierCache[supplierCode] = supplierId
		}

		var existingLoad models.LumberLoad
		if err := tx.Where("load_code = ?", loadCode).First(&existingLoad).Error; err == nil {
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, loadCode)
			continue
		}

		estFootage, err := decimal.NewFromString(estFootageStr)
		if err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Invalid EST_FOOTAGE '%s'", rowNum, estFootageStr))
			continue
		}

		pricePerMbf := decimal.Zero
		if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
			pricePerMbf, err = decimal.NewFromString(strings.TrimSpace(row[6]))
			if err != nil {
				result.ErrorCount++
				result.ErrorMessages = append(result.ErrorMessages,
					fmt.Sprintf("Row %d: Invalid PRICE_PER_MBF '%s'", rowNum, row[6]))
				continue
			}
		}

		estArrival := ""
		if len(row) > 7 {
			estArrival = strings.TrimSpace(row[7])
		}

		load := models.LumberLoad{
			LoadCode:       loadCode,
			SupplierId:     supplierId,
			EstArrivalDate: estArrival,
			CreatedBy:      userID,
		}
		if err := tx.Create(&load).Error; err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Failed to create load - %s", rowNum, err.Error()))
			continue
		}

		item := models.LoadItem{
			LoadId:      load.ID,
			Species:     species,
			Grade:       grade,
			Thickness:   thickness,
			PricePerMbf: pricePerMbf,
			EstFootage:  estFootage,
			CreatedBy:   userID,
		}
		if err := tx.Create(&item).Error; err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Failed to create load item - %s", rowNum, err.Error()))
			continue
		}

		result.SuccessCount++
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to commit transaction",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Upload completed: %d success, %d skipped, %d errors",
			result.SuccessCount, result.SkippedCount, result.ErrorCount),
		"data": result,
	})
}

func (c *LoadController) ExportLoads(ctx *fiber.Ctx) error {
	repo := repositories.NewLoadRepository(c.DB)
	loads, err := repo.ListLoads()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"LOAD_CODE", "SUPPLIER", "DELIVERY_MODE", "EST_ARRIVAL", "ARRIVAL",
		"TOTAL_PACKS", "FINISHED_PACKS", "ALL_TALLIED", "ALL_FINISHED"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, load := range loads {
		values := []interface{}{load.LoadCode, load.SupplierName, load.DeliveryMode,
			load.EstArrivalDate, load.ArrivalDate, load.TotalPacks, load.FinishedPacks,
			load.AllPacksTallied, load.AllPacksFinished}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate Excel file"})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="loads.xlsx"`)
	return ctx.SendStream(buf)
}
