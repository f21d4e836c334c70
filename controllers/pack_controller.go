package controllers

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"lumber-app/models"
	"lumber-app/repositories"
	"lumber-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PackController handles the physical pack lifecycle: tally entry, rip
// finish, partial-finish splits and reopening. A pack can never be moved to
// another load or item; no endpoint accepts those fields.
type PackController struct {
	DB *gorm.DB
}

func NewPackController(DB *gorm.DB) *PackController {
	return &PackController{DB: DB}
}

type PackPayload struct {
	PackCode       string          `json:"pack_code" validate:"required"`
	Length         decimal.Decimal `json:"length"`
	TallyBoardFeet decimal.Decimal `json:"tally_board_feet"`
}

type CreatePacksPayload struct {
	Packs []PackPayload `json:"packs" validate:"required,min=1,dive"`
}

// CreatePacks records one or more packs under a load item at tally time.
func (c *PackController) CreatePacks(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	itemId, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var payload CreatePacksPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var item models.LoadItem
	if err := c.DB.First(&item, itemId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Load item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	collidingSet := map[string]bool{}
	seen := map[string]bool{}
	codes := make([]string, 0, len(payload.Packs))
	for _, p := range payload.Packs {
		if seen[p.PackCode] {
			collidingSet[p.PackCode] = true
		}
		seen[p.PackCode] = true
		codes = append(codes, p.PackCode)
	}

	var existing []models.Pack
	if err := c.DB.Where("load_id = ? AND pack_code IN ?", item.LoadId, codes).Find(&existing).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	for _, p := range existing {
		collidingSet[p.PackCode] = true
	}

	if len(collidingSet) > 0 {
		colliding := make([]string, 0, len(collidingSet))
		for code := range collidingSet {
			colliding = append(colliding, code)
		}
		sort.Strings(colliding)
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":    "DuplicatePackId",
			"message":  "Pack identifier already used within this load",
			"pack_ids": colliding,
		})
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	created := make([]models.Pack, 0, len(payload.Packs))
	for _, p := range payload.Packs {
		pack := models.Pack{
			LoadId:         item.LoadId,
			ItemId:         item.ID,
			PackCode:       p.PackCode,
			Length:         p.Length,
			TallyBoardFeet: p.TallyBoardFeet,
			CreatedBy:      userID,
		}
		if err := tx.Create(&pack).Error; err != nil {
			tx.Rollback()
			if isDuplicateKey(err) {
				return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error":    "DuplicatePackId",
					"message":  "Pack identifier already used within this load",
					"pack_ids": []string{p.PackCode},
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		created = append(created, pack)
	}

	if err := repositories.RecomputeLoadStageFlags(tx, item.LoadId); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d packs created successfully", len(created)),
		"data":    created,
	})
}

func (c *PackController) GetPack(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var pack models.Pack
	if err := c.DB.First(&pack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Pack not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Pack found", "data": pack})
}

// packUpdateAllowList: load_id and item_id are deliberately absent, packs
// represent physical groupings and are never reassigned.
var packUpdateAllowList = map[string]bool{
	"pack_code":         true,
	"length":            true,
	"tally_board_feet":  true,
	"actual_board_feet": true,
	"rip_operator_id":   true,
	"stacker_one_id":    true,
	"stacker_two_id":    true,
	"stacker_three_id":  true,
}

func (c *PackController) UpdatePack(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var pack models.Pack
	if err := c.DB.First(&pack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Pack not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if pack.IsFinished {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "Conflict",
			"message": "Pack is finished and frozen, reopen it before editing",
		})
	}

	var payload map[string]interface{}
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	for field, value := range payload {
		if packUpdateAllowList[field] {
			updates[field] = value
		}
	}
	if len(updates) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No updatable fields supplied"})
	}

	if newCode, ok := updates["pack_code"].(string); ok && newCode != pack.PackCode {
		var other models.Pack
		if err := c.DB.Where("load_id = ? AND pack_code = ? AND id <> ?", pack.LoadId, newCode, pack.ID).First(&other).Error; err == nil {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":    "DuplicatePackId",
				"message":  "Pack identifier already used within this load",
				"pack_ids": []string{newCode},
			})
		}
	}

	updates["updated_by"] = userID
	updates["version"] = pack.Version + 1

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&pack).Updates(updates).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := repositories.RecomputeLoadStageFlags(tx, pack.LoadId); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.First(&pack, id)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Pack updated successfully", "data": pack})
}

type FinishPackPayload struct {
	TallyBoardFeet  decimal.Decimal `json:"tally_board_feet"`
	ActualBoardFeet decimal.Decimal `json:"actual_board_feet"`
	Version         int             `json:"version" validate:"required"`
	RipOperatorId   int             `json:"rip_operator_id"`
	StackerOneId    int             `json:"stacker_one_id"`
	StackerTwoId    int             `json:"stacker_two_id"`
	StackerThreeId  int             `json:"stacker_three_id"`
}

// FinishPack records the full rip of a pack: the whole tallied amount was
// processed and the actual output is final.
func (c *PackController) FinishPack(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var payload FinishPackPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var pack models.Pack
	if err := c.DB.First(&pack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Pack not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if pack.IsFinished {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "Conflict",
			"message": "Pack is already finished",
		})
	}

	if payload.Version != pack.Version {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":           "Conflict",
			"message":         "Pack was modified by someone else, reload and retry",
			"current_version": pack.Version,
		})
	}

	if payload.ActualBoardFeet.LessThanOrEqual(decimal.Zero) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "InvalidSplitAmount",
			"message": "actual board feet must be greater than zero",
		})
	}

	// A pack that was never tallied collapses to its actual output.
	tally := pack.TallyBoardFeet
	if tally.LessThanOrEqual(decimal.Zero) {
		tally = payload.TallyBoardFeet
	}
	if tally.LessThanOrEqual(decimal.Zero) {
		tally = payload.ActualBoardFeet
	}

	yield := payload.ActualBoardFeet.Div(tally).Mul(decimal.NewFromInt(100)).Round(2)
	now := time.Now()

	updates := map[string]interface{}{
		"tally_board_feet":  tally,
		"actual_board_feet": payload.ActualBoardFeet,
		"rip_yield":         yield,
		"is_finished":       true,
		"finished_at":       &now,
		"rip_operator_id":   payload.RipOperatorId,
		"stacker_one_id":    payload.StackerOneId,
		"stacker_two_id":    payload.StackerTwoId,
		"stacker_three_id":  payload.StackerThreeId,
		"version":           pack.Version + 1,
		"updated_by":        userID,
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&pack).Updates(updates).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := repositories.RecomputeLoadStageFlags(tx, pack.LoadId); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.First(&pack, id)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Pack finished successfully", "data": pack})
}

type PartialFinishPayload struct {
	TallyBoardFeet   decimal.Decimal `json:"tally_board_feet"`
	ActualBoardFeet  decimal.Decimal `json:"actual_board_feet"`
	Version          int             `json:"version" validate:"required"`
	IdempotencyToken string          `json:"idempotency_token"`
	RipOperatorId    int             `json:"rip_operator_id"`
	StackerOneId     int             `json:"stacker_one_id"`
	StackerTwoId     int             `json:"stacker_two_id"`
	StackerThreeId   int             `json:"stacker_three_id"`
}

// PartialFinishPack splits a pack that was only partly ripped. The original
// record collapses to the finished portion and a remainder pack is created
// for the uncut rest; their board feet always add back up to the tally the
// split started from. Both writes happen in one transaction.
func (c *PackController) PartialFinishPack(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var payload PartialFinishPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var pack models.Pack
	if err := c.DB.First(&pack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Pack not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Replay: a token that already completed returns the recorded result
	// instead of splitting again.
	token := payload.IdempotencyToken
	if token != "" {
		var done models.PackSplitToken
		if err := c.DB.Where("token = ?", token).First(&done).Error; err == nil {
			// a token belongs to the pack it split; replaying it against
			// another pack is a caller bug, not a retry
			if done.SourcePackId != pack.ID {
				return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error":   "Conflict",
					"message": "Idempotency token was already used for a different pack",
				})
			}
			var source, remainder models.Pack
			c.DB.First(&source, done.SourcePackId)
			c.DB.First(&remainder, done.RemainderPackId)
			return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
				"success":  true,
				"message":  "Split already completed for this token",
				"replayed": true,
				"data":     fiber.Map{"pack": source, "remainder": remainder, "token": token},
			})
		}
	} else {
		token = uuid.New().String()
	}

	if pack.IsFinished {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "Conflict",
			"message": "Pack is already finished",
		})
	}

	if payload.Version != pack.Version {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":           "Conflict",
			"message":         "Pack was modified by someone else, reload and retry",
			"current_version": pack.Version,
		})
	}

	// The stored tally is authoritative; the caller-supplied value only
	// applies when the pack was never persisted with one.
	tally := pack.TallyBoardFeet
	if tally.LessThanOrEqual(decimal.Zero) {
		tally = payload.TallyBoardFeet
	}

	if err := services.ValidateSplitAmounts(tally, payload.ActualBoardFeet); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "InvalidSplitAmount",
			"message": err.Error(),
		})
	}

	remainderCode := services.NextPackCode(pack.PackCode)
	var other models.Pack
	if err := c.DB.Where("load_id = ? AND pack_code = ?", pack.LoadId, remainderCode).First(&other).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":    "DuplicatePackId",
			"message":  "Derived remainder identifier already exists within this load",
			"pack_ids": []string{remainderCode},
		})
	}

	remainderAmount := services.SplitRemainder(tally, payload.ActualBoardFeet)
	now := time.Now()

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	remainder := models.Pack{
		LoadId:         pack.LoadId,
		ItemId:         pack.ItemId,
		PackCode:       remainderCode,
		Length:         pack.Length,
		TallyBoardFeet: remainderAmount,
		CreatedBy:      userID,
	}
	if err := tx.Create(&remainder).Error; err != nil {
		tx.Rollback()
		if isDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":    "DuplicatePackId",
				"message":  "Derived remainder identifier already exists within this load",
				"pack_ids": []string{remainderCode},
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// The original collapses to the portion actually completed, so tally
	// equals actual and the yield is 100 by construction.
	updates := map[string]interface{}{
		"tally_board_feet":  payload.ActualBoardFeet,
		"actual_board_feet": payload.ActualBoardFeet,
		"rip_yield":         decimal.NewFromInt(100),
		"is_finished":       true,
		"finished_at":       &now,
		"rip_operator_id":   payload.RipOperatorId,
		"stacker_one_id":    payload.StackerOneId,
		"stacker_two_id":    payload.StackerTwoId,
		"stacker_three_id":  payload.StackerThreeId,
		"version":           pack.Version + 1,
		"updated_by":        userID,
	}
	if err := tx.Model(&pack).Updates(updates).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	splitToken := models.PackSplitToken{
		Token:           token,
		SourcePackId:    pack.ID,
		RemainderPackId: remainder.ID,
		CreatedBy:       userID,
	}
	if err := tx.Create(&splitToken).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := repositories.RecomputeLoadStageFlags(tx, pack.LoadId); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.First(&pack, id)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Pack partially finished, remainder created",
		"data":    fiber.Map{"pack": pack, "remainder": remainder, "token": token},
	})
}

// ReopenPack lifts the freeze on a finished pack so mistakes can be
// corrected. The finish metadata is cleared rather than silently edited.
func (c *PackController) ReopenPack(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var pack models.Pack
	if err := c.DB.First(&pack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Pack not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !pack.IsFinished {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "Conflict",
			"message": "Pack is not finished",
		})
	}

	// the whole finish record is void, crew identities included
	updates := map[string]interface{}{
		"is_finished":       false,
		"finished_at":       nil,
		"actual_board_feet": decimal.Zero,
		"rip_yield":         decimal.Zero,
		"rip_operator_id":   0,
		"stacker_one_id":    0,
		"stacker_two_id":    0,
		"stacker_three_id":  0,
		"version":           pack.Version + 1,
		"updated_by":        userID,
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&pack).Updates(updates).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := repositories.RecomputeLoadStageFlags(tx, pack.LoadId); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.First(&pack, id)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Pack reopened", "data": pack})
}

func (c *PackController) DeletePack(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var pack models.Pack
	if err := c.DB.First(&pack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Pack not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	pack.DeletedBy = userID
	if err := tx.Select("deleted_by").Updates(&pack).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// hard delete, the identifier must become reusable within the load
	if err := tx.Unscoped().Delete(&pack).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := repositories.RecomputeLoadStageFlags(tx, pack.LoadId); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Pack deleted successfully"})
}

// UpdateItemFootage records the actual tallied footage of a load item as a
// whole, independent of its individual packs.
func (c *PackController) UpdateItemFootage(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	itemId, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var payload struct {
		ActualFootage decimal.Decimal `json:"actual_footage"`
	}
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var item models.LoadItem
	if err := c.DB.First(&item, itemId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Load item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"actual_footage": payload.ActualFootage,
		"updated_by":     userID,
	}
	if err := c.DB.Model(&item).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.First(&item, itemId)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item footage recorded", "data": item})
}
