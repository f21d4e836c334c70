package controllers

import (
	"errors"

	"lumber-app/models"
	"lumber-app/repositories"
	"lumber-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StageController answers "which operational queue does this load belong to".
type StageController struct {
	DB *gorm.DB
}

func NewStageController(DB *gorm.DB) *StageController {
	return &StageController{DB: DB}
}

func (c *StageController) queueResponse(ctx *fiber.Ctx, queue string, rows []repositories.QueueLoad, err error) error {
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Queue loaded",
		"queue":   queue,
		"data":    rows,
	})
}

func (c *StageController) GetTallyEntryQueue(ctx *fiber.Ctx) error {
	rows, err := repositories.NewLoadRepository(c.DB).TallyEntryQueue()
	return c.queueResponse(ctx, services.QueueTallyEntry, rows, err)
}

func (c *StageController) GetRipEntryQueue(ctx *fiber.Ctx) error {
	rows, err := repositories.NewLoadRepository(c.DB).RipEntryQueue()
	return c.queueResponse(ctx, services.QueueRipEntry, rows, err)
}

func (c *StageController) GetInventoryReadyQueue(ctx *fiber.Ctx) error {
	rows, err := repositories.NewLoadRepository(c.DB).InventoryReadyQueue()
	return c.queueResponse(ctx, services.QueueInventoryReady, rows, err)
}

func (c *StageController) GetPoNeededQueue(ctx *fiber.Ctx) error {
	rows, err := repositories.NewLoadRepository(c.DB).PoNeededQueue()
	return c.queueResponse(ctx, services.QueuePoNeeded, rows, err)
}

func (c *StageController) GetPaidQueue(ctx *fiber.Ctx) error {
	rows, err := repositories.NewLoadRepository(c.DB).PaidQueue()
	return c.queueResponse(ctx, services.QueuePaid, rows, err)
}

// ExplainLoadStages recomputes the queue predicates from the live item and
// pack rows and spells out every condition, so an operator can see why a
// load is missing from the screen they expect it on.
func (c *StageController) ExplainLoadStages(ctx *fiber.Ctx) error {
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

	state, err := repositories.LiveLoadStageState(c.DB, &load)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Stage classification computed",
		"data": fiber.Map{
			"load_code": load.LoadCode,
			"state":     state,
			"queues":    services.ClassifyLoad(state),
		},
	})
}
