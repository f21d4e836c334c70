package controllers

import (
	"errors"

	"lumber-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SupplierController is a thin directory surface. Loads only hold foreign
// references to these rows; merge and maintenance of the directory happen
// in another system.
type SupplierController struct {
	DB *gorm.DB
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

type SupplierPayload struct {
	SupplierCode string `json:"supplier_code" validate:"required,min=2"`
	SupplierName string `json:"supplier_name" validate:"required"`
	SuppAddr1    string `json:"supp_addr1"`
	SuppCity     string `json:"supp_city"`
	SuppCountry  string `json:"supp_country"`
	SuppPhone    string `json:"supp_phone"`
	SuppEmail    string `json:"supp_email"`
}

func (c *SupplierController) CreateSupplier(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	var payload SupplierPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier := models.Supplier{
		SupplierCode: payload.SupplierCode,
		SupplierName: payload.SupplierName,
		SuppAddr1:    payload.SuppAddr1,
		SuppCity:     payload.SuppCity,
		SuppCountry:  payload.SuppCountry,
		SuppPhone:    payload.SuppPhone,
		SuppEmail:    payload.SuppEmail,
		CreatedBy:    userID,
	}

	if err := c.DB.Create(&supplier).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier created successfully", "data": supplier})
}

func (c *SupplierController) GetAllSuppliers(ctx *fiber.Ctx) error {
	var suppliers []models.Supplier
	if err := c.DB.Preload("Locations").Find(&suppliers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Suppliers found", "data": suppliers})
}

func (c *SupplierController) GetSupplierByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Supplier
	if err := c.DB.Preload("Locations").First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound", "message": "Supplier not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier found", "data": result})
}
