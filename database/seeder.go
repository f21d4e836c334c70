// database/seeder.go
package database

import (
	"log"

	"lumber-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedSuppliers(db)
}

func SeedUserMaster(db *gorm.DB) {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Unexpected DB error: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	admin := models.User{
		Username: "admin",
		Name:     "Administrator",
		Password: string(hashed),
		Role:     "admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
}

func SeedSuppliers(db *gorm.DB) {
	var count int64
	db.Model(&models.Supplier{}).Count(&count)
	if count > 0 {
		return
	}

	suppliers := []models.Supplier{
		{SupplierCode: "NHL", SupplierName: "Northern Hardwoods Ltd", SuppCity: "Marquette", SuppCountry: "US"},
		{SupplierCode: "BRS", SupplierName: "Blue Ridge Sawmill", SuppCity: "Roanoke", SuppCountry: "US"},
	}

	for i := range suppliers {
		if err := db.Create(&suppliers[i]).Error; err != nil {
			log.Printf("Failed to seed supplier %s: %v", suppliers[i].SupplierCode, err)
		}
	}
}
