package models

import (
	"gorm.io/gorm"
)

// Supplier and SupplierLocation are directory references. The directory
// itself is managed elsewhere; loads only point at these rows.
type Supplier struct {
	gorm.Model
	SupplierCode string `json:"supplier_code" gorm:"unique"`
	SupplierName string `json:"supplier_name"`
	SuppAddr1    string `json:"supp_addr1"`
	SuppCity     string `json:"supp_city"`
	SuppCountry  string `json:"supp_country"`
	SuppPhone    string `json:"supp_phone"`
	SuppEmail    string `json:"supp_email"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int

	Locations []SupplierLocation `gorm:"foreignKey:SupplierId;references:ID" json:"locations"`
}

type SupplierLocation struct {
	gorm.Model
	SupplierId uint   `json:"supplier_id" gorm:"index"`
	Name       string `json:"name"`
	City       string `json:"city"`
	State      string `json:"state"`
	CreatedBy  int
	UpdatedBy  int
	DeletedBy  int
}
