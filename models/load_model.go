package models

import (
	"time"

	"lumber-app/controllers/idgen"
	"lumber-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LumberLoad is one purchased batch of lumber from a supplier location,
// identified by the human-assigned LoadCode. The two stage flags are stored
// but recomputed inside every transaction that touches the load's packs.
type LumberLoad struct {
	gorm.Model
	ID               types.SnowflakeID `json:"id" gorm:"primary_key"`
	LoadCode         string            `json:"load_code" gorm:"unique"`
	SupplierId       uint              `json:"supplier_id"`
	LocationId       uint              `json:"location_id"`
	DeliveryMode     string            `json:"delivery_mode" gorm:"default:'delivered'"`
	EstArrivalDate   string            `json:"est_arrival_date"`
	ArrivalDate      string            `json:"arrival_date"`
	PoGenerated      bool              `json:"po_generated"`
	PoGeneratedAt    *time.Time        `json:"po_generated_at"`
	BooksEntered     bool              `json:"books_entered"`
	Paid             bool              `json:"paid"`
	PaidAt           *time.Time        `json:"paid_at"`
	AllPacksTallied  bool              `json:"all_packs_tallied"`
	AllPacksFinished bool              `json:"all_packs_finished"`
	Remarks          string            `json:"remarks"`
	CreatedBy        int
	UpdatedBy        int
	DeletedBy        int

	// Relations
	Items []LoadItem `gorm:"foreignKey:LoadId;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (l *LumberLoad) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == 0 {
		l.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}

// LoadItem is one species/grade/thickness/price line of a load. ActualFootage
// is recorded once the item as a whole has been physically tallied.
type LoadItem struct {
	gorm.Model
	LoadId        types.SnowflakeID `json:"load_id" gorm:"index"`
	Species       string            `json:"species"`
	Grade         string            `json:"grade"`
	Thickness     string            `json:"thickness"`
	PricePerMbf   decimal.Decimal   `json:"price_per_mbf" gorm:"type:decimal(12,2)"`
	EstFootage    decimal.Decimal   `json:"est_footage" gorm:"type:decimal(12,2)"`
	ActualFootage *decimal.Decimal  `json:"actual_footage" gorm:"type:decimal(12,2)"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int

	// Relations
	Packs []Pack `gorm:"foreignKey:ItemId;references:ID;constraint:OnDelete:CASCADE" json:"packs"`
}
