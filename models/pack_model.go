package models

import (
	"time"

	"lumber-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pack is the unit of physical handling: a bundle of boards tracked through
// tally and rip. PackCode must be unique within its load, never globally;
// a generation suffix (*2, *3, ...) marks remainders created by partial
// finishes. A pack never moves to another load or item.
type Pack struct {
	gorm.Model
	LoadId          types.SnowflakeID `json:"load_id" gorm:"uniqueIndex:uidx_load_pack"`
	ItemId          uint              `json:"item_id" gorm:"index"`
	PackCode        string            `json:"pack_code" gorm:"uniqueIndex:uidx_load_pack"`
	Length          decimal.Decimal   `json:"length" gorm:"type:decimal(12,2)"`
	TallyBoardFeet  decimal.Decimal   `json:"tally_board_feet" gorm:"type:decimal(12,2)"`
	ActualBoardFeet decimal.Decimal   `json:"actual_board_feet" gorm:"type:decimal(12,2)"`
	RipYield        decimal.Decimal   `json:"rip_yield" gorm:"type:decimal(6,2)"`
	IsFinished      bool              `json:"is_finished"`
	FinishedAt      *time.Time        `json:"finished_at"`
	RipOperatorId   int               `json:"rip_operator_id"`
	StackerOneId    int               `json:"stacker_one_id"`
	StackerTwoId    int               `json:"stacker_two_id"`
	StackerThreeId  int               `json:"stacker_three_id"`
	Version         int               `json:"version" gorm:"default:1"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int
}

// PackSplitToken records a completed partial finish so a duplicate
// submission of the same token replays the original result instead of
// splitting twice.
type PackSplitToken struct {
	gorm.Model
	Token           string `json:"token" gorm:"unique"`
	SourcePackId    uint   `json:"source_pack_id"`
	RemainderPackId uint   `json:"remainder_pack_id"`
	CreatedBy       int
}
