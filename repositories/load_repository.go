package repositories

import (
	"lumber-app/models"
	"lumber-app/services"
	"lumber-app/types"

	"gorm.io/gorm"
)

type LoadRepository struct {
	db *gorm.DB
}

func NewLoadRepository(db *gorm.DB) *LoadRepository {
	return &LoadRepository{db: db}
}

// QueueLoad is one row of an operational queue listing.
type QueueLoad struct {
	ID               int64  `json:"id,string"`
	LoadCode         string `json:"load_code"`
	SupplierName     string `json:"supplier_name"`
	DeliveryMode     string `json:"delivery_mode"`
	EstArrivalDate   string `json:"est_arrival_date"`
	ArrivalDate      string `json:"arrival_date"`
	AllPacksTallied  bool   `json:"all_packs_tallied"`
	AllPacksFinished bool   `json:"all_packs_finished"`
	TotalPacks       int    `json:"total_packs"`
	FinishedPacks    int    `json:"finished_packs"`
}

const queueSelect = `
	SELECT l.id, l.load_code, s.supplier_name, l.delivery_mode,
		l.est_arrival_date, l.arrival_date,
		l.all_packs_tallied, l.all_packs_finished,
		COALESCE(v.total_packs, 0) AS total_packs,
		COALESCE(v.finished_packs, 0) AS finished_packs
	FROM lumber_loads l
	LEFT JOIN suppliers s ON s.id = l.supplier_id
	LEFT JOIN load_pack_progress v ON v.load_id = l.id
	WHERE l.deleted_at IS NULL AND `

const hasActualFootage = `EXISTS (
	SELECT 1 FROM load_items i
	WHERE i.load_id = l.id AND i.deleted_at IS NULL AND i.actual_footage IS NOT NULL)`

func (r *LoadRepository) queue(predicate string, args ...interface{}) ([]QueueLoad, error) {
	var rows []QueueLoad
	err := r.db.Raw(queueSelect+predicate+" ORDER BY l.load_code", args...).Scan(&rows).Error
	if rows == nil {
		rows = []QueueLoad{}
	}
	return rows, err
}

// TallyEntryQueue lists loads with item footage on the books whose packs
// are not yet fully tallied or finished.
func (r *LoadRepository) TallyEntryQueue() ([]QueueLoad, error) {
	return r.queue(hasActualFootage+" AND l.all_packs_tallied = ? AND l.all_packs_finished = ?", false, false)
}

// RipEntryQueue lists loads whose packs are all tallied but not all finished.
func (r *LoadRepository) RipEntryQueue() ([]QueueLoad, error) {
	return r.queue("l.all_packs_tallied = ? AND l.all_packs_finished = ?", true, false)
}

// InventoryReadyQueue lists loads with item footage recorded and unfinished
// packs remaining.
func (r *LoadRepository) InventoryReadyQueue() ([]QueueLoad, error) {
	return r.queue(hasActualFootage+" AND l.all_packs_finished = ?", false)
}

// PoNeededQueue lists loads with no purchase order generated yet.
func (r *LoadRepository) PoNeededQueue() ([]QueueLoad, error) {
	return r.queue("l.po_generated = ?", false)
}

// PaidQueue lists loads that are paid and physically arrived.
func (r *LoadRepository) PaidQueue() ([]QueueLoad, error) {
	return r.queue("l.paid = ? AND l.arrival_date IS NOT NULL AND l.arrival_date <> ''", true)
}

// ListLoads is the register listing with supplier names and pack progress.
func (r *LoadRepository) ListLoads() ([]QueueLoad, error) {
	return r.queue("1 = 1")
}

// RecomputeLoadStageFlags rebuilds the stored stage flags from the live item
// and pack rows. It must run inside the same transaction as the pack
// mutation that made them stale; a flag written by an earlier, unrelated
// transaction is never trusted on its own.
func RecomputeLoadStageFlags(tx *gorm.DB, loadId types.SnowflakeID) error {
	var totalItems, itemsWithPacks, totalPacks, unfinishedPacks int64

	if err := tx.Model(&models.LoadItem{}).Where("load_id = ?", loadId).Count(&totalItems).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Pack{}).Where("load_id = ?", loadId).Count(&totalPacks).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Pack{}).Where("load_id = ? AND is_finished = ?", loadId, false).Count(&unfinishedPacks).Error; err != nil {
		return err
	}
	err := tx.Model(&models.LoadItem{}).
		Where("load_id = ? AND EXISTS (SELECT 1 FROM packs WHERE packs.item_id = load_items.id AND packs.deleted_at IS NULL)", loadId).
		Count(&itemsWithPacks).Error
	if err != nil {
		return err
	}

	// A pack-less load is in neither state: packs come into existence at
	// tally time, so "all packs tallied" means every item has at least one.
	allTallied := totalPacks > 0 && totalItems > 0 && itemsWithPacks == totalItems
	allFinished := totalPacks > 0 && unfinishedPacks == 0

	return tx.Model(&models.LumberLoad{}).Where("id = ?", loadId).
		Updates(map[string]interface{}{
			"all_packs_tallied":  allTallied,
			"all_packs_finished": allFinished,
		}).Error
}

// LiveLoadStageState rebuilds the classifier input from the item and pack
// rows instead of the stored flags, for diagnosis endpoints where staleness
// must be ruled out.
func LiveLoadStageState(db *gorm.DB, load *models.LumberLoad) (services.LoadStageState, error) {
	state := services.LoadStageState{
		PoGenerated:    load.PoGenerated,
		Paid:           load.Paid,
		HasArrivalDate: load.ArrivalDate != "",
	}

	var itemsWithActual, totalItems, itemsWithPacks, totalPacks, unfinishedPacks int64

	if err := db.Model(&models.LoadItem{}).
		Where("load_id = ? AND actual_footage IS NOT NULL", load.ID).
		Count(&itemsWithActual).Error; err != nil {
		return state, err
	}
	if err := db.Model(&models.LoadItem{}).Where("load_id = ?", load.ID).Count(&totalItems).Error; err != nil {
		return state, err
	}
	if err := db.Model(&models.Pack{}).Where("load_id = ?", load.ID).Count(&totalPacks).Error; err != nil {
		return state, err
	}
	if err := db.Model(&models.Pack{}).Where("load_id = ? AND is_finished = ?", load.ID, false).Count(&unfinishedPacks).Error; err != nil {
		return state, err
	}
	err := db.Model(&models.LoadItem{}).
		Where("load_id = ? AND EXISTS (SELECT 1 FROM packs WHERE packs.item_id = load_items.id AND packs.deleted_at IS NULL)", load.ID).
		Count(&itemsWithPacks).Error
	if err != nil {
		return state, err
	}

	state.HasItemActualFootage = itemsWithActual > 0
	state.AllPacksTallied = totalPacks > 0 && totalItems > 0 && itemsWithPacks == totalItems
	state.AllPacksFinished = totalPacks > 0 && unfinishedPacks == 0

	return state, nil
}
