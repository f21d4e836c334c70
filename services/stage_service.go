package services

// LoadStageState is a snapshot of everything the stage queues are derived
// from. Callers build it either from the stored load flags or, when
// staleness is possible, live from the item and pack rows.
type LoadStageState struct {
	HasItemActualFootage bool `json:"has_item_actual_footage"`
	AllPacksTallied      bool `json:"all_packs_tallied"`
	AllPacksFinished     bool `json:"all_packs_finished"`
	PoGenerated          bool `json:"po_generated"`
	Paid                 bool `json:"paid"`
	HasArrivalDate       bool `json:"has_arrival_date"`
}

const (
	QueueTallyEntry     = "tally_entry"
	QueueRipEntry       = "rip_entry"
	QueueInventoryReady = "inventory_ready"
	QueuePoNeeded       = "po_needed"
	QueuePaid           = "paid"
)

// QueueMembership reports one queue decision together with the specific
// conditions behind it, so an operator can see why a load is or is not
// showing up where they expect.
type QueueMembership struct {
	Queue   string   `json:"queue"`
	Member  bool     `json:"member"`
	Reasons []string `json:"reasons"`
}

type stageCondition struct {
	ok    bool
	met   string
	unmet string
}

func evaluateQueue(queue string, conds ...stageCondition) QueueMembership {
	m := QueueMembership{Queue: queue, Member: true}
	for _, c := range conds {
		if c.ok {
			m.Reasons = append(m.Reasons, c.met)
		} else {
			m.Member = false
			m.Reasons = append(m.Reasons, c.unmet)
		}
	}
	return m
}

// ClassifyLoad evaluates the five queue predicates independently; a load may
// belong to several queues at once.
func ClassifyLoad(s LoadStageState) []QueueMembership {
	actualFootage := stageCondition{
		ok:    s.HasItemActualFootage,
		met:   "at least one item has actual footage recorded",
		unmet: "no item has actual footage recorded yet",
	}
	notAllTallied := stageCondition{
		ok:    !s.AllPacksTallied,
		met:   "not every pack has been tallied yet",
		unmet: "every pack has already been tallied",
	}
	allTallied := stageCondition{
		ok:    s.AllPacksTallied,
		met:   "every pack has been tallied",
		unmet: "tally is still incomplete",
	}
	notAllFinished := stageCondition{
		ok:    !s.AllPacksFinished,
		met:   "not every pack has been finished yet",
		unmet: "every pack has already been finished",
	}

	return []QueueMembership{
		evaluateQueue(QueueTallyEntry, actualFootage, notAllTallied, notAllFinished),
		evaluateQueue(QueueRipEntry, allTallied, notAllFinished),
		evaluateQueue(QueueInventoryReady, actualFootage, notAllFinished),
		evaluateQueue(QueuePoNeeded, stageCondition{
			ok:    !s.PoGenerated,
			met:   "purchase order has not been generated",
			unmet: "purchase order has already been generated",
		}),
		evaluateQueue(QueuePaid,
			stageCondition{
				ok:    s.Paid,
				met:   "load is marked paid",
				unmet: "load is not marked paid",
			},
			stageCondition{
				ok:    s.HasArrivalDate,
				met:   "actual arrival date is recorded",
				unmet: "actual arrival date is not recorded",
			}),
	}
}
