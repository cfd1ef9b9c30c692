package alerts

import "sort"

// Aggregator combines alerts from a set of source adapters into one ordered
// list. It holds no state between calls; every Aggregate re-runs detection.
type Aggregator struct {
	adapters []SourceAdapter
}

func NewAggregator(adapters ...SourceAdapter) *Aggregator {
	return &Aggregator{adapters: adapters}
}

// Aggregate runs every adapter, validates the combined result and sorts it by
// priority rank descending, then by created_at descending. The sort is stable,
// so alerts with equal rank and timestamp keep adapter order. An adapter
// failure aborts the whole call with a DataSourceError; a malformed alert
// aborts it with a ConsistencyError.
func (a *Aggregator) Aggregate() ([]Alert, error) {
	combined := []Alert{}
	for _, adapter := range a.adapters {
		detected, err := adapter.Detect()
		if err != nil {
			return nil, &DataSourceError{Source: string(adapter.Category()), Err: err}
		}
		combined = append(combined, detected...)
	}

	for i := range combined {
		alert := &combined[i]
		if alert.CreatedAt.IsZero() {
			return nil, &ConsistencyError{AlertID: alert.ID, Reason: "missing created_at timestamp"}
		}
		if alert.Priority != PriorityFor(alert.Category) {
			return nil, &ConsistencyError{
				AlertID: alert.ID,
				Reason:  "priority " + string(alert.Priority) + " does not match category " + string(alert.Category),
			}
		}
	}

	sort.SliceStable(combined, func(i, j int) bool {
		ri, rj := combined[i].Priority.Rank(), combined[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return combined[i].CreatedAt.After(combined[j].CreatedAt)
	})
	return combined, nil
}

// Stats is a count breakdown of the current alert set.
type Stats struct {
	Total          int `json:"total"`
	LowStock       int `json:"low_stock"`
	Expiry         int `json:"expiry"`
	Expired        int `json:"expired"`
	InventoryCheck int `json:"inventory_check"`
	Critical       int `json:"critical"`
	High           int `json:"high"`
	Medium         int `json:"medium"`
}

// Summarize counts the alerts Aggregate would return. It goes through the
// same aggregation path, so the total always equals the list length.
func (a *Aggregator) Summarize() (Stats, error) {
	combined, err := a.Aggregate()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(combined)}
	for _, alert := range combined {
		switch alert.Category {
		case CategoryLowStock:
			stats.LowStock++
		case CategoryExpiry:
			stats.Expiry++
		case CategoryExpired:
			stats.Expired++
		case CategoryInventoryCheck:
			stats.InventoryCheck++
		}
		switch alert.Priority {
		case PriorityCritical:
			stats.Critical++
		case PriorityHigh:
			stats.High++
		case PriorityMedium:
			stats.Medium++
		}
	}
	return stats, nil
}
