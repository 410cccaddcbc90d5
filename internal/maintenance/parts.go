package maintenance

import "kaawa-maintenance/internal/entities"

type PartsTotals struct {
	Total  float64 `json:"total"`
	Extras float64 `json:"extras"`
}

// SumParts: Extras - запчасти, не включённые в стоимость обслуживания.
func SumParts(parts []entities.Part) PartsTotals {
	var totals PartsTotals
	for _, p := range parts {
		line := float64(p.Quantity) * p.UnitPrice
		totals.Total += line
		if !p.IncludedInService {
			totals.Extras += line
		}
	}
	return totals
}
