package maintenance

import (
	"fmt"
	"strings"

	"kaawa-maintenance/internal/entities"
)

func ClientName(clients map[string]*entities.Client, id string) string {
	if c, ok := clients[id]; ok && c != nil {
		return c.Name
	}
	return UnknownLabel
}

func EquipmentLabel(equipment map[string]*entities.Equipment, id string) string {
	eq, ok := equipment[id]
	if !ok || eq == nil {
		return UnknownLabel
	}
	return strings.TrimSpace(eq.Brand + " " + eq.Model)
}

func EquipmentLabelWithSerial(equipment map[string]*entities.Equipment, id string) string {
	eq, ok := equipment[id]
	if !ok || eq == nil {
		return UnknownLabel
	}
	return fmt.Sprintf("%s %s (%s)", eq.Brand, eq.Model, eq.Serial)
}

func IndexClients(clients []entities.Client) map[string]*entities.Client {
	idx := make(map[string]*entities.Client, len(clients))
	for i := range clients {
		idx[clients[i].ID] = &clients[i]
	}
	return idx
}

func IndexEquipment(equipment []entities.Equipment) map[string]*entities.Equipment {
	idx := make(map[string]*entities.Equipment, len(equipment))
	for i := range equipment {
		idx[equipment[i].ID] = &equipment[i]
	}
	return idx
}
