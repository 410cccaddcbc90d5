package maintenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaawa-maintenance/internal/entities"
)

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusAssigned, DeriveStatus("c-1"))
	assert.Equal(t, StatusAvailable, DeriveStatus(""))
	assert.Equal(t, StatusAvailable, DeriveStatus("   "))
}

func TestChecklistTemplate_KnownPairs(t *testing.T) {
	assert.Len(t, ChecklistTemplate(EquipmentCoffeeMachine, ServicePreventive), 12)
	assert.Len(t, ChecklistTemplate(EquipmentCoffeeMachine, ServiceGeneral), 12)
	assert.Len(t, ChecklistTemplate(EquipmentCoffeeMachine, ServiceReconstruction), 15)
	assert.Len(t, ChecklistTemplate(EquipmentGrinder, ServicePreventive), 3)
	assert.Len(t, ChecklistTemplate(EquipmentGrinder, ServiceReconstruction), 5)

	general := ChecklistTemplate(EquipmentCoffeeMachine, ServiceGeneral)
	rebuild := ChecklistTemplate(EquipmentCoffeeMachine, ServiceReconstruction)
	assert.Equal(t, general, rebuild[:len(general)])
	assert.Equal(t, "Pintura de paneles laterales", rebuild[len(rebuild)-1])
}

func TestChecklistTemplate_UnknownPairIsEmpty(t *testing.T) {
	for _, pair := range [][2]string{
		{EquipmentOther, ServicePreventive},
		{EquipmentCoffeeMachine, "Lavado"},
		{"", ""},
	} {
		items := ChecklistTemplate(pair[0], pair[1])
		assert.NotNil(t, items)
		assert.Empty(t, items)
	}
}

func TestChecklistTemplate_ReturnsCopy(t *testing.T) {
	items := ChecklistTemplate(EquipmentGrinder, ServiceGeneral)
	items[0] = "changed"
	assert.Equal(t, "Limpieza de tolva", ChecklistTemplate(EquipmentGrinder, ServiceGeneral)[0])
}

func TestChecklistFor_ResetDropsProgress(t *testing.T) {
	previous := map[string]bool{"Limpieza de tolva": true}

	kept := ChecklistFor(EquipmentGrinder, ServiceGeneral, previous, false, nil)
	assert.True(t, kept["Limpieza de tolva"])

	reset := ChecklistFor(EquipmentGrinder, ServiceGeneral, previous, true, nil)
	assert.False(t, reset["Limpieza de tolva"])
	assert.Len(t, reset, 3)
}

func TestChecklistFor_IgnoresForeignMarks(t *testing.T) {
	checklist := ChecklistFor(EquipmentGrinder, ServicePreventive, nil, true, map[string]bool{
		"Recalibración de molienda": true,
		"Pintura de todo el chasis": true,
	})
	assert.True(t, checklist["Recalibración de molienda"])
	_, exists := checklist["Pintura de todo el chasis"]
	assert.False(t, exists)
}

func TestRandomFolioGenerator(t *testing.T) {
	gen := NewRandomFolioGenerator()
	for i := 0; i < 200; i++ {
		folio := gen.Next()
		require.Len(t, folio, 6)
		assert.NotEqual(t, byte('0'), folio[0])
	}
}

func TestLabels(t *testing.T) {
	clients := IndexClients([]entities.Client{{ID: "c1", Name: "Café Tulum"}})
	equipment := IndexEquipment([]entities.Equipment{{ID: "e1", Brand: "La Marzocco", Model: "Linea Mini", Serial: "LM001"}})

	assert.Equal(t, "Café Tulum", ClientName(clients, "c1"))
	assert.Equal(t, UnknownLabel, ClientName(clients, "missing"))
	assert.Equal(t, "La Marzocco Linea Mini", EquipmentLabel(equipment, "e1"))
	assert.Equal(t, "La Marzocco Linea Mini (LM001)", EquipmentLabelWithSerial(equipment, "e1"))
	assert.Equal(t, UnknownLabel, EquipmentLabel(equipment, "missing"))
}

func TestSumParts(t *testing.T) {
	totals := SumParts([]entities.Part{
		{Quantity: 2, Description: "Empaque de grupo", UnitPrice: 5, IncludedInService: true},
		{Quantity: 1, Description: "Ducha", UnitPrice: 12.5},
	})
	assert.InDelta(t, 22.5, totals.Total, 0.0001)
	assert.InDelta(t, 12.5, totals.Extras, 0.0001)
}
