package maintenance

var (
	coffeeMachineGeneral = []string{
		"Descalcificación de Caldera y tuberías en general (desmonte de toda la máquina)",
		"Pulido de caldera y tuberías",
		"Cambio de empaques: grupos, electroválvulas, lancetas, grifo de agua y bloque de válvulas",
		"Cambio de duchas",
		"Cambio de válvula antiremolino (de alivio)",
		"Limpieza de electroválvulas",
		"Limpieza profunda de chasis",
		"Recalibración de presostato",
		"Recalibración de bomba",
		"Cambio de manguera de entrada de agua",
		"Cambio de manguera de desagüe",
		"Cambio de espreas de grupo",
	}

	grinderBase = []string{
		"Limpieza de tolva",
		"Limpieza de muelas y cámara de molienda",
		"Recalibración de molienda",
	}

	checklistTemplates = map[string]map[string][]string{
		EquipmentCoffeeMachine: {
			ServicePreventive: {
				"Cambio de empaques: grupos, electroválvulas y llaves de vapor",
				"Limpieza de duchas",
				"Cambio de válvula antiremolino (de alivio)",
				"Limpieza de electroválvulas",
				"Limpieza de chasis",
				"Recalibración de presostato",
				"Recalibración de bomba",
				"Lavado de manguera de desagüe",
				"Lavado de espreas de grupo",
				"Limpieza de sonda de nivel",
				"Limpieza exterior",
				"Engrasado de llaves en general",
			},
			ServiceGeneral: coffeeMachineGeneral,
			ServiceReconstruction: concat(coffeeMachineGeneral,
				"Resanado de chasis y paneles",
				"Pintura de todo el chasis",
				"Pintura de paneles laterales",
			),
		},
		EquipmentGrinder: {
			ServicePreventive: grinderBase,
			ServiceGeneral:    grinderBase,
			ServiceReconstruction: concat(grinderBase,
				"Resanado de chasis y paneles",
				"Pintura de chasis y paneles",
			),
		},
	}
)

func concat(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// ChecklistTemplate возвращает копию шаблона. Для неизвестной пары - пустой список.
func ChecklistTemplate(equipmentType, serviceType string) []string {
	items := checklistTemplates[equipmentType][serviceType]
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// NewChecklist - все пункты шаблона не отмечены.
func NewChecklist(template []string) map[string]bool {
	checklist := make(map[string]bool, len(template))
	for _, item := range template {
		checklist[item] = false
	}
	return checklist
}

// ApplyChecklist переносит отметки только для пунктов, которые есть в base.
func ApplyChecklist(base map[string]bool, marks map[string]bool) map[string]bool {
	out := make(map[string]bool, len(base))
	for item, done := range base {
		out[item] = done
	}
	for item, done := range marks {
		if _, ok := out[item]; ok {
			out[item] = done
		}
	}
	return out
}

// ChecklistFor строит чек-лист визита. Смена типа оборудования или обслуживания
// сбрасывает прогресс: previous учитывается только при reset == false.
func ChecklistFor(equipmentType, serviceType string, previous map[string]bool, reset bool, marks map[string]bool) map[string]bool {
	base := NewChecklist(ChecklistTemplate(equipmentType, serviceType))
	if !reset {
		base = ApplyChecklist(base, previous)
	}
	return ApplyChecklist(base, marks)
}
