package maintenance

// Типы оборудования
const (
	EquipmentCoffeeMachine = "Cafetera"
	EquipmentGrinder       = "Molino"
	EquipmentOther         = "Otro"
)

// Состояние оборудования при поступлении
const (
	ConditionNew  = "Nuevo"
	ConditionLike = "Seminuevo"
	ConditionUsed = "Usado"
)

// Статусы оборудования
const (
	StatusAvailable   = "disponible"
	StatusAssigned    = "asignado"
	StatusInService   = "en servicio"
	StatusUnavailable = "no disponible"
)

// Типы обслуживания
const (
	ServicePreventive     = "Mantenimiento Preventivo"
	ServiceGeneral        = "Mantenimiento General"
	ServiceReconstruction = "Reconstrucción"
)

// Тип последнего обслуживания в карточке оборудования
const (
	LastServicePreventive     = "Preventivo"
	LastServiceGeneral        = "General"
	LastServiceReconstruction = "Reconstruccion"
)

// Статусы визита
const (
	ServiceStatusPending    = "Pendiente"
	ServiceStatusInProgress = "En Progreso"
	ServiceStatusCompleted  = "Completado"
	ServiceStatusCancelled  = "Cancelado"
)

// Роли
const (
	RoleAdmin      = "administrador"
	RoleTechnician = "tecnico"
)

const (
	UnknownLabel   = "N/A"
	UnknownZone    = "Desconocida"
	UnknownCreator = "Desconocido"
)

var (
	EquipmentTypes      = []string{EquipmentCoffeeMachine, EquipmentGrinder, EquipmentOther}
	Conditions          = []string{ConditionNew, ConditionLike, ConditionUsed}
	EquipmentStatuses   = []string{StatusAvailable, StatusAssigned, StatusInService, StatusUnavailable}
	ServiceTypes        = []string{ServicePreventive, ServiceGeneral, ServiceReconstruction}
	LastServiceTypes    = []string{LastServicePreventive, LastServiceGeneral, LastServiceReconstruction}
	ServiceStatuses     = []string{ServiceStatusPending, ServiceStatusInProgress, ServiceStatusCompleted, ServiceStatusCancelled}
	Roles               = []string{RoleAdmin, RoleTechnician}
	OpenServiceStatuses = []string{ServiceStatusPending, ServiceStatusInProgress}
)

func Contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
