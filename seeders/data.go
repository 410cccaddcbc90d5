package seeders

import (
	"time"

	"github.com/aarondl/null/v8"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
)

var usersData = []entities.User{
	{ID: "admin", Username: "admin", FullName: "Administrador", Role: maintenance.RoleAdmin, IsActive: true},
	{ID: "jonathan", Username: "jonathan", FullName: "Jonathan Valencia Quintal", Role: maintenance.RoleAdmin, IsActive: true},
	{ID: "miguel", Username: "miguel", FullName: "Jose Miguel Fernandez Perez", Role: maintenance.RoleAdmin, IsActive: true},
	{ID: "carlos", Username: "carlos", FullName: "Carlos Hernandez Valencia", Role: maintenance.RoleTechnician, IsActive: true},
}

var clientsData = []entities.Client{
	{ID: "cli-001", Name: "Cafetería El Grano", Contact: "Juan Pérez", Phone: "9991234567", Email: "contacto@elgrano.mx", Address: "Calle 60 #123, Centro, Mérida", IsActive: true, Zone: null.StringFrom("Centro")},
	{ID: "cli-002", Name: "Barra Sur", Contact: "Ana López", Phone: "9997654321", Email: "ana@barrasur.mx", Address: "Av. Itzaes 450, Mérida", IsActive: true, Zone: null.StringFrom("Sur")},
	{ID: "cli-003", Name: "Tostadores del Norte", Contact: "Luis Canché", Phone: "9995550101", Address: "Prolongación Montejo 88, Mérida", IsActive: true, Zone: null.StringFrom("Norte")},
	{ID: "cli-004", Name: "Café Antiguo", Contact: "María Pech", Phone: "9995550202", Address: "Calle 47 #501, Mérida", IsActive: false},
}

// monthsAgo сдвигает дату на n месяцев назад, отрицательное n - вперёд.
func monthsAgo(now time.Time, n int) time.Time {
	return now.AddDate(0, -n, 0)
}

// equipmentData возвращает демо-оборудование со статусом, выведенным из привязки к клиенту.
func equipmentData(now time.Time) []entities.Equipment {
	equipment := []entities.Equipment{
		{
			ID: "eq-001", Type: maintenance.EquipmentCoffeeMachine, Brand: "La Marzocco", Model: "Linea Mini", Serial: "LM-20231",
			PurchaseDate: null.TimeFrom(monthsAgo(now, 18)), CurrentStatus: maintenance.ConditionNew, CurrentCondition: "Operando sin fallas",
			Client: null.StringFrom("cli-001"), LastService: null.TimeFrom(monthsAgo(now, 7)),
			LastServiceType: null.StringFrom(maintenance.LastServicePreventive),
		},
		{
			ID: "eq-002", Type: maintenance.EquipmentGrinder, Brand: "Mahlkönig", Model: "E65S", Serial: "MK-88410",
			PurchaseDate: null.TimeFrom(monthsAgo(now, 12)), CurrentStatus: maintenance.ConditionLike, CurrentCondition: "Muelas recién cambiadas",
			Client: null.StringFrom("cli-001"), LastService: null.TimeFrom(monthsAgo(now, 2)),
			LastServiceType: null.StringFrom(maintenance.LastServiceGeneral),
		},
		{
			ID: "eq-003", Type: maintenance.EquipmentCoffeeMachine, Brand: "Rancilio", Model: "Classe 9", Serial: "RC-55012",
			PurchaseDate: null.TimeFrom(monthsAgo(now, 30)), CurrentStatus: maintenance.ConditionUsed, CurrentCondition: "Caldera con sarro",
			Client: null.StringFrom("cli-002"), LastService: null.TimeFrom(monthsAgo(now, 10)),
			LastServiceType: null.StringFrom(maintenance.LastServiceReconstruction),
		},
		{
			ID: "eq-004", Type: maintenance.EquipmentGrinder, Brand: "Mazzer", Model: "Super Jolly", Serial: "MZ-31007",
			CurrentStatus: maintenance.ConditionNew, CurrentCondition: "Recién instalado", Client: null.StringFrom("cli-003"),
			IsNewInstallation: true, InstallationDate: null.TimeFrom(now.AddDate(0, 0, -10)),
		},
		{
			ID: "eq-005", Type: maintenance.EquipmentOther, Brand: "Bunn", Model: "Axiom", Serial: "BN-70021",
			CurrentStatus: maintenance.ConditionUsed, CurrentCondition: "En bodega, requiere revisión",
		},
	}
	for i := range equipment {
		equipment[i].Status = maintenance.DeriveStatus(equipment[i].Client.String)
	}
	return equipment
}

func servicesData(now time.Time) []entities.Service {
	return []entities.Service{
		{
			ID: "srv-001", ClientID: "cli-001", EquipmentID: "eq-001", Type: maintenance.ServicePreventive,
			DateStart: monthsAgo(now, 7), DateEnd: null.TimeFrom(monthsAgo(now, 7)), Status: maintenance.ServiceStatusCompleted,
			Description: "Limpieza de grupo y cambio de empaques", Technician: "Carlos Hernandez Valencia",
			PartsUsed: []entities.Part{{Quantity: 2, Description: "Empaque de grupo", UnitPrice: 180, IncludedInService: true}},
		},
		{
			ID: "srv-002", ClientID: "cli-001", EquipmentID: "eq-002", Type: maintenance.ServiceGeneral,
			DateStart: monthsAgo(now, 2), DateEnd: null.TimeFrom(monthsAgo(now, 2)), Status: maintenance.ServiceStatusCompleted,
			Description: "Cambio de muelas", Technician: "Jonathan Valencia Quintal",
			PartsUsed: []entities.Part{{Quantity: 1, Description: "Juego de muelas 65mm", UnitPrice: 2450}},
		},
		{
			ID: "srv-003", ClientID: "cli-002", EquipmentID: "eq-003", Type: maintenance.ServiceReconstruction,
			DateStart: now.AddDate(0, 0, 5), Status: maintenance.ServiceStatusPending,
			Technician: "Jose Miguel Fernandez Perez", AssignedTechnician: "Carlos Hernandez Valencia",
			NextServiceComments: "Revisar presión de caldera",
		},
	}
}
