package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/internal/repositories"
	"kaawa-maintenance/pkg/config"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/filestorage"
	"kaawa-maintenance/pkg/utils"
)

const (
	EntityClients   = "clients"
	EntityEquipment = "equipment"
	EntityServices  = "services"

	// TransferUploadContext - правила загрузки файлов импорта в config.UploadContexts.
	TransferUploadContext = "transfer_import"

	// headerScanRows - в скольких первых строках искать шапку.
	headerScanRows = 10
)

var (
	clientHeaders = []string{"id", "name", "contact", "phone", "email", "address", "isActive"}

	equipmentHeaders = []string{
		"id", "type", "brand", "model", "serial", "purchaseDate", "invoiceNumber", "currentCondition",
		"currentStatus", "status", "client", "lastService", "lastServiceType", "isNewInstallation", "installationDate",
	}

	serviceHeaders = []string{
		"id", "folio", "clientId", "equipmentId", "type", "machineType", "dateStart", "dateEnd", "status",
		"checklist", "partsUsed", "description", "nextServiceComments", "technician",
	}

	sheetNames = map[string]string{
		EntityClients:   "Clientes",
		EntityEquipment: "Equipos",
		EntityServices:  "Servicios",
	}

	// Колонка, по которой распознаётся шапка (вместе с id).
	headerMarkers = map[string]string{
		EntityClients:   "name",
		EntityEquipment: "serial",
		EntityServices:  "clientid",
	}
)

type TransferServiceInterface interface {
	Template(ctx context.Context, entity string) (string, []byte, error)
	Export(ctx context.Context) (*excelize.File, error)
	Import(ctx context.Context, entity, fileName string, data []byte) (*dto.ImportResultDTO, error)
}

type TransferService struct {
	txManager     repositories.TxManagerInterface
	clientRepo    repositories.ClientRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	serviceRepo   repositories.ServiceRepositoryInterface
	storage       filestorage.FileStorageInterface
	folios        maintenance.FolioGenerator
	savepoint     func(ctx context.Context, tx pgx.Tx, fn func(tx pgx.Tx) error) error
	logger        *zap.Logger
}

func NewTransferService(
	txManager repositories.TxManagerInterface,
	clientRepo repositories.ClientRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	storage filestorage.FileStorageInterface,
	folios maintenance.FolioGenerator,
	logger *zap.Logger,
) TransferServiceInterface {
	return &TransferService{
		txManager:     txManager,
		clientRepo:    clientRepo,
		equipmentRepo: equipmentRepo,
		serviceRepo:   serviceRepo,
		storage:       storage,
		folios:        folios,
		savepoint:     repositories.WithSavepoint,
		logger:        logger,
	}
}

// ==================== Выгрузка ====================

func boolText(b bool) string {
	return strconv.FormatBool(b)
}

func clientRecord(c *entities.Client) []string {
	return []string{c.ID, c.Name, c.Contact, c.Phone, c.Email, c.Address, boolText(c.IsActive)}
}

func equipmentRecord(e *entities.Equipment) []string {
	return []string{
		e.ID, e.Type, e.Brand, e.Model, e.Serial,
		utils.FormatNullDate(e.PurchaseDate, ""), e.InvoiceNumber, e.CurrentCondition, e.CurrentStatus, e.Status,
		e.Client.String, utils.FormatNullDate(e.LastService, ""), e.LastServiceType.String,
		boolText(e.IsNewInstallation), utils.FormatNullDate(e.InstallationDate, ""),
	}
}

func serviceRecord(s *entities.Service) []string {
	checklist := s.Checklist
	if checklist == nil {
		checklist = map[string]bool{}
	}
	parts := s.PartsUsed
	if parts == nil {
		parts = []entities.Part{}
	}
	checklistJSON, _ := json.Marshal(checklist)
	partsJSON, _ := json.Marshal(parts)
	return []string{
		s.ID, s.Folio, s.ClientID, s.EquipmentID, s.Type, s.MachineType,
		s.DateStart.Format(utils.DateLayout), utils.FormatNullDate(s.DateEnd, ""), s.Status,
		string(checklistJSON), string(partsJSON), s.Description, s.NextServiceComments, s.Technician,
	}
}

// Примеры для пустых таблиц, чтобы в шаблоне было видно формат каждой колонки.
var (
	exampleClient = []string{
		"ejemplo_id_cliente_1", "Cafetería El Grano", "Juan Pérez", "5512345678",
		"juan@elgrano.com", "Calle Falsa 123", "true",
	}
	exampleEquipment = []string{
		"ejemplo_id_equipo_1", maintenance.EquipmentCoffeeMachine, "La Marzocco", "Linea Mini", "LM001",
		"2023-01-15", "INV001", "Excelente", maintenance.ConditionNew, maintenance.StatusAvailable,
		"", "", "", "true", "2023-01-20",
	}
	exampleService = []string{
		"ejemplo_id_servicio_1", "000000000001", "ejemplo_id_cliente_1", "ejemplo_id_equipo_1",
		maintenance.ServicePreventive, maintenance.EquipmentCoffeeMachine, "2024-03-10", "",
		maintenance.ServiceStatusCompleted, `{"Limpieza de duchas":true}`,
		`[{"quantity":1,"description":"Empaque de grupo","price":5.00,"included":true}]`,
		"Mantenimiento preventivo rutinario", "Revisar presión en 6 meses", "Carlos Hernandez Valencia",
	}
)

// entityTable возвращает шапку и строки сущности.
func (s *TransferService) entityTable(ctx context.Context, entity string) ([]string, [][]string, error) {
	switch entity {
	case EntityClients:
		clients, err := s.clientRepo.FindAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(clients))
		for i := range clients {
			rows = append(rows, clientRecord(&clients[i]))
		}
		return clientHeaders, rows, nil
	case EntityEquipment:
		equipment, err := s.equipmentRepo.FindAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(equipment))
		for i := range equipment {
			rows = append(rows, equipmentRecord(&equipment[i]))
		}
		return equipmentHeaders, rows, nil
	case EntityServices:
		services, err := s.serviceRepo.FindAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(services))
		for i := range services {
			rows = append(rows, serviceRecord(&services[i]))
		}
		return serviceHeaders, rows, nil
	}
	return nil, nil, apperrors.ErrUnknownEntity
}

func exampleRow(entity string) []string {
	switch entity {
	case EntityClients:
		return exampleClient
	case EntityEquipment:
		return exampleEquipment
	}
	return exampleService
}

// quoteCSV всегда берёт значение в кавычки и удваивает кавычки внутри.
func quoteCSV(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func encodeCSV(headers []string, rows [][]string) []byte {
	lines := make([]string, 0, len(rows)+1)
	for _, record := range append([][]string{headers}, rows...) {
		quoted := make([]string, len(record))
		for i, v := range record {
			quoted[i] = quoteCSV(v)
		}
		lines = append(lines, strings.Join(quoted, ","))
	}
	return []byte(strings.Join(lines, "\n"))
}

// Template - CSV с текущими данными сущности или строкой-примером, если таблица пуста.
func (s *TransferService) Template(ctx context.Context, entity string) (string, []byte, error) {
	if _, err := checkPermission(ctx, s.logger, authz.TransferManage); err != nil {
		return "", nil, err
	}
	headers, rows, err := s.entityTable(ctx, entity)
	if err != nil {
		return "", nil, err
	}
	if len(rows) == 0 {
		rows = [][]string{exampleRow(entity)}
	}
	return fmt.Sprintf("plantilla_%s.csv", entity), encodeCSV(headers, rows), nil
}

// Export собирает книгу из трёх листов: клиенты, оборудование, визиты.
func (s *TransferService) Export(ctx context.Context) (*excelize.File, error) {
	if _, err := checkPermission(ctx, s.logger, authz.TransferManage); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, entity := range []string{EntityClients, EntityEquipment, EntityServices} {
		headers, rows, err := s.entityTable(ctx, entity)
		if err != nil {
			s.logger.Error("Ошибка выгрузки", zap.String("entity", entity), zap.Error(err))
			return nil, err
		}
		sheet := sheetNames[entity]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeSheet(f, sheet, headers, rows, style); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i, record := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := record
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// ==================== Загрузка ====================

type importRow struct {
	num    int
	values map[string]string
}

func (r importRow) get(key string) (string, bool) {
	v, ok := r.values[key]
	return strings.TrimSpace(v), ok
}

func (r importRow) str(key string) string {
	v, _ := r.get(key)
	return v
}

var headerReplacer = strings.NewReplacer(" ", "", "_", "", "-", "", "\ufeff", "")

// normalizeHeader: "purchaseDate", "purchase_date" и "Purchase Date" дают один ключ.
func normalizeHeader(h string) string {
	return strings.ToLower(headerReplacer.Replace(strings.TrimSpace(h)))
}

func readTable(entity, fileName string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, apperrors.NewInvalidInputError("No se pudo leer el archivo Excel")
		}
		defer f.Close()
		sheet := sheetNames[entity]
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			sheet = f.GetSheetList()[0]
		}
		return f.GetRows(sheet)
	case ".csv":
		reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, apperrors.NewInvalidInputError("No se pudo leer el archivo CSV: %v", err)
		}
		return rows, nil
	}
	return nil, apperrors.NewInvalidInputError("Formato de archivo no soportado: %s", filepath.Ext(fileName))
}

// parseRows ищет шапку среди первых строк и превращает остальные строки в importRow.
func parseRows(entity string, table [][]string) ([]importRow, error) {
	marker := headerMarkers[entity]
	headerIdx := -1
	var columns []string
	for i := 0; i < len(table) && i < headerScanRows; i++ {
		normalized := make([]string, len(table[i]))
		hasID, hasMarker := false, false
		for j, cell := range table[i] {
			normalized[j] = normalizeHeader(cell)
			hasID = hasID || normalized[j] == "id"
			hasMarker = hasMarker || normalized[j] == marker
		}
		if hasID && hasMarker {
			headerIdx, columns = i, normalized
			break
		}
	}
	if headerIdx == -1 {
		return nil, apperrors.NewInvalidInputError("No se encontró la fila de encabezados (se esperan las columnas 'id' y '%s')", marker)
	}

	var rows []importRow
	for i := headerIdx + 1; i < len(table); i++ {
		values := make(map[string]string, len(columns))
		blank := true
		for j, key := range columns {
			if key == "" {
				continue
			}
			v := ""
			if j < len(table[i]) {
				v = table[i][j]
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			values[key] = v
		}
		if blank {
			continue
		}
		rows = append(rows, importRow{num: i + 1, values: values})
	}
	return rows, nil
}

func (s *TransferService) Import(ctx context.Context, entity, fileName string, data []byte) (*dto.ImportResultDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.TransferManage); err != nil {
		return nil, err
	}
	upsert, ok := map[string]func(context.Context, pgx.Tx, importRow) (bool, error){
		EntityClients:   s.importClient,
		EntityEquipment: s.importEquipment,
		EntityServices:  s.importService,
	}[entity]
	if !ok {
		return nil, apperrors.ErrUnknownEntity
	}

	table, err := readTable(entity, fileName, data)
	if err != nil {
		return nil, err
	}
	rows, err := parseRows(entity, table)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultDTO{Entity: entity, Total: len(rows), Errors: []dto.ImportRowErrorDTO{}}
	if archived, err := s.storage.Save(bytes.NewReader(data), fileName, config.UploadContexts[TransferUploadContext].PathPrefix); err != nil {
		s.logger.Warn("Не удалось сохранить копию файла импорта", zap.String("file", fileName), zap.Error(err))
	} else {
		result.ArchivedAs = archived
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, row := range rows {
			var created bool
			rowErr := s.savepoint(ctx, tx, func(sp pgx.Tx) (err error) {
				created, err = upsert(ctx, sp, row)
				return err
			})
			switch {
			case rowErr != nil:
				result.Failed++
				result.Errors = append(result.Errors, dto.ImportRowErrorDTO{
					Row:     row.num,
					ID:      row.str("id"),
					Message: s.rowErrorMessage(rowErr),
				})
			case created:
				result.Created++
			default:
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка транзакции импорта", zap.String("entity", entity), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Импорт завершён",
		zap.String("entity", entity),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *TransferService) rowErrorMessage(err error) string {
	var invalid *apperrors.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return invalid.Message
	case errors.Is(err, apperrors.ErrFolioTaken):
		return "El folio ya existe"
	case errors.Is(err, apperrors.ErrConflict):
		return "Registro duplicado"
	}
	s.logger.Error("Ошибка сохранения строки импорта", zap.Error(err))
	return "Error al guardar la fila"
}

// --- разбор полей ---

func setString(r importRow, key string, dst *string) {
	if v, ok := r.get(key); ok {
		*dst = v
	}
}

func setNullString(r importRow, key string, dst *null.String) {
	if v, ok := r.get(key); ok {
		*dst = nullString(v)
	}
}

func setBool(r importRow, key string, dst *bool) error {
	v, ok := r.get(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return apperrors.NewInvalidInputError("Valor booleano inválido en '%s': %s", key, v)
	}
	*dst = b
	return nil
}

func setNullDate(r importRow, key string, dst *null.Time) error {
	v, ok := r.get(key)
	if !ok {
		return nil
	}
	parsed, err := parseDateField(key, v)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func checkEnum(field, value string, allowed []string) error {
	if value != "" && !maintenance.Contains(allowed, value) {
		return apperrors.NewInvalidInputError("Valor inválido en '%s': %s", field, value)
	}
	return nil
}

// --- клиенты ---

func (s *TransferService) importClient(ctx context.Context, tx pgx.Tx, r importRow) (bool, error) {
	c := &entities.Client{ID: r.str("id"), IsActive: true}
	existing := false
	if c.ID != "" {
		found, err := s.clientRepo.FindByID(ctx, tx, c.ID)
		if err == nil {
			c, existing = found, true
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}
	} else {
		c.ID = uuid.NewString()
	}

	setString(r, "name", &c.Name)
	setString(r, "contact", &c.Contact)
	setString(r, "phone", &c.Phone)
	setString(r, "email", &c.Email)
	setString(r, "address", &c.Address)
	setNullString(r, "zone", &c.Zone)
	setString(r, "notes", &c.Notes)
	if err := setBool(r, "isactive", &c.IsActive); err != nil {
		return false, err
	}
	if c.Name == "" {
		return false, apperrors.NewInvalidInputError("El nombre del cliente es obligatorio")
	}
	c.Phone = utils.NormalizePhone(c.Phone)

	if existing {
		return false, s.clientRepo.Update(ctx, tx, c)
	}
	return true, s.clientRepo.Create(ctx, tx, c)
}

// --- оборудование ---

func (s *TransferService) importEquipment(ctx context.Context, tx pgx.Tx, r importRow) (bool, error) {
	e := &entities.Equipment{ID: r.str("id")}
	existing := false
	if e.ID != "" {
		found, err := s.equipmentRepo.FindByID(ctx, tx, e.ID)
		if err == nil {
			e, existing = found, true
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}
	} else {
		e.ID = uuid.NewString()
	}

	setString(r, "type", &e.Type)
	setString(r, "brand", &e.Brand)
	setString(r, "model", &e.Model)
	setString(r, "serial", &e.Serial)
	setString(r, "invoicenumber", &e.InvoiceNumber)
	setString(r, "currentcondition", &e.CurrentCondition)
	setString(r, "currentstatus", &e.CurrentStatus)
	setString(r, "notes", &e.Notes)
	setNullString(r, "lastservicetype", &e.LastServiceType)
	if _, ok := r.get("client"); ok {
		setNullString(r, "client", &e.Client)
	} else {
		setNullString(r, "clientid", &e.Client)
	}
	if err := setNullDate(r, "purchasedate", &e.PurchaseDate); err != nil {
		return false, err
	}
	if err := setNullDate(r, "lastservice", &e.LastService); err != nil {
		return false, err
	}
	if err := setNullDate(r, "installationdate", &e.InstallationDate); err != nil {
		return false, err
	}
	if err := setBool(r, "isnewinstallation", &e.IsNewInstallation); err != nil {
		return false, err
	}

	if e.Brand == "" || e.Model == "" {
		return false, apperrors.NewInvalidInputError("La marca y el modelo son obligatorios")
	}
	if e.Type == "" {
		return false, apperrors.NewInvalidInputError("El tipo de equipo es obligatorio")
	}
	if err := checkEnum("type", e.Type, maintenance.EquipmentTypes); err != nil {
		return false, err
	}
	if err := checkEnum("currentStatus", e.CurrentStatus, maintenance.Conditions); err != nil {
		return false, err
	}
	if err := checkEnum("lastServiceType", e.LastServiceType.String, maintenance.LastServiceTypes); err != nil {
		return false, err
	}
	if e.Client.Valid {
		ok, err := s.clientRepo.Exists(ctx, tx, e.Client.String)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, apperrors.NewInvalidInputError("El cliente %s no existe", e.Client.String)
		}
	}
	// Колонка status в файле игнорируется.
	e.Status = maintenance.DeriveStatus(e.Client.String)

	if existing {
		return false, s.equipmentRepo.Update(ctx, tx, e)
	}
	return true, s.equipmentRepo.Create(ctx, tx, e)
}

// --- визиты ---

func (s *TransferService) importService(ctx context.Context, tx pgx.Tx, r importRow) (bool, error) {
	svc := &entities.Service{ID: r.str("id"), Status: maintenance.ServiceStatusPending}
	existing := false
	if svc.ID != "" {
		found, err := s.serviceRepo.FindByID(ctx, tx, svc.ID)
		if err == nil {
			svc, existing = found, true
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}
	} else {
		svc.ID = uuid.NewString()
	}

	setString(r, "folio", &svc.Folio)
	setString(r, "clientid", &svc.ClientID)
	setString(r, "equipmentid", &svc.EquipmentID)
	setString(r, "type", &svc.Type)
	setString(r, "machinetype", &svc.MachineType)
	setString(r, "status", &svc.Status)
	setString(r, "description", &svc.Description)
	setString(r, "nextservicecomments", &svc.NextServiceComments)
	setString(r, "technician", &svc.Technician)
	setString(r, "assignedtechnician", &svc.AssignedTechnician)

	if v, ok := r.get("datestart"); ok {
		start, err := parseDateField("dateStart", v)
		if err != nil {
			return false, err
		}
		svc.DateStart = start.Time
	}
	if err := setNullDate(r, "dateend", &svc.DateEnd); err != nil {
		return false, err
	}
	if v, ok := r.get("checklist"); ok && v != "" {
		checklist := map[string]bool{}
		if err := json.Unmarshal([]byte(v), &checklist); err != nil {
			return false, apperrors.NewInvalidInputError("JSON inválido en 'checklist'")
		}
		svc.Checklist = checklist
	}
	if v, ok := r.get("partsused"); ok && v != "" {
		var parts []entities.Part
		if err := json.Unmarshal([]byte(v), &parts); err != nil {
			return false, apperrors.NewInvalidInputError("JSON inválido en 'partsUsed'")
		}
		svc.PartsUsed = parts
	}

	if svc.Status == "" {
		svc.Status = maintenance.ServiceStatusPending
	}
	if svc.Type == "" {
		return false, apperrors.NewInvalidInputError("El tipo de servicio es obligatorio")
	}
	if svc.ClientID == "" || svc.EquipmentID == "" {
		return false, apperrors.NewInvalidInputError("clientId y equipmentId son obligatorios")
	}
	if svc.DateStart.IsZero() {
		return false, apperrors.NewInvalidInputError("La fecha de inicio es obligatoria")
	}
	if err := checkEnum("type", svc.Type, maintenance.ServiceTypes); err != nil {
		return false, err
	}
	if err := checkEnum("status", svc.Status, maintenance.ServiceStatuses); err != nil {
		return false, err
	}
	ok, err := s.clientRepo.Exists(ctx, tx, svc.ClientID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperrors.NewInvalidInputError("El cliente %s no existe", svc.ClientID)
	}
	eq, err := s.equipmentRepo.FindByID(ctx, tx, svc.EquipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewInvalidInputError("El equipo %s no existe", svc.EquipmentID)
		}
		return false, err
	}
	if svc.MachineType == "" {
		svc.MachineType = eq.Type
	}
	if svc.Checklist == nil {
		svc.Checklist = maintenance.NewChecklist(maintenance.ChecklistTemplate(svc.MachineType, svc.Type))
	}
	if svc.Technician == "" {
		svc.Technician = maintenance.UnknownCreator
	}
	if svc.AssignedTechnician == "" {
		svc.AssignedTechnician = svc.Technician
	}
	if svc.Folio == "" {
		svc.Folio = s.folios.Next()
	}

	if existing {
		return false, s.serviceRepo.Update(ctx, tx, svc)
	}
	return true, s.serviceRepo.Create(ctx, tx, svc)
}
