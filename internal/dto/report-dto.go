package dto

type ReportQueryDTO struct {
	Type  string `query:"type" validate:"required,oneof=servicios equipos clientes errorLogs"`
	Range string `query:"range" validate:"omitempty,oneof=dia semana mes trimestre ano"`
}

type ReportItemDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

type ErrorLogDTO struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Component string `json:"component"`
	User      string `json:"user"`
	URL       string `json:"url"`
	UserAgent string `json:"user_agent"`
	Stack     string `json:"stack"`
	Timestamp string `json:"timestamp"`
}

type ReportDTO struct {
	Type      string          `json:"type"`
	Range     string          `json:"range,omitempty"`
	Items     []ReportItemDTO `json:"items"`
	ErrorLogs []ErrorLogDTO   `json:"error_logs,omitempty"`
}

type CreateErrorLogDTO struct {
	Message   string `json:"message" validate:"required,max=4000"`
	Component string `json:"component" validate:"omitempty,max=200"`
	URL       string `json:"url" validate:"omitempty,max=2000"`
	UserAgent string `json:"user_agent" validate:"omitempty,max=500"`
	Stack     string `json:"stack"`
}
