package dto

type CreateClientDTO struct {
	Name     string `json:"name" validate:"required,max=200"`
	Contact  string `json:"contact" validate:"omitempty,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Email    string `json:"email" validate:"omitempty,custom_email"`
	Address  string `json:"address" validate:"omitempty,max=500"`
	IsActive *bool  `json:"is_active"`
	Zone     string `json:"zone" validate:"omitempty,max=100"`
	Notes    string `json:"notes"`
}

type UpdateClientDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Contact  *string `json:"contact,omitempty" validate:"omitempty,max=200"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email    *string `json:"email,omitempty" validate:"omitempty,custom_email"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
	IsActive *bool   `json:"is_active,omitempty"`
	Zone     *string `json:"zone,omitempty" validate:"omitempty,max=100"`
	Notes    *string `json:"notes,omitempty"`
}

type ClientDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	IsActive  bool   `json:"is_active"`
	Zone      string `json:"zone"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ClientDetailDTO struct {
	ClientDTO
	Equipment []EquipmentDTO `json:"equipment"`
	Services  []ServiceDTO   `json:"services"`
}

type ShortClientDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
