package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

// MemoryProvider хранит пользователей в памяти. Пароли - bcrypt-хеши.
type MemoryProvider struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

func NewMemoryProvider(users []entities.User) *MemoryProvider {
	p := &MemoryProvider{users: make(map[string]entities.User, len(users))}
	for _, u := range users {
		p.users[normalizeUsername(u.Username)] = u
	}
	return p
}

// LoadMemoryProvider читает JSON-массив пользователей (поле password - bcrypt-хеш).
func LoadMemoryProvider(path string) (*MemoryProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл пользователей: %w", err)
	}
	var records []struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
		IsActive *bool  `json:"is_active"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("неверный формат файла пользователей: %w", err)
	}

	users := make([]entities.User, 0, len(records))
	for _, r := range records {
		active := r.IsActive == nil || *r.IsActive
		id := r.ID
		if id == "" {
			id = r.Username
		}
		users = append(users, entities.User{ID: id, Username: r.Username, FullName: r.FullName, Role: r.Role, IsActive: active, Password: r.Password})
	}
	return NewMemoryProvider(users), nil
}

func (p *MemoryProvider) ListTechnicians(_ context.Context) ([]entities.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]entities.User, 0, len(p.users))
	for _, u := range p.users {
		if u.IsActive && maintenance.Contains(TechnicianRoles, u.Role) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (p *MemoryProvider) Authenticate(_ context.Context, username, password string) (*entities.User, error) {
	p.mu.RLock()
	u, ok := p.users[normalizeUsername(username)]
	p.mu.RUnlock()

	if !ok || !u.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(u.Password, password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &u, nil
}

func (p *MemoryProvider) FindByID(_ context.Context, id string) (*entities.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, u := range p.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}
