package member

import (
	"errors"
	"strings"
	"time"

	"github.com/example/bookshop/internal/domain/address"
	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("member not found")
	ErrDuplicateName = errors.New("member name already taken")
	ErrInvalidName   = errors.New("member name must not be empty")
)

// Member is an aggregate root. Orders reference the member by id; the member
// side of that relationship is informational only and is not loaded here.
type Member struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Address   address.Address `json:"address"`
	CreatedAt time.Time       `json:"created_at"`
}

// New creates a member with a fresh identity. Email is optional and only
// used for order notifications.
func New(name, email string, addr address.Address) (*Member, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	return &Member{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Address:   addr,
		CreatedAt: time.Now(),
	}, nil
}
