package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

// Client is the billed party. Invoices copy these fields into a snapshot at
// creation time; editing a client never rewrites past invoices.
type Client struct {
	ID        uuid.UUID
	Name      string
	Business  string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
