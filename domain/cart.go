package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCartName mirrors the single named cart the storefront works with.
const DefaultCartName = "Default"

type CartLine struct {
	Code        string  `json:"code"`
	DisplayName string  `json:"displayName"`
	Quantity    int     `json:"quantity"`
	PlacedPrice float64 `json:"placedPrice"`
}

// Cart is the snapshot broadcast to a group on refreshCart. It is also the
// stored shape in the order repository.
type Cart struct {
	CustomerID uuid.UUID  `json:"customerId"`
	Name       string     `json:"name"`
	Lines      []CartLine `json:"lines"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// AddLine merges a product into the cart, bumping quantity when the code is
// already present.
func (c *Cart) AddLine(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].Code == line.Code {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}
