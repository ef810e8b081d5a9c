//go:generate go run go.uber.org/mock/mockgen -source=customer.go -destination=../mocks/mock_customer_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"coshop-lab/errors"
)

type ICustomerRepository interface {
	CreateCustomer(email, displayName, hashedPassword string) (uuid.UUID, error)
	GetCustomerByEmail(email string) (Customer, error)
}

type CustomerRepository struct {
	db *badger.DB
}

func NewCustomerRepository(db *badger.DB) ICustomerRepository {
	return &CustomerRepository{db: db}
}

// Customer is the stored representation of a storefront account.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateCustomer persists a new customer keyed by email and returns the
// generated id. The email is the uniqueness anchor.
func (c CustomerRepository) CreateCustomer(email, displayName, hashedPassword string) (uuid.UUID, error) {
	customer := Customer{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(customer)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal failed: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		key := []byte("customer:" + email)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrCustomerAlreadyExists
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return customer.ID, nil
}

func (c CustomerRepository) GetCustomerByEmail(email string) (Customer, error) {
	var customer Customer
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("customer:" + email))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrCustomerNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &customer)
		})
	})
	if err != nil {
		return Customer{}, err
	}
	return customer, nil
}
