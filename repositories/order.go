package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"coshop-lab/contract"
	"coshop-lab/domain"
	"coshop-lab/errors"
)

// OrderRepository stores named carts per customer in BadgerDB and notifies
// registered callbacks after every mutation. It is the local stand-in for
// the commerce platform's order subsystem, reduced to the surface the
// co-shopping core actually consumes.
type OrderRepository struct {
	db  *badger.DB
	log *slog.Logger

	mu        sync.RWMutex
	callbacks []contract.OrderCallback
}

func NewOrderRepository(db *badger.DB, log *slog.Logger) *OrderRepository {
	return &OrderRepository{db: db, log: log}
}

// cartKey is "order:cart:{customer}:{name}". One key per named cart, the
// snapshot is always overwritten whole.
func cartKey(customerID uuid.UUID, name string) []byte {
	return []byte(fmt.Sprintf("order:cart:%s:%s", customerID, name))
}

// RegisterCallback subscribes a mutation observer. Callbacks run after the
// transaction commits, on the saving goroutine; observers that need to do
// real work must hand it off themselves.
func (o *OrderRepository) RegisterCallback(cb contract.OrderCallback) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.callbacks = append(o.callbacks, cb)
}

func (o *OrderRepository) LoadCart(customerID uuid.UUID, name string) (domain.Cart, error) {
	var cart domain.Cart
	err := o.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cartKey(customerID, name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrCartNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cart)
		})
	})
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// SaveCart persists the snapshot and fires Created or Updated depending on
// whether the cart existed. A callback failure cannot fail the save, the
// transaction is already committed when callbacks run.
func (o *OrderRepository) SaveCart(cart domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	kind := domain.MutationUpdated
	err = o.db.Update(func(txn *badger.Txn) error {
		key := cartKey(cart.CustomerID, cart.Name)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			kind = domain.MutationCreated
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	o.notify(domain.OrderMutation{
		Kind: kind,
		Reference: domain.OrderReference{
			Type:       domain.OrderTypeCart,
			OrderID:    uuid.New(),
			CustomerID: cart.CustomerID,
			Name:       cart.Name,
		},
	})
	return nil
}

// DeleteCart removes the snapshot, announcing Deleting before and Deleted
// after, mirroring the two-phase hooks of the original order subsystem.
func (o *OrderRepository) DeleteCart(customerID uuid.UUID, name string) error {
	ref := domain.OrderReference{
		Type:       domain.OrderTypeCart,
		CustomerID: customerID,
		Name:       name,
	}
	o.notify(domain.OrderMutation{Kind: domain.MutationDeleting, Reference: ref})

	err := o.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(cartKey(customerID, name))
	})
	if err != nil {
		return err
	}

	o.notify(domain.OrderMutation{Kind: domain.MutationDeleted, Reference: ref})
	return nil
}

func (o *OrderRepository) notify(mutation domain.OrderMutation) {
	o.mu.RLock()
	callbacks := o.callbacks
	o.mu.RUnlock()

	for _, cb := range callbacks {
		cb.OnMutated(mutation)
	}
}
