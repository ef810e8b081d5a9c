package services

import (
	"github.com/google/uuid"

	"coshop-lab/contract"
	"coshop-lab/domain"
	"coshop-lab/errors"
	"coshop-lab/repositories"
)

type ICartService interface {
	GetCart(customerID uuid.UUID) (domain.Cart, error)
	AddToCart(customerID uuid.UUID, productCode string) (domain.Cart, error)
	AddToFriendsCart(email, productCode string) (domain.Cart, error)
}

// CartService mutates carts through the order repository, which is what
// makes every mutation observable by the cart-change notifier.
type CartService struct {
	orders    contract.IOrderRepository
	customers repositories.ICustomerRepository
}

func NewCartService(orders contract.IOrderRepository, customers repositories.ICustomerRepository) *CartService {
	return &CartService{orders: orders, customers: customers}
}

func (s *CartService) GetCart(customerID uuid.UUID) (domain.Cart, error) {
	return s.orders.LoadCart(customerID, domain.DefaultCartName)
}

// AddToCart loads (or starts) the customer's default cart, merges the
// product and saves. Catalog lookups are platform territory, the line
// carries the code as its display name.
func (s *CartService) AddToCart(customerID uuid.UUID, productCode string) (domain.Cart, error) {
	cart, err := s.orders.LoadCart(customerID, domain.DefaultCartName)
	if err != nil {
		if err != errors.ErrCartNotFound {
			return domain.Cart{}, err
		}
		cart = domain.Cart{CustomerID: customerID, Name: domain.DefaultCartName}
	}

	cart.AddLine(domain.CartLine{Code: productCode, DisplayName: productCode, Quantity: 1})

	if err := s.orders.SaveCart(cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// AddToFriendsCart is the endpoint the broadcast addToCart event targets:
// audience clients post the presenter-supplied email and product code here,
// and the mutation lands in the cart of the customer owning that email.
func (s *CartService) AddToFriendsCart(email, productCode string) (domain.Cart, error) {
	customer, err := s.customers.GetCustomerByEmail(email)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.AddToCart(customer.ID, productCode)
}
