package services

import (
	"fmt"
	"time"

	"coshop-lab/auth"
	"coshop-lab/errors"
	"coshop-lab/repositories"
)

type IAuthService interface {
	Login(email, password string) (Token, error)
	Register(email, displayName, password string) (Token, error)
}

type AuthService struct {
	customerRepository repositories.ICustomerRepository
	tokenDuration      time.Duration
}

type Token string

func NewAuthService(repo repositories.ICustomerRepository, tokenDuration time.Duration) IAuthService {
	return &AuthService{customerRepository: repo, tokenDuration: tokenDuration}
}

func (s *AuthService) Register(email, displayName, password string) (Token, error) {
	valReq := auth.RegisterRequest{
		Email:       email,
		DisplayName: displayName,
		Password:    password,
	}

	// 1. Validate business rules (email format, password complexity)
	// We check this before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// 2. Hash the password using Argon2id
	// Done in the service layer to keep the repository unaware of plain passwords.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist the customer with the generated hash
	customerID, err := s.customerRepository.CreateCustomer(email, displayName, hashedPassword)
	if err != nil {
		return "", err // Will propagate ErrCustomerAlreadyExists if email is taken
	}

	// 4. Generate the initial session token
	token, err := auth.GenerateToken(customerID, displayName, s.tokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	return Token(token), nil
}

func (s *AuthService) Login(email, password string) (Token, error) {
	// 1. Retrieve the customer by email from storage
	customer, err := s.customerRepository.GetCustomerByEmail(email)
	if err != nil {
		// Generic error to prevent account enumeration attacks
		return "", errors.ErrInvalidCredentials
	}

	// 2. Compare the provided password with the stored hash
	match, err := auth.ComparePassword(password, customer.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	// 3. Issue the JWT token
	token, err := auth.GenerateToken(customer.ID, customer.DisplayName, s.tokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	return Token(token), nil
}
