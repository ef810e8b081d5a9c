package errors

import "fmt"

var (
	ErrWorkerPanic           = fmt.Errorf("worker panic")
	ErrCustomerAlreadyExists = fmt.Errorf("customer already exists")
	ErrCustomerNotFound      = fmt.Errorf("customer not found")
	ErrCartNotFound          = fmt.Errorf("cart not found")
	ErrInvalidCredentials    = fmt.Errorf("invalid credentials")
	ErrInvalidPassword       = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration       = fmt.Errorf("token generation failed")
	ErrUnknownMethod         = fmt.Errorf("unknown method")
	ErrNotInGroup            = fmt.Errorf("connection is not a member of the group")
	ErrHubStopped            = fmt.Errorf("hub is stopped")
)
