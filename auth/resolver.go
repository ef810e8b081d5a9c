package auth

import (
	"fmt"

	"github.com/google/uuid"

	"coshop-lab/domain"
)

// ResolveGroupKey derives the logical group identity for a connection.
// Resolution order:
//  1. a decodable GuestCartAccess cookie wins, the guest shadows its host,
//  2. otherwise the authenticated customer is its own group,
//  3. otherwise the connection gets a fresh isolated group, so anonymous
//     strangers never end up broadcasting to each other.
//
// Cookie decode failure degrades silently to case 2/3.
func ResolveGroupKey(ctx domain.ConnectionContext) domain.GroupKey {
	if access, ok := domain.DecodeGuestAccess(ctx.GuestCookie); ok {
		return domain.GroupKey(access.GuestOfCustomerID.String())
	}

	if ctx.CustomerID != uuid.Nil {
		return domain.GroupKey(ctx.CustomerID.String())
	}

	return domain.GroupKey(fmt.Sprintf("solo:%s", ctx.ConnectionID))
}
