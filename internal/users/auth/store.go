// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given userid.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *User: Hydrated entity, nil when absent
		  - error: Storage retrieval failures
	*/
	FindByID(context context.Context, userID string) (*User, error)

	/*
		Create appends a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - bool: false when the userid is already taken
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) (bool, error)

	/*
		Update replaces the stored account with the same userid.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - bool: false when no such account exists
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) (bool, error)

	/*
		Delete removes the account with the given userid.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - bool: false when no such account exists
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID string) (bool, error)

	/*
		List returns every account in file order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []User: All accounts
		  - error: Storage retrieval failures
	*/
	List(context context.Context) ([]User, error)
}
