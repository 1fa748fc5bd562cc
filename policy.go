/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityregistry

import (
	"github.com/suparena/entityregistry/errors"
	"github.com/suparena/entityregistry/storagemodels"
)

// TransferPolicy decides whether caller may move entity to newOwner.
// It runs after the existence check and before any mutation.
type TransferPolicy interface {
	AuthorizeTransfer(caller storagemodels.Identity, entity storagemodels.Entity, newOwner storagemodels.Identity) error
}

// TransferPolicyFunc adapts a function to TransferPolicy.
type TransferPolicyFunc func(caller storagemodels.Identity, entity storagemodels.Entity, newOwner storagemodels.Identity) error

func (f TransferPolicyFunc) AuthorizeTransfer(caller storagemodels.Identity, entity storagemodels.Entity, newOwner storagemodels.Identity) error {
	return f(caller, entity, newOwner)
}

var (
	// AllowAnyCaller lets any authenticated caller transfer any entity. This is the default.
	AllowAnyCaller TransferPolicy = TransferPolicyFunc(func(storagemodels.Identity, storagemodels.Entity, storagemodels.Identity) error {
		return nil
	})

	// RequireOwner only lets the current owner transfer an entity.
	RequireOwner TransferPolicy = TransferPolicyFunc(func(caller storagemodels.Identity, entity storagemodels.Entity, _ storagemodels.Identity) error {
		if caller != entity.Owner {
			return errors.NewUnauthorizedError(string(caller), string(entity.Owner), entity.ID)
		}
		return nil
	})
)

// Policy names accepted by ParseTransferPolicy.
const (
	PolicyAny   = "any"
	PolicyOwner = "owner"
)

// ParseTransferPolicy maps a configuration name to a TransferPolicy.
func ParseTransferPolicy(name string) (TransferPolicy, error) {
	switch name {
	case "", PolicyAny:
		return AllowAnyCaller, nil
	case PolicyOwner:
		return RequireOwner, nil
	}
	return nil, errors.NewValidationError("transferPolicy", "must be \"any\" or \"owner\", got \""+name+"\"")
}
