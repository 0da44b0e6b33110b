// Package guard provides the constructor-guard pattern used by value objects,
// entities, and commands to ensure they are only created through their
// designated constructor functions. A zero-value guard fails validation, which
// makes accidentally bypassed constructors detectable at the first use site.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is
// provided. This ensures validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard tracks whether the embedding object was created through its
// constructor. Embed it as a private field and set it with NewConstructorGuard
// inside the constructor; the zero value fails Validate.
//
// Example:
//
//	type Money struct {
//	    amount int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int) (Money, error) {
//	    return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was created through its constructor.
// Otherwise it returns notConstructedErr, or ErrDefaultConstructorGuard when
// notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}

	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}

	return notConstructedErr
}
