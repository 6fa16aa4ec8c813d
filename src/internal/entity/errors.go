package entity

import "errors"

var (
	// ErrInvalidAmount rejects non-positive amounts before any mutation.
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrInsufficientBalance means the debit would drive the balance
	// below zero. The balance is left unchanged.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRequestNotFound means the funds request id is unknown.
	ErrRequestNotFound = errors.New("funds request not found")

	// ErrRequestNotPending guards against double-processing: the request
	// is already approved or rejected.
	ErrRequestNotPending = errors.New("funds request already processed")

	// ErrWalletNotFound is a data-integrity failure: the owning user has
	// no wallet row and one could not be created.
	ErrWalletNotFound = errors.New("wallet not found")
)
