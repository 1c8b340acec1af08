package domain

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrDealNotFound        = errors.New("deal not found")
	ErrRequestNotFound     = errors.New("withdrawal request not found")
	ErrSelfTrade           = errors.New("cannot join own deal")
	ErrAlreadyJoined       = errors.New("already joined this deal")
	ErrSlotTaken           = errors.New("another buyer already joined")
	ErrForbidden           = errors.New("operation not allowed for this actor")
	ErrAlreadyProcessed    = errors.New("deal already processed")
	ErrAlreadyCompleted    = errors.New("withdrawal request already completed")
	ErrNoPayoutDestination = errors.New("no wallet or card bound")
	ErrBelowMinimum        = errors.New("balance below withdrawal minimum")
	ErrInvalidAmount       = errors.New("amount below currency minimum")
	ErrEmptyDescription    = errors.New("description must not be empty")
	ErrDealIDCollision     = errors.New("deal id collision")
)
