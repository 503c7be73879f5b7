package domain

import "errors"

var (
	ErrSaleNotFound     = errors.New("sale submission not found")
	ErrTierNotFound     = errors.New("card tier not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrBatchNotFound    = errors.New("payment batch not found")

	ErrSaleNotPending       = errors.New("sale is not pending review")
	ErrSaleWithoutTier      = errors.New("sale has no resolvable card tier")
	ErrDuplicateOrdinal     = errors.New("duplicate requirement ordinal within tier")
	ErrTierAlreadyCompleted = errors.New("card tier already completed for vendor")
	ErrBatchNotCancelable   = errors.New("batch contains settled reports and cannot be cancelled")
	ErrNothingToSettle      = errors.New("no account is eligible for a new payment batch")
)
