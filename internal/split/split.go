// Package split computes per-participant share amounts for a group expense.
//
// All amounts are integer minor units (paise/cents), so the conservation
// invariant (the shares of an expense always add up to its total) is
// checked with exact equality instead of a floating tolerance.
package split

import (
	"fmt"

	apperrors "splitledger/internal/errors"
)

// Share is one participant's computed portion of an expense total.
type Share struct {
	UserID uint
	Amount int64
}

// Equal divides total across the given participants plus the payer, one
// share each. The integer remainder of total/(N+1) is spread one minor unit
// at a time over the leading shares so the shares sum to total exactly.
// The payer's own share is always last in the result.
func Equal(total int64, payerID uint, participantIDs []uint) ([]Share, error) {
	if total <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense total must be greater than zero")
	}
	if len(participantIDs) == 0 {
		return nil, apperrors.ErrNoParticipants
	}
	if err := checkParticipants(payerID, participantIDs); err != nil {
		return nil, err
	}

	n := int64(len(participantIDs) + 1) // +1 for the payer's own share
	base := total / n
	remainder := total % n

	shares := make([]Share, 0, n)
	for _, id := range participantIDs {
		shares = append(shares, Share{UserID: id, Amount: base})
	}
	shares = append(shares, Share{UserID: payerID, Amount: base})

	for i := int64(0); i < remainder; i++ {
		shares[i].Amount++
	}
	return shares, nil
}

// Custom takes explicit per-participant amounts and derives the payer's
// share as the remainder total - sum(explicit). Explicit shares that leave
// no positive remainder for the payer are rejected: the payer is always a
// participant with their own portion of the expense.
func Custom(total int64, payerID uint, entries []Share) ([]Share, error) {
	if total <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense total must be greater than zero")
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNoParticipants
	}

	ids := make([]uint, 0, len(entries))
	var sum int64
	for _, e := range entries {
		if e.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("share amount for user %d must be greater than zero", e.UserID))
		}
		ids = append(ids, e.UserID)
		sum += e.Amount
	}
	if err := checkParticipants(payerID, ids); err != nil {
		return nil, err
	}

	remainder := total - sum
	if remainder <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrShareMismatch,
			"participant shares must leave a positive remainder for the payer's own share")
	}

	shares := make([]Share, 0, len(entries)+1)
	shares = append(shares, entries...)
	shares = append(shares, Share{UserID: payerID, Amount: remainder})
	return shares, nil
}

// Validate enforces the conservation invariant before persistence:
// the shares must sum to total, exactly.
func Validate(total int64, shares []Share) error {
	var sum int64
	for _, s := range shares {
		sum += s.Amount
	}
	if sum != total {
		return apperrors.WithMessage(apperrors.ErrShareMismatch,
			fmt.Sprintf("shares sum to %d, expense total is %d", sum, total))
	}
	return nil
}

func checkParticipants(payerID uint, ids []uint) error {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == payerID {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "the payer is added automatically and cannot be listed as a participant")
		}
		if _, dup := seen[id]; dup {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("duplicate participant %d", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}
