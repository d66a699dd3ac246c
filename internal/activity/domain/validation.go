package domain

import "strings"

// ValidateCheckout rejects malformed checkouts before any write happens.
func ValidateCheckout(req CheckoutRequest) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return ErrInvalidClientName
	}
	if len(req.Items) == 0 {
		return ErrEmptyItems
	}

	switch req.PaymentType {
	case PaymentTypeDirect, PaymentTypeInstallment, PaymentTypePoints:
	default:
		return ErrInvalidPaymentType
	}

	if req.PaymentType == PaymentTypePoints && req.ClientID == nil {
		return ErrClientRequired
	}

	for _, item := range req.Items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if item.UnitPrice < 0 {
			return ErrInvalidUnitPrice
		}
		if item.Amount != item.Quantity*item.UnitPrice {
			return ErrAmountMismatch
		}
		if req.PaymentType == PaymentTypeInstallment {
			if req.PaidAmount < 0 || req.PaidAmount > item.Amount {
				return ErrInvalidPaidAmount
			}
		}
	}
	return nil
}
