package model

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	usernamePattern    = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)
	skuPattern         = regexp.MustCompile(`^[A-Z0-9]{3,50}$`)
	vendorEmailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
	vendorPhonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

const minPasswordLength = 8

func ValidateUsername(username string) error {
	if username == "" {
		return invalid("username", "Username is required")
	}
	if !usernamePattern.MatchString(username) {
		return invalid("username", "Username must be between 3 and 50 characters and can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidatePassword checks the raw password, before hashing.
func ValidatePassword(password string) error {
	if password == "" {
		return invalid("password", "Password is required")
	}
	if len(password) < minPasswordLength {
		return invalid("password", "Password must be at least 8 characters long")
	}
	return nil
}

func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleUser:
		return nil
	}
	return invalid("role", "Invalid role")
}

func ValidateSKU(sku string) error {
	if sku == "" {
		return invalid("sku", "SKU is required")
	}
	if !skuPattern.MatchString(sku) {
		return invalid("sku", "SKU must be in uppercase and between 3 and 50 characters")
	}
	return nil
}

func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return invalid("price", "Price must be a positive number")
	}
	return nil
}

func ValidateReorderPoint(point int) error {
	if point < 0 {
		return invalid("reorder_point", "Reorder point must be a non-negative integer")
	}
	return nil
}

// ValidateReorderQuantity applies to the product setting, where zero means "never reorder".
func ValidateReorderQuantity(qty int) error {
	if qty < 0 {
		return invalid("reorder_quantity", "Reorder quantity must be a non-negative integer")
	}
	return nil
}

func ValidateVendorEmail(email string) error {
	if email == "" {
		return invalid("email", "Email is required")
	}
	if !vendorEmailPattern.MatchString(email) {
		return invalid("email", "Invalid email format")
	}
	return nil
}

func ValidateVendorPhone(phone string) error {
	if phone == "" {
		return invalid("phone", "Phone is required")
	}
	if !vendorPhonePattern.MatchString(phone) {
		return invalid("phone", "Invalid phone number format")
	}
	return nil
}

// ValidateOrderQuantity applies to order requests, which must ask for something.
func ValidateOrderQuantity(qty int) error {
	if qty <= 0 {
		return invalid("reorder_quantity", "Reorder quantity must be a positive integer")
	}
	return nil
}

func ValidateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderStatusNew, OrderStatusOrdered, OrderStatusClosed:
		return nil
	}
	return invalid("status", "Invalid status")
}

func ValidateTransactionType(t TransactionType) error {
	switch t {
	case TxIssue, TxReceive:
		return nil
	}
	return invalid("transaction_type", "Transaction type must be 'issue' or 'receive'")
}

// ValidateTransactionQuantity requires a strictly positive quantity. The
// direction of a movement is carried by its type, never by the sign.
func ValidateTransactionQuantity(qty int) error {
	if qty <= 0 {
		return invalid("quantity", "Quantity must be greater than 0; record stock leaving the warehouse with transaction_type 'issue'")
	}
	return nil
}

func validateReference(field, entity string, id uuid.UUID) error {
	if id == uuid.Nil {
		return invalid(field, entity+" is required")
	}
	return nil
}

func validateRequired(field, label, value string) error {
	if value == "" {
		return invalid(field, label+" is required")
	}
	return nil
}

// firstError returns the first non-nil error in errs.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
