package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultLowStockThreshold is used when the caller does not pick a threshold.
const DefaultLowStockThreshold = 5

var validate = validator.New()

// AddCommand is the input of an addition: a named item and a non-negative quantity.
type AddCommand struct {
	Item     string `validate:"required"`
	Quantity int    `validate:"gte=0"`
}

// Validate reports the first invalid field as ErrInvalidItem or ErrInvalidQuantity.
func (c AddCommand) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Item":
			return fmt.Errorf("%w, got %q", ErrInvalidItem, c.Item)
		case "Quantity":
			return fmt.Errorf("%w, got %d", ErrInvalidQuantity, c.Quantity)
		}
	}
	return err
}

// ParseQuantity converts user-supplied text into a quantity. It does not check
// the sign; Add does that.
func ParseQuantity(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidQuantity, text)
	}
	return n, nil
}
