package preset

import (
	"strconv"
	"strings"

	"fable/internal/config"
)

// ParseSamplerOrder parses an order specification of comma or space
// separated sampler indexes ("0,1,2" or "0 1 2"). An empty specification
// means the service default order and yields nil. Malformed values are
// rejected with *InvalidSamplerOrderError before any parameter set is
// accepted.
func ParseSamplerOrder(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})

	order := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &InvalidSamplerOrderError{Value: part, Reason: "not an integer"}
		}
		if n < 0 || n > config.MaxSamplerOrderValue {
			return nil, &InvalidSamplerOrderError{Value: part, Reason: "out of range"}
		}
		if seen[n] {
			return nil, &InvalidSamplerOrderError{Value: part, Reason: "duplicate sampler"}
		}
		seen[n] = true
		order = append(order, n)
	}
	return order, nil
}

// validateSamplerOrder checks an order already attached to a parameter
// set. A nil order means the service default and is always valid.
func validateSamplerOrder(order []int) error {
	seen := make(map[int]bool, len(order))
	for _, n := range order {
		if n < 0 || n > config.MaxSamplerOrderValue {
			return &InvalidSamplerOrderError{Value: strconv.Itoa(n), Reason: "out of range"}
		}
		if seen[n] {
			return &InvalidSamplerOrderError{Value: strconv.Itoa(n), Reason: "duplicate sampler"}
		}
		seen[n] = true
	}
	return nil
}
