package economy

import "errors"

// Storage is an inventory snapshot (material ticker -> on-hand quantity).
// Materials not present count as zero.
type Storage struct {
	id      string
	amounts map[string]int
}

// NewStorage creates a new Storage snapshot. The amounts map is copied
func NewStorage(id string, amounts map[string]int) (*Storage, error) {
	if id == "" {
		return nil, errors.New("storage id cannot be empty")
	}

	amountsCopy := make(map[string]int, len(amounts))
	for ticker, amount := range amounts {
		amountsCopy[ticker] = amount
	}

	return &Storage{id: id, amounts: amountsCopy}, nil
}

// EmptyStorage returns a storage snapshot with no contents
func EmptyStorage(id string) *Storage {
	return &Storage{id: id, amounts: map[string]int{}}
}

func (s *Storage) ID() string {
	return s.id
}

// Amount returns the stored quantity of the material, 0 if absent
func (s *Storage) Amount(ticker string) int {
	return s.amounts[ticker]
}

// Amounts returns a copy of the full inventory
func (s *Storage) Amounts() map[string]int {
	amountsCopy := make(map[string]int, len(s.amounts))
	for ticker, amount := range s.amounts {
		amountsCopy[ticker] = amount
	}
	return amountsCopy
}
