package types

import "fmt"

// Cargo is one item loaded onto a train. Name identifies the item inside a
// manifest; Weight is in tons.
type Cargo struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Weight   int    `json:"weight" yaml:"weight"`
}

// Validate checks that the cargo can be loaded. A cargo needs a non-empty
// name and a positive weight.
func (c Cargo) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("cargo name: %w", ErrInvalidName)
	}
	if c.Weight <= 0 {
		return fmt.Errorf("cargo %q weight %d: %w", c.Name, c.Weight, ErrInvalidWeight)
	}
	return nil
}

// String renders the cargo the way load confirmations print it.
func (c Cargo) String() string {
	return fmt.Sprintf("%q (%s, %d tons)", c.Name, c.Category, c.Weight)
}
