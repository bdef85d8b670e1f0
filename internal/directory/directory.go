// Package directory serves the static customer lists.
package directory

import (
	"errors"
	"fmt"
	"os"

	"github.com/rpggio/visitdesk/internal/domain/customer"
	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateID is returned when two entries share an id.
	ErrDuplicateID = errors.New("duplicate customer id")
	// ErrInvalidEntry is returned when an entry lacks an id or name.
	ErrInvalidEntry = errors.New("invalid customer entry")
)

// Static is an immutable in-memory directory.
type Static struct {
	existing  []customer.Customer
	prospects []customer.Customer
	byID      map[string]customer.Customer
}

// New builds a directory, forcing each list's Kind.
func New(existing, prospects []customer.Customer) (*Static, error) {
	d := &Static{byID: make(map[string]customer.Customer, len(existing)+len(prospects))}
	for _, c := range existing {
		c.Kind = customer.KindExisting
		if err := d.add(c); err != nil {
			return nil, err
		}
		d.existing = append(d.existing, c)
	}
	for _, c := range prospects {
		c.Kind = customer.KindProspect
		if err := d.add(c); err != nil {
			return nil, err
		}
		d.prospects = append(d.prospects, c)
	}
	return d, nil
}

func (d *Static) add(c customer.Customer) error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("%w: id=%q name=%q", ErrInvalidEntry, c.ID, c.Name)
	}
	if _, ok := d.byID[c.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}
	d.byID[c.ID] = c
	return nil
}

// ExistingCustomers returns a copy of the contracted accounts.
func (d *Static) ExistingCustomers() []customer.Customer {
	return cloneList(d.existing)
}

// ProspectCustomers returns a copy of the candidates.
func (d *Static) ProspectCustomers() []customer.Customer {
	return cloneList(d.prospects)
}

// Lookup finds a customer of either kind.
func (d *Static) Lookup(id string) (customer.Customer, bool) {
	c, ok := d.byID[id]
	if !ok {
		return customer.Customer{}, false
	}
	return clone(c), true
}

func cloneList(list []customer.Customer) []customer.Customer {
	out := make([]customer.Customer, 0, len(list))
	for _, c := range list {
		out = append(out, clone(c))
	}
	return out
}

func clone(c customer.Customer) customer.Customer {
	if c.Contacts != nil {
		c.Contacts = append([]customer.Contact(nil), c.Contacts...)
	}
	return c
}

type fileFormat struct {
	Existing  []customer.Customer `yaml:"existing"`
	Prospects []customer.Customer `yaml:"prospects"`
}

// LoadFile reads a YAML directory with top-level existing/prospects lists.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory file: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse directory file: %w", err)
	}
	return New(f.Existing, f.Prospects)
}

// Load returns the file-backed directory when path is set, else the built-in one.
func Load(path string) (*Static, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
