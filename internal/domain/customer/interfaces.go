package customer

// Directory supplies immutable customer lists for the process lifetime.
type Directory interface {
	ExistingCustomers() []Customer
	ProspectCustomers() []Customer
	Lookup(id string) (Customer, bool)
}
