package marketplace

// Actor is the typed caller context the API boundary resolves once and
// hands to the engine. Role capability is a closed set checked here,
// never a string match inside call sites.
type Actor struct {
	ID               uint
	Email            string
	CanActAsCustomer bool
	CanActAsHustler  bool
	PayoutAccountID  string
}
