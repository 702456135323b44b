package user

// Principal is the authenticated caller resolved by the accounts service.
type Principal struct {
	UserID string
	Email  string
}
