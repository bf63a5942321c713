package domain

type UserAccount struct {
	ID              int64
	Email           string
	Password        string // plaintext fixture credential; never serialized
	FirstName       string
	LastName        string
	FullName        string
	Phone           string
	Country         string
	IsPhoneVerified bool
	IsEmailVerified bool
}

// UserPatch carries a partial profile update; nil fields are left untouched.
// Email is the lookup key and cannot be patched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	FullName  *string
	Phone     *string
	Country   *string
	Password  *string
}
