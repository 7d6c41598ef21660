package models

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
)

// User is one record of the credential store. Username is the store key and
// is filled in by the repository on load; the on-disk record carries only
// password, role and name.
type User struct {
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	DisplayName  string   `json:"name"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Account seeded into a fresh credential store. The default password is a
// known weakness inherited from the deployment model; operators are expected
// to change it after first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Administrator"
)
