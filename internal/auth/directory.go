package auth

import (
	"strings"
)

type User struct {
	ID    int
	Email string
	Name  string
	Role  Role
}

// Mock users. There are no passwords: knowing a listed email is enough.
var directory = []User{
	{ID: 1, Email: "super@admin.com", Name: "Super Admin", Role: RoleSuperAdmin},
	{ID: 2, Email: "admin@condo.com", Name: "Administrador", Role: RoleAdmin},
	{ID: 3, Email: "conserje@condo.com", Name: "Conserje", Role: RoleConserje},
	{ID: 4, Email: "directiva@condo.com", Name: "Directiva", Role: RoleDirectiva},
	{ID: 5, Email: "residente@condo.com", Name: "Residente", Role: RoleResidente},
}

func LookupUser(email string) (User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range directory {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

func ValidEmails() []string {
	emails := make([]string, len(directory))
	for i, u := range directory {
		emails[i] = u.Email
	}
	return emails
}

// UnknownUserMessage is shown when the login email is not in the directory.
func UnknownUserMessage() string {
	return "Usuario no encontrado. Emails válidos: " + strings.Join(ValidEmails(), ", ")
}
