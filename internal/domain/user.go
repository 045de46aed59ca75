package domain

import "time"

// User representa una cuenta del sitio. PasswordHash queda vacio en
// cuentas creadas solo con Google; GoogleID queda vacio en cuentas locales.
// El hash nunca se serializa hacia el cliente.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	GoogleID     string    `json:"-"`
	IsPremium    bool      `json:"is_premium"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasPassword indica si la cuenta admite login local.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}
