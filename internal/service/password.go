package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher encapsula bcrypt para hash y verificacion de contraseñas.
// El costo adaptativo hace que dos hashes del mismo texto nunca coincidan.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() PasswordHasher {
	return PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash devuelve el hash bcrypt del texto plano. El texto nunca se guarda.
func (h PasswordHasher) Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify devuelve true si el texto corresponde al hash. Un mismatch no es
// error; solo un hash malformado lo es.
func (h PasswordHasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, err
}
