package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxPasswordBytes = 72

var (
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrMalformedHash   = errors.New("malformed password hash")
)

// PasswordHasher aplica bcrypt con un costo fijo. Es seguro para uso concurrente.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// El hash señuelo iguala el tiempo de login cuando el email no existe.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		dummy = nil
	}
	return &PasswordHasher{cost: cost, dummyHash: dummy}
}

func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash genera un hash bcrypt con sal aleatoria.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compara en tiempo constante. Un hash malformado nunca valida.
func (h *PasswordHasher) Verify(plaintext, hashed string) (bool, error) {
	if _, err := bcrypt.Cost([]byte(hashed)); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if len(plaintext) > maxPasswordBytes {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
}

// VerifyDummy consume el mismo trabajo que Verify sin revelar nada.
func (h *PasswordHasher) VerifyDummy(plaintext string) {
	if len(h.dummyHash) == 0 {
		return
	}
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plaintext))
}
