package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost - стоимость bcrypt (10, как у исходной базы пользователей)
const PasswordCost = 10

// HashPassword создает bcrypt хеш пароля
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
