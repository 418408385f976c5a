package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User представляет модель пользователя в системе
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Основные поля
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // Пароль не возвращается в JSON
	FullName string `json:"full_name" gorm:"type:varchar(100)"`

	// Роль определяет доступ к мутирующим операциям: admin — полный доступ,
	// teknisi и viewer — только чтение инвентаря
	Role     string `json:"role" gorm:"default:'teknisi';type:varchar(20)"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// TableName задает имя таблицы для модели User
func (User) TableName() string {
	return "users"
}

// SetPassword хэширует и устанавливает пароль пользователя
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword сверяет пароль с сохраненным хэшем
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
