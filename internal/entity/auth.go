package entity

// Credentials - ответ бэкенда на успешный вход: данные пользователя и токен доступа.
type Credentials struct {
	AccessToken string `json:"accessToken"`
	User
}

// Registration - данные регистрации нового пользователя.
type Registration struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	EmailAddress string `json:"emailAddress"`
	HomeAddress  string `json:"homeAddress"`
	UserRole     Role   `json:"userRole"`
	Password     string `json:"password"`
}

// QRCode - изображение QR-кода заказа.
type QRCode struct {
	Data        []byte
	ContentType string
}
