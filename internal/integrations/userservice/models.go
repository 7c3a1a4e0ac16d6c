package userservice

// CustomerProfile модель профиля клиента из UserService
type CustomerProfile struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	LoyaltyTier string `json:"loyalty_tier"` // Уровень лояльности (basic, silver, gold)
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
