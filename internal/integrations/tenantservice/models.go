package tenantservice

// Tenant профиль тенанта из каталога платформы
type Tenant struct {
	ID          int64   `json:"id"`
	Slug        string  `json:"slug"`
	DisplayName string  `json:"display_name"`
	Timezone    string  `json:"timezone"` // IANA, например "Europe/Berlin"
	Locale      string  `json:"locale"`
	Plan        string  `json:"plan"`
	OwnerIDs    []int64 `json:"owner_ids"`
	Suspended   bool    `json:"suspended"`
}

// IsOwner проверяет, входит ли пользователь в список владельцев тенанта
func (t *Tenant) IsOwner(userID int64) bool {
	for _, ownerID := range t.OwnerIDs {
		if ownerID == userID {
			return true
		}
	}
	return false
}

// Service услуга тенанта из каталога платформы
// Длительность услуги определяет длину генерируемых слотов
type Service struct {
	ID              int64    `json:"id"`
	TenantID        int64    `json:"tenant_id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes int      `json:"duration_minutes"`
	Active          bool     `json:"active"`
}

// ErrorResponse модель ошибки от TenantService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
