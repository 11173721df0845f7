package transport

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

// ActivityRequest carries the store-boundary shape of an activity.
type ActivityRequest struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Descricao   string `json:"descricao"`
	Data        string `json:"data"` // RFC3339
	Concluida   bool   `json:"concluida"`
	Categoria   string `json:"categoria"`
	Prioridade  string `json:"prioridade"`
}

type ToggleCompletionRequest struct {
	Concluida bool `json:"concluida"`
}

type ProfileUpdateRequest struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

type PushTokenRequest struct {
	Token string `json:"token"`
}

type ReminderRequest struct {
	AtividadeID string `json:"atividade_id"`
	Titulo      string `json:"titulo"`
	Corpo       string `json:"corpo"`
	FireAt      string `json:"fire_at"` // RFC3339
}
