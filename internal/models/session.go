package models

// Session — сохраненный контекст входа для чата.
// Аналог объекта user из localStorage: { id, subAdminId? }.
type Session struct {
	ID         uint  `gorm:"primarykey" json:"id"`
	CreatedAt  int64 `json:"created_at"`
	UpdatedAt  int64 `json:"updated_at"`
	ChatID     int64 `gorm:"uniqueIndex;not null" json:"chat_id"`
	UserID     int64 `gorm:"not null" json:"user_id"`
	SubAdminID int64 `json:"sub_admin_id"` // 0 = не задан
}

// TableName задает имя таблицы в БД
func (Session) TableName() string {
	return "sessions"
}

// HasSubAdminID проверяет, задан ли отдельный subadmin id
func (s *Session) HasSubAdminID() bool {
	return s.SubAdminID != 0
}

// EffectiveSubAdminID возвращает subadmin id для запросов:
// явный SubAdminID, иначе UserID
func (s *Session) EffectiveSubAdminID() int64 {
	if s.HasSubAdminID() {
		return s.SubAdminID
	}
	return s.UserID
}
