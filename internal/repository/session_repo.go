package repository

import (
	"errors"

	"gorm.io/gorm"

	"hr-admin-bot/internal/models"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) (SessionRepository, error) {
	// Автомиграция - создает таблицы если их нет
	err := db.AutoMigrate(&models.Session{})
	if err != nil {
		return SessionRepository{}, err
	}

	return SessionRepository{db: db}, nil
}

// GetByChatID возвращает сессию чата или nil, если входа не было
func (r *SessionRepository) GetByChatID(chatID int64) (*models.Session, error) {
	var session models.Session
	result := r.db.Where("chat_id = ?", chatID).First(&session)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &session, nil
}

// Upsert сохраняет сессию чата, заменяя существующую
func (r *SessionRepository) Upsert(session *models.Session) error {
	var existing models.Session
	result := r.db.Where("chat_id = ?", session.ChatID).First(&existing)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		result = r.db.Create(session)
		return result.Error
	}

	if result.Error != nil {
		return result.Error
	}

	existing.UserID = session.UserID
	existing.SubAdminID = session.SubAdminID
	result = r.db.Save(&existing)
	return result.Error
}

// Delete удаляет сессию чата
func (r *SessionRepository) Delete(chatID int64) error {
	result := r.db.Where("chat_id = ?", chatID).Delete(&models.Session{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("сессия не найдена")
	}

	return nil
}

func (r *SessionRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
