package service

import (
	"fmt"
	"strings"

	"hr-admin-bot/internal/models"
	"hr-admin-bot/internal/repository"
)

// SessionService управляет сохраненным контекстом входа чата.
// Сессия читается из локального хранилища и поставляется остальным
// компонентам; никакого другого разделяемого состояния между ними нет.
type SessionService struct {
	repo *repository.SessionRepository
}

func NewSessionService(repo *repository.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

// Login сохраняет сессию чата
func (s *SessionService) Login(chatID, userID, subAdminID int64) (*models.Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("идентификатор пользователя не может быть пустым")
	}

	session := &models.Session{
		ChatID:     chatID,
		UserID:     userID,
		SubAdminID: subAdminID,
	}

	if err := s.repo.Upsert(session); err != nil {
		return nil, fmt.Errorf("ошибка сохранения сессии: %v", err)
	}

	return session, nil
}

// Current возвращает сессию чата; без входа возвращает ошибку.
// Потоки реестра и зарплатной ведомости без сессии не работают.
func (s *SessionService) Current(chatID int64) (*models.Session, error) {
	session, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сессии: %v", err)
	}

	if session == nil {
		return nil, fmt.Errorf("сессия не найдена, выполните /login")
	}

	return session, nil
}

// SubadminIDOrDefault возвращает subadmin id сессии, а при его
// отсутствии — запасную константу. Так исторически ведет себя только
// поток посещаемости; остальные потоки требуют сессию жестко.
func (s *SessionService) SubadminIDOrDefault(chatID, defaultID int64) int64 {
	session, err := s.repo.GetByChatID(chatID)
	if err != nil || session == nil {
		return defaultID
	}

	return session.EffectiveSubAdminID()
}

// Logout удаляет сессию чата
func (s *SessionService) Logout(chatID int64) error {
	return s.repo.Delete(chatID)
}

// FormatSessionInfo форматирует сессию для вывода
func (s *SessionService) FormatSessionInfo(session *models.Session) string {
	var lines []string

	lines = append(lines, "🔐 Текущая сессия:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 ID пользователя: %d", session.UserID))

	if session.HasSubAdminID() {
		lines = append(lines, fmt.Sprintf("👔 SubAdmin ID: %d", session.SubAdminID))
	} else {
		lines = append(lines, "👔 SubAdmin ID: не задан")
	}

	return strings.Join(lines, "\n")
}
