package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hr-admin-bot/internal/repository"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	repo, err := repository.NewSessionRepository(db)
	if err != nil {
		t.Fatalf("NewSessionRepository: %v", err)
	}

	return NewSessionService(&repo)
}

func TestSessionLoginAndCurrent(t *testing.T) {
	s := newSessionService(t)

	if _, err := s.Login(100, 0, 0); err == nil {
		t.Fatal("login with zero user id must fail")
	}

	if _, err := s.Login(100, 7, 3); err != nil {
		t.Fatalf("Login: %v", err)
	}

	session, err := s.Current(100)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if session.UserID != 7 || session.SubAdminID != 3 {
		t.Errorf("session = %+v", session)
	}

	// Другой чат сессии не видит
	if _, err := s.Current(200); err == nil {
		t.Fatal("expected error for a chat without login")
	}
}

func TestSubadminIDOrDefault(t *testing.T) {
	s := newSessionService(t)

	// Без сессии — запасная константа
	if got := s.SubadminIDOrDefault(100, 2); got != 2 {
		t.Errorf("fallback = %d, want 2", got)
	}

	// Сессия с явным subadmin id
	if _, err := s.Login(100, 7, 3); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := s.SubadminIDOrDefault(100, 2); got != 3 {
		t.Errorf("subadmin = %d, want 3", got)
	}

	// Сессия без subadmin id — берется id пользователя
	if _, err := s.Login(200, 9, 0); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := s.SubadminIDOrDefault(200, 2); got != 9 {
		t.Errorf("subadmin = %d, want 9 (user id)", got)
	}
}

func TestSessionLogout(t *testing.T) {
	s := newSessionService(t)

	if _, err := s.Login(100, 7, 0); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Logout(100); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := s.Current(100); err == nil {
		t.Fatal("expected error after logout")
	}
	if err := s.Logout(100); err == nil {
		t.Fatal("second logout must fail")
	}
}
