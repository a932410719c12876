package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hr-admin-bot/internal/models"
)

func newTestRepo(t *testing.T) SessionRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	repo, err := NewSessionRepository(db)
	if err != nil {
		t.Fatalf("NewSessionRepository: %v", err)
	}
	return repo
}

func TestSessionUpsertAndGet(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Upsert(&models.Session{ChatID: 100, UserID: 1, SubAdminID: 5}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	session, err := repo.GetByChatID(100)
	if err != nil {
		t.Fatalf("GetByChatID: %v", err)
	}
	if session == nil {
		t.Fatal("session not found")
	}
	if session.UserID != 1 || session.SubAdminID != 5 {
		t.Errorf("session = %+v", session)
	}

	// Повторный вход того же чата заменяет сессию, а не дублирует
	if err := repo.Upsert(&models.Session{ChatID: 100, UserID: 2, SubAdminID: 0}); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	session, err = repo.GetByChatID(100)
	if err != nil {
		t.Fatalf("GetByChatID: %v", err)
	}
	if session.UserID != 2 || session.SubAdminID != 0 {
		t.Errorf("session after re-login = %+v", session)
	}
}

func TestSessionGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	session, err := repo.GetByChatID(42)
	if err != nil {
		t.Fatalf("GetByChatID: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session, got %+v", session)
	}
}

func TestSessionDelete(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Upsert(&models.Session{ChatID: 7, UserID: 1}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.Delete(7); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	session, err := repo.GetByChatID(7)
	if err != nil {
		t.Fatalf("GetByChatID: %v", err)
	}
	if session != nil {
		t.Error("session must be gone after delete")
	}

	if err := repo.Delete(7); err == nil {
		t.Error("deleting a missing session must fail")
	}
}
