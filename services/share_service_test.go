package services

import (
	"errors"
	"testing"

	"quizhub/models"
)

func TestShareQuizAndReceive(t *testing.T) {
	db := setupTestDB(t)
	quizzes := NewQuizService(db)
	shares := NewShareService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	quiz := createTestQuiz(t, quizzes, "alice", "Shared")

	share, err := shares.Share(alice.ID, &ShareQuizRequest{
		QuizID:      quiz.ID,
		RecipientID: bob.ID,
		Message:     "try this one",
	})
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}
	if share.SenderUsername != "alice" || share.RecipientUsername != "bob" {
		t.Errorf("Share usernames wrong: %+v", share)
	}
	if share.IsViewed {
		t.Error("New share should not be viewed")
	}

	received, err := shares.ListReceived(bob.ID)
	if err != nil {
		t.Fatalf("ListReceived failed: %v", err)
	}
	if len(received) != 1 || received[0].Quiz.ID != quiz.ID {
		t.Fatalf("Received view wrong: %+v", received)
	}
	if received[0].Message != "try this one" {
		t.Errorf("Share note lost: %q", received[0].Message)
	}

	// Sender's own received view must stay empty
	sent, err := shares.ListReceived(alice.ID)
	if err != nil {
		t.Fatalf("ListReceived failed: %v", err)
	}
	if len(sent) != 0 {
		t.Errorf("Sender should not see the share as received: %+v", sent)
	}
}

func TestShareDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	quizzes := NewQuizService(db)
	shares := NewShareService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	quiz := createTestQuiz(t, quizzes, "alice", "Shared")

	if _, err := shares.Share(alice.ID, &ShareQuizRequest{QuizID: quiz.ID, RecipientID: bob.ID}); err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	_, err := shares.Share(alice.ID, &ShareQuizRequest{QuizID: quiz.ID, RecipientID: bob.ID})
	if !errors.Is(err, ErrDuplicateShare) {
		t.Errorf("Expected ErrDuplicateShare, got %v", err)
	}

	var count int64
	db.Model(&models.QuizShare{}).
		Where("quiz_id = ? AND sender_id = ? AND recipient_id = ?", quiz.ID, alice.ID, bob.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 share row for the triple, got %d", count)
	}

	// A different recipient is a different triple and fine
	if _, err := shares.Share(alice.ID, &ShareQuizRequest{QuizID: quiz.ID, RecipientID: carol.ID}); err != nil {
		t.Errorf("Share to another user failed: %v", err)
	}
}

func TestShareMarkViewed(t *testing.T) {
	db := setupTestDB(t)
	quizzes := NewQuizService(db)
	shares := NewShareService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	quiz := createTestQuiz(t, quizzes, "alice", "Shared")

	share, err := shares.Share(alice.ID, &ShareQuizRequest{QuizID: quiz.ID, RecipientID: bob.ID})
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	// Sender cannot mark it viewed on behalf of the recipient
	if err := shares.MarkViewed(share.ID, alice.ID); !errors.Is(err, ErrNotRecipient) {
		t.Errorf("Expected ErrNotRecipient, got %v", err)
	}

	if err := shares.MarkViewed(share.ID, bob.ID); err != nil {
		t.Fatalf("MarkViewed failed: %v", err)
	}

	received, _ := shares.ListReceived(bob.ID)
	if len(received) != 1 || !received[0].IsViewed {
		t.Errorf("Share not marked viewed: %+v", received)
	}

	if err := shares.MarkViewed(999, bob.ID); !errors.Is(err, ErrShareNotFound) {
		t.Errorf("Expected ErrShareNotFound, got %v", err)
	}
}
