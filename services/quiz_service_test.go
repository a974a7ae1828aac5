package services

import (
	"errors"
	"testing"

	"quizhub/models"
)

func TestCreateQuizOrdering(t *testing.T) {
	db := setupTestDB(t)
	s := NewQuizService(db)

	req := &CreateQuizRequest{
		Name: "Capitals",
		Tags: []string{"geography", "europe"},
		Questions: []CreateQuestionRequest{
			{
				// Client-supplied order and ids must be ignored
				ID:   "client-id",
				Text: "Capital of France?",
				Options: []CreateOptionRequest{
					{Index: 1, Text: "Lyon"},
					{Index: 0, Text: "Paris", IsCorrect: true},
				},
			},
			{
				Text: "Capital of Spain?",
				Options: []CreateOptionRequest{
					{Index: 0, Text: "Madrid", IsCorrect: true},
					{Index: 1, Text: "Barcelona"},
					{Index: 2, Text: "Seville"},
				},
			},
			{
				Text: "Capital of Italy?",
				Options: []CreateOptionRequest{
					{Index: 0, Text: "Milan"},
					{Index: 1, Text: "Rome", IsCorrect: true},
				},
			},
		},
	}

	created, err := s.CreateQuiz("alice", req)
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	quiz, err := s.GetQuiz(created.ID)
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}

	if len(quiz.Questions) != 3 {
		t.Fatalf("Expected 3 questions, got %d", len(quiz.Questions))
	}
	wantTexts := []string{"Capital of France?", "Capital of Spain?", "Capital of Italy?"}
	for i, want := range wantTexts {
		if quiz.Questions[i].Text != want {
			t.Errorf("Question %d: got %q, want %q", i, quiz.Questions[i].Text, want)
		}
	}
	if quiz.Questions[0].ID == "client-id" {
		t.Error("Client-supplied question id was not replaced")
	}

	// Options come back in index order regardless of submit order
	first := quiz.Questions[0].Options
	if len(first) != 2 || first[0].Index != 0 || first[1].Index != 1 {
		t.Errorf("Options not ordered by index: %+v", first)
	}

	if quiz.Author != "alice" {
		t.Errorf("Author: got %q, want alice", quiz.Author)
	}
	if len(quiz.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %d", len(quiz.Tags))
	}
	if quiz.Icon == "" {
		t.Error("Default icon was not assigned")
	}
}

func TestCorrectIndices(t *testing.T) {
	db := setupTestDB(t)
	s := NewQuizService(db)

	created, err := s.CreateQuiz("alice", &CreateQuizRequest{
		Name: "Test",
		Questions: []CreateQuestionRequest{
			{
				Text: "2+2?",
				Options: []CreateOptionRequest{
					{Index: 0, Text: "3", IsCorrect: false},
					{Index: 1, Text: "4", IsCorrect: true},
				},
			},
			{
				Text: "Which are primes?",
				Options: []CreateOptionRequest{
					{Index: 0, Text: "4"},
					{Index: 1, Text: "5", IsCorrect: true},
					{Index: 2, Text: "7", IsCorrect: true},
				},
			},
			{
				Text: "No right answer",
				Options: []CreateOptionRequest{
					{Index: 0, Text: "a"},
					{Index: 1, Text: "b"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	quiz, err := s.GetQuiz(created.ID)
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}

	q := quiz.Questions
	if q[0].CorrectIndex != 1 {
		t.Errorf("Question 0 correct_index: got %d, want 1", q[0].CorrectIndex)
	}
	if len(q[0].CorrectIndices) != 1 || q[0].CorrectIndices[0] != 1 {
		t.Errorf("Question 0 correct_indices: got %v, want [1]", q[0].CorrectIndices)
	}

	if q[1].CorrectIndex != 1 {
		t.Errorf("Question 1 correct_index: got %d, want 1", q[1].CorrectIndex)
	}
	if len(q[1].CorrectIndices) != 2 || q[1].CorrectIndices[0] != 1 || q[1].CorrectIndices[1] != 2 {
		t.Errorf("Question 1 correct_indices: got %v, want [1 2]", q[1].CorrectIndices)
	}

	if q[2].CorrectIndex != -1 {
		t.Errorf("Question 2 correct_index: got %d, want -1", q[2].CorrectIndex)
	}
	if len(q[2].CorrectIndices) != 0 {
		t.Errorf("Question 2 correct_indices: got %v, want empty", q[2].CorrectIndices)
	}
}

func TestQuizSlugGeneration(t *testing.T) {
	db := setupTestDB(t)
	s := NewQuizService(db)

	first := createTestQuiz(t, s, "alice", "My Great Quiz!")
	if first.ID != "my-great-quiz" {
		t.Errorf("Slug: got %q, want my-great-quiz", first.ID)
	}

	// Same name again: slug gets a random suffix instead of colliding
	second := createTestQuiz(t, s, "bob", "My Great Quiz!")
	if second.ID == first.ID {
		t.Error("Duplicate quiz name produced a colliding slug")
	}

	// Client-supplied id wins over generation
	supplied, err := s.CreateQuiz("alice", &CreateQuizRequest{
		ID:   "custom-slug",
		Name: "Whatever",
		Questions: []CreateQuestionRequest{
			{Text: "q", Options: []CreateOptionRequest{{Index: 0, Text: "a", IsCorrect: true}}},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuiz with explicit id failed: %v", err)
	}
	if supplied.ID != "custom-slug" {
		t.Errorf("Explicit id: got %q, want custom-slug", supplied.ID)
	}
}

func TestUpdateQuizFullReplace(t *testing.T) {
	db := setupTestDB(t)
	s := NewQuizService(db)

	created := createTestQuiz(t, s, "alice", "Editable")
	oldQuestionID := created.Questions[0].ID

	updated, err := s.UpdateQuiz(created.ID, "alice", &UpdateQuizRequest{
		Name:        "Edited",
		Description: "new description",
		Tags:        []string{"updated"},
		Questions: []CreateQuestionRequest{
			{
				Text: "Replacement question 1",
				Options: []CreateOptionRequest{
					{Index: 0, Text: "yes", IsCorrect: true},
					{Index: 1, Text: "no"},
				},
			},
			{
				Text: "Replacement question 2",
				Options: []CreateOptionRequest{
					{Index: 0, Text: "maybe", IsCorrect: true},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("UpdateQuiz failed: %v", err)
	}

	if updated.Name != "Edited" || updated.Description != "new description" {
		t.Errorf("Metadata not replaced: %+v", updated)
	}
	if len(updated.Questions) != 2 {
		t.Fatalf("Expected 2 questions after replace, got %d", len(updated.Questions))
	}
	if updated.Questions[0].ID == oldQuestionID {
		t.Error("Question ids should churn on full replace")
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "updated" {
		t.Errorf("Tags not reset: %v", updated.Tags)
	}

	// The old question's choices must be gone
	var choiceCount int64
	db.Model(&models.Choice{}).Where("question_id = ?", oldQuestionID).Count(&choiceCount)
	if choiceCount != 0 {
		t.Errorf("Orphaned choices left after replace: %d", choiceCount)
	}
}

func TestUpdateQuizNotAuthor(t *testing.T) {
	db := setupTestDB(t)
	s := NewQuizService(db)

	created := createTestQuiz(t, s, "alice", "Owned")

	_, err := s.UpdateQuiz(created.ID, "mallory", &UpdateQuizRequest{
		Name: "Hijacked",
		Questions: []CreateQuestionRequest{
			{Text: "q", Options: []CreateOptionRequest{{Index: 0, Text: "a", IsCorrect: true}}},
		},
	})
	if !errors.Is(err, ErrNotAuthor) {
		t.Errorf("Expected ErrNotAuthor, got %v", err)
	}

	if err := s.DeleteQuiz(created.ID, "mallory"); !errors.Is(err, ErrNotAuthor) {
		t.Errorf("Expected ErrNotAuthor on delete, got %v", err)
	}
}

func TestDeleteQuizRemovesChildren(t *testing.T) {
	db := setupTestDB(t)
	s := NewQuizService(db)
	favorites := NewFavoriteService(db)
	shares := NewShareService(db)
	comments := NewCommentService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	quiz := createTestQuiz(t, s, "alice", "Doomed")
	questionID := quiz.Questions[0].ID

	if _, err := favorites.Add(bob.ID, quiz.ID); err != nil {
		t.Fatalf("Add favorite failed: %v", err)
	}
	if _, err := shares.Share(alice.ID, &ShareQuizRequest{QuizID: quiz.ID, RecipientID: bob.ID}); err != nil {
		t.Fatalf("Share failed: %v", err)
	}
	if _, err := comments.Post(bob.ID, quiz.ID, &PostCommentRequest{Text: "nice"}); err != nil {
		t.Fatalf("Post comment failed: %v", err)
	}

	if err := s.DeleteQuiz(quiz.ID, "alice"); err != nil {
		t.Fatalf("DeleteQuiz failed: %v", err)
	}

	if _, err := s.GetQuiz(quiz.ID); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("Quiz still retrievable after delete: %v", err)
	}

	var count int64
	db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if count != 0 {
		t.Errorf("Orphaned questions after quiz delete: %d", count)
	}
	db.Model(&models.Choice{}).Where("question_id = ?", questionID).Count(&count)
	if count != 0 {
		t.Errorf("Orphaned choices after quiz delete: %d", count)
	}
	db.Model(&models.Favorite{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if count != 0 {
		t.Errorf("Orphaned favorites after quiz delete: %d", count)
	}
	db.Model(&models.QuizShare{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if count != 0 {
		t.Errorf("Orphaned shares after quiz delete: %d", count)
	}
	db.Model(&models.Comment{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if count != 0 {
		t.Errorf("Orphaned comments after quiz delete: %d", count)
	}
}

func TestListQuizzes(t *testing.T) {
	db := setupTestDB(t)
	s := NewQuizService(db)

	createTestQuiz(t, s, "alice", "Zebra Quiz")
	createTestQuiz(t, s, "bob", "Apple Quiz")

	summaries, err := s.ListQuizzes()
	if err != nil {
		t.Fatalf("ListQuizzes failed: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}
	// Ordered by name
	if summaries[0].Name != "Apple Quiz" || summaries[1].Name != "Zebra Quiz" {
		t.Errorf("Summaries not ordered by name: %q, %q", summaries[0].Name, summaries[1].Name)
	}
	if summaries[0].QuestionCount != 1 {
		t.Errorf("Question count: got %d, want 1", summaries[0].QuestionCount)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Great Quiz!", "my-great-quiz"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Ünïcode & symbols?!", "n-code-symbols"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
