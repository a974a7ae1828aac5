package services

import (
	"errors"
	"regexp"
	"strings"

	"quizhub/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrNotAuthor    = errors.New("only the author can modify this quiz")
)

const defaultQuizIcon = "📝"

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	Icon        string                  `json:"icon"`
	Tags        []string                `json:"tags"`
	Questions   []CreateQuestionRequest `json:"questions" binding:"required,min=1"`
}

type CreateQuestionRequest struct {
	ID           string                `json:"id"`
	Text         string                `json:"text" binding:"required"`
	QuestionType string                `json:"question_type"`
	Image        string                `json:"image"`
	Explanation  string                `json:"explanation"`
	Options      []CreateOptionRequest `json:"options" binding:"required,min=1"`
}

type CreateOptionRequest struct {
	Index     int    `json:"index"`
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
	Image     string `json:"image"`
}

type UpdateQuizRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	Icon        string                  `json:"icon"`
	Tags        []string                `json:"tags"`
	Questions   []CreateQuestionRequest `json:"questions" binding:"required,min=1"`
}

// QuizSummary is the list-view shape: no questions, just counts.
type QuizSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Author        string   `json:"author"`
	Icon          string   `json:"icon"`
	Tags          []string `json:"tags"`
	QuestionCount int      `json:"question_count"`
	Likes         int      `json:"likes"`
	Dislikes      int      `json:"dislikes"`
}

type QuizDetail struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Author      string           `json:"author"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Tags        []string         `json:"tags"`
	Likes       int              `json:"likes"`
	Dislikes    int              `json:"dislikes"`
	Questions   []QuestionDetail `json:"questions"`
}

type QuestionDetail struct {
	ID           string         `json:"id"`
	Text         string         `json:"text"`
	QuestionType string         `json:"question_type"`
	Image        string         `json:"image,omitempty"`
	Explanation  string         `json:"explanation,omitempty"`
	Options      []OptionDetail `json:"options"`
	// CorrectIndex is the smallest correct option index, -1 when none is
	// marked correct. Kept alongside CorrectIndices for older clients that
	// only understand single-answer questions.
	CorrectIndex   int   `json:"correct_index"`
	CorrectIndices []int `json:"correct_indices"`
}

type OptionDetail struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Image     string `json:"image,omitempty"`
}

func (s *QuizService) ListQuizzes() ([]QuizSummary, error) {
	var quizzes []models.Quiz
	err := s.db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name")
		}).
		Preload("Questions").
		Order("name").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for i := range quizzes {
		summaries = append(summaries, summarizeQuiz(&quizzes[i]))
	}
	return summaries, nil
}

func (s *QuizService) GetQuiz(quizID string) (*QuizDetail, error) {
	quiz, err := s.loadQuiz(s.db, quizID)
	if err != nil {
		return nil, err
	}
	detail := detailQuiz(quiz)
	return &detail, nil
}

func (s *QuizService) CreateQuiz(author string, req *CreateQuizRequest) (*QuizDetail, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quizID := req.ID
	if quizID == "" {
		id, err := s.generateQuizID(tx, req.Name)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		quizID = id
	}

	icon := req.Icon
	if icon == "" {
		icon = defaultQuizIcon
	}

	quiz := models.Quiz{
		ID:          quizID,
		Name:        req.Name,
		Author:      author,
		Description: req.Description,
		Icon:        icon,
	}

	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := attachTags(tx, &quiz, req.Tags); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := createQuestions(tx, quiz.ID, req.Questions); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID)
}

func (s *QuizService) UpdateQuiz(quizID string, username string, req *UpdateQuizRequest) (*QuizDetail, error) {
	quiz, err := s.loadQuiz(s.db, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.Author != username {
		return nil, ErrNotAuthor
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quiz.Name = req.Name
	quiz.Description = req.Description
	if req.Icon != "" {
		quiz.Icon = req.Icon
	}

	if err := tx.Omit("Tags", "Questions").Save(quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := attachTags(tx, quiz, req.Tags); err != nil {
		tx.Rollback()
		return nil, err
	}

	// Full replace: drop every existing question and its choices, then
	// recreate from the request. Question ids churn on every edit; that is
	// the documented contract, not an accident.
	if err := deleteQuestions(tx, quiz.ID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createQuestions(tx, quiz.ID, req.Questions); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID)
}

func (s *QuizService) DeleteQuiz(quizID string, username string) error {
	quiz, err := s.loadQuiz(s.db, quizID)
	if err != nil {
		return err
	}
	if quiz.Author != username {
		return ErrNotAuthor
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := deleteQuestions(tx, quizID); err != nil {
		tx.Rollback()
		return err
	}
	for _, child := range []interface{}{&models.Favorite{}, &models.QuizShare{}, &models.Comment{}} {
		if err := tx.Where("quiz_id = ?", quizID).Delete(child).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Model(quiz).Association("Tags").Clear(); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Quiz{}, "id = ?", quizID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *QuizService) loadQuiz(db *gorm.DB, quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := db.Where("id = ?", quizID).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name")
		}).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\", questions.id")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.\"index\"")
		}).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// generateQuizID slugifies the quiz name and appends a short random suffix
// when the slug is already taken.
func (s *QuizService) generateQuizID(tx *gorm.DB, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "quiz"
	}

	slug := base
	for {
		var count int64
		if err := tx.Model(&models.Quiz{}).Where("id = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = base + "-" + uuid.NewString()[:8]
	}
}

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(name string) string {
	slug := slugCleanup.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.Trim(slug[:80], "-")
	}
	return slug
}

func attachTags(tx *gorm.DB, quiz *models.Quiz, names []string) error {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	return tx.Model(quiz).Association("Tags").Replace(tags)
}

func createQuestions(tx *gorm.DB, quizID string, reqs []CreateQuestionRequest) error {
	for i, qReq := range reqs {
		questionType := qReq.QuestionType
		if questionType == "" {
			questionType = models.QuestionTypeMultipleChoice
		}

		// Client-supplied question ids are ignored: edits resubmit old ids
		// and reusing them would collide across quizzes.
		question := models.Question{
			ID:           uuid.NewString(),
			QuizID:       quizID,
			Text:         qReq.Text,
			Order:        i,
			QuestionType: questionType,
			Image:        qReq.Image,
			Explanation:  qReq.Explanation,
		}

		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		for _, optReq := range qReq.Options {
			choice := models.Choice{
				QuestionID: question.ID,
				Index:      optReq.Index,
				Text:       optReq.Text,
				IsCorrect:  optReq.IsCorrect,
				Image:      optReq.Image,
			}

			if err := tx.Create(&choice).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func deleteQuestions(tx *gorm.DB, quizID string) error {
	var questionIDs []string
	if err := tx.Model(&models.Question{}).Where("quiz_id = ?", quizID).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Choice{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error
}

func summarizeQuiz(quiz *models.Quiz) QuizSummary {
	return QuizSummary{
		ID:            quiz.ID,
		Name:          quiz.Name,
		Author:        quiz.Author,
		Icon:          quiz.Icon,
		Tags:          tagNames(quiz.Tags),
		QuestionCount: len(quiz.Questions),
		Likes:         quiz.Likes,
		Dislikes:      quiz.Dislikes,
	}
}

func detailQuiz(quiz *models.Quiz) QuizDetail {
	questions := make([]QuestionDetail, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		questions = append(questions, detailQuestion(&quiz.Questions[i]))
	}

	return QuizDetail{
		ID:          quiz.ID,
		Name:        quiz.Name,
		Author:      quiz.Author,
		Description: quiz.Description,
		Icon:        quiz.Icon,
		Tags:        tagNames(quiz.Tags),
		Likes:       quiz.Likes,
		Dislikes:    quiz.Dislikes,
		Questions:   questions,
	}
}

func detailQuestion(question *models.Question) QuestionDetail {
	options := make([]OptionDetail, 0, len(question.Options))
	correctIndices := make([]int, 0)
	correctIndex := -1
	for _, opt := range question.Options {
		options = append(options, OptionDetail{
			Index:     opt.Index,
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Image:     opt.Image,
		})
		if opt.IsCorrect {
			correctIndices = append(correctIndices, opt.Index)
			if correctIndex == -1 || opt.Index < correctIndex {
				correctIndex = opt.Index
			}
		}
	}

	return QuestionDetail{
		ID:             question.ID,
		Text:           question.Text,
		QuestionType:   question.QuestionType,
		Image:          question.Image,
		Explanation:    question.Explanation,
		Options:        options,
		CorrectIndex:   correctIndex,
		CorrectIndices: correctIndices,
	}
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}
