package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/rohits-web03/folio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newestFirst orders listings by creation time; rows created in the same
// instant fall back to insertion order.
const newestFirst = "created_at DESC, id DESC"

// DatabaseStorage implements Storage on gorm. Each operation is a single
// statement, except the two that must return the row they wrote.
type DatabaseStorage struct {
	db *gorm.DB
}

var _ Storage = (*DatabaseStorage)(nil)

func NewDatabaseStorage(db *gorm.DB) *DatabaseStorage {
	return &DatabaseStorage{db: db}
}

// found turns gorm's not-found error into a nil result.
func found[T any](value *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *DatabaseStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, nil
	}
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	return found(&user, err)
}

// GetUserByEmail matches the stored email exactly; callers store emails lower case.
func (s *DatabaseStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	return found(&user, err)
}

// UpsertUser inserts the user or, when the id already exists, overwrites the
// provided fields and refreshes updated_at. The stored row is read back in
// the same transaction so fields the caller omitted are returned as stored.
func (s *DatabaseStorage) UpsertUser(ctx context.Context, input models.UpsertUser) (*models.User, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}
	user, columns := input.Row()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).Create(&user).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", input.ID).Take(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStorage) GetProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.WithContext(ctx).Order(newestFirst).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *DatabaseStorage) GetProjectsByCategory(ctx context.Context, category string) ([]models.Project, error) {
	if strings.TrimSpace(category) == "" {
		return nil, models.NewValidationError("category is required", "category")
	}
	projects := []models.Project{}
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order(newestFirst).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *DatabaseStorage) GetProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&project).Error
	return found(&project, err)
}

func (s *DatabaseStorage) CreateProject(ctx context.Context, input models.NewProject) (*models.Project, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}
	project := input.Row()
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies the patch and returns the stored row, or nil when no
// project has that id. updated_at is always refreshed, even for an empty patch.
func (s *DatabaseStorage) UpdateProject(ctx context.Context, id uint, patch models.ProjectPatch) (*models.Project, error) {
	if err := models.Validate(patch); err != nil {
		return nil, err
	}
	values := patch.Columns()
	values["updated_at"] = s.db.NowFunc()

	var project models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).Take(&project).Error
	})
	return found(&project, err)
}

func (s *DatabaseStorage) DeleteProject(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *DatabaseStorage) GetMessages(ctx context.Context) ([]models.Message, error) {
	messages := []models.Message{}
	err := s.db.WithContext(ctx).Order(newestFirst).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *DatabaseStorage) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&message).Error
	return found(&message, err)
}

func (s *DatabaseStorage) CreateMessage(ctx context.Context, input models.NewMessage) (*models.Message, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}
	message := input.Row()
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkMessageAsRead is idempotent: it reports true whenever the message exists.
func (s *DatabaseStorage) MarkMessageAsRead(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *DatabaseStorage) DeleteMessage(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Message{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
