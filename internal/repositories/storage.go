package repositories

import (
	"context"

	"github.com/rohits-web03/folio/internal/models"
)

// Storage is every data operation the application performs on users,
// projects and messages. Lookups report a miss as a nil result with a nil
// error; targeted mutations report a miss as false. Errors are reserved for
// invalid input (*models.ValidationError) and database failures.
type Storage interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertUser(ctx context.Context, user models.UpsertUser) (*models.User, error)

	// Project listings are ordered newest first.
	GetProjects(ctx context.Context) ([]models.Project, error)
	GetProjectsByCategory(ctx context.Context, category string) ([]models.Project, error)
	GetProjectByID(ctx context.Context, id uint) (*models.Project, error)
	CreateProject(ctx context.Context, project models.NewProject) (*models.Project, error)
	UpdateProject(ctx context.Context, id uint, patch models.ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id uint) (bool, error)

	// Message listings are ordered newest first.
	GetMessages(ctx context.Context) ([]models.Message, error)
	GetMessageByID(ctx context.Context, id uint) (*models.Message, error)
	CreateMessage(ctx context.Context, message models.NewMessage) (*models.Message, error)
	MarkMessageAsRead(ctx context.Context, id uint) (bool, error)
	DeleteMessage(ctx context.Context, id uint) (bool, error)
}
