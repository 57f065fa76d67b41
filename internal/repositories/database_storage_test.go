package repositories

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/rohits-web03/folio/internal/models"
)

func ptr[T any](v T) *T { return &v }

func projectIDs(projects []models.Project) []uint {
	ids := make([]uint, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids
}

func TestCreateAndGetProject(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	input := models.NewProject{
		Title:        "Portfolio",
		Description:  "Personal site",
		Category:     models.CategoryWeb,
		ImageURL:     "https://img.example/p.png",
		Technologies: []string{"go", "postgres"},
		Challenges:   []string{"time"},
		ProjectURL:   ptr("https://example.com"),
	}
	created, err := store.CreateProject(ctx, input)
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if created.ID < 1 {
		t.Errorf("ID = %d, want >= 1", created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps must be assigned")
	}

	got, err := store.GetProjectByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProjectByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetProjectByID() = nil, want project")
	}
	if got.Title != input.Title || got.Description != input.Description ||
		got.Category != input.Category || got.ImageURL != input.ImageURL {
		t.Errorf("stored project = %+v, want fields of %+v", got, input)
	}
	if !slices.Equal([]string(got.Technologies), input.Technologies) {
		t.Errorf("Technologies = %v, want %v", got.Technologies, input.Technologies)
	}
	if !slices.Equal([]string(got.Challenges), input.Challenges) {
		t.Errorf("Challenges = %v, want %v", got.Challenges, input.Challenges)
	}
	if got.Solutions != nil {
		t.Errorf("Solutions = %v, want nil", got.Solutions)
	}
	if got.ProjectURL == nil || *got.ProjectURL != *input.ProjectURL {
		t.Errorf("ProjectURL = %v", got.ProjectURL)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) || !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps = %v/%v, want %v/%v", got.CreatedAt, got.UpdatedAt, created.CreatedAt, created.UpdatedAt)
	}
}

func TestCreateProjectDefaults(t *testing.T) {
	store, _ := setupTestStorage(t)

	created, err := store.CreateProject(context.Background(), models.NewProject{
		Title: "A", Description: "d", Category: "web", ImageURL: "u",
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if created.Featured {
		t.Error("Featured = true, want false")
	}
	if created.Technologies != nil {
		t.Errorf("Technologies = %v, want nil", created.Technologies)
	}
	if created.ProjectURL != nil {
		t.Errorf("ProjectURL = %v, want nil", created.ProjectURL)
	}
}

func TestCreateProjectRejectsMissingFields(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateProject(ctx, models.NewProject{Title: "A", Category: "web"})
	if !models.IsValidationError(err) {
		t.Fatalf("CreateProject() error = %v, want validation error", err)
	}
	projects, err := store.GetProjects(ctx)
	if err != nil {
		t.Fatalf("GetProjects() error = %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("invalid project was stored: %+v", projects)
	}
}

func TestUpdateProject(t *testing.T) {
	store, clock := setupTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateProject(ctx, models.NewProject{
		Title: "A", Description: "d", Category: "web", ImageURL: "u",
		Technologies: []string{"go"},
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	clock.Advance(time.Minute)
	updated, err := store.UpdateProject(ctx, created.ID, models.ProjectPatch{Featured: ptr(true)})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if updated == nil {
		t.Fatal("UpdateProject() = nil, want project")
	}
	if !updated.Featured {
		t.Error("Featured = false, want true")
	}
	if updated.Title != "A" || updated.Description != "d" || updated.Category != "web" || updated.ImageURL != "u" {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if !slices.Equal([]string(updated.Technologies), []string{"go"}) {
		t.Errorf("Technologies = %v", updated.Technologies)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", updated.UpdatedAt, created.UpdatedAt)
	}

	stored, err := store.GetProjectByID(ctx, created.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetProjectByID() = %v, %v", stored, err)
	}
	if !stored.Featured || !stored.UpdatedAt.Equal(updated.UpdatedAt) {
		t.Errorf("stored = %+v, want the updated row", stored)
	}
}

func TestUpdateProjectReplacesLists(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateProject(ctx, models.NewProject{
		Title: "A", Description: "d", Category: "web", ImageURL: "u",
		Solutions: []string{"one"},
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	updated, err := store.UpdateProject(ctx, created.ID, models.ProjectPatch{
		Title:     ptr("B"),
		Solutions: models.SetList([]string{"two", "three"}),
	})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if updated.Title != "B" {
		t.Errorf("Title = %q, want B", updated.Title)
	}
	if !slices.Equal([]string(updated.Solutions), []string{"two", "three"}) {
		t.Errorf("Solutions = %v", updated.Solutions)
	}
}

func TestUpdateProjectClearsList(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateProject(ctx, models.NewProject{
		Title: "A", Description: "d", Category: "web", ImageURL: "u",
		Technologies: []string{"go"}, Solutions: []string{"one"},
	})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	updated, err := store.UpdateProject(ctx, created.ID, models.ProjectPatch{Technologies: models.SetList(nil)})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if updated.Technologies != nil {
		t.Errorf("Technologies = %#v, want nil", updated.Technologies)
	}
	if !slices.Equal([]string(updated.Solutions), []string{"one"}) {
		t.Errorf("Solutions = %v, want untouched", updated.Solutions)
	}
}

func TestUpdateProjectMissingAndInvalid(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	got, err := store.UpdateProject(ctx, 999, models.ProjectPatch{Featured: ptr(true)})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if got != nil {
		t.Errorf("UpdateProject() = %+v, want nil for unknown id", got)
	}

	created, err := store.CreateProject(ctx, models.NewProject{Title: "A", Description: "d", Category: "web", ImageURL: "u"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if _, err := store.UpdateProject(ctx, created.ID, models.ProjectPatch{Title: ptr("")}); !models.IsValidationError(err) {
		t.Errorf("blank title error = %v, want validation error", err)
	}
}

func TestDeleteProject(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateProject(ctx, models.NewProject{Title: "A", Description: "d", Category: "web", ImageURL: "u"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	deleted, err := store.DeleteProject(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteProject() = %v, %v; want true, nil", deleted, err)
	}
	again, err := store.DeleteProject(ctx, created.ID)
	if err != nil || again {
		t.Errorf("second DeleteProject() = %v, %v; want false, nil", again, err)
	}
	got, err := store.GetProjectByID(ctx, created.ID)
	if err != nil || got != nil {
		t.Errorf("GetProjectByID() after delete = %v, %v", got, err)
	}
}

func TestDeleteUnknownIDsReportFalse(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	for _, id := range []uint{0, 1, 42} {
		if ok, err := store.DeleteProject(ctx, id); err != nil || ok {
			t.Errorf("DeleteProject(%d) = %v, %v", id, ok, err)
		}
		if ok, err := store.DeleteMessage(ctx, id); err != nil || ok {
			t.Errorf("DeleteMessage(%d) = %v, %v", id, ok, err)
		}
		if ok, err := store.MarkMessageAsRead(ctx, id); err != nil || ok {
			t.Errorf("MarkMessageAsRead(%d) = %v, %v", id, ok, err)
		}
	}
}

func TestGetProjectsOrdering(t *testing.T) {
	store, clock := setupTestStorage(t)
	ctx := context.Background()

	// Insert with creation times out of id order: 3rd insert is oldest.
	offsets := []time.Duration{2 * time.Hour, 3 * time.Hour, -time.Hour, 3 * time.Hour}
	categories := []string{"web", "design", "design", "web"}
	base := clock.Now()
	var ids []uint
	for i, off := range offsets {
		clock.Set(base.Add(off))
		p, err := store.CreateProject(ctx, models.NewProject{
			Title: "p", Description: "d", Category: categories[i], ImageURL: "u",
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		ids = append(ids, p.ID)
	}

	all, err := store.GetProjects(ctx)
	if err != nil {
		t.Fatalf("GetProjects() error = %v", err)
	}
	// ids[1] and ids[3] tie on created_at; the later insert comes first.
	want := []uint{ids[3], ids[1], ids[0], ids[2]}
	if got := projectIDs(all); !slices.Equal(got, want) {
		t.Fatalf("GetProjects() ids = %v, want %v", got, want)
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("project %d created after its predecessor", all[i].ID)
		}
	}

	design, err := store.GetProjectsByCategory(ctx, "design")
	if err != nil {
		t.Fatalf("GetProjectsByCategory() error = %v", err)
	}
	if got := projectIDs(design); !slices.Equal(got, []uint{ids[1], ids[2]}) {
		t.Errorf("design ids = %v, want %v", got, []uint{ids[1], ids[2]})
	}
	for _, p := range design {
		if p.Category != "design" {
			t.Errorf("project %d has category %q", p.ID, p.Category)
		}
	}
}

func TestGetProjectsByCategoryEmpty(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	got, err := store.GetProjectsByCategory(ctx, "mobile")
	if err != nil {
		t.Fatalf("GetProjectsByCategory() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GetProjectsByCategory() = %#v, want empty slice", got)
	}
	if _, err := store.GetProjectsByCategory(ctx, " "); !models.IsValidationError(err) {
		t.Errorf("blank category error = %v, want validation error", err)
	}
}

func TestMessagesLifecycle(t *testing.T) {
	store, clock := setupTestStorage(t)
	ctx := context.Background()

	first, err := store.CreateMessage(ctx, models.NewMessage{
		Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello there",
	})
	if err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}
	if first.ID < 1 || first.Read || first.CreatedAt.IsZero() {
		t.Errorf("created message = %+v", first)
	}

	clock.Advance(time.Second)
	second, err := store.CreateMessage(ctx, models.NewMessage{
		Name: "Bob", Email: "bob@example.com", Subject: "Job", Message: "Work?",
	})
	if err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	messages, err := store.GetMessages(ctx)
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	if len(messages) != 2 || messages[0].ID != second.ID || messages[1].ID != first.ID {
		t.Fatalf("GetMessages() = %+v, want newest first", messages)
	}

	for i := 0; i < 2; i++ {
		ok, err := store.MarkMessageAsRead(ctx, first.ID)
		if err != nil || !ok {
			t.Fatalf("MarkMessageAsRead() call %d = %v, %v; want true, nil", i+1, ok, err)
		}
		got, err := store.GetMessageByID(ctx, first.ID)
		if err != nil || got == nil || !got.Read {
			t.Fatalf("GetMessageByID() after mark = %+v, %v", got, err)
		}
	}

	other, err := store.GetMessageByID(ctx, second.ID)
	if err != nil || other == nil || other.Read {
		t.Errorf("unrelated message changed: %+v, %v", other, err)
	}

	ok, err := store.DeleteMessage(ctx, first.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteMessage() = %v, %v", ok, err)
	}
	gone, err := store.GetMessageByID(ctx, first.ID)
	if err != nil || gone != nil {
		t.Errorf("GetMessageByID() after delete = %+v, %v", gone, err)
	}
}

func TestCreateMessageValidation(t *testing.T) {
	store, _ := setupTestStorage(t)

	_, err := store.CreateMessage(context.Background(), models.NewMessage{Name: "n", Email: "nope", Subject: "s", Message: "m"})
	if !models.IsValidationError(err) {
		t.Errorf("CreateMessage() error = %v, want validation error", err)
	}
}

func TestUpsertUser(t *testing.T) {
	store, clock := setupTestStorage(t)
	ctx := context.Background()

	first, err := store.UpsertUser(ctx, models.UpsertUser{
		ID: "google:1", Email: ptr("old@example.com"), FirstName: ptr("Ada"),
	})
	if err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if first.IsAdmin {
		t.Error("IsAdmin = true, want default false")
	}

	clock.Advance(time.Hour)
	second, err := store.UpsertUser(ctx, models.UpsertUser{
		ID: "google:1", Email: ptr("new@example.com"), IsAdmin: ptr(true),
	})
	if err != nil {
		t.Fatalf("UpsertUser() second call error = %v", err)
	}
	if second.Email == nil || *second.Email != "new@example.com" {
		t.Errorf("Email = %v, want new@example.com", second.Email)
	}
	if second.FirstName == nil || *second.FirstName != "Ada" {
		t.Errorf("FirstName = %v, want it kept", second.FirstName)
	}
	if !second.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", second.CreatedAt, first.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", second.UpdatedAt, first.UpdatedAt)
	}

	var count int64
	if err := store.db.Model(&models.User{}).Where("id = ?", "google:1").Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("rows for id = %d, want 1", count)
	}

	got, err := store.GetUser(ctx, "google:1")
	if err != nil || got == nil || *got.Email != "new@example.com" {
		t.Errorf("GetUser() = %+v, %v", got, err)
	}
}

func TestUpsertUserEmailUnique(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	if _, err := store.UpsertUser(ctx, models.UpsertUser{ID: "a", Email: ptr("same@example.com")}); err != nil {
		t.Fatalf("UpsertUser(a) error = %v", err)
	}
	if _, err := store.UpsertUser(ctx, models.UpsertUser{ID: "b", Email: ptr("same@example.com")}); err == nil {
		t.Error("duplicate email across users must fail")
	}
	// Users without email do not collide.
	for _, id := range []string{"c", "d"} {
		if _, err := store.UpsertUser(ctx, models.UpsertUser{ID: id}); err != nil {
			t.Errorf("UpsertUser(%s) error = %v", id, err)
		}
	}
}

func TestGetUserByEmail(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	if _, err := store.UpsertUser(ctx, models.UpsertUser{ID: "google:1", Email: ptr("me@example.com")}); err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	got, err := store.GetUserByEmail(ctx, "me@example.com")
	if err != nil || got == nil || got.ID != "google:1" {
		t.Fatalf("GetUserByEmail() = %+v, %v", got, err)
	}
	for _, email := range []string{"", "other@example.com"} {
		if got, err := store.GetUserByEmail(ctx, email); err != nil || got != nil {
			t.Errorf("GetUserByEmail(%q) = %+v, %v; want nil, nil", email, got, err)
		}
	}
}

func TestGetUserMissing(t *testing.T) {
	store, _ := setupTestStorage(t)

	for _, id := range []string{"", "nobody"} {
		got, err := store.GetUser(context.Background(), id)
		if err != nil || got != nil {
			t.Errorf("GetUser(%q) = %+v, %v; want nil, nil", id, got, err)
		}
	}
	if _, err := store.UpsertUser(context.Background(), models.UpsertUser{}); !models.IsValidationError(err) {
		t.Errorf("UpsertUser without id error = %v, want validation error", err)
	}
}
