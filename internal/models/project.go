package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Categories offered by the admin form. The store accepts any non-empty value.
const (
	CategoryWeb    = "web"
	CategoryMobile = "mobile"
	CategoryDesign = "design"
)

type Project struct {
	ID           uint                        `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string                      `json:"title" gorm:"not null"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Category     string                      `json:"category" gorm:"not null;index"`
	ImageURL     string                      `json:"imageUrl" gorm:"not null"`
	Technologies datatypes.JSONSlice[string] `json:"technologies"`
	Challenges   datatypes.JSONSlice[string] `json:"challenges"`
	Solutions    datatypes.JSONSlice[string] `json:"solutions"`
	ProjectURL   *string                     `json:"projectUrl"`
	Featured     bool                        `json:"featured" gorm:"not null;default:false"`
	CreatedAt    time.Time                   `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time                   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// NewProject is the create payload. Identity and timestamps are assigned by the store.
type NewProject struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	ImageURL     string   `json:"imageUrl" validate:"required"`
	Technologies []string `json:"technologies"`
	Challenges   []string `json:"challenges"`
	Solutions    []string `json:"solutions"`
	ProjectURL   *string  `json:"projectUrl"`
	Featured     bool     `json:"featured"`
}

func (p NewProject) Row() Project {
	return Project{
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		ImageURL:     p.ImageURL,
		Technologies: p.Technologies,
		Challenges:   p.Challenges,
		Solutions:    p.Solutions,
		ProjectURL:   p.ProjectURL,
		Featured:     p.Featured,
	}
}

// ListPatch is a patch value for a nullable list column. A field missing
// from the JSON leaves Set false; an explicit null sets it with a nil List.
type ListPatch struct {
	Set  bool
	List []string
}

// SetList returns a patch that stores list, or NULL when list is nil.
func SetList(list []string) ListPatch {
	return ListPatch{Set: true, List: list}
}

func (p *ListPatch) UnmarshalJSON(b []byte) error {
	p.Set = true
	p.List = nil
	if string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, &p.List)
}

func (p ListPatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.List)
}

// column stores a nil list as JSON null, the same as an omitted list on create.
func (p ListPatch) column() datatypes.JSONSlice[string] {
	return datatypes.JSONSlice[string](p.List)
}

// ProjectPatch is a partial update; nil fields are left as they are.
type ProjectPatch struct {
	Title        *string   `json:"title" validate:"omitnil,min=1"`
	Description  *string   `json:"description" validate:"omitnil,min=1"`
	Category     *string   `json:"category" validate:"omitnil,min=1"`
	ImageURL     *string   `json:"imageUrl" validate:"omitnil,min=1"`
	Technologies ListPatch `json:"technologies" swaggertype:"array,string"`
	Challenges   ListPatch `json:"challenges" swaggertype:"array,string"`
	Solutions    ListPatch `json:"solutions" swaggertype:"array,string"`
	ProjectURL   *string   `json:"projectUrl"`
	Featured     *bool     `json:"featured"`
}

// Columns returns the column assignments for the fields present in the patch.
func (p ProjectPatch) Columns() map[string]any {
	values := map[string]any{}
	if p.Title != nil {
		values["title"] = *p.Title
	}
	if p.Description != nil {
		values["description"] = *p.Description
	}
	if p.Category != nil {
		values["category"] = *p.Category
	}
	if p.ImageURL != nil {
		values["image_url"] = *p.ImageURL
	}
	if p.Technologies.Set {
		values["technologies"] = p.Technologies.column()
	}
	if p.Challenges.Set {
		values["challenges"] = p.Challenges.column()
	}
	if p.Solutions.Set {
		values["solutions"] = p.Solutions.column()
	}
	if p.ProjectURL != nil {
		values["project_url"] = *p.ProjectURL
	}
	if p.Featured != nil {
		values["featured"] = *p.Featured
	}
	return values
}
