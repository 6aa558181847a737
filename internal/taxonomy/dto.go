package taxonomy

import (
	"github.com/google/uuid"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
)

// CategoryDTO is a menu section with its ordered subcategories.
type CategoryDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Position      int              `json:"position"`
	Subcategories []SubcategoryDTO `json:"subcategories"`
}

// SubcategoryDTO is a nested label under a category.
type SubcategoryDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
}

// TasteDTO is a flat flavor label.
type TasteDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryFromModel maps the persisted category and its subcategories.
func CategoryFromModel(m *models.Category) *CategoryDTO {
	if m == nil {
		return nil
	}
	subs := make([]SubcategoryDTO, 0, len(m.Subcategories))
	for _, sub := range m.Subcategories {
		subs = append(subs, SubcategoryDTO{ID: sub.ID, Name: sub.Name, Position: sub.Position})
	}
	return &CategoryDTO{
		ID:            m.ID,
		Name:          m.Name,
		Position:      m.Position,
		Subcategories: subs,
	}
}

// TasteFromModel maps the persisted taste label.
func TasteFromModel(m *models.Taste) *TasteDTO {
	if m == nil {
		return nil
	}
	return &TasteDTO{ID: m.ID, Name: m.Name}
}
