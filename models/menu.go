package models

import "time"

type Menu struct {
	Base      `bson:",inline"`
	MenuID    string    `bson:"menu_id" json:"menu_id"`
	Name      string    `bson:"name" json:"name"`
	Category  string    `bson:"category" json:"category"`
	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`
}

func (m *Menu) GetPublicID() string   { return m.MenuID }
func (m *Menu) SetPublicID(id string) { m.MenuID = id }

type MenuUpdate struct {
	Name      *string    `bson:"name,omitempty" json:"name" binding:"omitempty,min=2,max=100"`
	Category  *string    `bson:"category,omitempty" json:"category" binding:"omitempty,min=2,max=50"`
	StartDate *time.Time `bson:"start_date,omitempty" json:"start_date"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"end_date"`
	UpdatedAt time.Time  `bson:"updated_at" json:"-"`
}
