package models

import "time"

type Table struct {
	Base           `bson:",inline"`
	TableID        string `bson:"table_id" json:"table_id"`
	TableNumber    int    `bson:"table_number" json:"table_number"`
	NumberOfGuests int    `bson:"number_of_guests" json:"number_of_guests"`
}

func (t *Table) GetPublicID() string   { return t.TableID }
func (t *Table) SetPublicID(id string) { t.TableID = id }

type TableUpdate struct {
	TableNumber    *int      `bson:"table_number,omitempty" json:"table_number" binding:"omitempty,gt=0"`
	NumberOfGuests *int      `bson:"number_of_guests,omitempty" json:"number_of_guests" binding:"omitempty,min=1,max=20"`
	UpdatedAt      time.Time `bson:"updated_at" json:"-"`
}
