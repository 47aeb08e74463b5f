package models

import "time"

type Food struct {
	Base      `bson:",inline"`
	FoodID    string  `bson:"food_id" json:"food_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	FoodImage *string `bson:"food_image" json:"food_image"`
	MenuID    string  `bson:"menu_id" json:"menu_id"`
}

func (f *Food) GetPublicID() string   { return f.FoodID }
func (f *Food) SetPublicID(id string) { f.FoodID = id }

type FoodUpdate struct {
	Name      *string   `bson:"name,omitempty" json:"name" binding:"omitempty,min=2,max=100"`
	Price     *float64  `bson:"price,omitempty" json:"price" binding:"omitempty,gt=0"`
	FoodImage *string   `bson:"food_image,omitempty" json:"food_image"`
	MenuID    *string   `bson:"menu_id,omitempty" json:"menu_id"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
