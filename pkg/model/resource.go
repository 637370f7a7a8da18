package model

const (
	ResourceRoom = "room"
	ResourceHall = "hall"
)

type Resource struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Type        string `json:"type" bson:"type" validate:"required,oneof=room hall"`
	Number      string `json:"number" bson:"number" validate:"required,min=1,max=50"`
	Description string `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	Capacity    int    `json:"capacity,omitempty" bson:"capacity,omitempty" validate:"omitempty,min=1,max=10000"`
}
