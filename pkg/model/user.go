package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email        string `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string `json:"-" bson:"pwd"`
	FirstName    string `json:"first_name" bson:"first_name" validate:"required,min=1,max=100"`
	LastName     string `json:"last_name" bson:"last_name" validate:"required,min=1,max=100"`
	Role         string `json:"role" bson:"role" validate:"required,oneof=user admin"`
}

// Registration is the inbound payload for creating a user. The plaintext
// password never reaches the persistence layer; the service hashes it into
// User.PasswordHash.
type Registration struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}
