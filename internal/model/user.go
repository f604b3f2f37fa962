package model

// User represents one managed user record.
type User struct {
	ID         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName   string `json:"fullName" gorm:"size:100;not null"`
	Email      string `json:"email" gorm:"size:255;not null"`
	Department string `json:"department" gorm:"size:255;not null"`
}

// UserRequest is the payload accepted by create and update.
type UserRequest struct {
	FullName   string `json:"fullName" form:"fullName" validate:"required,notblank,max=100"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	Department string `json:"department" form:"department" validate:"required,notblank"`
}

// Apply replaces all mutable fields of u. The ID is left untouched.
func (r UserRequest) Apply(u *User) {
	u.FullName = r.FullName
	u.Email = r.Email
	u.Department = r.Department
}

// NewUser builds an unsaved user from the request.
func (r UserRequest) NewUser() User {
	var u User
	r.Apply(&u)
	return u
}
