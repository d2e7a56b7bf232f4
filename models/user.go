package models

import "github.com/uptrace/bun"

// User is a club official allowed to edit races. Passwords are bcrypt hashes.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	Email    string `bun:"email,notnull,unique" json:"email"`
	Name     string `bun:"name,notnull" json:"name"`
	Role     string `bun:"role,notnull,default:'admin'" json:"role"`
	Password string `bun:"password,notnull" json:"-"`
}
