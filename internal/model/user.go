package model

// User is an API account allowed to create campaigns. The password hash never
// leaves the server.
type User struct {
	ID             int    `db:"id" json:"id"`
	Username       string `db:"username" json:"username"`
	HashedPassword string `db:"hashed_password" json:"-"`
}
