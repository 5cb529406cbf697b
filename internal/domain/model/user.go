package model

import "time"

// Role names a symbolic recipient group used by notification fan-out.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleComplectator Role = "complectator"
	RoleExecutor     Role = "executor"
	RoleClient       Role = "client"
)

// User is an account able to authenticate and receive notifications.
type User struct {
	ID           string
	Login        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

// Client is the customer entity documents reference.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
