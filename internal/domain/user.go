package domain

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccessToken is an issued bearer token, persisted so the audit middleware
// can attribute requests to users.
type AccessToken struct {
	ID          int64     `json:"id"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Principal is the authenticated caller identity. It is established at the
// HTTP boundary and passed through opaquely; core processing never consumes
// it.
type Principal struct {
	UserID   int64
	Username string
}

type UserRepository interface {
	CreateUser(u *User) error
	GetUserByID(id int64) (*User, error)
	GetUserByUsername(username string) (*User, error)
	SaveUser(u *User) error
	CreateAccessToken(t *AccessToken) error
	GetAccessToken(token string) (*AccessToken, error)
}
