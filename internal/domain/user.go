package domain

import (
	"context"
	"regexp"
	"time"
)

var (
	RgxEmail      = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	AnonymousUser = &User{}
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarURL"  db:"avatar_url"`
	Password  []byte    `json:"-"`
	Activated bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"  db:"created_at"`
	Version   int       `json:"version"`
	// Websocket related, populated by the hub when the user subscribes
	Events    EventChan `json:"-"`
	CloseSlow func()    `json:"-"`
}

type UserService interface {
	RegisterUser(ctx context.Context, u *UserRegister) (string, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SearchUser(ctx context.Context, query string) ([]*User, error)
	GetForToken(ctx context.Context, scope, plainToken string) (*User, error)
	ActivateUser(ctx context.Context, u *User) error
	AuthenticateUser(ctx context.Context, u *UserAuth) (string, error)
}

type UserRepository interface {
	RegisterUser(ctx context.Context, u *User) (string, error)
	ExistsUser(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SearchUser(ctx context.Context, paramName, paramValue string) ([]*User, error)
	UpdateUser(ctx context.Context, u *User) error
	ActivateUser(ctx context.Context, u *User) error
	GetForToken(ctx context.Context, scope string, hash []byte) (*User, error)
}

// DTOs

type UserRegister struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserAuth struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (u *User) IsAnonymousUser() bool {
	return u == AnonymousUser
}

func ValidateName(name string, ev *ErrValidation) {
	ev.Check(name != "", "name", "must be provided")
	ev.Check(len(name) >= 3, "name", "must be at least 3 bytes long")
	ev.Check(len(name) <= 30, "name", "must be no more than 30 bytes long")
}

func ValidateEmail(email string, ev *ErrValidation) {
	ev.Check(email != "", "email", "must be provided")
	ev.Check(len(email) <= 254 && RgxEmail.MatchString(email), "email", "must be a valid email address")
}

func ValidatePlainPassword(password string, ev *ErrValidation) {
	ev.Check(password != "", "password", "must be provided")
	ev.Check(len(password) >= 8, "password", "must be at least 8 bytes long")
	ev.Check(len(password) <= 72, "password", "must be no more than 72 bytes long")
}

func (u UserRegister) Validate() *ErrValidation {
	ev := NewErrValidation()
	ValidateName(u.Name, ev)
	ValidateEmail(u.Email, ev)
	ValidatePlainPassword(u.Password, ev)
	if ev.HasErrors() {
		return ev
	}
	return nil
}
