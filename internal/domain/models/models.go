package models

import "time"

const (
	MinScore = 1
	MaxScore = 10

	// Username reserved for the self-service profile route.
	ReservedUsername = "me"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var roleRanks = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast reports whether r is ranked the same or higher than other.
// Unknown roles are ranked below every known role.
func (r Role) AtLeast(other Role) bool {
	return roleRanks[r] >= roleRanks[other] && r.IsValid()
}

type User struct {
	ID               int64      `json:"-" db:"id"`
	Username         string     `json:"username" db:"username"`
	Email            string     `json:"email" db:"email"`
	FirstName        string     `json:"first_name" db:"first_name"`
	LastName         string     `json:"last_name" db:"last_name"`
	Bio              string     `json:"bio" db:"bio"`
	Role             Role       `json:"role" db:"role"`
	IsSuperuser      bool       `json:"-" db:"is_superuser"`
	IsActive         bool       `json:"-" db:"is_active"`
	ConfirmationCode *string    `json:"-" db:"confirmation_code"`
	CodeIssuedAt     *time.Time `json:"-" db:"code_issued_at"`
	CreatedAt        time.Time  `json:"-" db:"created_at"`
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser
}

func (u *User) IsAdmin() bool {
	return !u.IsAnonymous() && (u.Role == RoleAdmin || u.IsSuperuser)
}

func (u *User) IsModerator() bool {
	return !u.IsAnonymous() && (u.Role.AtLeast(RoleModerator) || u.IsAdmin())
}

type Category struct {
	ID   int64  `json:"-" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

type Genre struct {
	ID   int64  `json:"-" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

type Title struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        int32    `json:"year"`
	Rating      *float64 `json:"rating"` // nil until the title gets its first review
	Description string   `json:"description"`
	Genres      []Genre  `json:"genre"`
	Category    Category `json:"category"`
}

type Review struct {
	ID       int64     `json:"id" db:"id"`
	TitleID  int64     `json:"-" db:"title_id"`
	AuthorID int64     `json:"-" db:"author_id"`
	Author   string    `json:"author" db:"author"`
	Title    string    `json:"title" db:"title"`
	Text     string    `json:"text" db:"text"`
	Score    int       `json:"score" db:"score"`
	PubDate  time.Time `json:"pub_date" db:"pub_date"`
}

type Comment struct {
	ID       int64     `json:"id" db:"id"`
	ReviewID int64     `json:"review" db:"review_id"`
	AuthorID int64     `json:"-" db:"author_id"`
	Author   string    `json:"author" db:"author"`
	Text     string    `json:"text" db:"text"`
	PubDate  time.Time `json:"pub_date" db:"pub_date"`
}
