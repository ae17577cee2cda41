package domain

// UserRole gates creation/edit/delete/roster-management capabilities.
// Any user may hold either role and switch between them.
type UserRole string

const (
	RoleVolunteer UserRole = "volunteer"
	RoleOrganiser UserRole = "organiser"
)

// IsValid reports whether the role is a known role
func (r UserRole) IsValid() bool {
	return r == RoleVolunteer || r == RoleOrganiser
}

// AppUser represents a registered user of the platform
type AppUser struct {
	BaseModel
	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	DisplayName  string   `gorm:"type:varchar(255);not null" json:"display_name"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'volunteer'" json:"role"`
}

// TableName specifies the table name for AppUser
func (AppUser) TableName() string {
	return "users"
}
