package entity

import (
	"time"

	"github.com/google/uuid"
)

// DependentRoleLegalGuardian is the role given to a manager who adds a dependent
const DependentRoleLegalGuardian = "Responsable légal"

// Dependent wraps a Profile managed on behalf of its owner
type Dependent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfileID     uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	AccountExists bool      `gorm:"not null;default:false" json:"account_exists"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Profile Profile           `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Grants  []ManagementGrant `gorm:"foreignKey:DependentID" json:"grants,omitempty"`
}

func (Dependent) TableName() string {
	return "dependents"
}

// ManagementGrant gives one manager rights over one dependent
type ManagementGrant struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ManagerID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grants_manager_dependent" json:"manager_id"`
	DependentID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grants_manager_dependent" json:"dependent_id"`
	Role                  string    `gorm:"type:varchar(100);not null" json:"role"`
	CanModifyProfile      bool      `gorm:"not null;default:false" json:"can_modify_profile"`
	CanManageAppointments bool      `gorm:"not null;default:false" json:"can_manage_appointments"`
	CanManageDocuments    bool      `gorm:"not null;default:false" json:"can_manage_documents"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Manager   User      `gorm:"foreignKey:ManagerID" json:"-"`
	Dependent Dependent `gorm:"foreignKey:DependentID" json:"-"`
}

func (ManagementGrant) TableName() string {
	return "management_grants"
}

// Rights is the permission triple of a grant as seen by its manager
type Rights struct {
	ModifyProfile      bool
	ManageAppointments bool
	ManageDocuments    bool
}

// EffectiveRights re-derives the rights on every read: once the dependent's
// profile is linked to its own account no manager may modify it, whatever
// the stored flag says.
func (g *ManagementGrant) EffectiveRights(profile *Profile) Rights {
	return Rights{
		ModifyProfile:      g.CanModifyProfile && !profile.HasAccount(),
		ManageAppointments: g.CanManageAppointments,
		ManageDocuments:    g.CanManageDocuments,
	}
}
