package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string   `gorm:"not null" json:"full_name"`
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string   `json:"phone"`
	Company  string   `json:"company"`
	Role     UserRole `gorm:"type:varchar(32);default:'client'" json:"role"`
	Status   string   `gorm:"default:'active'" json:"status"`

	PasswordHash       string     `json:"-"`
	LoginCodeHash      string     `json:"-"`
	LoginCodeExpiresAt *time.Time `json:"-"`

	Projects []Project `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
}

// Section is one addressable block of a public page (hero, how-it-works, ...).
// Content is always rewritten as a whole object; there are no partial patches.
type Section struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Page string `gorm:"not null;uniqueIndex:idx_sections_page_slot,priority:1" json:"page"`
	Slot string `gorm:"not null;uniqueIndex:idx_sections_page_slot,priority:2" json:"slot"`

	Order       int           `gorm:"default:0" json:"order"`
	Title       BilingualText `gorm:"type:jsonb" json:"title"`
	Description BilingualText `gorm:"type:jsonb" json:"description"`
	Images      StringList    `gorm:"type:jsonb" json:"images"`
	Features    FeatureList   `gorm:"type:jsonb" json:"features"`
}

// Service is a catalog entry (penetration testing, SOC monitoring, ...).
type Service struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug        string        `gorm:"uniqueIndex;not null" json:"slug"`
	Title       BilingualText `gorm:"type:jsonb" json:"title"`
	Description BilingualText `gorm:"type:jsonb" json:"description"`
	Icon        string        `json:"icon"`
	Image       string        `json:"image"`
	Features    FeatureList   `gorm:"type:jsonb" json:"features"`
	Active      bool          `gorm:"default:true" json:"active"`
	Order       int           `gorm:"default:0" json:"order"`
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

type Project struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ClientID  uint          `gorm:"not null;index" json:"client_id"`
	Client    User          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ServiceID uint          `gorm:"index" json:"service_id"`
	Name      BilingualText `gorm:"type:jsonb" json:"name"`
	Status    ProjectStatus `gorm:"type:varchar(32);default:'active'" json:"status"`

	Phases   PhaseList `gorm:"type:jsonb" json:"phases"`
	Progress int       `gorm:"default:0" json:"progress"`

	Modifications []ModificationRequest `gorm:"foreignKey:ProjectID" json:"modifications,omitempty"`
}

type ProjectPhase struct {
	Name     BilingualText `json:"name"`
	Order    int           `json:"order"`
	Progress int           `json:"progress"`
	Done     bool          `json:"done"`
}

type ModificationStatus string

const (
	ModificationPending  ModificationStatus = "pending"
	ModificationApproved ModificationStatus = "approved"
	ModificationRejected ModificationStatus = "rejected"
	ModificationDone     ModificationStatus = "done"
)

// ModificationRequest is a client-raised change request against a project.
type ModificationRequest struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProjectID uint               `gorm:"not null;index" json:"project_id"`
	ClientID  uint               `gorm:"not null;index" json:"client_id"`
	Subject   string             `gorm:"not null" json:"subject"`
	Details   string             `gorm:"type:text" json:"details"`
	Status    ModificationStatus `gorm:"type:varchar(32);default:'pending'" json:"status"`
	AdminNote string             `gorm:"type:text" json:"admin_note"`
}

type QuotationStatus string

const (
	QuotationNew      QuotationStatus = "new"
	QuotationReviewed QuotationStatus = "reviewed"
	QuotationClosed   QuotationStatus = "closed"
)

type QuotationRequest struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName  string `gorm:"not null" json:"full_name"`
	Phone     string `gorm:"not null" json:"phone"`
	ServiceID uint   `gorm:"not null;index" json:"service_id"`

	Email              string     `json:"email,omitempty"`
	CompanyName        string     `json:"company_name,omitempty"`
	ProjectDescription string     `gorm:"type:text" json:"project_description,omitempty"`
	BudgetFrom         int        `json:"budget_from,omitempty"`
	BudgetTo           int        `json:"budget_to,omitempty"`
	ExpectedDuration   string     `json:"expected_duration,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	EndDate            *time.Time `json:"end_date,omitempty"`

	Status QuotationStatus `gorm:"type:varchar(32);default:'new'" json:"status"`
}
