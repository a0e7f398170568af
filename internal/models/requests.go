package models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type IssueLoginCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type CodeLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateSectionRequest struct {
	Title       BilingualText  `json:"title"`
	Description BilingualText  `json:"description"`
	Images      []string       `json:"images"`
	Features    []FeatureEntry `json:"features"`
}

type CreateServiceRequest struct {
	Slug        string         `json:"slug" binding:"required,min=2"`
	Title       BilingualText  `json:"title" binding:"required"`
	Description BilingualText  `json:"description"`
	Icon        string         `json:"icon"`
	Image       string         `json:"image"`
	Features    []FeatureEntry `json:"features"`
	Active      *bool          `json:"active"`
	Order       *int           `json:"order"`
}

type UpdateServiceRequest struct {
	Title       BilingualText  `json:"title" binding:"required"`
	Description BilingualText  `json:"description"`
	Icon        string         `json:"icon"`
	Image       string         `json:"image"`
	Features    []FeatureEntry `json:"features"`
	Active      *bool          `json:"active"`
	Order       *int           `json:"order"`
}

type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2"`
	Phone    string  `json:"phone"`
	Company  string  `json:"company"`
	Status   *string `json:"status"`
}

type CreateProjectRequest struct {
	ClientID  uint           `json:"client_id" binding:"required"`
	ServiceID uint           `json:"service_id"`
	Name      BilingualText  `json:"name" binding:"required"`
	Phases    []ProjectPhase `json:"phases"`
}

type UpdateProjectPhaseRequest struct {
	Progress *int  `json:"progress" binding:"omitempty,min=0,max=100"`
	Done     *bool `json:"done"`
}

type CreateModificationRequest struct {
	Subject string `json:"subject" binding:"required,min=3"`
	Details string `json:"details"`
}

type ReviewModificationRequest struct {
	Status    string `json:"status" binding:"required"`
	AdminNote string `json:"admin_note"`
}

type SessionScalarRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type SessionImagesRequest struct {
	Images []string `json:"images"`
}

type SessionFeatureFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type SessionEntryFieldRequest struct {
	Index int    `json:"index" binding:"min=0"`
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type SessionEntryRequest struct {
	Index int `json:"index" binding:"min=0"`
}

type SessionMoveRequest struct {
	Index     int    `json:"index" binding:"min=0"`
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type UpdateQuotationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// QuotationForm is the raw public submission. It is deliberately all strings:
// the rule set in service.ValidateQuotation collects every violation instead
// of failing on the first bind error.
type QuotationForm struct {
	FullName           string `json:"full_name"`
	Phone              string `json:"phone"`
	ServiceID          string `json:"service_id"`
	Email              string `json:"email"`
	CompanyName        string `json:"company_name"`
	ProjectDescription string `json:"project_description"`
	BudgetRange        string `json:"budget_range"`
	ExpectedDuration   string `json:"expected_duration"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
}
