package schema

// Organization is a record of the organizations collection.
type Organization struct {
	ID       string `yaml:"id" json:"id" validate:"required"`
	Name     string `yaml:"name" json:"name" validate:"required"`
	Slug     string `yaml:"slug" json:"slug" validate:"required,lowercase"`
	Industry string `yaml:"industry,omitempty" json:"industry,omitempty"`
	Country  string `yaml:"country" json:"country" validate:"required,iso3166_1_alpha2"`
	Timezone string `yaml:"timezone" json:"timezone" validate:"required"`
	Currency string `yaml:"currency" json:"currency" validate:"required,iso4217"`
	Plan     string `yaml:"plan" json:"plan" validate:"required,oneof=starter growth enterprise"`
	Audit    `yaml:",inline"`
}

func (r Organization) RecordID() string { return r.ID }

// Setting is a record of the settings collection.
type Setting struct {
	ID              string   `yaml:"id" json:"id" validate:"required"`
	OrganizationID  string   `yaml:"organizationId" json:"organizationId" validate:"required"`
	Locale          string   `yaml:"locale" json:"locale" validate:"required,bcp47_language_tag"`
	Theme           string   `yaml:"theme" json:"theme" validate:"oneof=light dark system"`
	FiscalYearStart string   `yaml:"fiscalYearStart" json:"fiscalYearStart" validate:"required,isodate"`
	Features        []string `yaml:"features" json:"features" validate:"dive,required"`
	Audit           `yaml:",inline"`
}

func (r Setting) RecordID() string { return r.ID }

// Department is a record of the departments collection.
type Department struct {
	ID             string `yaml:"id" json:"id" validate:"required"`
	OrganizationID string `yaml:"organizationId" json:"organizationId" validate:"required"`
	Name           string `yaml:"name" json:"name" validate:"required"`
	Code           string `yaml:"code" json:"code" validate:"required,uppercase,len=3"`
	Headcount      int    `yaml:"headcount" json:"headcount" validate:"gte=0"`
	Audit          `yaml:",inline"`
}

func (r Department) RecordID() string { return r.ID }

// Role is a record of the roles collection.
type Role struct {
	ID             string   `yaml:"id" json:"id" validate:"required"`
	OrganizationID string   `yaml:"organizationId" json:"organizationId" validate:"required"`
	Name           string   `yaml:"name" json:"name" validate:"required"`
	Portal         string   `yaml:"portal" json:"portal" validate:"required,portal"`
	Permissions    []string `yaml:"permissions" json:"permissions" validate:"required,min=1,dive,permission"`
	Audit          `yaml:",inline"`
}

func (r Role) RecordID() string { return r.ID }

// User is a record of the users collection.
type User struct {
	ID           string `yaml:"id" json:"id" validate:"required"`
	Email        string `yaml:"email" json:"email" validate:"required,email"`
	DisplayName  string `yaml:"displayName" json:"displayName" validate:"required"`
	RoleID       string `yaml:"roleId" json:"roleId" validate:"required"`
	DepartmentID string `yaml:"departmentId,omitempty" json:"departmentId,omitempty"`
	Portal       string `yaml:"portal" json:"portal" validate:"required,portal"`
	Status       string `yaml:"status" json:"status" validate:"required,oneof=active invited suspended"`
	Audit        `yaml:",inline"`
}

func (r User) RecordID() string { return r.ID }

// Employee is a record of the employees collection.
type Employee struct {
	ID             string  `yaml:"id" json:"id" validate:"required"`
	UserID         string  `yaml:"userId" json:"userId" validate:"required"`
	DepartmentID   string  `yaml:"departmentId" json:"departmentId" validate:"required"`
	Title          string  `yaml:"title" json:"title" validate:"required"`
	EmploymentType string  `yaml:"employmentType" json:"employmentType" validate:"required,oneof=full_time part_time contractor"`
	HireDate       string  `yaml:"hireDate" json:"hireDate" validate:"required,isodate"`
	Salary         float64 `yaml:"salary" json:"salary" validate:"gte=0"`
	Audit          `yaml:",inline"`
}

func (r Employee) RecordID() string { return r.ID }

// Candidate is a record of the candidates collection.
type Candidate struct {
	ID           string `yaml:"id" json:"id" validate:"required"`
	FullName     string `yaml:"fullName" json:"fullName" validate:"required"`
	Email        string `yaml:"email" json:"email" validate:"required,email"`
	Position     string `yaml:"position" json:"position" validate:"required"`
	DepartmentID string `yaml:"departmentId" json:"departmentId" validate:"required"`
	Stage        string `yaml:"stage" json:"stage" validate:"required,oneof=applied screening interview offer hired rejected"`
	Source       string `yaml:"source" json:"source" validate:"required"`
	Rating       int    `yaml:"rating" json:"rating" validate:"gte=0,lte=5"`
	Audit        `yaml:",inline"`
}

func (r Candidate) RecordID() string { return r.ID }

// Interview is a record of the interviews collection.
type Interview struct {
	ID            string `yaml:"id" json:"id" validate:"required"`
	CandidateID   string `yaml:"candidateId" json:"candidateId" validate:"required"`
	InterviewerID string `yaml:"interviewerId" json:"interviewerId" validate:"required"`
	ScheduledAt   string `yaml:"scheduledAt" json:"scheduledAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Mode          string `yaml:"mode" json:"mode" validate:"required,oneof=onsite video phone"`
	Status        string `yaml:"status" json:"status" validate:"required,oneof=scheduled completed cancelled"`
	Audit         `yaml:",inline"`
}

func (r Interview) RecordID() string { return r.ID }

// OnboardingTemplate is a record of the onboardingTemplates collection.
type OnboardingTemplate struct {
	ID           string `yaml:"id" json:"id" validate:"required"`
	Name         string `yaml:"name" json:"name" validate:"required"`
	DepartmentID string `yaml:"departmentId" json:"departmentId" validate:"required"`
	DurationDays int    `yaml:"durationDays" json:"durationDays" validate:"required,gt=0"`
	Audit        `yaml:",inline"`
}

func (r OnboardingTemplate) RecordID() string { return r.ID }

// OnboardingTask is a record of the onboardingTasks collection.
type OnboardingTask struct {
	ID            string `yaml:"id" json:"id" validate:"required"`
	TemplateID    string `yaml:"templateId" json:"templateId" validate:"required"`
	Title         string `yaml:"title" json:"title" validate:"required"`
	Owner         string `yaml:"owner" json:"owner" validate:"required,oneof=hr manager it employee"`
	DueOffsetDays int    `yaml:"dueOffsetDays" json:"dueOffsetDays" validate:"gte=0"`
	Audit         `yaml:",inline"`
}

func (r OnboardingTask) RecordID() string { return r.ID }

// Client is a record of the clients collection.
type Client struct {
	ID           string `yaml:"id" json:"id" validate:"required"`
	Name         string `yaml:"name" json:"name" validate:"required"`
	Industry     string `yaml:"industry,omitempty" json:"industry,omitempty"`
	ContactEmail string `yaml:"contactEmail" json:"contactEmail" validate:"required,email"`
	Tier         string `yaml:"tier" json:"tier" validate:"required,oneof=standard premium strategic"`
	Status       string `yaml:"status" json:"status" validate:"required,oneof=active prospect churned"`
	Audit        `yaml:",inline"`
}

func (r Client) RecordID() string { return r.ID }

// Ticket is a record of the tickets collection.
type Ticket struct {
	ID         string `yaml:"id" json:"id" validate:"required"`
	ClientID   string `yaml:"clientId" json:"clientId" validate:"required"`
	Subject    string `yaml:"subject" json:"subject" validate:"required"`
	Priority   string `yaml:"priority" json:"priority" validate:"required,oneof=low medium high urgent"`
	Status     string `yaml:"status" json:"status" validate:"required,oneof=open pending resolved closed"`
	AssigneeID string `yaml:"assigneeId,omitempty" json:"assigneeId,omitempty"`
	Audit      `yaml:",inline"`
}

func (r Ticket) RecordID() string { return r.ID }

// Project is a record of the projects collection.
type Project struct {
	ID           string  `yaml:"id" json:"id" validate:"required"`
	Name         string  `yaml:"name" json:"name" validate:"required"`
	ClientID     string  `yaml:"clientId" json:"clientId" validate:"required"`
	DepartmentID string  `yaml:"departmentId" json:"departmentId" validate:"required"`
	Status       string  `yaml:"status" json:"status" validate:"required,oneof=planning active on_hold completed"`
	Budget       float64 `yaml:"budget" json:"budget" validate:"gte=0"`
	StartDate    string  `yaml:"startDate" json:"startDate" validate:"required,isodate"`
	EndDate      string  `yaml:"endDate,omitempty" json:"endDate,omitempty" validate:"omitempty,isodate"`
	Audit        `yaml:",inline"`
}

func (r Project) RecordID() string { return r.ID }

// Task is a record of the tasks collection.
type Task struct {
	ID            string  `yaml:"id" json:"id" validate:"required"`
	ProjectID     string  `yaml:"projectId" json:"projectId" validate:"required"`
	Title         string  `yaml:"title" json:"title" validate:"required"`
	AssigneeID    string  `yaml:"assigneeId,omitempty" json:"assigneeId,omitempty"`
	Status        string  `yaml:"status" json:"status" validate:"required,oneof=todo in_progress review done"`
	EstimateHours float64 `yaml:"estimateHours" json:"estimateHours" validate:"gte=0"`
	Audit         `yaml:",inline"`
}

func (r Task) RecordID() string { return r.ID }

// Account is a record of the accounts collection.
type Account struct {
	ID       string  `yaml:"id" json:"id" validate:"required"`
	Code     string  `yaml:"code" json:"code" validate:"required,numeric"`
	Name     string  `yaml:"name" json:"name" validate:"required"`
	Type     string  `yaml:"type" json:"type" validate:"required,oneof=asset liability equity revenue expense"`
	Currency string  `yaml:"currency" json:"currency" validate:"required,iso4217"`
	Balance  float64 `yaml:"balance" json:"balance"`
	Audit    `yaml:",inline"`
}

func (r Account) RecordID() string { return r.ID }

// Invoice is a record of the invoices collection.
type Invoice struct {
	ID        string  `yaml:"id" json:"id" validate:"required"`
	Number    string  `yaml:"number" json:"number" validate:"required"`
	ClientID  string  `yaml:"clientId" json:"clientId" validate:"required"`
	ProjectID string  `yaml:"projectId,omitempty" json:"projectId,omitempty"`
	Amount    float64 `yaml:"amount" json:"amount" validate:"gt=0"`
	Currency  string  `yaml:"currency" json:"currency" validate:"required,iso4217"`
	Status    string  `yaml:"status" json:"status" validate:"required,oneof=draft sent paid overdue void"`
	IssuedAt  string  `yaml:"issuedAt" json:"issuedAt" validate:"required,isodate"`
	DueAt     string  `yaml:"dueAt" json:"dueAt" validate:"required,isodate"`
	Audit     `yaml:",inline"`
}

func (r Invoice) RecordID() string { return r.ID }

// Expense is a record of the expenses collection.
type Expense struct {
	ID          string  `yaml:"id" json:"id" validate:"required"`
	AccountID   string  `yaml:"accountId" json:"accountId" validate:"required"`
	SubmittedBy string  `yaml:"submittedBy" json:"submittedBy" validate:"required"`
	Amount      float64 `yaml:"amount" json:"amount" validate:"gt=0"`
	Category    string  `yaml:"category" json:"category" validate:"required"`
	Status      string  `yaml:"status" json:"status" validate:"required,oneof=submitted approved rejected reimbursed"`
	Audit       `yaml:",inline"`
}

func (r Expense) RecordID() string { return r.ID }

// Course is a record of the courses collection.
type Course struct {
	ID            string  `yaml:"id" json:"id" validate:"required"`
	Title         string  `yaml:"title" json:"title" validate:"required"`
	Category      string  `yaml:"category" json:"category" validate:"required"`
	Level         string  `yaml:"level" json:"level" validate:"required,oneof=beginner intermediate advanced"`
	DurationHours float64 `yaml:"durationHours" json:"durationHours" validate:"gt=0"`
	Audit         `yaml:",inline"`
}

func (r Course) RecordID() string { return r.ID }

// Enrollment is a record of the enrollments collection.
type Enrollment struct {
	ID       string `yaml:"id" json:"id" validate:"required"`
	CourseID string `yaml:"courseId" json:"courseId" validate:"required"`
	UserID   string `yaml:"userId" json:"userId" validate:"required"`
	Progress int    `yaml:"progress" json:"progress" validate:"gte=0,lte=100"`
	Status   string `yaml:"status" json:"status" validate:"required,oneof=enrolled in_progress completed"`
	Audit    `yaml:",inline"`
}

func (r Enrollment) RecordID() string { return r.ID }

// Announcement is a record of the announcements collection.
type Announcement struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Title       string `yaml:"title" json:"title" validate:"required"`
	Body        string `yaml:"body" json:"body" validate:"required"`
	AuthorID    string `yaml:"authorId" json:"authorId" validate:"required"`
	Audience    string `yaml:"audience" json:"audience" validate:"required,oneof=all admin employee client candidate"`
	Pinned      bool   `yaml:"pinned" json:"pinned"`
	PublishedAt string `yaml:"publishedAt" json:"publishedAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Audit       `yaml:",inline"`
}

func (r Announcement) RecordID() string { return r.ID }
