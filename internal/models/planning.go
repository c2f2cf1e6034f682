package models

// Priority is shared by projects, tasks and schedule entries.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank orders priorities from most to least urgent; unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// ProjectStatus represents where a project stands
type ProjectStatus string

const (
	ProjectStatusPlanned  ProjectStatus = "planned"
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusBuilding ProjectStatus = "building"
	ProjectStatusPaused   ProjectStatus = "paused"
)

// Project is a personal or side project with a progress percentage in [0,100].
type Project struct {
	Base
	Owned
	Name            string        `gorm:"not null" json:"name"`
	Description     string        `json:"description,omitempty"`
	Status          ProjectStatus `gorm:"not null;default:'active'" json:"status"`
	Progress        int           `gorm:"not null;default:0" json:"progress"`
	Priority        Priority      `gorm:"not null;default:'medium'" json:"priority"`
	ProjectType     string        `json:"project_type,omitempty"`
	TechStack       string        `json:"tech_stack,omitempty"`
	InvestmentTotal float64       `json:"investment_total"`
	RevenueTotal    float64       `json:"revenue_total"`
	TargetLaunch    string        `gorm:"size:10" json:"target_launch,omitempty"`
	StartDate       string        `gorm:"size:10" json:"start_date,omitempty"`
	GithubURL       string        `json:"github_url,omitempty"`
	LiveURL         string        `json:"live_url,omitempty"`
}

func (Project) TableName() string { return "projects" }
func (*Project) Kind() RecordKind { return KindProject }

// ClampProgress bounds a progress percentage to [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Task is a to-do item. Completion is toggled outside the interpreter.
type Task struct {
	Base
	Owned
	ProjectID        *string  `gorm:"type:uuid" json:"project_id,omitempty"`
	Title            string   `gorm:"not null" json:"title"`
	Description      string   `json:"description,omitempty"`
	DueDate          *string  `gorm:"size:10;index" json:"due_date,omitempty"`
	Priority         Priority `gorm:"not null;default:'medium'" json:"priority"`
	EstimatedMinutes int      `json:"estimated_minutes,omitempty"`
	IsDone           bool     `gorm:"not null;default:false;index" json:"is_done"`
}

func (Task) TableName() string { return "tasks" }
func (*Task) Kind() RecordKind { return KindTask }

// GoalStatus represents goal progress state
type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusDone       GoalStatus = "done"
)

// Goal is a tracked objective, created with CurrentValue 0.
type Goal struct {
	Base
	Owned
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description,omitempty"`
	Category     string     `gorm:"not null;default:'personal'" json:"category"`
	TargetValue  *float64   `json:"target_value,omitempty"`
	CurrentValue float64    `gorm:"not null;default:0" json:"current_value"`
	Deadline     *string    `gorm:"size:10" json:"deadline,omitempty"`
	Status       GoalStatus `gorm:"not null;default:'in_progress';index" json:"status"`
}

func (Goal) TableName() string { return "goals" }
func (*Goal) Kind() RecordKind { return KindGoal }

// ScheduleStatus marks where a schedule entry stands today.
type ScheduleStatus string

const (
	ScheduleStatusPending ScheduleStatus = "pending"
	ScheduleStatusActive  ScheduleStatus = "active"
	ScheduleStatusDone    ScheduleStatus = "done"
)

// ScheduleItem is one timed entry on a calendar date.
type ScheduleItem struct {
	Base
	Owned
	Date            string         `gorm:"size:10;not null;index" json:"date"`
	Time            string         `gorm:"size:5;not null" json:"time"`
	Event           string         `gorm:"not null" json:"event"`
	Type            string         `gorm:"not null;default:'general'" json:"type"`
	DurationMinutes int            `json:"duration_minutes"`
	Status          ScheduleStatus `gorm:"not null;default:'pending'" json:"status"`
	IsRecurring     bool           `json:"is_recurring"`
	Priority        Priority       `gorm:"not null;default:'medium'" json:"priority"`
}

func (ScheduleItem) TableName() string { return "schedule" }
func (*ScheduleItem) Kind() RecordKind { return KindSchedule }
