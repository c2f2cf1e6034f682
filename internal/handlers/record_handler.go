package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/somnathbasteai/jeni-bot/internal/errors"
	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
	"github.com/somnathbasteai/jeni-bot/internal/models"
	"github.com/somnathbasteai/jeni-bot/internal/services"
)

// RecordHandler serves the data-entry forms. Every write goes through the
// same executor as chat commands.
type RecordHandler struct {
	entries services.EntryServicer
	clock   Clock
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(entries services.EntryServicer, clock Clock) *RecordHandler {
	return &RecordHandler{entries: entries, clock: clock}
}

// RecordResponse confirms a write.
type RecordResponse struct {
	Message string            `json:"message"`
	ID      string            `json:"id"`
	Kind    models.RecordKind `json:"kind"`
}

// ProfileRequest upserts the profile. Omitted fields are left unchanged.
type ProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Location  *string `json:"location" binding:"omitempty,max=100"`
	Timezone  *string `json:"timezone" binding:"omitempty,timezone"`
	WakeTime  *string `json:"wake_time" binding:"omitempty,clock_time"`
	SleepTime *string `json:"sleep_time" binding:"omitempty,clock_time"`
	WorkStart *string `json:"work_start" binding:"omitempty,clock_time"`
	WorkEnd   *string `json:"work_end" binding:"omitempty,clock_time"`
}

// IncomeRequest records a month's salary. Month and year default to now.
type IncomeRequest struct {
	Month           string  `json:"month" binding:"omitempty,max=20"`
	Year            int     `json:"year" binding:"omitempty,min=2000,max=2100"`
	BaseSalary      float64 `json:"base_salary" binding:"required,gt=0"`
	Overtime        float64 `json:"overtime" binding:"min=0"`
	Bonus           float64 `json:"bonus" binding:"min=0"`
	Freelance       float64 `json:"freelance" binding:"min=0"`
	PassiveIncome   float64 `json:"passive_income" binding:"min=0"`
	DeductionsPF    float64 `json:"deductions_pf" binding:"min=0"`
	DeductionsTax   float64 `json:"deductions_tax" binding:"min=0"`
	DeductionsOther float64 `json:"deductions_other" binding:"min=0"`
	Notes           string  `json:"notes" binding:"max=500"`
}

// EMIRequest adds a loan installment.
type EMIRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Lender          string  `json:"lender" binding:"max=100"`
	LoanType        string  `json:"loan_type" binding:"max=50"`
	EMIAmount       float64 `json:"emi_amount" binding:"required,gt=0"`
	DueDay          int     `json:"due_day" binding:"omitempty,min=1,max=31"`
	RemainingMonths int     `json:"remaining_months" binding:"min=0"`
	TotalMonths     int     `json:"total_months" binding:"min=0"`
	PrincipalAmount float64 `json:"principal_amount" binding:"min=0"`
	InterestRate    float64 `json:"interest_rate" binding:"min=0,max=100"`
	StartDate       string  `json:"start_date" binding:"omitempty,iso_date"`
	AutoDebit       bool    `json:"auto_debit"`
}

// SubscriptionRequest adds a recurring charge.
type SubscriptionRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	BillingCycle string  `json:"billing_cycle" binding:"omitempty,billing_cycle"`
	Category     string  `json:"category" binding:"max=50"`
	RenewalDate  string  `json:"renewal_date" binding:"omitempty,iso_date"`
	AutoRenew    *bool   `json:"auto_renew"`
	IsEssential  bool    `json:"is_essential"`
}

// ExpenseRequest logs a spend. Date defaults to today.
type ExpenseRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Category      string  `json:"category" binding:"max=50"`
	SubCategory   string  `json:"sub_category" binding:"max=50"`
	Description   string  `json:"description" binding:"max=255"`
	PaymentMethod string  `json:"payment_method" binding:"max=50"`
	Date          string  `json:"date" binding:"omitempty,iso_date"`
	IsRecurring   bool    `json:"is_recurring"`
}

// ProjectRequest adds a project.
type ProjectRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description" binding:"max=1000"`
	TechStack    string `json:"tech_stack" binding:"max=255"`
	TargetLaunch string `json:"target_launch" binding:"omitempty,iso_date"`
	Progress     int    `json:"progress" binding:"min=0,max=100"`
	Status       string `json:"status" binding:"omitempty,project_status"`
	Priority     string `json:"priority" binding:"omitempty,priority"`
}

// TaskRequest adds a to-do.
type TaskRequest struct {
	Title            string  `json:"title" binding:"required,max=255"`
	Description      string  `json:"description" binding:"max=1000"`
	DueDate          *string `json:"due_date" binding:"omitempty,iso_date"`
	Priority         string  `json:"priority" binding:"omitempty,priority"`
	ProjectID        *string `json:"project_id" binding:"omitempty,uuid"`
	EstimatedMinutes int     `json:"estimated_minutes" binding:"min=0"`
}

// GoalRequest adds a goal.
type GoalRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"max=1000"`
	Category    string   `json:"category" binding:"max=50"`
	TargetValue *float64 `json:"target_value" binding:"omitempty,gt=0"`
	Deadline    *string  `json:"deadline" binding:"omitempty,iso_date"`
}

// ScheduleRequest adds a calendar entry. Date defaults to today.
type ScheduleRequest struct {
	Date            string `json:"date" binding:"omitempty,iso_date"`
	Time            string `json:"time" binding:"required,clock_time"`
	Event           string `json:"event" binding:"required,max=255"`
	Type            string `json:"type" binding:"max=50"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0"`
	Priority        string `json:"priority" binding:"omitempty,priority"`
	IsRecurring     bool   `json:"is_recurring"`
}

// HealthRequest merges metrics into a day's log. Date defaults to today.
type HealthRequest struct {
	Date            string   `json:"date" binding:"omitempty,iso_date"`
	SleepHours      *float64 `json:"sleep_hours" binding:"omitempty,min=0,max=24"`
	SleepQuality    *int     `json:"sleep_quality" binding:"omitempty,min=1,max=10"`
	Steps           *int     `json:"steps" binding:"omitempty,min=0"`
	WaterGlasses    *int     `json:"water_glasses" binding:"omitempty,min=0"`
	ExerciseType    *string  `json:"exercise_type" binding:"omitempty,max=50"`
	ExerciseMinutes *int     `json:"exercise_minutes" binding:"omitempty,min=0"`
	Mood            *int     `json:"mood" binding:"omitempty,min=1,max=10"`
	EnergyLevel     *int     `json:"energy_level" binding:"omitempty,min=1,max=10"`
	WeightKg        *float64 `json:"weight_kg" binding:"omitempty,gt=0"`
}

// submit runs m and writes the confirmation. Upserts answer 200 whether or
// not the row existed; creates answer 201.
func (h *RecordHandler) submit(c *gin.Context, m interpreter.Mutation) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	res, err := h.entries.Submit(c.Request.Context(), userID, services.SourceForm, m)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	status := http.StatusCreated
	if res.Kind == models.KindProfile || res.Kind == models.KindHealthLog {
		status = http.StatusOK
	}
	c.JSON(status, RecordResponse{Message: res.Message, ID: res.RecordID, Kind: res.Kind})
}

// UpsertProfile creates or updates the profile
// @Summary     Upsert profile
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProfileRequest true "Profile fields"
// @Success     200 {object} RecordResponse "Profile saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /profile [put]
func (h *RecordHandler) UpsertProfile(c *gin.Context) {
	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name != nil {
		name := interpreter.TitleCase(*req.Name)
		req.Name = &name
	}
	h.submit(c, interpreter.UpdateProfile{Patch: models.ProfilePatch{
		Name:      req.Name,
		Location:  req.Location,
		Timezone:  req.Timezone,
		WakeTime:  req.WakeTime,
		SleepTime: req.SleepTime,
		WorkStart: req.WorkStart,
		WorkEnd:   req.WorkEnd,
	}})
}

// CreateIncome records a salary row
// @Summary     Record income
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body IncomeRequest true "Income"
// @Success     201 {object} RecordResponse "Income recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /income [post]
func (h *RecordHandler) CreateIncome(c *gin.Context) {
	var req IncomeRequest
	if !bindJSON(c, &req) {
		return
	}
	now := h.clock.now()
	if req.Month == "" {
		req.Month = now.Month().String()
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	h.submit(c, interpreter.RecordIncome{
		Month:           req.Month,
		Year:            req.Year,
		Base:            req.BaseSalary,
		Overtime:        req.Overtime,
		Bonus:           req.Bonus,
		Freelance:       req.Freelance,
		Passive:         req.PassiveIncome,
		PF:              req.DeductionsPF,
		Tax:             req.DeductionsTax,
		OtherDeductions: req.DeductionsOther,
		Notes:           req.Notes,
	})
}

// CreateEMI adds a loan installment
// @Summary     Add EMI
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EMIRequest true "EMI"
// @Success     201 {object} RecordResponse "EMI added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /emis [post]
func (h *RecordHandler) CreateEMI(c *gin.Context) {
	var req EMIRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.DueDay == 0 {
		req.DueDay = 1
	}
	if req.TotalMonths < req.RemainingMonths {
		req.TotalMonths = req.RemainingMonths
	}
	h.submit(c, interpreter.AddEMI{
		Name:            req.Name,
		Lender:          strings.ToUpper(strings.TrimSpace(req.Lender)),
		LoanType:        req.LoanType,
		Amount:          req.EMIAmount,
		DueDay:          req.DueDay,
		RemainingMonths: req.RemainingMonths,
		TotalMonths:     req.TotalMonths,
		Principal:       req.PrincipalAmount,
		InterestRate:    req.InterestRate,
		StartDate:       req.StartDate,
		AutoDebit:       req.AutoDebit,
	})
}

// CreateSubscription adds a subscription
// @Summary     Add subscription
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SubscriptionRequest true "Subscription"
// @Success     201 {object} RecordResponse "Subscription added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /subscriptions [post]
func (h *RecordHandler) CreateSubscription(c *gin.Context) {
	var req SubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	category := req.Category
	if category == "" {
		category = interpreter.DetectCategory(req.Name, interpreter.SubscriptionCategories)
	}
	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}
	h.submit(c, interpreter.AddSubscription{
		Name:        req.Name,
		Amount:      req.Amount,
		Cycle:       models.BillingCycle(req.BillingCycle),
		Category:    category,
		Essential:   req.IsEssential,
		AutoRenew:   autoRenew,
		RenewalDate: req.RenewalDate,
	})
}

// CreateExpense logs an expense
// @Summary     Log expense
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense"
// @Success     201 {object} RecordResponse "Expense logged"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /expenses [post]
func (h *RecordHandler) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Date == "" {
		req.Date = h.clock.Today()
	}
	category := req.Category
	if category == "" {
		category = interpreter.DetectCategory(req.Description, interpreter.ExpenseCategories)
	}
	description := req.Description
	if description == "" {
		description = category
	}
	h.submit(c, interpreter.RecordExpense{
		Amount:        req.Amount,
		Category:      category,
		SubCategory:   req.SubCategory,
		Description:   description,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
		Recurring:     req.IsRecurring,
	})
}

// CreateProject adds a project
// @Summary     Add project
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProjectRequest true "Project"
// @Success     201 {object} RecordResponse "Project added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /projects [post]
func (h *RecordHandler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	h.submit(c, interpreter.AddProject{
		Name:         req.Name,
		Description:  req.Description,
		TechStack:    req.TechStack,
		TargetLaunch: req.TargetLaunch,
		Progress:     req.Progress,
		Status:       models.ProjectStatus(req.Status),
		Priority:     models.Priority(req.Priority),
	})
}

// CreateTask adds a task
// @Summary     Add task
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TaskRequest true "Task"
// @Success     201 {object} RecordResponse "Task added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /tasks [post]
func (h *RecordHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}
	h.submit(c, interpreter.AddTask{
		Title:            req.Title,
		Description:      req.Description,
		DueDate:          req.DueDate,
		Priority:         models.Priority(req.Priority),
		ProjectID:        req.ProjectID,
		EstimatedMinutes: req.EstimatedMinutes,
	})
}

// CreateGoal adds a goal
// @Summary     Add goal
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GoalRequest true "Goal"
// @Success     201 {object} RecordResponse "Goal added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /goals [post]
func (h *RecordHandler) CreateGoal(c *gin.Context) {
	var req GoalRequest
	if !bindJSON(c, &req) {
		return
	}
	category := req.Category
	if category == "" {
		category = interpreter.DetectCategory(req.Title, interpreter.GoalCategories)
	}
	h.submit(c, interpreter.AddGoal{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
	})
}

// CreateScheduleItem adds a calendar entry
// @Summary     Add schedule entry
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ScheduleRequest true "Schedule entry"
// @Success     201 {object} RecordResponse "Entry scheduled"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /schedule [post]
func (h *RecordHandler) CreateScheduleItem(c *gin.Context) {
	var req ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Date == "" {
		req.Date = h.clock.Today()
	}
	h.submit(c, interpreter.AddScheduleItem{
		Date:            req.Date,
		Time:            req.Time,
		Event:           req.Event,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		Priority:        models.Priority(req.Priority),
		Recurring:       req.IsRecurring,
	})
}

// UpsertHealth merges metrics into a day's health log
// @Summary     Log health
// @Tags        records
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body HealthRequest true "Health metrics"
// @Success     200 {object} RecordResponse "Health log saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /health [put]
func (h *RecordHandler) UpsertHealth(c *gin.Context) {
	var req HealthRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := models.HealthPatch{
		SleepHours:      req.SleepHours,
		SleepQuality:    req.SleepQuality,
		Steps:           req.Steps,
		WaterGlasses:    req.WaterGlasses,
		ExerciseType:    req.ExerciseType,
		ExerciseMinutes: req.ExerciseMinutes,
		Mood:            req.Mood,
		EnergyLevel:     req.EnergyLevel,
		WeightKg:        req.WeightKg,
	}
	if patch.Empty() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one health metric is required"))
		return
	}
	if req.Date == "" {
		req.Date = h.clock.Today()
	}
	h.submit(c, interpreter.LogHealth{Date: req.Date, Patch: patch})
}
