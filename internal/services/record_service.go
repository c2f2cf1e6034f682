package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/somnathbasteai/jeni-bot/internal/errors"
	"github.com/somnathbasteai/jeni-bot/internal/models"
	"github.com/somnathbasteai/jeni-bot/internal/pagination"
)

// recordService is the gorm-backed record store. Every query is scoped to
// one owner.
type recordService struct {
	db *gorm.DB
	// timezone is stamped on profiles created without one.
	timezone string
}

// NewRecordService creates a new RecordServicer. timezone is the configured
// TIMEZONE; an empty value means UTC.
func NewRecordService(db *gorm.DB, timezone string) RecordServicer {
	if timezone == "" {
		timezone = "UTC"
	}
	return &recordService{db: db, timezone: timezone}
}

// Create inserts rec owned by userID.
func (s *recordService) Create(ctx context.Context, userID string, rec models.Record) error {
	if userID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "user id is required")
	}
	rec.SetOwner(userID)
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreWrite, err)
	}
	return nil
}

// UpsertProfile merges patch into the user's single profile row.
func (s *recordService) UpsertProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, bool, error) {
	if userID == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "user id is required")
	}

	var profile models.Profile
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.Profile{UserID: userID, Timezone: s.timezone}
			patch.Apply(&profile)
			created = true
			return tx.Create(&profile).Error
		}
		if err != nil {
			return err
		}
		patch.Apply(&profile)
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrStoreWrite, err)
	}
	return &profile, created, nil
}

// UpsertHealthLog merges patch into the (user, date) row.
func (s *recordService) UpsertHealthLog(ctx context.Context, userID, date string, patch models.HealthPatch) (*models.HealthLog, bool, error) {
	if userID == "" || date == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "user id and date are required")
	}

	var log models.HealthLog
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log = models.HealthLog{UserID: userID, Date: date}
			patch.Apply(&log)
			created = true
			return tx.Create(&log).Error
		}
		if err != nil {
			return err
		}
		if len(patch.Updates()) == 0 {
			return nil
		}
		patch.Apply(&log)
		return tx.Model(&log).Updates(patch.Updates()).Error
	})
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrStoreWrite, err)
	}
	return &log, created, nil
}

// first loads a singleton row, mapping "not found" to nil.
func first[T any](q *gorm.DB) (*T, error) {
	var row T
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

// find loads a list of rows.
func find[T any](q *gorm.DB) ([]T, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

func (s *recordService) owned(ctx context.Context, userID string) *gorm.DB {
	return s.db.WithContext(ctx).Where("user_id = ?", userID)
}

func (s *recordService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	return first[models.Profile](s.owned(ctx, userID))
}

// LatestIncome returns the most recently recorded salary row. UUIDv7 ids
// break created_at ties in insertion order.
func (s *recordService) LatestIncome(ctx context.Context, userID string) (*models.Income, error) {
	return first[models.Income](s.owned(ctx, userID).Order("created_at DESC").Order("id DESC"))
}

func (s *recordService) ActiveEMIs(ctx context.Context, userID string) ([]models.EMI, error) {
	return find[models.EMI](s.owned(ctx, userID).
		Where("status = ?", models.EMIStatusActive).
		Order("due_day ASC").Order("name ASC"))
}

func (s *recordService) ActiveSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error) {
	return find[models.Subscription](s.owned(ctx, userID).
		Where("status = ?", models.SubscriptionStatusActive).
		Order("name ASC"))
}

// ExpensesSince returns expenses dated on or after fromDate, newest first.
func (s *recordService) ExpensesSince(ctx context.Context, userID, fromDate string) ([]models.Expense, error) {
	return find[models.Expense](s.owned(ctx, userID).
		Where("date >= ?", fromDate).
		Order("date DESC").Order("created_at DESC"))
}

func (s *recordService) Projects(ctx context.Context, userID string) ([]models.Project, error) {
	return find[models.Project](s.owned(ctx, userID).Order("name ASC"))
}

// OpenTasks returns unfinished tasks by due date, undated ones last.
func (s *recordService) OpenTasks(ctx context.Context, userID string, limit int) ([]models.Task, error) {
	q := s.owned(ctx, userID).
		Where("is_done = ?", false).
		Order("due_date IS NULL").Order("due_date ASC").Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return find[models.Task](q)
}

func (s *recordService) OpenGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	return find[models.Goal](s.owned(ctx, userID).
		Where("status <> ?", models.GoalStatusDone).
		Order("created_at ASC"))
}

func (s *recordService) ScheduleFor(ctx context.Context, userID, date string) ([]models.ScheduleItem, error) {
	return find[models.ScheduleItem](s.owned(ctx, userID).
		Where("date = ?", date).
		Order("time ASC"))
}

func (s *recordService) HealthLogFor(ctx context.Context, userID, date string) (*models.HealthLog, error) {
	return first[models.HealthLog](s.owned(ctx, userID).Where("date = ?", date))
}

// RecentChat returns the newest turns across all sessions first.
func (s *recordService) RecentChat(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	return find[models.ChatMessage](s.owned(ctx, userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit))
}

// SessionHistory returns the last limit turns of a session, oldest first.
func (s *recordService) SessionHistory(ctx context.Context, userID, sessionID string, limit int) ([]models.ChatMessage, error) {
	rows, err := find[models.ChatMessage](s.owned(ctx, userID).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit))
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// AppendTurns inserts the turns in a single statement.
func (s *recordService) AppendTurns(ctx context.Context, turns []models.ChatMessage) error {
	if len(turns) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&turns).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreWrite, err)
	}
	return nil
}

// ListSession pages through one session in conversation order.
func (s *recordService) ListSession(ctx context.Context, userID, sessionID string, page pagination.PageRequest) (*pagination.PageResponse[models.ChatMessage], error) {
	page.Defaults()

	var total int64
	q := s.db.WithContext(ctx).Model(&models.ChatMessage{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID)
	if err := q.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if total == 0 {
		return nil, apperrors.ErrSessionNotFound
	}

	var turns []models.ChatMessage
	if err := s.owned(ctx, userID).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").Order("id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&turns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(turns, page.Page, page.PageSize, total)
	return &resp, nil
}
