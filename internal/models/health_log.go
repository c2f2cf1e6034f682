package models

// HealthLog is a per-day health record. (user_id, date) is unique: later
// writes for the same day merge into the existing row.
type HealthLog struct {
	Base
	UserID          string   `gorm:"type:uuid;not null;uniqueIndex:idx_health_user_date" json:"user_id"`
	Date            string   `gorm:"size:10;not null;uniqueIndex:idx_health_user_date" json:"date"`
	SleepHours      *float64 `json:"sleep_hours,omitempty"`
	SleepQuality    *int     `json:"sleep_quality,omitempty"`
	Steps           int      `gorm:"not null;default:0" json:"steps"`
	WaterGlasses    int      `gorm:"not null;default:0" json:"water_glasses"`
	ExerciseType    string   `json:"exercise_type,omitempty"`
	ExerciseMinutes int      `gorm:"not null;default:0" json:"exercise_minutes"`
	Mood            *int     `json:"mood,omitempty"`
	EnergyLevel     *int     `json:"energy_level,omitempty"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
}

// HealthPatch carries only the fields supplied by one write.
type HealthPatch struct {
	SleepHours      *float64
	SleepQuality    *int
	Steps           *int
	WaterGlasses    *int
	ExerciseType    *string
	ExerciseMinutes *int
	Mood            *int
	EnergyLevel     *int
	WeightKg        *float64
}

// Empty reports whether the patch sets nothing.
func (hp HealthPatch) Empty() bool {
	return hp.SleepHours == nil && hp.SleepQuality == nil && hp.Steps == nil &&
		hp.WaterGlasses == nil && hp.ExerciseType == nil && hp.ExerciseMinutes == nil &&
		hp.Mood == nil && hp.EnergyLevel == nil && hp.WeightKg == nil
}

// Updates returns the column map for the supplied fields.
func (hp HealthPatch) Updates() map[string]interface{} {
	u := make(map[string]interface{})
	if hp.SleepHours != nil {
		u["sleep_hours"] = *hp.SleepHours
	}
	if hp.SleepQuality != nil {
		u["sleep_quality"] = *hp.SleepQuality
	}
	if hp.Steps != nil {
		u["steps"] = *hp.Steps
	}
	if hp.WaterGlasses != nil {
		u["water_glasses"] = *hp.WaterGlasses
	}
	if hp.ExerciseType != nil {
		u["exercise_type"] = *hp.ExerciseType
	}
	if hp.ExerciseMinutes != nil {
		u["exercise_minutes"] = *hp.ExerciseMinutes
	}
	if hp.Mood != nil {
		u["mood"] = *hp.Mood
	}
	if hp.EnergyLevel != nil {
		u["energy_level"] = *hp.EnergyLevel
	}
	if hp.WeightKg != nil {
		u["weight_kg"] = *hp.WeightKg
	}
	return u
}

// Apply copies the supplied fields onto h.
func (hp HealthPatch) Apply(h *HealthLog) {
	if hp.SleepHours != nil {
		h.SleepHours = hp.SleepHours
	}
	if hp.SleepQuality != nil {
		h.SleepQuality = hp.SleepQuality
	}
	if hp.Steps != nil {
		h.Steps = *hp.Steps
	}
	if hp.WaterGlasses != nil {
		h.WaterGlasses = *hp.WaterGlasses
	}
	if hp.ExerciseType != nil {
		h.ExerciseType = *hp.ExerciseType
	}
	if hp.ExerciseMinutes != nil {
		h.ExerciseMinutes = *hp.ExerciseMinutes
	}
	if hp.Mood != nil {
		h.Mood = hp.Mood
	}
	if hp.EnergyLevel != nil {
		h.EnergyLevel = hp.EnergyLevel
	}
	if hp.WeightKg != nil {
		h.WeightKg = hp.WeightKg
	}
}

func (HealthLog) TableName() string     { return "health_logs" }
func (*HealthLog) Kind() RecordKind     { return KindHealthLog }
func (h *HealthLog) SetOwner(id string) { h.UserID = id }
func (*HealthLog) sealed()              {}
