package models

// Profile holds identity and daily rhythm. At most one per user.
type Profile struct {
	Base
	UserID     string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Location   string `json:"location,omitempty"`
	Timezone   string `gorm:"not null;default:'Asia/Kolkata'" json:"timezone"`
	BloodGroup string `json:"blood_group,omitempty"`
	Birthday   string `gorm:"size:10" json:"birthday,omitempty"`
	WakeTime   string `gorm:"size:5" json:"wake_time"`
	SleepTime  string `gorm:"size:5" json:"sleep_time"`
	WorkStart  string `gorm:"size:5" json:"work_start"`
	WorkEnd    string `gorm:"size:5" json:"work_end"`
}

// ProfilePatch lists the profile fields a write may set. Nil fields are left untouched.
type ProfilePatch struct {
	Name      *string
	Location  *string
	Timezone  *string
	WakeTime  *string
	SleepTime *string
	WorkStart *string
	WorkEnd   *string
}

// Apply copies the non-nil patch fields onto p.
func (pp ProfilePatch) Apply(p *Profile) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Location != nil {
		p.Location = *pp.Location
	}
	if pp.Timezone != nil {
		p.Timezone = *pp.Timezone
	}
	if pp.WakeTime != nil {
		p.WakeTime = *pp.WakeTime
	}
	if pp.SleepTime != nil {
		p.SleepTime = *pp.SleepTime
	}
	if pp.WorkStart != nil {
		p.WorkStart = *pp.WorkStart
	}
	if pp.WorkEnd != nil {
		p.WorkEnd = *pp.WorkEnd
	}
}

func (Profile) TableName() string     { return "profiles" }
func (*Profile) Kind() RecordKind     { return KindProfile }
func (p *Profile) SetOwner(id string) { p.UserID = id }
func (*Profile) sealed()              {}
