package models

import "time"

// Report is one employee's work log for a single day. Timestamps are
// stamped by the report service, so gorm's auto timestamps are disabled.
type Report struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ReportDate time.Time `gorm:"type:date;not null;index:idx_reports_employee_date,priority:2" json:"report_date"`
	Title      string    `gorm:"type:varchar(100);not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	EmployeeID uint64    `gorm:"not null;index:idx_reports_employee_date,priority:1" json:"employee_id"`
	DeleteFlg  bool      `gorm:"not null;default:false" json:"delete_flg"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	// Relations
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
