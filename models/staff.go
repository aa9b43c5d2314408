package models

import "time"

const (
	StaffStatusActive   = "active"
	StaffStatusInactive = "inactive"

	// SkillAll lets a staff member take any service category.
	SkillAll = "All"
)

// Staff is an employee record assigned to a salon.
type Staff struct {
	ID                string    `bson:"id" json:"id"`
	SalonID           string    `bson:"salonId" json:"salonId"`
	UserID            string    `bson:"userId,omitempty" json:"userId,omitempty"`
	Name              string    `bson:"name" json:"name"`
	Email             string    `bson:"email" json:"email"`
	Phone             string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role              string    `bson:"role,omitempty" json:"role,omitempty"`
	Skills            []string  `bson:"skills" json:"skills"`
	BasicSalary       float64   `bson:"basicSalary" json:"basicSalary"`
	Allowances        float64   `bson:"allowances" json:"allowances"`
	ProductDeductions float64   `bson:"productDeductions" json:"productDeductions"`
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Staff) IsActive() bool {
	return s.Status == "" || s.Status == StaffStatusActive
}

type StaffRequest struct {
	Name              string   `json:"name" binding:"required"`
	Email             string   `json:"email" binding:"required"`
	Phone             string   `json:"phone"`
	Role              string   `json:"role"`
	Skills            []string `json:"skills"`
	BasicSalary       float64  `json:"basicSalary"`
	Allowances        float64  `json:"allowances"`
	ProductDeductions float64  `json:"productDeductions"`
}

type StaffUpdateRequest struct {
	Name              *string   `json:"name"`
	Phone             *string   `json:"phone"`
	Role              *string   `json:"role"`
	Skills            *[]string `json:"skills"`
	BasicSalary       *float64  `json:"basicSalary"`
	Allowances        *float64  `json:"allowances"`
	ProductDeductions *float64  `json:"productDeductions"`
	Status            *string   `json:"status"`
}
