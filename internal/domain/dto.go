package domain

import "time"

// Request and response shapes exchanged with the transport layer.

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaginatedUsers struct {
	Users      []UserResponse `json:"users"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CreateResidentRequest struct {
	UserID string `json:"user_id"`
	UnitID string `json:"unit_id"`
	Role   string `json:"role,omitempty"`
}

type ResidentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UnitID    string    `json:"unit_id"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateVisitorRequest struct {
	ResidentID   string `json:"resident_id"`
	Name         string `json:"name"`
	Document     string `json:"document"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
	TimeLimit    string `json:"time_limit"`
	DaysValid    int    `json:"days_valid,omitempty"`
}

type UpdateVisitorRequest struct {
	Name         *string `json:"name,omitempty"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
}

type VisitorResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Document       string    `json:"document"`
	VehiclePlate   *string   `json:"vehicle_plate"`
	ResidentID     string    `json:"resident_id"`
	ResidentUnitID string    `json:"resident_unit_id,omitempty"`
	ResidentName   string    `json:"resident_name,omitempty"`
	TimeLimit      string    `json:"time_limit"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	CanEnterNow    bool      `json:"can_enter_now"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.id,
		Name:      u.name.String(),
		Email:     u.email.String(),
		IsActive:  u.active,
		CreatedAt: u.createdAt,
		UpdatedAt: u.updatedAt,
	}
}

func (r *Resident) ToResponse() ResidentResponse {
	return ResidentResponse{
		ID:        r.id,
		UserID:    r.userID,
		UnitID:    r.unitID,
		Role:      string(r.role),
		IsActive:  r.active,
		CreatedAt: r.createdAt,
		UpdatedAt: r.updatedAt,
	}
}
