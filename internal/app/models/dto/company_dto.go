package dto

import "time"

// CreateCompanyRequest represents creating a company record
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description"`
	Segment     string `json:"segment"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	Whatsapp    string `json:"whatsapp"`
	Email       string `json:"email" binding:"omitempty,email"`
	Website     string `json:"website"`
	Instagram   string `json:"instagram"`
	PersonID    *int64 `json:"personId" binding:"omitempty,min=1"`
}

// UpdateCompanyRequest represents updating a company record
type UpdateCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description"`
	Segment     string `json:"segment"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	Whatsapp    string `json:"whatsapp"`
	Email       string `json:"email" binding:"omitempty,email"`
	Website     string `json:"website"`
	Instagram   string `json:"instagram"`
	PersonID    *int64 `json:"personId" binding:"omitempty,min=1"`
}

// CompanyFilterRequest represents query filters for the company directory
type CompanyFilterRequest struct {
	Segment  string `form:"segment"`
	City     string `form:"city"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// CompanyResponse represents a company record
type CompanyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Segment     string    `json:"segment,omitempty"`
	City        string    `json:"city,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Whatsapp    string    `json:"whatsapp,omitempty"`
	Email       string    `json:"email,omitempty"`
	Website     string    `json:"website,omitempty"`
	Instagram   string    `json:"instagram,omitempty"`
	OwnerID     *int64    `json:"ownerId,omitempty"`
	OwnerName   string    `json:"ownerName,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	Gallery     []string  `json:"gallery"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CompanyListResponse represents a paginated company listing
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"pageSize"`
}

// CompanyImageResponse represents the result of an image upload
type CompanyImageResponse struct {
	Kind    string   `json:"kind"`
	LogoURL string   `json:"logoUrl,omitempty"`
	Gallery []string `json:"gallery"`
}
