package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ============ ENTITIES ============

// Item - một comic trong collection của user (from database)
type Item struct {
	UserID uuid.UUID `json:"-" db:"user_id"`
	UPC    string    `json:"upc" db:"upc"`

	// Metadata từ lookup, frozen tại thời điểm add
	Name          string `json:"name" db:"name"`
	IssueNumber   string `json:"issueNumber" db:"issue_number"`
	SeriesName    string `json:"seriesName" db:"series_name"`
	SeriesVolume  string `json:"seriesVolume" db:"series_volume"`
	SeriesYear    string `json:"seriesYear" db:"series_year"`
	CoverImage    string `json:"coverImage" db:"cover_image"`
	VariantNumber string `json:"variantNumber" db:"variant_number"`
	Printing      string `json:"printing" db:"printing"`

	// User state
	Starred   bool `json:"starred" db:"starred"`
	SortOrder int  `json:"sortOrder" db:"sort_order"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ============ REQUESTS ============

// AddItemRequest - body của POST /api/collection
type AddItemRequest struct {
	UPC           string `json:"upc"`
	Name          string `json:"name"`
	IssueNumber   string `json:"issueNumber"`
	SeriesName    string `json:"seriesName"`
	SeriesVolume  string `json:"seriesVolume"`
	SeriesYear    string `json:"seriesYear"`
	CoverImage    string `json:"coverImage"`
	VariantNumber string `json:"variantNumber"`
	Printing      string `json:"printing"`
}

// Validate validates AddItemRequest
func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UPC,
			validation.Required.Error("UPC is required"),
			is.Digit.Error("UPC must contain only digits"),
			validation.Length(17, 17).Error("UPC must be 17 digits"),
		),
		validation.Field(&r.Name, validation.Length(0, 500)),
		validation.Field(&r.SeriesName, validation.Length(0, 500)),
		validation.Field(&r.CoverImage, validation.Length(0, 2000)),
	)
}

// ToItem converts the request to an entity owned by userID
func (r AddItemRequest) ToItem(userID uuid.UUID) Item {
	now := time.Now().UTC()
	return Item{
		UserID:        userID,
		UPC:           r.UPC,
		Name:          r.Name,
		IssueNumber:   r.IssueNumber,
		SeriesName:    r.SeriesName,
		SeriesVolume:  r.SeriesVolume,
		SeriesYear:    r.SeriesYear,
		CoverImage:    r.CoverImage,
		VariantNumber: r.VariantNumber,
		Printing:      r.Printing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpdateItemRequest - body của PATCH /api/collection/:upc
// Chỉ starred là mutable sau khi add
type UpdateItemRequest struct {
	Starred *bool `json:"starred"`
}

// Validate validates UpdateItemRequest
func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Starred, validation.NotNil.Error("starred is required")),
	)
}

// ReorderRequest - body của PUT /api/collection/reorder
// Order là danh sách UPC theo thứ tự custom mới
type ReorderRequest struct {
	Order []string `json:"order"`
}

// Validate validates ReorderRequest
func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Order,
			validation.Required.Error("order is required"),
			validation.Length(1, 10000),
		),
	)
}

// ListResponse - payload của GET /api/collection
type ListResponse struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// ImportResult - payload của POST /api/collection/import
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
