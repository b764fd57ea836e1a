package core

import (
	"net/http"
	"time"
)

// ResponseData is the envelope every JSON response is wrapped in.
type ResponseData struct {
	Status  int         `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Paging  *Paging     `json:"paging,omitempty"`
}

type Paging struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalCount int `json:"total_count"`
	Offset     int `json:"offset"` // Helper
	Limit      int `json:"limit"`  // Helper
}

// Model is the common gorm base for persisted rows.
type Model struct {
	ID        uint       `json:"id" gorm:"primary_key"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// Route binds one HTTP method/path to a handler.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Bundle is a feature area that registers its own routes.
type Bundle interface {
	GetRoutes() []Route
}
