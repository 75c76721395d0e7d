package dto

import (
	"errors"
	"strings"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// ReverseLookupRequest asks for the entities carrying a factor value.
type ReverseLookupRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// Validate performs validation on ReverseLookupRequest
func (r *ReverseLookupRequest) Validate() error {
	if strings.TrimSpace(r.Field) == "" {
		return errors.New("field cannot be empty")
	}
	if strings.TrimSpace(r.Value) == "" {
		return errors.New("value cannot be empty")
	}
	return nil
}

// ReduceRequest asks for the values common to every named factor of an
// entity.
type ReduceRequest struct {
	Entity  string   `json:"entity" binding:"required"`
	Factors []string `json:"factors" binding:"required"`
}

// Validate performs validation on ReduceRequest
func (r *ReduceRequest) Validate() error {
	if strings.TrimSpace(r.Entity) == "" {
		return errors.New("entity cannot be empty")
	}
	if len(r.Factors) == 0 {
		return errors.New("at least one factor is required")
	}
	for _, f := range r.Factors {
		if strings.TrimSpace(f) == "" {
			return errors.New("factor names cannot be empty")
		}
	}
	return nil
}

// MaxDegrees caps how far a single request may expand a network.
const MaxDegrees = 5

// ExpandRequest asks for a factor network grown around an entity.
type ExpandRequest struct {
	Entity  string   `json:"entity" binding:"required"`
	Degrees int      `json:"degrees"`
	Factors []string `json:"factors,omitempty"`
}

// Validate performs validation on ExpandRequest
func (r *ExpandRequest) Validate() error {
	if strings.TrimSpace(r.Entity) == "" {
		return errors.New("entity cannot be empty")
	}
	if r.Degrees < 0 {
		return errors.New("degrees cannot be negative")
	}
	if r.Degrees > MaxDegrees {
		return errors.New("degrees exceeds the per-request maximum")
	}
	return nil
}

// AvailableResponse lists the factors an entity carries.
type AvailableResponse struct {
	Entity  string   `json:"entity"`
	Factors []string `json:"factors"`
	Total   int      `json:"total"`
}

// ValuesResponse lists the values of one factor of one entity.
type ValuesResponse struct {
	Entity string   `json:"entity"`
	Field  string   `json:"field"`
	Values []string `json:"values"`
	Total  int      `json:"total"`
}

// EntitiesResponse lists the entities matching a reverse lookup.
type EntitiesResponse struct {
	Field    string   `json:"field"`
	Value    string   `json:"value"`
	Entities []string `json:"entities"`
	Total    int      `json:"total"`
}

// ReduceResponse lists the values shared by every requested factor.
type ReduceResponse struct {
	Entity  string   `json:"entity"`
	Factors []string `json:"factors"`
	Values  []string `json:"values"`
	Total   int      `json:"total"`
}
