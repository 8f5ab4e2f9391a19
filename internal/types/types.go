// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

import (
	"time"

	"stratiq-api/pkg/analysis"
)

type FrameworkInfo struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

type FrameworksResponse struct {
	Frameworks []FrameworkInfo `json:"frameworks"`
	Defaults   []string        `json:"defaults"`
	Provider   string          `json:"provider"`
}

type SessionRequest struct {
	ID string `path:"id"`
}

type SessionResponse struct {
	ID        string            `json:"id"`
	Step      int               `json:"step"`
	StepName  string            `json:"step_name"`
	State     *analysis.State   `json:"state"`
	Sources   map[string]string `json:"sources,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type InputsRequest struct {
	ID          string `path:"id"`
	Company     string `json:"company,optional"`
	Product     string `json:"product,optional"`
	Industry    string `json:"industry,optional"`
	Scope       string `json:"scope,optional"`
	Geo         string `json:"geo,optional"`
	Notes       string `json:"notes,optional"`
	OfflineMode bool   `json:"offline_mode,optional"`
}

type FrameworksRequest struct {
	ID         string   `path:"id"`
	Frameworks []string `json:"frameworks,optional"`
}

type ScopeRequest struct {
	ID      string `path:"id"`
	Company string `json:"company,optional"`
}

type ScopeResponse struct {
	Scope  string `json:"scope"`
	Filled bool   `json:"filled"`
}

type GenerateRequest struct {
	ID    string   `path:"id"`
	Peers []string `json:"peers,optional"`
}

type RegenerateRequest struct {
	ID        string   `path:"id"`
	Framework string   `path:"framework"`
	Peers     []string `json:"peers,optional"`
}

type ResultsPath struct {
	ID        string `path:"id"`
	Framework string `path:"framework"`
}

type RecommendationRequest struct {
	ID        string `path:"id"`
	Title     string `json:"title,optional"`
	Impact    int    `json:"impact,optional"`
	Effort    int    `json:"effort,optional"`
	Rationale string `json:"rationale,optional"`
}

type StepRequest struct {
	ID     string `path:"id"`
	Action string `json:"action"`
}

type ExportRequest struct {
	ID     string `path:"id"`
	Format string `path:"format"`
}

// File is a downloadable export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
