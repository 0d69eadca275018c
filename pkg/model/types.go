package model

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Issue is a reported field issue as returned by the server. All descriptive
// fields are optional on the wire; the Display accessors substitute
// placeholder text so views never render empty or literal-null values.
type Issue struct {
	ID                 string   `json:"id"`
	Label              string   `json:"label"`
	Description        string   `json:"description"`
	Type               string   `json:"type"`
	Severity           string   `json:"severity"`
	Status             Status   `json:"status"`
	Timeframe          string   `json:"timeframe"`
	ActionTaken        string   `json:"action_taken"`
	CostUSD            string   `json:"costusd"`
	RecommendedContact string   `json:"recommended_contact"`
	CreatedAt          string   `json:"created_at"`
	Image              string   `json:"image,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
}

// HasLocation returns true only when both coordinates are present. Issues
// without a full coordinate pair never receive a map marker.
func (i Issue) HasLocation() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// HasImage returns true when the issue carries a photo attachment.
func (i Issue) HasImage() bool {
	return i.Image != ""
}

// DisplayLabel returns the label or a placeholder for untitled issues.
func (i Issue) DisplayLabel() string {
	if i.Label == "" {
		return "Untitled Issue"
	}
	return i.Label
}

// DisplayDescription returns the description or "No Description".
func (i Issue) DisplayDescription() string {
	if i.Description == "" {
		return "No Description"
	}
	return i.Description
}

// DisplayType returns the type or "Not specified".
func (i Issue) DisplayType() string {
	return orNotSpecified(i.Type)
}

// DisplaySeverity returns the severity or "Not specified".
func (i Issue) DisplaySeverity() string {
	return orNotSpecified(i.Severity)
}

// DisplayTimeframe returns the timeframe or "Not specified".
func (i Issue) DisplayTimeframe() string {
	return orNotSpecified(i.Timeframe)
}

// DisplayActionTaken returns the action taken or "No action taken yet".
func (i Issue) DisplayActionTaken() string {
	if i.ActionTaken == "" {
		return "No action taken yet"
	}
	return i.ActionTaken
}

// DisplayCost returns the resolution cost or "Not specified".
func (i Issue) DisplayCost() string {
	return orNotSpecified(i.CostUSD)
}

// DisplayContact returns the recommended contact or "Not specified".
func (i Issue) DisplayContact() string {
	return orNotSpecified(i.RecommendedContact)
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// createdLayouts are the timestamp formats servers have been seen to emit.
var createdLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CreatedTime parses created_at. ok is false when the value is absent or in
// an unrecognized format, in which case callers should fall back to the raw
// string.
func (i Issue) CreatedTime() (time.Time, bool) {
	s := strings.TrimSpace(i.CreatedAt)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayCreated renders created_at in viewer-local time, or the raw value
// when it cannot be parsed, or "Unknown" when absent.
func (i Issue) DisplayCreated() string {
	t, ok := i.CreatedTime()
	if !ok {
		if strings.TrimSpace(i.CreatedAt) == "" {
			return "Unknown"
		}
		return i.CreatedAt
	}
	return t.Local().Format("2006-01-02 15:04")
}

// CostValue parses costusd as a number, tolerating currency symbols and
// thousands separators. ok is false for absent or non-numeric values.
func (i Issue) CostValue() (float64, bool) {
	s := strings.TrimSpace(i.CostUSD)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Status is the board-column identifier of an issue.
type Status string

const (
	StatusNew     Status = "new"
	StatusOpen    Status = "open"
	StatusWaiting Status = "waiting"
	StatusFixed   Status = "fixed"
)

// Statuses lists the board columns in display order. StatusNew is first and
// doubles as the fallback for unrecognized values.
var Statuses = []Status{StatusNew, StatusOpen, StatusWaiting, StatusFixed}

// IsValid returns true if the status is a recognized column value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusOpen, StatusWaiting, StatusFixed:
		return true
	}
	return false
}

// Normalize lower-cases the status and maps unrecognized or missing values
// to StatusNew, matching the server's own column mapping.
func (s Status) Normalize() Status {
	n := Status(strings.ToLower(strings.TrimSpace(string(s))))
	if !n.IsValid() {
		return StatusNew
	}
	return n
}

// ResponseEntry is one record of action taken on an issue. The server
// returns entries in carousel slide order; clients must not re-sort them.
type ResponseEntry struct {
	SubmissionDate     string `json:"SubmissionDate"`
	Role               string `json:"action_role"`
	Status             string `json:"action_status"`
	ActionTaken        string `json:"action_action_taken"`
	ResolutionCostUSD  string `json:"action_resolution_costusd"`
	ResolutionTimespan string `json:"action_resolution_timeframe"`
	RecommendedContact string `json:"action_recommended_contact"`
	Image              string `json:"action_image,omitempty"`
}

// HasImage returns true when the entry carries a photo attachment.
func (r ResponseEntry) HasImage() bool {
	return r.Image != ""
}

func (r ResponseEntry) DisplayDate() string {
	if r.SubmissionDate == "" {
		return "Unknown"
	}
	return r.SubmissionDate
}

func (r ResponseEntry) DisplayRole() string {
	if r.Role == "" {
		return "Unknown"
	}
	return r.Role
}

// NormalizedStatus maps the entry's status the same way issue statuses are
// mapped.
func (r ResponseEntry) NormalizedStatus() Status {
	return Status(r.Status).Normalize()
}

func (r ResponseEntry) DisplayAction() string {
	if r.ActionTaken == "" {
		return "No action taken yet"
	}
	return r.ActionTaken
}

func (r ResponseEntry) DisplayCost() string {
	if r.ResolutionCostUSD == "" {
		return "Not specified"
	}
	return r.ResolutionCostUSD
}

func (r ResponseEntry) DisplayTimespan() string {
	if r.ResolutionTimespan == "" {
		return "Not specified"
	}
	return r.ResolutionTimespan
}

func (r ResponseEntry) DisplayContact() string {
	if r.RecommendedContact == "" {
		return "Not specified"
	}
	return r.RecommendedContact
}

// FilterCriteria holds the filter fields sent verbatim as query parameters.
// The server is the sole authority on filter semantics; an all-empty
// criteria means no filtering.
type FilterCriteria struct {
	Search    string
	State     string
	Severity  string
	Timeframe string
	StartDate string
	EndDate   string
}

// IsZero returns true when every filter field is empty.
func (c FilterCriteria) IsZero() bool {
	return c == FilterCriteria{}
}

// Values serializes the criteria as query parameters, omitting empty fields.
func (c FilterCriteria) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("search", c.Search)
	set("state", c.State)
	set("severity", c.Severity)
	set("timeframe", c.Timeframe)
	set("start_date", c.StartDate)
	set("end_date", c.EndDate)
	return v
}
