package portrait

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind - failure classification surfaced to the HTTP layer
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "invalid_input"
	KindUnprocessableImage ErrorKind = "unprocessable_image"
	KindUpstreamFailure    ErrorKind = "upstream_failure"
	KindNotFound           ErrorKind = "not_found"
	KindInternalError      ErrorKind = "internal_error"
)

// Error - single tagged error variant carrying a user-safe message plus the
// raw cause for logging. Upstream failure modes (network error, empty
// payload, non-2xx) all collapse into KindUpstreamFailure on purpose.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError - build a tagged error
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf - classify any error; unexpected errors count as internal
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindInternalError
}

// Portrait - immutable generation record. Created once per successful
// generation, never updated or deleted, lives for the process lifetime.
type Portrait struct {
	ID                int    `json:"id"`
	OriginalImageURL  string `json:"originalImageUrl"`
	GeneratedImageURL string `json:"generatedImageUrl"`
	YearWar           string `json:"yearWar"`
	Side              string `json:"side"`
	Rank              string `json:"rank"`
	Branch            string `json:"branch"`
	ExtraDetails      string `json:"extraDetails"`
	ArtStyle          string `json:"artStyle"`
	CreatedAt         string `json:"createdAt"`
}

// InsertPortrait - Portrait minus the store-assigned fields
type InsertPortrait struct {
	OriginalImageURL  string
	GeneratedImageURL string
	YearWar           string
	Side              string
	Rank              string
	Branch            string
	ExtraDetails      string
	ArtStyle          string
}

// User - placeholder account record; no endpoint exercises these yet
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// InsertUser - User minus the store-assigned id
type InsertUser struct {
	Username string
	Password string
}

// GenerationRequest - structured fields of a portrait generation request
type GenerationRequest struct {
	YearWar      string
	Side         string
	Rank         string
	Branch       string
	ExtraDetails string
	ArtStyle     string
}

var validArtStyles = map[string]bool{
	"oil":        true,
	"watercolor": true,
}

// Validate - check required fields and the art style enumeration; returns one
// message per violation (empty slice means valid)
func (r *GenerationRequest) Validate() []string {
	var details []string

	if strings.TrimSpace(r.YearWar) == "" {
		details = append(details, "yearWar is required")
	}
	if strings.TrimSpace(r.Side) == "" {
		details = append(details, "side is required")
	}
	if strings.TrimSpace(r.Rank) == "" {
		details = append(details, "rank is required")
	}
	if strings.TrimSpace(r.Branch) == "" {
		details = append(details, "branch is required")
	}
	if !validArtStyles[r.ArtStyle] {
		details = append(details, fmt.Sprintf("artStyle must be one of: oil, watercolor (got %q)", r.ArtStyle))
	}

	return details
}

// GenerateResponse - success body for POST /generate-portrait
type GenerateResponse struct {
	Success    bool   `json:"success"`
	PortraitID int    `json:"portraitId"`
	ImageURL   string `json:"imageUrl"`
}

// ErrorResponse - error body for every failure
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
