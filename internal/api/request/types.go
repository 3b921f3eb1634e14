package request

import (
	"strconv"
	"strings"

	"github.com/waymarkd/waymark/internal/model"
)

// Coordinate is a map coordinate that clients may send as a JSON number or a
// numeric string. Parsing is deferred to Int so a bad value surfaces as a
// coordinate validation error instead of a generic decode failure.
type Coordinate struct {
	raw     string
	present bool
}

// UnmarshalJSON records the raw value without validating it
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	c.present = true
	c.raw = strings.Trim(raw, `"`)
	return nil
}

// Present reports whether the field appeared in the request body
func (c Coordinate) Present() bool {
	return c.present
}

// Int parses the coordinate as an integer
func (c Coordinate) Int() (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(c.raw))
	if err != nil {
		return 0, model.ErrInvalidCoordinate
	}
	return value, nil
}

// PointRequest is the request body for creating or editing a point
type PointRequest struct {
	Name string     `json:"name"`
	X    Coordinate `json:"x"`
	Z    Coordinate `json:"z"`
}

// AdminLoginRequest is the request body for admin login
type AdminLoginRequest struct {
	AdminCode string `json:"adminCode"`
}

// SessionCodeRequest is the request body for allow-list and admin mutations
type SessionCodeRequest struct {
	SessionCode string `json:"sessionCode"`
}
