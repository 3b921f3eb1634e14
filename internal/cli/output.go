package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Point:
		o.printPoint(v)
	case []Point:
		o.printPoints(v)
	case AllowedSession:
		o.printAllowedSession(v)
	case []AllowedSession:
		o.printAllowedSessions(v)
	case LoginResult:
		fmt.Println(v.Message)
	case MessageResult:
		fmt.Println(v.Message)
	case OwnerCheckResult:
		o.printOwnerCheck(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Point response type (matches API)
type Point struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	X                int       `json:"x"`
	Z                int       `json:"z"`
	OwnerSessionCode string    `json:"ownerSessionCode"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AllowedSession response type
type AllowedSession struct {
	SessionCode string    `json:"sessionCode"`
	AddedBy     string    `json:"addedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LoginResult response type
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// AllowSessionResult response type
type AllowSessionResult struct {
	Message string         `json:"message"`
	Session AllowedSession `json:"session"`
}

// OwnerCheckResult response type
type OwnerCheckResult struct {
	IsOwner bool `json:"isOwner"`
}

// HealthResult response type
type HealthResult struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (o *Output) printPoint(p Point) {
	fmt.Printf("Point: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Position: %d, %d\n", p.X, p.Z)
	fmt.Printf("Status: %s\n", p.Status)
}

func (o *Output) printPoints(points []Point) {
	if len(points) == 0 {
		fmt.Println("No points")
		return
	}
	fmt.Printf("Points (%d):\n", len(points))
	for _, p := range points {
		fmt.Printf("  - %s (%d, %d) [%s] %s\n", p.Name, p.X, p.Z, p.Status, p.ID)
	}
}

func (o *Output) printAllowedSession(s AllowedSession) {
	fmt.Printf("Session: %s (added by %s)\n", s.SessionCode, s.AddedBy)
}

func (o *Output) printAllowedSessions(sessions []AllowedSession) {
	if len(sessions) == 0 {
		fmt.Println("No allowed sessions")
		return
	}
	fmt.Printf("Allowed sessions (%d):\n", len(sessions))
	for _, s := range sessions {
		fmt.Printf("  - %s (added %s)\n", s.SessionCode, s.CreatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printOwnerCheck(c OwnerCheckResult) {
	if c.IsOwner {
		fmt.Println("You are the owner")
	} else {
		fmt.Println("You are not the owner")
	}
}
