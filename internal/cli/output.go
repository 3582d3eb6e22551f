package cli

import (
	"encoding/json"
	"fmt"
	"os"
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

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
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
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case LogoutResult:
		o.printLogoutResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Item response type (matches API)
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ItemType string `json:"item_type"`
}

// Player response type (matches API)
type Player struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Name     string `json:"name"`
	School   string `json:"school"`
	Gender   string `json:"gender"`
	Money    string `json:"money"`
	Level    int    `json:"level"`
	Items    []Item `json:"items"`
}

// AuthResult combines player and token
type AuthResult struct {
	Token  string `json:"token"`
	Player Player `json:"player"`
}

// LogoutResult response type
type LogoutResult struct {
	OK      bool `json:"ok"`
	Deleted int  `json:"deleted"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Document: %s\n", p.Document)
	fmt.Printf("School: %s\n", p.School)
	fmt.Printf("Gender: %s\n", p.Gender)
	fmt.Printf("Level: %d\n", p.Level)
	fmt.Printf("Money: %s\n", p.Money)
	fmt.Printf("Items (%d):\n", len(p.Items))
	for _, item := range p.Items {
		fmt.Printf("  - %s (%s)\n", item.Name, item.ItemType)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printLogoutResult(l LogoutResult) {
	if l.Deleted > 0 {
		fmt.Printf("Logged out (%d session revoked)\n", l.Deleted)
	} else {
		fmt.Println("Logged out (no active session found)")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
