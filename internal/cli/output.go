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
	case PairCode:
		o.printPairCode(v)
	case Pair:
		o.printPair(v)
	case []Note:
		o.printNotes(v)
	case Note:
		o.printNote(v)
	case []SpecialDate:
		o.printDates(v)
	case SpecialDate:
		o.printDate(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Gender      string `json:"gender"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// PairCode response type
type PairCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Pair response type
type Pair struct {
	ID        string    `json:"id"`
	Partner   Player    `json:"partner"`
	CreatedAt time.Time `json:"created_at"`
}

// Note response type
type Note struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// SpecialDate response type
type SpecialDate struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Label     string    `json:"label"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Gender: %s\n", p.Gender)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printPairCode(pc PairCode) {
	fmt.Printf("Pair code: %s\n", pc.Code)
	fmt.Printf("Expires: %s\n", pc.ExpiresAt.Format(time.RFC3339))
	fmt.Println("Share this code with your partner before it expires.")
}

func (o *Output) printPair(p Pair) {
	fmt.Printf("Paired with: %s (%s)\n", p.Partner.DisplayName, p.Partner.ID)
	fmt.Printf("Since: %s\n", p.CreatedAt.Format("2006-01-02"))
}

func (o *Output) printNote(n Note) {
	fmt.Printf("[%s] %s\n", n.ID, n.Title)
	if n.Body != "" {
		fmt.Printf("  %s\n", n.Body)
	}
	fmt.Printf("  written %s\n", n.CreatedAt.Format("2006-01-02 15:04"))
}

func (o *Output) printNotes(notes []Note) {
	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return
	}
	fmt.Printf("Notes (%d):\n", len(notes))
	for _, n := range notes {
		o.printNote(n)
	}
}

func (o *Output) printDate(d SpecialDate) {
	fmt.Printf("[%s] %s - %s\n", d.ID, d.Date.Format("2006-01-02"), d.Label)
}

func (o *Output) printDates(dates []SpecialDate) {
	if len(dates) == 0 {
		fmt.Println("No special dates yet.")
		return
	}
	fmt.Printf("Special dates (%d):\n", len(dates))
	for _, d := range dates {
		o.printDate(d)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
