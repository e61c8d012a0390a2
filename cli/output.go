package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Output handles formatting responses in text or JSON format
type Output struct {
	writer   io.Writer
	jsonMode bool
}

func NewOutput(w io.Writer, jsonMode bool) *Output {
	return &Output{
		writer:   w,
		jsonMode: jsonMode,
	}
}

func (o *Output) IsJSON() bool {
	return o.jsonMode
}

func (o *Output) Error(err error) {
	if o.jsonMode {
		o.writeJSON(map[string]any{
			"error": err.Error(),
		})
	} else {
		fmt.Fprintf(o.writer, "Error: %v\n", err)
	}
}

// Print outputs formatted text (text mode only)
func (o *Output) Print(format string, args ...any) {
	if !o.jsonMode {
		fmt.Fprintf(o.writer, format, args...)
	}
}

// Println outputs a line with newline (text mode only)
func (o *Output) Println(text string) {
	if !o.jsonMode {
		fmt.Fprintln(o.writer, text)
	}
}

// Raw writes text in both modes, for documents that carry their own format.
func (o *Output) Raw(text string) {
	fmt.Fprintln(o.writer, text)
}

// JSON outputs any value as JSON
func (o *Output) JSON(v any) {
	if o.jsonMode {
		o.writeJSON(v)
	}
}

func (o *Output) writeJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(o.writer, `{"error":"failed to marshal JSON: %s"}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(o.writer, string(data))
}

// BroadcastItem is a broadcast in command output.
type BroadcastItem struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content,omitempty"`
	Level    string    `json:"level"`
	Scope    string    `json:"scope"`
	Archived bool      `json:"archived"`
	Read     bool      `json:"read"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

type BroadcastsResponse struct {
	Broadcasts []BroadcastItem `json:"broadcasts"`
	Count      int             `json:"count"`
}

type MarkResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type StatusResponse struct {
	API    string `json:"api"`
	User   string `json:"user"`
	Status string `json:"status"`
}

// HelpCommand represents a command in help output
type HelpCommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Flags       []string `json:"flags,omitempty"`
}

// HelpResponse represents the help output
type HelpResponse struct {
	Version     string        `json:"version"`
	Commands    []HelpCommand `json:"commands"`
	GlobalFlags []string      `json:"global_flags"`
}
