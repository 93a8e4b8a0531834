package models

import "time"

// a rule as it travels to and from the command service, every field in its compact string form
type EncodedRule struct {
	Active        string      `json:"active"`
	RepeatType    string      `json:"repeatType"`
	RepeatValue   RepeatValue `json:"repeatValue"`
	TimeType      string      `json:"timeType"`
	TimeValue     string      `json:"timeValue"`
	ShutterAction string      `json:"shutterAction"`
	ShutterIds    []string    `json:"shutterIds"`
}

type Shutter struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

// the payload returned by the getConfig command
type ControllerConfig struct {
	Latitude         float64                `json:"Latitude"`
	Longitude        float64                `json:"Longitude"`
	Shutters         map[string]string      `json:"Shutters"`
	ShutterDurations map[string]int         `json:"ShutterDurations"`
	Schedule         map[string]EncodedRule `json:"Schedule"`
}

// reply to every command
type CommandResult struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// body of every command request, only the fields relevant to the command are set
type CommandRequest struct {
	ID      string `json:"id,omitempty"`
	Shutter string `json:"shutter,omitempty"`
	EncodedRule
}

// a change notification pushed on the event stream after the service accepts a mutation
type RuleChange struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// a single shutter movement handed to the radio bridge
type ShutterCommand struct {
	RequestID string    `json:"requestId"`
	ShutterID string    `json:"shutterId"`
	Action    string    `json:"action"`
	Percent   int       `json:"percent,omitempty"`
	IssuedAt  time.Time `json:"issuedAt"`
}
