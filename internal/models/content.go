package models

// Module is a named grouping of levels for one target language
type Module struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Language    string  `json:"language"`
	OrderIndex  int     `json:"order_index"`
	Levels      []Level `json:"levels"`
}

// Level belongs to one module and owns an ordered list of scenarios.
// Status is derived per child on read; it is never stored.
type Level struct {
	ID                  int64      `json:"id"`
	ModuleID            int64      `json:"module_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	OrderIndex          int        `json:"order_index"`
	PassThresholdPoints int        `json:"pass_threshold_points"`
	Status              string     `json:"status,omitempty"` // locked, available, completed
	Scenarios           []Scenario `json:"scenarios,omitempty"`
}

// Scenario is a playable dialogue within a level
type Scenario struct {
	ID          int64  `json:"id"`
	LevelID     int64  `json:"level_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"` // 'standard' or 'boss'
	OrderIndex  int    `json:"order_index"`
}

// ScenarioDetail is a scenario with its full dialogue script
type ScenarioDetail struct {
	Scenario
	Nodes []DialogueNode `json:"nodes"`
}

// DialogueNode is one line of a scenario's script. Narrator and
// informational nodes have no expected response.
type DialogueNode struct {
	ID               int64  `json:"id"`
	ScenarioID       int64  `json:"scenario_id"`
	PersonaID        *int64 `json:"persona_id,omitempty"`
	Text             string `json:"text"`
	AudioURL         string `json:"audio_url,omitempty"`
	SpeakerType      string `json:"speaker_type"` // 'persona', 'user', 'narrator'
	ExpectedResponse string `json:"expected_response,omitempty"`
	PointsMax        int    `json:"points_max"`
	OrderIndex       int    `json:"order_index"`
}

// Persona is a named character that speaks dialogue nodes
type Persona struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Language    string `json:"language"`
}
