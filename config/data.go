package config

import "time"

// Data is the actual configuration data for the app
type Data struct {
	CreatedAt time.Time `json:"created_at"`
	LoadedAt  time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Version   int64     `json:"version" jsonschema:"minimum=1,maximum=1"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Log       struct {
		Level    string   `json:"level" enums:"debug,info,warn,error,silent" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,enum=silent"`
		Format   string   `json:"format" enums:"console,json" jsonschema:"enum=console,enum=json"`
		Topics   []string `json:"topics"`
		MaxLines int      `json:"max_lines"`
	} `json:"log"`
	DB struct {
		Dir string `json:"dir"`
	} `json:"db"`
	Session struct {
		Logfile      string `json:"logfile"`
		TimeLimit    int64  `json:"time_limit_sec" jsonschema:"minimum=1"`
		PollInterval int64  `json:"poll_interval_sec" jsonschema:"minimum=1"`
		TickInterval int64  `json:"tick_interval_ms" jsonschema:"minimum=10"`
	} `json:"session"`
	Metrics struct {
		EnablePrometheus bool `json:"enable_prometheus"`
	} `json:"metrics"`
	Debug struct {
		Profiling    bool   `json:"profiling"`
		AutoMaxProcs bool   `json:"auto_max_procs"`
		AgentAddress string `json:"agent_address"`
	} `json:"debug"`
}
