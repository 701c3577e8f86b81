package config

// Config represents the full tasktrack configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Location and names of the flat record files
	Data DataConfig `yaml:"data" mapstructure:"data"`

	// Task store backend
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Authentication settings
	Auth AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Task operation settings
	Tasks TasksConfig `yaml:"tasks" mapstructure:"tasks"`

	// Summary report files
	Reports ReportsConfig `yaml:"reports" mapstructure:"reports"`

	// Read-only HTTP API
	Web WebConfig `yaml:"web" mapstructure:"web"`
}

// DataConfig locates the credential and task files
type DataConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`
	UsersFile string `yaml:"users_file" mapstructure:"users_file"`
	TasksFile string `yaml:"tasks_file" mapstructure:"tasks_file"`
}

// StorageConfig selects the task store backend
type StorageConfig struct {
	Backend    string `yaml:"backend" mapstructure:"backend"`
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// AuthConfig configures login and registration
type AuthConfig struct {
	AdminUser     string `yaml:"admin_user" mapstructure:"admin_user"`
	HashPasswords bool   `yaml:"hash_passwords" mapstructure:"hash_passwords"`
}

// TasksConfig configures task operations
type TasksConfig struct {
	ExactMatchDelete bool `yaml:"exact_match_delete" mapstructure:"exact_match_delete"`
}

// ReportsConfig names the two summary files
type ReportsConfig struct {
	TaskOverview string `yaml:"task_overview" mapstructure:"task_overview"`
	UserOverview string `yaml:"user_overview" mapstructure:"user_overview"`
}

// WebConfig configures the HTTP API
type WebConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// Backend names
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)
