package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      "sqlite3",
			Path:        "memorizer.db",
			Host:        "localhost",
			Database:    "memorizer",
			Username:    "memorizer",
			AutoMigrate: true,
		},
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		Cache: CacheConfig{MaxTerms: 1000},
		Review: ReviewConfig{
			Levels:        []int{},
			Tags:          []string{},
			UseSuspension: true,
		},
		Reminder: ReminderConfig{IntervalMinutes: 60},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		want              func(dir string) *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `database:
  driver: mysql
  host: db.example.com
  port: 3307
  database: vocab
  username: admin
  max_open_conns: 10
server:
  port: 9090
review:
  levels: [1, 2, 3]
  tags: [toeic]
  use_suspension: false
reminder:
  interval_minutes: 15
`,
			want: func(dir string) *Config {
				cfg := defaultConfig()
				cfg.Database.Driver = "mysql"
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.Database.Database = "vocab"
				cfg.Database.Username = "admin"
				cfg.Database.MaxOpenConns = 10
				cfg.Server.Port = 9090
				cfg.Review = ReviewConfig{Levels: []int{1, 2, 3}, Tags: []string{"toeic"}, UseSuspension: false}
				cfg.Reminder.IntervalMinutes = 15
				return cfg
			},
		},
		{
			name:          "missing config file uses defaults",
			configContent: "",
			want: func(dir string) *Config {
				return defaultConfig()
			},
		},
		{
			name: "explicit config file path",
			configContent: `database:
  path: custom.db
cache:
  max_terms: 0
`,
			useExplicitPath: true,
			want: func(dir string) *Config {
				cfg := defaultConfig()
				cfg.Database.Path = "custom.db"
				cfg.Cache.MaxTerms = 0
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `database:
  driver: sqlite3
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown driver",
			configContent: `database:
  driver: oracle
`,
			wantErrorContains: []string{"invalid configuration", "driver must be one of [sqlite3 mysql postgres]"},
		},
		{
			name: "sqlite file in a missing directory",
			configContent: `database:
  path: no/such/dir/memorizer.db
`,
			wantErrorContains: []string{"database.path must be in an existing directory"},
		},
		{
			name: "review level out of range",
			configContent: `review:
  levels: [1, 7]
`,
			wantErrorContains: []string{"invalid configuration"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
				t.Setenv("HOME", tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(tempDir), got)
		})
	}
}

func TestConfigLoader_Load_EnvironmentOverrides(t *testing.T) {
	tempDir := t.TempDir()
	t.Chdir(tempDir)
	t.Setenv("HOME", tempDir)
	t.Setenv("MEMORIZER_DB_PASSWORD", "secret")
	t.Setenv("MEMORIZER_DB_PATH", filepath.Join(tempDir, "env.db"))

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Database.Password)
	assert.Equal(t, filepath.Join(tempDir, "env.db"), got.Database.Path)
}
