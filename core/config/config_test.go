package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_KEY", "test-secret")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Assignment.RoomCapacity != 10 {
		t.Errorf("Assignment.RoomCapacity = %d, want 10", cfg.Assignment.RoomCapacity)
	}
	if cfg.Assignment.MaxSlotSearch != 1000 {
		t.Errorf("Assignment.MaxSlotSearch = %d, want 1000", cfg.Assignment.MaxSlotSearch)
	}
	if cfg.JWT.TokenTTL != 10*24*time.Hour {
		t.Errorf("JWT.TokenTTL = %v, want 240h", cfg.JWT.TokenTTL)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}

	got, ok := GetSafe()
	if !ok || got != cfg {
		t.Errorf("GetSafe() did not return the loaded config")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_KEY", "test-secret")
	t.Setenv("ASSIGNMENT_ROOM_CAPACITY", "4")
	t.Setenv("ASSIGNMENT_LOCK_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Assignment.RoomCapacity != 4 {
		t.Errorf("RoomCapacity = %d, want 4", cfg.Assignment.RoomCapacity)
	}
	if cfg.Assignment.LockTTL != 30*time.Second {
		t.Errorf("LockTTL = %v, want 30s", cfg.Assignment.LockTTL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "zero capacity", mutate: func(c *Config) { c.Assignment.RoomCapacity = 0 }, wantErr: true},
		{name: "zero search bound", mutate: func(c *Config) { c.Assignment.MaxSlotSearch = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:     ServerConfig{Port: 7070},
				JWT:        JWTConfig{Secret: "s"},
				Assignment: AssignmentConfig{RoomCapacity: 10, MaxSlotSearch: 1000},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
