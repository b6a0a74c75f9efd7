package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Addr            string
	AllowOrigins    string
	ReadBufferSize  int
	WriteBufferSize int
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowOrigins:    "http://localhost:5173",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Load reads the server configuration from the environment, falling back to
// Default for unset variables.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup("CHESS_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("CHESS_ALLOW_ORIGINS"); ok && v != "" {
		cfg.AllowOrigins = v
	}
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"CHESS_WS_READ_BUFFER", &cfg.ReadBufferSize},
		{"CHESS_WS_WRITE_BUFFER", &cfg.WriteBufferSize},
	} {
		v, ok := lookup(f.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q: must be a positive integer", f.name, v)
		}
		*f.dst = n
	}
	return cfg, nil
}
