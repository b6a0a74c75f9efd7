package config

import (
	"reflect"
	"testing"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		vars    map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			vars: map[string]string{},
			want: Default(),
		},
		{
			name: "overrides",
			vars: map[string]string{
				"CHESS_ADDR":            ":8080",
				"CHESS_ALLOW_ORIGINS":   "https://chess.example.com",
				"CHESS_WS_READ_BUFFER":  "4096",
				"CHESS_WS_WRITE_BUFFER": "2048",
			},
			want: Config{
				Addr:            ":8080",
				AllowOrigins:    "https://chess.example.com",
				ReadBufferSize:  4096,
				WriteBufferSize: 2048,
			},
		},
		{
			name: "empty values fall back",
			vars: map[string]string{"CHESS_ADDR": "", "CHESS_WS_READ_BUFFER": ""},
			want: Default(),
		},
		{
			name:    "not a number",
			vars:    map[string]string{"CHESS_WS_READ_BUFFER": "big"},
			wantErr: true,
		},
		{
			name:    "not positive",
			vars:    map[string]string{"CHESS_WS_WRITE_BUFFER": "0"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := load(env(tt.vars))
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error: got=%v wantErr=%t", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("unexpected config: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}
