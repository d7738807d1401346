package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writeFile() failed: %v", err)
	}
	return path
}

func TestValidateRoster(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid", path: writeFile(t, dir, "ok.csv", "username,password\nbob,secret\n")},
		{name: "several rows", path: writeFile(t, dir, "many.csv", "username,password\nbob,secret\ncarol,hunter2\n")},
		{name: "header case and spacing ignored", path: writeFile(t, dir, "spaced.csv", "Username, Password\nbob,secret\n")},
		{name: "missing file", path: filepath.Join(dir, "absent.csv"), wantErr: true},
		{name: "empty file", path: writeFile(t, dir, "empty.csv", ""), wantErr: true},
		{name: "header only", path: writeFile(t, dir, "header.csv", "username,password\n"), wantErr: true},
		{name: "wrong header", path: writeFile(t, dir, "wrong.csv", "user,pass\nbob,secret\n"), wantErr: true},
		{name: "extra column", path: writeFile(t, dir, "extra.csv", "username,password,email\nbob,secret,bob@example.com\n"), wantErr: true},
		{name: "swapped columns", path: writeFile(t, dir, "swapped.csv", "password,username\nsecret,bob\n"), wantErr: true},
		{name: "ragged row", path: writeFile(t, dir, "ragged.csv", "username,password\nbob\n"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoster(tt.path)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("ValidateRoster() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateRoster() expected an error, got nil")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("ValidateRoster() error type = %T, want *ValidationError", err)
			}
		})
	}
}
