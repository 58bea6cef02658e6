package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestEnvFileParsing(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:     "plain pair round-trips",
			content:  "KEY=value\n",
			expected: map[string]string{"KEY": "value"},
		},
		{
			name:     "double quotes stripped",
			content:  "KEY=\"value\"\n",
			expected: map[string]string{"KEY": "value"},
		},
		{
			name:     "single quotes stripped",
			content:  "KEY='value'\n",
			expected: map[string]string{"KEY": "value"},
		},
		{
			name:     "only one outer pair stripped",
			content:  "KEY=\"\"value\"\"\n",
			expected: map[string]string{"KEY": "\"value\""},
		},
		{
			name:     "mismatched quotes kept",
			content:  "KEY=\"value'\n",
			expected: map[string]string{"KEY": "\"value'"},
		},
		{
			name:     "lone quote kept",
			content:  "KEY=\"\n",
			expected: map[string]string{"KEY": "\""},
		},
		{
			name:     "whitespace trimmed around key and value",
			content:  "  KEY  =  value  \n",
			expected: map[string]string{"KEY": "value"},
		},
		{
			name:     "comments and blank lines skipped",
			content:  "# comment\n\nKEY=value\n   # indented comment\n",
			expected: map[string]string{"KEY": "value"},
		},
		{
			name:     "lines without equals skipped",
			content:  "NOT A PAIR\nKEY=value\n",
			expected: map[string]string{"KEY": "value"},
		},
		{
			name:     "split on first equals only",
			content:  "KEY=a=b=c\n",
			expected: map[string]string{"KEY": "a=b=c"},
		},
		{
			name:     "later duplicate wins",
			content:  "KEY=first\nKEY=second\n",
			expected: map[string]string{"KEY": "second"},
		},
		{
			name:     "empty value",
			content:  "KEY=\n",
			expected: map[string]string{"KEY": ""},
		},
		{
			name:     "no interpolation for this format",
			content:  "NAME=world\nGREETING=hello %(NAME)s\n",
			expected: map[string]string{"NAME": "world", "GREETING": "hello %(NAME)s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newEnvFile(t, tt.content)
			for key, expected := range tt.expected {
				value, err := repo.Get(key)
				if err != nil {
					t.Fatalf("Get(%q) failed: %v", key, err)
				}
				if value != expected {
					t.Errorf("Get(%q) = %q, expected %q", key, value, expected)
				}
			}
		})
	}
}

func TestEnvFileMissingKey(t *testing.T) {
	repo := newEnvFile(t, "KEY=value\n")

	_, err := repo.Get("ESTRATS_TEST_ABSENT_12345")
	if err == nil {
		t.Fatal("Expected an error for an absent key")
	}
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestEnvFileContainsChecksEnvironment(t *testing.T) {
	repo := newEnvFile(t, "KEY=value\n")

	if !repo.Contains("KEY") {
		t.Error("Contains should report keys defined in the file")
	}
	if repo.Contains("ESTRATS_TEST_ENV_MEMBER") {
		t.Error("Contains should miss a key absent from file and environment")
	}

	t.Setenv("ESTRATS_TEST_ENV_MEMBER", "present")
	if !repo.Contains("ESTRATS_TEST_ENV_MEMBER") {
		t.Error("Contains should report keys present in the environment")
	}
	// Get never consults the environment.
	if _, err := repo.Get("ESTRATS_TEST_ENV_MEMBER"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get should only read the file store, got %v", err)
	}
}

func TestEnvFileKeysKeepFileOrder(t *testing.T) {
	repo := newEnvFile(t, "B=2\nA=1\nC=3\nB=4\n")

	expected := []string{"B", "A", "C"}
	if got := repo.Keys(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Keys() = %v, expected %v", got, expected)
	}
}

func TestEnvFileLongLines(t *testing.T) {
	// Values longer than a default bufio.Scanner token (64KB) must survive,
	// and so must every key defined after them.
	big := strings.Repeat("x", 70*1024)
	repo := newEnvFile(t, "BIG="+big+"\nAFTER=value\n")

	value, err := repo.Get("BIG")
	if err != nil {
		t.Fatalf("Get(\"BIG\") failed: %v", err)
	}
	if value != big {
		t.Errorf("Get(\"BIG\") returned %d bytes, expected %d", len(value), len(big))
	}

	value, err = repo.Get("AFTER")
	if err != nil {
		t.Fatalf("Get(\"AFTER\") failed: %v", err)
	}
	if value != "value" {
		t.Errorf("Get(\"AFTER\") = %q, expected \"value\"", value)
	}
}

func TestEnvFileMissingFile(t *testing.T) {
	if _, err := NewEnvFile(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestEnvFileEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	// "café" encoded as Latin-1.
	if err := os.WriteFile(path, []byte("NAME=caf\xe9\n"), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	repo, err := NewEnvFile(path, WithEncoding(charmap.ISO8859_1))
	if err != nil {
		t.Fatalf("NewEnvFile failed: %v", err)
	}
	value, err := repo.Get("NAME")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "café" {
		t.Errorf("Expected 'café', got %q", value)
	}
}
