package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/plink/internal/adapters/logger"
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "single standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr single error",
			err:          zerr.New("zerr error"),
			wantMessages: []string{"zerr error"},
			wantMetadata: []map[string]any{{}},
		},
		{
			name:         "wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name: "metadata on a domain sentinel chain",
			err: zerr.With(
				zerr.Wrap(domain.ErrToolFailure, "llvm-dis exited with code 2"),
				"exit_code", 2,
			),
			wantMessages: []string{"llvm-dis exited with code 2", "external tool failed"},
			wantMetadata: []map[string]any{{"exit_code": 2}, {}},
		},
		{
			name:         "metadata on a standard error",
			err:          zerr.With(errors.New("permission denied"), "path", "toolchain.txt"),
			wantMessages: []string{"permission denied"},
			wantMetadata: []map[string]any{{"path": "toolchain.txt"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			assert.Len(t, entries, len(tt.wantMessages))
			for i, wantMsg := range tt.wantMessages {
				assert.Equal(t, wantMsg, entries[i].Message, "message mismatch at index %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata mismatch at index %d", i)
			}
		})
	}
}

func TestCollectErrorEntries_Nil(t *testing.T) {
	assert.Empty(t, logger.CollectErrorEntries(nil))
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "three entries",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{
				{Message: "link failed", Metadata: map[string]any{"exit_code": 1, "command": "lld-link"}},
			},
			want: "Error: link failed\n       command: lld-link\n       exit_code: 1",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"line": 3}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      line: 3",
		},
		{
			name: "multiline messages",
			entries: []logger.ErrorEntry{
				{Message: "unable to find \"libplugin.so\"; searched in:\n  ./target/debug/libplugin.so"},
				{Message: "artifact\nnot found"},
			},
			want: "Error: unable to find \"libplugin.so\"; searched in:\n" +
				"         ./target/debug/libplugin.so\n\n" +
				"  Caused by:\n" +
				"    → artifact\n" +
				"      not found",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
