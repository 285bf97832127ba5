package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

func TestPrintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     []string
		wantHint bool
	}{
		{
			name:     "coded with hint",
			err:      fmt.Errorf("fetch: %w", errors.New(errors.ErrCodeUnauthorized, "access denied")),
			want:     []string{"UNAUTHORIZED", "access denied", "MODELGRAPH_MAPI_KEY"},
			wantHint: true,
		},
		{
			name: "coded without hint",
			err:  errors.New(errors.ErrCodeNotFound, "no node \"x\""),
			want: []string{"NOT_FOUND", `no node "x"`},
		},
		{
			name: "plain",
			err:  fmt.Errorf("boom"),
			want: []string{"boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			if lines := strings.Count(out, "\n"); (lines == 2) != tt.wantHint {
				t.Errorf("got %d lines, hint expected = %v", lines, tt.wantHint)
			}
		})
	}
}
