package detector

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		isTTY    bool
		ci       string
		noColor  string
		expected OutputMode
	}{
		{name: "terminal", isTTY: true, expected: ModeTerminal},
		{name: "not a terminal", isTTY: false, expected: ModePlain},
		{name: "CI=true forces plain", isTTY: true, ci: "true", expected: ModePlain},
		{name: "CI=1 forces plain", isTTY: true, ci: "1", expected: ModePlain},
		{name: "CI=false does not force plain", isTTY: true, ci: "false", expected: ModeTerminal},
		{name: "NO_COLOR forces plain", isTTY: true, noColor: "1", expected: ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(tt.isTTY, tt.ci, tt.noColor)
			if got != tt.expected {
				t.Errorf("detect(%v, %q, %q) = %v, want %v", tt.isTTY, tt.ci, tt.noColor, got, tt.expected)
			}
			if got.UsePTY() != (tt.expected == ModeTerminal) {
				t.Errorf("UsePTY() = %v for %v", got.UsePTY(), got)
			}
		})
	}
}
