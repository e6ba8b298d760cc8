package symbolmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected map[string]string
		wantErr  bool
	}{
		{
			name: "proguard",
			file: "mapping.txt",
			content: `# compiler: R8
com.example.app.MainActivity -> a.a:
    int counter -> a
    void onClick(android.view.View) -> b
com.example.app.Cart$Item -> a.b:
`,
			expected: map[string]string{
				"a.a": "com.example.app.MainActivity",
				"a.b": "com.example.app.Cart$Item",
			},
		},
		{
			name:    "proguard malformed",
			file:    "mapping.txt",
			content: "com.example.Main a.a\n",
			wantErr: true,
		},
		{
			name: "yaml",
			file: "mapping.yaml",
			content: `classes:
  a.a: com.example.app.MainActivity
`,
			expected: map[string]string{"a.a": "com.example.app.MainActivity"},
		},
		{
			name:     "empty yaml",
			file:     "mapping.yml",
			content:  "",
			expected: map[string]string{},
		},
		{
			name:    "invalid yaml",
			file:    "mapping.yaml",
			content: "classes: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.file, strings.NewReader(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
