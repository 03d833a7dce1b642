package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "react markers win over generic javascript",
			code: `import React from 'react';
const [count, setCount] = useState(0);`,
			want: "typescript",
		},
		{
			name: "python def with colon and no braces",
			code: "def handler(event):\n    return event",
			want: "python",
		},
		{
			name: "java public class",
			code: "public class Main { public static void main(String[] args) {} }",
			want: "java",
		},
		{
			name: "go func plus package",
			code: "package main\n\nfunc main() {\n\tconst answer = 42\n}",
			want: "go",
		},
		{
			name: "rust fn with let mut",
			code: "fn main() { let mut total = 0; }",
			want: "rust",
		},
		{
			name: "php open tag",
			code: "<?php echo 'hello';",
			want: "php",
		},
		{
			name: "ruby puts",
			code: "puts 'hello world'",
			want: "ruby",
		},
		{
			name: "ruby def with end",
			code: "def greet(name)\n  \"hi \" + name\nend",
			want: "ruby",
		},
		{
			name: "generic javascript const",
			code: "const total = items.reduce((a, b) => a + b, 0);",
			want: "javascript",
		},
		{
			name: "no match returns sentinel",
			code: "SELECT * FROM users WHERE id = 1;",
			want: Other,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.code))
		})
	}
}

// A Go snippet also contains "const ", which the generic JavaScript predicate
// matches. The framework and language specific rules must run first.
func TestDetectOrderIsLoadBearing(t *testing.T) {
	code := "package main\n\nfunc main() {\n\tconst retries = 3\n}\n"
	assert.Equal(t, "go", Detect(code))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("javascript"))
	assert.True(t, Known(Other))
	assert.False(t, Known("cobol"))
}

func TestOptionListsAreNonEmpty(t *testing.T) {
	assert.NotEmpty(t, Languages)
	assert.NotEmpty(t, Frameworks)
}
