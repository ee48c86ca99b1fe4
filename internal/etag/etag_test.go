package etag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Deterministic(t *testing.T) {
	payload := map[string]any{
		"post_id":    1,
		"title":      "Hello",
		"created_at": "2025-01-02T03:04:05Z",
		"interests":  []any{map[string]any{"interest_id": 1, "interest_name": "go"}},
	}

	first, err := Compute(payload)
	require.NoError(t, err)
	second, err := Compute(payload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 32)
}

func TestCompute_FieldOrderInsensitive(t *testing.T) {
	// Struct field order and map insertion order must not influence the token.
	type a struct {
		Title  string `json:"title"`
		PostID int    `json:"post_id"`
	}
	type b struct {
		PostID int    `json:"post_id"`
		Title  string `json:"title"`
	}

	fromA, err := Compute(a{Title: "x", PostID: 7})
	require.NoError(t, err)
	fromB, err := Compute(b{PostID: 7, Title: "x"})
	require.NoError(t, err)
	fromMap, err := Compute(map[string]any{"post_id": 7, "title": "x"})
	require.NoError(t, err)

	assert.Equal(t, fromA, fromB)
	assert.Equal(t, fromA, fromMap)
}

func TestCompute_Sensitivity(t *testing.T) {
	base := map[string]any{"post_id": 1, "title": "Hello", "body": "world"}

	baseToken, err := Compute(base)
	require.NoError(t, err)

	mutations := []map[string]any{
		{"post_id": 2, "title": "Hello", "body": "world"},
		{"post_id": 1, "title": "Hello!", "body": "world"},
		{"post_id": 1, "title": "Hello", "body": nil},
		{"post_id": 1, "title": "Hello"},
	}

	for _, m := range mutations {
		token, err := Compute(m)
		require.NoError(t, err)
		assert.NotEqual(t, baseToken, token)
	}
}

func TestCompute_TimeValuesStable(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	type payload struct {
		CreatedAt time.Time `json:"created_at"`
	}

	first, err := Compute(payload{CreatedAt: ts})
	require.NoError(t, err)
	second, err := Compute(payload{CreatedAt: ts})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		token    string
		expected bool
	}{
		{"Quoted", `"abc123"`, "abc123", true},
		{"Unquoted", "abc123", "abc123", true},
		{"Weak Validator", `W/"abc123"`, "abc123", true},
		{"Mismatch", `"abc124"`, "abc123", false},
		{"Empty Header", "", "abc123", false},
		{"Empty Both", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.header, tt.token))
		})
	}
}
