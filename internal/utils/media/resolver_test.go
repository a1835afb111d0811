package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	r := NewResolver("https://cdn.example.com/")

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"relative", "uploads/a.jpg", "https://cdn.example.com/uploads/a.jpg"},
		{"leading slash", "/uploads/a.jpg", "https://cdn.example.com/uploads/a.jpg"},
		{"absolute https", "https://img.example.org/x.png", "https://img.example.org/x.png"},
		{"absolute http upper", "HTTP://img.example.org/x.png", "HTTP://img.example.org/x.png"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.ref))
		})
	}
}

func TestResolveAllWithoutBase(t *testing.T) {
	r := NewResolver("")
	assert.Equal(t, []string{"/uploads/a.jpg", "https://x/y"}, r.ResolveAll([]string{"uploads/a.jpg", "https://x/y"}))
	assert.Empty(t, r.ResolveAll(nil))
}
