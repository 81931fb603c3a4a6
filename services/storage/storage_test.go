package storage

import "testing"

func TestIsRemoteURL(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1/images/1.jpg", true},
		{"http://cdn.example.com/photo.jpg", true},
		{"file:///data/user/0/cache/photo.jpg", false},
		{"content://media/external/images/1", false},
		{"/tmp/photo.jpg", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsRemoteURL(c.value); got != c.want {
			t.Fatalf("IsRemoteURL(%q) = %v, want %v", c.value, got, c.want)
		}
	}
}
