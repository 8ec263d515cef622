package memory

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, key string
		want         bool
	}{
		{"products:*", "products:all", true},
		{"products:*", "products:", true},
		{"products:*", "products", false},
		{"products:*", "categories", false},
		{"products:*", "products:Еда/Снеки", true},
		{"user:?", "user:7", true},
		{"user:?", "user:77", false},
		{"user:[0-9]*", "user:42", true},
		{"user:[^0-9]*", "user:42", false},
		{"user:[abc]", "user:b", true},
		{"*", "", true},
		{"a**b", "a-x-b", true},
		{`shop\*`, "shop*", true},
		{`shop\*`, "shop_status", false},
		{"shop_status", "shop_status", true},
	}

	for _, tt := range tests {
		if got := Match(tt.pattern, tt.key); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.key, got, tt.want)
		}
	}
}
