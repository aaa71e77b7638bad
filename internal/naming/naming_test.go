package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClearKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "plain name untouched", input: "orders", want: "orders"},
		{name: "colons preserved", input: "orders:Message", want: "orders:Message"},
		{name: "dots preserved", input: "com.example.orders", want: "com.example.orders"},
		{name: "slash replaced", input: "orders/created", want: "orders.created"},
		{name: "leading slash", input: "/events", want: ".events"},
		{name: "hash replaced", input: "user#v2", want: "user.v2"},
		{name: "tilde replaced", input: "a~b", want: "a.b"},
		{name: "space replaced", input: "user events", want: "user.events"},
		{name: "tab replaced", input: "a\tb", want: "a.b"},
		{name: "mixed reserved", input: "a/b#c~d e", want: "a.b.c.d.e"},
		{name: "unicode kept", input: "日本語/イベント", want: "日本語.イベント"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClearKey(tt.input)
			assert.Equal(t, tt.want, got, "ClearKey(%q)", tt.input)
		})
	}
}

func TestClearKeyCanonicalEquivalence(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, ClearKey(composed), ClearKey(decomposed))
	assert.Equal(t, composed, ClearKey(decomposed))
}

func TestClearKeyDeterministic(t *testing.T) {
	inputs := []string{"a/b", "x y", "cafe\u0301", "", "q#1"}
	for _, in := range inputs {
		first := ClearKey(in)
		for range 10 {
			assert.Equal(t, first, ClearKey(in))
		}
		assert.Equal(t, first, ClearKey(first), "ClearKey should be idempotent for %q", in)
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "A"},
		{name: "snake_case simple", input: "user_profile", want: "UserProfile"},
		{name: "kebab-case simple", input: "api-client", want: "ApiClient"},
		{name: "dot separator", input: "com.example.api", want: "ComExampleApi"},
		{name: "slash separator", input: "users/profile", want: "UsersProfile"},
		{name: "colon separator", input: "orders:created", want: "OrdersCreated"},
		{name: "spaces", input: "shipping address", want: "ShippingAddress"},
		{name: "already PascalCase", input: "UserProfile", want: "UserProfile"},
		{name: "all caps", input: "API", want: "API"},
		{name: "camelCase", input: "userProfile", want: "UserProfile"},
		{name: "unicode lowercase", input: "über_user", want: "ÜberUser"},
		{name: "with numbers", input: "api_v2_client", want: "ApiV2Client"},
		{name: "only separators", input: "_-./", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPascalCase(tt.input)
			assert.Equal(t, tt.want, got, "ToPascalCase(%q)", tt.input)
		})
	}
}
