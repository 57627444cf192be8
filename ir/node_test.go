package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress_OutermostRoundTrip(t *testing.T) {
	a := NewAddress("N", "M", "Leaf")
	assert.Equal(t, []string{"Leaf", "M", "N"}, a.Segments)
	assert.Equal(t, []string{"N", "M", "Leaf"}, a.Outermost())
	assert.Equal(t, "N.M.Leaf", a.String())
}

func TestAddress_Empty(t *testing.T) {
	var a Address
	assert.Equal(t, "", a.String())
	assert.Empty(t, a.Outermost())
}

func TestMemberRef_String(t *testing.T) {
	tests := []struct {
		name string
		ref  MemberRef
		want string
	}{
		{"no signature", MemberRef{Type: Entity{ID: "List"}, Name: "Add"}, "List.Add"},
		{"with signature", MemberRef{Type: Entity{ID: "List"}, Name: "Add", Signature: "(T)"}, "List.Add(T)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
		})
	}
}

func TestNewIdent(t *testing.T) {
	id := NewIdent("x", 42)
	assert.Equal(t, "x", id.Name)
	assert.Equal(t, Pos(42), id.Pos())
}
