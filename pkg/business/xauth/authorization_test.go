package xauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopes(t *testing.T) {
	s := NewScopes("write", "read", "", "read")
	assert.False(t, s.All())
	assert.True(t, s.Contains("read"))
	assert.False(t, s.Contains("admin"))
	assert.Equal(t, []string{"read", "write"}, s.List())
	assert.Equal(t, "read,write", s.String())

	all := AllScopes()
	assert.True(t, all.All())
	assert.True(t, all.Contains("anything"))
	assert.Nil(t, all.List())
	assert.Equal(t, "*", all.String())

	var zero Scopes
	assert.False(t, zero.Contains("read"))
	assert.Empty(t, zero.String())
}

func TestAuthorization_CloneIsDeep(t *testing.T) {
	orig := &Authorization{Subject: "alice", Scopes: NewScopes("read"), Issuer: "idp"}
	c := orig.Clone()
	assert.Equal(t, orig, c)

	c.Scopes.set["write"] = struct{}{}
	c.Subject = "bob"
	assert.False(t, orig.HasScope("write"))
	assert.Equal(t, "alice", orig.Subject)

	var nilAuth *Authorization
	assert.Nil(t, nilAuth.Clone())
	assert.False(t, nilAuth.HasScope("read"))
}

func TestAuthorization_LogValue(t *testing.T) {
	a := &Authorization{Subject: "alice", Scopes: NewScopes("read"), Issuer: "idp"}
	v := a.LogValue()
	attrs := v.Group()
	assert.Len(t, attrs, 3)
	assert.Equal(t, "alice", attrs[0].Value.String())
}
