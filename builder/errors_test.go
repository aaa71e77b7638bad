package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncspec/specerrors"
)

func TestBuilderError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *BuilderError
		want string
	}{
		{
			name: "component only",
			err:  &BuilderError{Component: ComponentBroker, Message: "broker is nil"},
			want: "builder: broker: broker is nil",
		},
		{
			name: "full location",
			err: &BuilderError{
				Component: ComponentSchema,
				Channel:   "orders",
				Title:     "orders:Message",
				Field:     "oneOf",
				Message:   "union has no variants",
			},
			want: `builder: schema orders [message: orders:Message] field oneOf: union has no variants`,
		},
		{
			name: "with cause",
			err:  &BuilderError{Component: ComponentServer, Message: "bad url", Cause: errors.New("parse failure")},
			want: "builder: server: bad url: parse failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestBuilderError_Is(t *testing.T) {
	tests := []struct {
		component ComponentType
		sentinel  error
	}{
		{ComponentBroker, specerrors.ErrConfig},
		{ComponentServer, specerrors.ErrConfig},
		{ComponentReference, specerrors.ErrReference},
		{ComponentChannel, specerrors.ErrDescriptor},
		{ComponentOperation, specerrors.ErrDescriptor},
		{ComponentMessage, specerrors.ErrDescriptor},
		{ComponentSchema, specerrors.ErrDescriptor},
	}
	for _, tt := range tests {
		t.Run(string(tt.component), func(t *testing.T) {
			err := &BuilderError{Component: tt.component}
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.False(t, errors.Is(err, specerrors.ErrParse))
		})
	}
}

func TestBuilderError_Location(t *testing.T) {
	assert.Equal(t, "orders orders:Message", (&BuilderError{Channel: "orders", Title: "orders:Message"}).Location())
	assert.Equal(t, "orders", (&BuilderError{Channel: "orders"}).Location())
	assert.Equal(t, "server", (&BuilderError{Component: ComponentServer}).Location())
	assert.Equal(t, "unknown", (&BuilderError{}).Location())
	assert.False(t, (&BuilderError{}).HasLocation())
}

func TestNewDescriptorError(t *testing.T) {
	err := newDescriptorError(ComponentMessage, "orders", "", "title", "message has no title")

	var mde *specerrors.MalformedDescriptorError
	require.True(t, errors.As(err, &mde))
	assert.Equal(t, "orders", mde.Channel)
	assert.Equal(t, "title", mde.Field)
	assert.Contains(t, err.Error(), "message has no title")
}

func TestBuilderErrors(t *testing.T) {
	var empty BuilderErrors
	assert.Equal(t, "", empty.Error())

	single := BuilderErrors{{Component: ComponentReference, Message: "dangling"}}
	assert.Equal(t, "builder: reference: dangling", single.Error())

	multi := BuilderErrors{
		{Component: ComponentReference, Message: "first"},
		nil,
		{Component: ComponentReference, Message: "second"},
	}
	assert.Equal(t, "builder: 3 error(s):\n  - reference: first\n  - reference: second", multi.Error())
	assert.Len(t, multi.Unwrap(), 2)
	assert.True(t, errors.Is(multi, specerrors.ErrReference))
}

func TestCollision_String(t *testing.T) {
	c := Collision{Component: ComponentMessage, Key: "orders:Message", Previous: "orders/Message", Current: "orders2/Message"}
	assert.Equal(t, `message "orders:Message" from orders/Message replaced by orders2/Message`, c.String())

	err := NewCollisionError(c)
	assert.True(t, errors.Is(err, specerrors.ErrDescriptor))
	assert.Contains(t, err.Error(), c.String())
}
