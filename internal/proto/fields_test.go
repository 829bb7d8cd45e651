package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFields(t *testing.T) {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":        structpb.NewNumberValue(123456789),
		"username":  structpb.NewStringValue("johndoe"),
		"linked":    structpb.NewBoolValue(true),
		"nothing":   structpb.NewNullValue(),
		"auth_date": structpb.NewStringValue("1700000000"),
	}}

	assert.Equal(t, map[string]string{
		"id":        "123456789",
		"username":  "johndoe",
		"linked":    "true",
		"auth_date": "1700000000",
	}, Fields(s))
}

func TestFields_Nil(t *testing.T) {
	assert.Empty(t, Fields(nil))
}

func TestNewStruct(t *testing.T) {
	s := NewStruct(map[string]string{"a": "1", "b": ""})
	assert.Equal(t, "1", s.Fields["a"].GetStringValue())
	assert.Equal(t, map[string]string{"a": "1", "b": ""}, Fields(s))
}
