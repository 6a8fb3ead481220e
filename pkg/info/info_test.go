package info_test

import (
	"testing"

	"rippletick/pkg/info"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceID(t *testing.T) {
	require.NotEmpty(t, info.InstanceID)

	id, err := uuid.Parse(info.InstanceID)
	assert.Nil(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}
