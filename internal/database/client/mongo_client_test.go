package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb://localhost:27017", buildMongoURI("mongodb://localhost:27017", ""))
	assert.Equal(t, "mongodb://localhost:27017/?authSource=admin",
		buildMongoURI("mongodb://localhost:27017/", "authSource=admin"))
	assert.Equal(t, "mongodb://h/?a=1&authSource=admin",
		buildMongoURI("mongodb://h/?a=1", "authSource=admin"))
}
