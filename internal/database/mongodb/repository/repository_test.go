package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestWithUpdatedAt(t *testing.T) {
	update := withUpdatedAt(bson.M{"$set": bson.M{"status": "active"}})
	assert.Equal(t, bson.M{"updatedAt": true}, update["$currentDate"])

	existing := withUpdatedAt(bson.M{"$currentDate": bson.M{"lastSeen": true}})
	assert.Equal(t, bson.M{"lastSeen": true, "updatedAt": true}, existing["$currentDate"])
}
