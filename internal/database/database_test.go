package database

import (
	"testing"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/stretchr/testify/assert"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, SESSION_CACHE_INDEX)
	assert.Equal(t, 2, USER_CACHE_INDEX)
	assert.Equal(t, 3, EVENTS_CACHE_INDEX)
}

func TestDB_StructCreation(t *testing.T) {
	log := logger.New("test")

	db := &DB{
		log: log,
	}

	assert.NotNil(t, db)
	assert.Nil(t, db.SQL)
}

func TestCacheBuilder_RequiresKey(t *testing.T) {
	cb := NewCacheBuilder[string](nil, "")

	err := cb.WithValue("value").Set()
	assert.Error(t, err)

	found, err := cb.Get(&struct{}{})
	assert.Error(t, err)
	assert.False(t, found)
}

func TestIsKeyNotFoundError(t *testing.T) {
	assert.False(t, isKeyNotFoundError(nil))
	assert.False(t, isKeyNotFoundError(assert.AnError))
}
