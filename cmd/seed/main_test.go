package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"recent", "popular"}, splitList(" recent, ,popular "))
	assert.Nil(t, splitList(""))
}
