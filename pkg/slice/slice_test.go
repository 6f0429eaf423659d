// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookrec/pkg/slice"
)

/*
TestSlice covers the functional helpers.
*/
func TestSlice(t *testing.T) {
	in := []int{1, 2, 3, 4}

	assert.Equal(t, []string{"1", "2", "3", "4"}, slice.Map(in, strconv.Itoa))
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))

	even := func(v int) bool { return v%2 == 0 }
	assert.Equal(t, []int{2, 4}, slice.Filter(in, even))
	assert.Equal(t, []int{}, slice.Filter(nil, even))

	assert.True(t, slice.Any(in, even))
	assert.False(t, slice.Any([]int{1, 3}, even))

	sum := slice.Reduce(in, 0, func(acc, v int) int { return acc + v })
	assert.Equal(t, 10, sum)
}
