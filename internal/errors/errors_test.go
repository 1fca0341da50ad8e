// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	var vectors = []struct {
		err  Error
		want string
	}{
		{Error{}, "unknown error"},
		{Error{Code: Internal, Pkg: "huff"}, "huff: internal error"},
		{Error{Code: Invalid, Pkg: "huff", Msg: "input too large"}, "huff: invalid argument: input too large"},
		{Error{Code: Corrupted, Pkg: "huff", Msg: "truncated container"}, "huff: corrupted input: truncated container"},
		{Error{Code: Closed, Msg: "writer"}, "closed handler: writer"},
	}
	for i, v := range vectors {
		if got := v.err.Error(); got != v.want {
			t.Errorf("test %d, Error() = %q, want %q", i, got, v.want)
		}
	}
}

func TestPredicates(t *testing.T) {
	corrupt := Error{Code: Corrupted}
	assert.True(t, IsCorrupted(corrupt))
	assert.False(t, IsInvalid(corrupt))
	assert.True(t, IsInvalid(Error{Code: Invalid}))
	assert.True(t, IsInternal(Error{Code: Internal}))
	assert.True(t, IsClosed(Error{Code: Closed}))
	assert.False(t, IsCorrupted(io.ErrUnexpectedEOF))
	assert.False(t, IsCorrupted(nil))
}

func TestRecover(t *testing.T) {
	raise := func(err error) (got error) {
		defer Recover(&got)
		Panic(err)
		return nil
	}
	assert.Equal(t, io.ErrUnexpectedEOF, raise(io.ErrUnexpectedEOF))
	assert.Equal(t, Error{Code: Corrupted}, raise(Error{Code: Corrupted}))

	// Foreign panics must not be swallowed.
	assert.Panics(t, func() {
		var err error
		defer Recover(&err)
		panic("boom")
	})
}
