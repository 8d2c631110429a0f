// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux || darwin

package pipepoll

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// spareFD returns an fd number that is open, and owned by nothing, so it may
// be used as a dup2 target, which will take ownership.
func spareFD(t *testing.T) int {
	t.Helper()
	r, w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return r.IntoFd()
}

func stubCloseOnExec(t *testing.T, fn func(fd int) error) {
	t.Helper()
	orig := setCloseOnExec
	t.Cleanup(func() { setCloseOnExec = orig })
	setCloseOnExec = fn
}

func TestReader_Dup(t *testing.T) {
	r, w := testPipe(t)
	d, err := r.Dup()
	require.NoError(t, err)
	defer d.Close()

	assert.NotEqual(t, r.Fd(), d.Fd())
	assert.True(t, hasCloseOnExec(t, d.Fd()))

	_, err = w.Write([]byte("shared"))
	require.NoError(t, err)

	// either handle reads the same pipe
	got, _, err := d.ReadToEnd(nil)
	require.NoError(t, err)
	assert.Equal(t, "shared", string(got))

	// independent ownership
	require.NoError(t, r.Close())
	assert.True(t, fdOpen(d.Fd()))
	_, err = w.Write([]byte("again"))
	require.NoError(t, err)
	got, _, err = d.ReadToEnd(nil)
	require.NoError(t, err)
	assert.Equal(t, "again", string(got))
}

func TestWriter_Dup(t *testing.T) {
	r, w := testPipe(t)
	d, err := w.Dup()
	require.NoError(t, err)
	assert.True(t, hasCloseOnExec(t, d.Fd()))

	require.NoError(t, w.Close())
	require.NoError(t, d.WriteAll([]byte("via dup")))

	// the pipe stays open until every write end is closed
	got, _, err := r.ReadToEnd(nil)
	require.NoError(t, err)
	assert.Equal(t, "via dup", string(got))

	require.NoError(t, d.Close())
	_, _, err = r.ReadToEnd(nil)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_Dup2(t *testing.T) {
	r, w := testPipe(t)
	target := spareFD(t)

	d, err := r.Dup2(target)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, target, d.Fd())
	assert.True(t, hasCloseOnExec(t, target))

	_, err = w.Write([]byte("dup2"))
	require.NoError(t, err)
	got, _, err := d.ReadToEnd(nil)
	require.NoError(t, err)
	assert.Equal(t, "dup2", string(got))
}

func TestWriter_Dup2_self(t *testing.T) {
	_, w := testPipe(t)
	d, err := w.Dup2(w.Fd())
	assert.Nil(t, d)
	assert.ErrorIs(t, err, unix.EINVAL)
	assert.True(t, fdOpen(w.Fd()))
}

func TestDup_closed(t *testing.T) {
	r, w, err := New()
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, w.Close())

	_, err = r.Dup()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = w.Dup2(100)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDup_closeOnExecFailureClosesDuplicate(t *testing.T) {
	r, _ := testPipe(t)

	attempted := -1
	stubCloseOnExec(t, func(fd int) error {
		attempted = fd
		return os.NewSyscallError(`fcntl`, unix.EIO)
	})

	d, err := r.Dup()
	assert.Nil(t, d)
	assert.ErrorIs(t, err, unix.EIO)
	require.GreaterOrEqual(t, attempted, 0)
	assert.NotEqual(t, r.Fd(), attempted)
	assert.False(t, fdOpen(attempted), "duplicate leaked")
	assert.True(t, fdOpen(r.Fd()))
}

func TestDup2_closeOnExecFailureClosesDuplicate(t *testing.T) {
	_, w := testPipe(t)
	target := spareFD(t)

	stubCloseOnExec(t, func(fd int) error {
		return os.NewSyscallError(`fcntl`, unix.EIO)
	})

	d, err := w.Dup2(target)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, unix.EIO)
	assert.False(t, fdOpen(target), "duplicate leaked")
	assert.True(t, fdOpen(w.Fd()))
}
