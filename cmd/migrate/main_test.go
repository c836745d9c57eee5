package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchema struct {
	version uint
	latest  uint
	dirty   bool
	failUp  error
}

func (f *fakeSchema) Up() error {
	if f.failUp != nil {
		return f.failUp
	}
	if f.version == f.latest {
		return migrate.ErrNoChange
	}
	f.version = f.latest
	return nil
}

func (f *fakeSchema) Steps(n int) error {
	if f.version == 0 {
		return errors.New("no migration to roll back")
	}
	f.version = uint(int(f.version) + n)
	return nil
}

func (f *fakeSchema) Version() (uint, bool, error) {
	if f.version == 0 {
		return 0, false, migrate.ErrNilVersion
	}
	return f.version, f.dirty, nil
}

func TestRun(t *testing.T) {
	s := &fakeSchema{latest: 3}

	msg, err := run(s, "status")
	require.NoError(t, err)
	assert.Equal(t, "no migrations applied", msg)

	msg, err = run(s, "up")
	require.NoError(t, err)
	assert.Equal(t, "plan schema at version 3", msg)

	msg, err = run(s, "up")
	require.NoError(t, err)
	assert.Equal(t, "plan schema is up to date", msg)

	msg, err = run(s, "down")
	require.NoError(t, err)
	assert.Equal(t, "plan schema at version 2", msg)

	s.dirty = true
	msg, err = run(s, "status")
	require.NoError(t, err)
	assert.Contains(t, msg, "dirty")
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := run(&fakeSchema{latest: 3, failUp: boom}, "up")
	assert.ErrorIs(t, err, boom)

	_, err = run(&fakeSchema{latest: 3}, "down")
	assert.Error(t, err)

	_, err = run(&fakeSchema{}, "goto")
	assert.Error(t, err)
	assert.False(t, known("goto"))
	assert.True(t, known("status"))
}
