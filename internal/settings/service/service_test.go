package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

type mapRepo struct {
	vals map[string]string
	err  error
}

var _ sdomain.Repository = (*mapRepo)(nil)

func (r *mapRepo) Get(ctx context.Context, key string, companyID *uuid.UUID) (string, bool, error) {
	if r.err != nil {
		return "", false, r.err
	}
	v, ok := r.vals[key]
	return v, ok, nil
}

func (r *mapRepo) Upsert(ctx context.Context, key string, companyID *uuid.UUID, value string, secret bool) error {
	if r.vals == nil {
		r.vals = map[string]string{}
	}
	r.vals[key] = value
	return nil
}

func TestGetString_Defaulting(t *testing.T) {
	ctx := context.Background()
	s := New(&mapRepo{vals: map[string]string{
		"set":   "value",
		"blank": "   ",
	}})

	v, err := s.GetString(ctx, "set", nil, "def")
	assert.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = s.GetString(ctx, "missing", nil, "def")
	assert.NoError(t, err)
	assert.Equal(t, "def", v)

	// Whitespace-only values behave like missing ones.
	v, err = s.GetString(ctx, "blank", nil, "def")
	assert.NoError(t, err)
	assert.Equal(t, "def", v)
}

func TestGetString_RepoErrorReturnsDefault(t *testing.T) {
	s := New(&mapRepo{err: errors.New("db down")})
	v, err := s.GetString(context.Background(), "any", nil, "def")
	assert.Error(t, err)
	assert.Equal(t, "def", v)
}

func TestGetDuration(t *testing.T) {
	ctx := context.Background()
	s := New(&mapRepo{vals: map[string]string{
		"win": "90s",
		"bad": "ninety",
	}})

	d, err := s.GetDuration(ctx, "win", nil, time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	// Unparseable values fall back silently; a typo in a setting must not
	// break the endpoint it configures.
	d, err = s.GetDuration(ctx, "bad", nil, time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	d, err = s.GetDuration(ctx, "missing", nil, time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, time.Minute, d)
}

func TestGetInt(t *testing.T) {
	ctx := context.Background()
	s := New(&mapRepo{vals: map[string]string{
		"lim": " 25 ",
		"bad": "many",
	}})

	n, err := s.GetInt(ctx, "lim", nil, 10)
	assert.NoError(t, err)
	assert.Equal(t, 25, n)

	n, err = s.GetInt(ctx, "bad", nil, 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, n)
}
