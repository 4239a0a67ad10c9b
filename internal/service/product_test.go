package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline/lifeline-api/internal/input"
	"github.com/lifeline/lifeline-api/internal/mocks"
	"github.com/lifeline/lifeline-api/internal/model"
)

func TestProductLifecycle(t *testing.T) {
	svc := NewProductService(mocks.NewProductStore())
	ctx := context.Background()

	p, err := svc.Create(ctx, input.Body{"name": "Cooler box", "price": json.Number("49.5")})
	require.NoError(t, err)
	assert.Equal(t, 49.5, p.Price)

	free, err := svc.Create(ctx, input.Body{"name": "Sticker", "price": "0"})
	require.NoError(t, err)
	assert.Zero(t, free.Price)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	updated, err := svc.Update(ctx, p.ID.Hex(), input.Body{"price": 55.0})
	require.NoError(t, err)
	assert.Equal(t, 55.0, updated.Price)
	assert.Equal(t, "Cooler box", updated.Name)

	deleted, err := svc.Delete(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)

	_, err = svc.Get(ctx, p.ID.Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductValidation(t *testing.T) {
	svc := NewProductService(mocks.NewProductStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, input.Body{})
	assert.EqualError(t, err, "Missing required fields: name, price")

	_, err = svc.Create(ctx, input.Body{"name": "x", "price": json.Number("-1")})
	assert.ErrorIs(t, err, input.ErrInvalidPrice)

	_, err = svc.Update(ctx, model.NewID().Hex(), input.Body{"price": "-3"})
	assert.ErrorIs(t, err, input.ErrInvalidPrice)

	for _, bad := range []string{"NaN", "Inf", "+Inf"} {
		_, err = svc.Create(ctx, input.Body{"name": "x", "price": bad})
		assert.ErrorIs(t, err, input.ErrInvalidPrice, bad)
	}

	p, err := svc.Create(ctx, input.Body{"name": "Kit", "price": "5"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.ID.Hex(), input.Body{"name": "  "})
	assert.EqualError(t, err, "Missing required fields: name")

	_, err = svc.Update(ctx, p.ID.Hex(), input.Body{"price": "NaN"})
	assert.ErrorIs(t, err, input.ErrInvalidPrice)

	got, err := svc.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Kit", got.Name)
	assert.Equal(t, 5.0, got.Price)

	_, err = svc.Get(ctx, "zzz")
	assert.ErrorIs(t, err, ErrInvalidProductID)

	_, err = svc.Delete(ctx, model.NewID().Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)
}
