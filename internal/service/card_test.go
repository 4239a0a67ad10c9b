package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline/lifeline-api/internal/input"
	"github.com/lifeline/lifeline-api/internal/mocks"
	"github.com/lifeline/lifeline-api/internal/model"
)

func testIdentity() model.Identity {
	return model.Identity{ID: model.NewID(), Phone: "555", FirstName: "Amina", LastName: "Otieno"}
}

func newTestCardService() *CardService {
	svc := NewCardService(mocks.NewCardStore())
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func cardBody() input.Body {
	return input.Body{
		"name":        "Need O- blood",
		"location":    "Nairobi West",
		"blood_type":  "o-",
		"Phone":       "0700 000 111",
		"description": "  urgent  ",
	}
}

func TestCardCreate(t *testing.T) {
	svc := newTestCardService()
	caller := testIdentity()

	card, err := svc.Create(context.Background(), caller, cardBody())
	require.NoError(t, err)

	assert.Equal(t, caller.ID, card.Owner)
	assert.Equal(t, "O-", card.BloodType)
	assert.Equal(t, "active", card.Status)
	assert.Equal(t, "urgent", card.Description)
	assert.Equal(t, "0700 000 111", card.MobilePhone)
}

func TestCardCreate_Validation(t *testing.T) {
	svc := newTestCardService()

	_, err := svc.Create(context.Background(), testIdentity(), input.Body{"location": "Nairobi"})
	assert.EqualError(t, err, "Missing required fields: name, bloodType, mobilePhone")

	body := cardBody()
	body["blood_type"] = "Z+"
	_, err = svc.Create(context.Background(), testIdentity(), body)
	assert.ErrorIs(t, err, input.ErrInvalidBloodType)

	body = cardBody()
	body["status"] = "archived"
	_, err = svc.Create(context.Background(), testIdentity(), body)
	assert.ErrorIs(t, err, input.ErrInvalidStatus)
}

func TestCardList_FiltersAndOrder(t *testing.T) {
	svc := newTestCardService()
	ctx := context.Background()
	caller := testIdentity()

	first, err := svc.Create(ctx, caller, cardBody())
	require.NoError(t, err)

	body := cardBody()
	body["location"] = "Mombasa"
	body["status"] = "COMPLETED"
	second, err := svc.Create(ctx, caller, body)
	require.NoError(t, err)

	all, err := svc.List(ctx, model.CardFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	byLocation, err := svc.List(ctx, model.CardFilter{Location: "nairobi", BloodType: "o-"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, first.ID, byLocation[0].ID)

	byStatus, err := svc.List(ctx, model.CardFilter{Status: "Completed"})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, second.ID, byStatus[0].ID)
}

func TestCardGet(t *testing.T) {
	svc := newTestCardService()

	_, err := svc.Get(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidCardID)

	_, err = svc.Get(context.Background(), model.NewID().Hex())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCardUpdate(t *testing.T) {
	svc := newTestCardService()
	ctx := context.Background()
	owner := testIdentity()

	card, err := svc.Create(ctx, owner, cardBody())
	require.NoError(t, err)

	t.Run("owner updates status", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, card.ID.Hex(), input.Body{"status": "Inactive"})
		require.NoError(t, err)
		assert.Equal(t, "inactive", updated.Status)
		assert.Equal(t, card.Name, updated.Name)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.Update(ctx, testIdentity(), card.ID.Hex(), input.Body{"name": "mine now"})
		assert.ErrorIs(t, err, ErrCardUpdateDenied)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("invalid blood type", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, card.ID.Hex(), input.Body{"bloodType": "X"})
		assert.ErrorIs(t, err, input.ErrInvalidBloodType)
	})

	t.Run("blank required fields are rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, card.ID.Hex(), input.Body{"name": "   ", "mobilePhone": ""})
		assert.EqualError(t, err, "Missing required fields: name, mobilePhone")
		assert.Equal(t, KindValidation, KindOf(err))

		got, err := svc.Get(ctx, card.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, card.Name, got.Name)
		assert.Equal(t, card.MobilePhone, got.MobilePhone)
	})

	t.Run("blank description is allowed", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, card.ID.Hex(), input.Body{"description": ""})
		require.NoError(t, err)
		assert.Empty(t, updated.Description)
	})

	t.Run("empty body returns card unchanged", func(t *testing.T) {
		got, err := svc.Update(ctx, owner, card.ID.Hex(), input.Body{})
		require.NoError(t, err)
		assert.Equal(t, card.ID, got.ID)
	})

	t.Run("unknown card", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, model.NewID().Hex(), input.Body{"name": "x"})
		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}

func TestCardDelete(t *testing.T) {
	svc := newTestCardService()
	ctx := context.Background()
	owner := testIdentity()

	card, err := svc.Create(ctx, owner, cardBody())
	require.NoError(t, err)

	_, err = svc.Delete(ctx, testIdentity(), card.ID.Hex())
	assert.ErrorIs(t, err, ErrCardDeleteDenied)

	deleted, err := svc.Delete(ctx, owner, card.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, card.ID, deleted.ID)

	_, err = svc.Get(ctx, card.ID.Hex())
	assert.ErrorIs(t, err, ErrCardNotFound)
}
