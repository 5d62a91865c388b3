package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func ns(mt *mtest.T, col string) string {
	return mt.DB.Name() + "." + col
}

func shipmentDoc(id, code string, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "tracking_code", Value: code},
		{Key: "sender", Value: bson.D{{Key: "name", Value: "Ada Obi"}}},
		{Key: "status", Value: "in_transit"},
		{Key: "held_by_customs", Value: true},
		{Key: "currency", Value: "USD"},
		{Key: "created_at", Value: created},
		{Key: "updated_at", Value: created},
	}
}

func TestShipmentRepository(t *testing.T) {
	mt := newMock(t)
	created := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewShipmentRepository(mt.DB)

		s := &domain.Shipment{TrackingCode: "SX00000001"}
		require.NoError(mt, repo.Create(context.Background(), s))
		assert.True(mt, primitive.IsValidObjectID(s.ID))
	})

	mt.Run("create duplicate code", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))
		repo := NewShipmentRepository(mt.DB)

		s := &domain.Shipment{TrackingCode: "SX00000001"}
		assert.ErrorIs(mt, repo.Create(context.Background(), s), domain.ErrDuplicateTrackingCode)
		assert.Empty(mt, s.ID)
	})

	mt.Run("find by tracking code", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, collectionShipments), mtest.FirstBatch,
			shipmentDoc("abc", "SX00000002", created)))
		repo := NewShipmentRepository(mt.DB)

		s, err := repo.FindByTrackingCode(context.Background(), "SX00000002")
		require.NoError(mt, err)
		assert.Equal(mt, "abc", s.ID)
		assert.Equal(mt, domain.StatusInTransit, s.Status)
		assert.Equal(mt, "Ada Obi", s.Sender.Name)
		assert.True(mt, s.HeldByCustoms)
		assert.True(mt, created.Equal(s.CreatedAt))
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, collectionShipments), mtest.FirstBatch))
		repo := NewShipmentRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), "nope")
		assert.ErrorIs(mt, err, domain.ErrShipmentNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, collectionShipments), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(7)}}),
			mtest.CreateCursorResponse(0, ns(mt, collectionShipments), mtest.FirstBatch,
				shipmentDoc("b", "SX0000000B", created.Add(time.Hour)),
				shipmentDoc("a", "SX0000000A", created)),
		)
		repo := NewShipmentRepository(mt.DB)

		items, total, err := repo.List(context.Background(), ports.ListShipmentsFilter{Page: 1, Limit: 2})
		require.NoError(mt, err)
		assert.EqualValues(mt, 7, total)
		require.Len(mt, items, 2)
		assert.Equal(mt, "b", items[0].ID)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		repo := NewShipmentRepository(mt.DB)

		err := repo.Update(context.Background(), &domain.Shipment{ID: "gone"})
		assert.ErrorIs(mt, err, domain.ErrShipmentNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewShipmentRepository(mt.DB)

		assert.ErrorIs(mt, repo.Delete(context.Background(), "gone"), domain.ErrShipmentNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewShipmentRepository(mt.DB)

		assert.NoError(mt, repo.Delete(context.Background(), "abc"))
	})
}

func TestListFilter(t *testing.T) {
	f := listFilter(ports.ListShipmentsFilter{})
	assert.Empty(t, f)

	f = listFilter(ports.ListShipmentsFilter{Status: "delivered", Search: "a.b"})
	assert.Equal(t, "delivered", f["status"])

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	re := or[0].(bson.M)["tracking_code"].(primitive.Regex)
	assert.Equal(t, `a\.b`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestTimelineRepository(t *testing.T) {
	mt := newMock(t)
	ts := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

	mt.Run("append", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewTimelineRepository(mt.DB)

		e := &domain.TimelineEvent{ShipmentID: "abc", Status: domain.StatusPickedUp, Timestamp: ts}
		require.NoError(mt, repo.Append(context.Background(), e))
		assert.NotEmpty(mt, e.ID)
	})

	mt.Run("list by shipment", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, collectionTimeline), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "e2"},
				{Key: "shipment_id", Value: "abc"},
				{Key: "status", Value: "picked_up"},
				{Key: "location", Value: "Lagos"},
				{Key: "timestamp", Value: ts},
			}))
		repo := NewTimelineRepository(mt.DB)

		events, err := repo.ListByShipment(context.Background(), "abc", 50)
		require.NoError(mt, err)
		require.Len(mt, events, 1)
		assert.Equal(mt, "Lagos", events[0].Location)
		assert.Equal(mt, domain.StatusPickedUp, events[0].Status)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, collectionTimeline), mtest.FirstBatch))
		repo := NewTimelineRepository(mt.DB)

		events, err := repo.ListByShipment(context.Background(), "abc", 0)
		require.NoError(mt, err)
		assert.NotNil(mt, events)
		assert.Empty(mt, events)
	})
}

func TestAuthRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))
		repo := NewAuthRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Email: "a@example.com"})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, authCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "root@example.com"},
			{Key: "password_hash", Value: "hash"},
			{Key: "is_admin", Value: true},
			{Key: "created_at", Value: int64(1767225600)},
		}))
		repo := NewAuthRepository(mt.DB)

		u, err := repo.FindByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), u.ID)
		assert.True(mt, u.IsAdmin)
		assert.Equal(mt, 2026, u.CreatedAt.Year())
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewAuthRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
		assert.ErrorIs(mt, repo.SetAdmin(context.Background(), "zzz", true), domain.ErrUserNotFound)
	})

	mt.Run("set admin on missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		repo := NewAuthRepository(mt.DB)

		err := repo.SetAdmin(context.Background(), primitive.NewObjectID().Hex(), true)
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}
