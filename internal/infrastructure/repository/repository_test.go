package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/infrastructure/repository/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testShop = "gift-shop.myshopify.com"

// toDoc renders v the way the server would return it
func toDoc(t *testing.T, v interface{}) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	if err != nil {
		t.Fatalf("bson.Marshal() error = %v", err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("bson.Unmarshal() error = %v", err)
	}
	return doc
}

func TestShopConfigurationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	stored := domain.NewDefaultShopConfiguration(testShop)
	stored.PopupTitle = "Leave a note"
	storedDoc := entity.MongoShopConfigurationDocFromDomain(stored)
	storedDoc.ID = primitive.NewObjectID()

	mt.Run("get existing", func(mt *mtest.T) {
		repo := NewShopConfigurationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.shop_configurations", mtest.FirstBatch, toDoc(mt.T, storedDoc)))

		got, err := repo.GetByShop(ctx, testShop)
		if err != nil {
			mt.Fatalf("GetByShop() error = %v", err)
		}
		if got == nil || got.Shop != testShop || got.PopupTitle != "Leave a note" || got.ID != storedDoc.ID.Hex() {
			mt.Errorf("GetByShop() = %+v", got)
		}
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewShopConfigurationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.shop_configurations", mtest.FirstBatch))

		got, err := repo.GetByShop(ctx, testShop)
		if err != nil || got != nil {
			mt.Errorf("GetByShop() = %v, %v; want nil, nil", got, err)
		}
	})

	mt.Run("create", func(mt *mtest.T) {
		repo := NewShopConfigurationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		config := domain.NewDefaultShopConfiguration(testShop)
		config.CreatedAt = time.Time{}
		if err := repo.Create(ctx, config); err != nil {
			mt.Fatalf("Create() error = %v", err)
		}
		if config.ID == "" || config.CreatedAt.IsZero() || config.UpdatedAt.IsZero() {
			mt.Errorf("Create() left config = %+v", config)
		}
		if evt := mt.GetStartedEvent(); evt == nil || evt.CommandName != "insert" {
			mt.Errorf("started event = %v, want insert", evt)
		}
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewShopConfigurationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: shop_configurations index: shop_1",
		}))

		err := repo.Create(ctx, domain.NewDefaultShopConfiguration(testShop))
		if !errors.Is(err, domain.ErrConfigurationExists) {
			mt.Errorf("Create() error = %v, want ErrConfigurationExists", err)
		}
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := NewShopConfigurationRepository(mt.DB)
		updated := *storedDoc
		updated.PopupTitle = "Patched"
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: toDoc(mt.T, &updated)}})

		title := "Patched"
		got, err := repo.Update(ctx, testShop, &domain.ShopConfigurationPatch{PopupTitle: &title})
		if err != nil {
			mt.Fatalf("Update() error = %v", err)
		}
		if got == nil || got.PopupTitle != "Patched" {
			mt.Errorf("Update() = %+v", got)
		}
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewShopConfigurationRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		title := "Patched"
		got, err := repo.Update(ctx, testShop, &domain.ShopConfigurationPatch{PopupTitle: &title})
		if err != nil || got != nil {
			mt.Errorf("Update() = %v, %v; want nil, nil", got, err)
		}
	})

	mt.Run("server error", func(mt *mtest.T) {
		repo := NewShopConfigurationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "not authorized",
			Name:    "Unauthorized",
		}))

		if _, err := repo.GetByShop(ctx, testShop); err == nil {
			mt.Error("GetByShop() error = nil")
		}
	})
}

func TestSessionRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("save upserts by id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := repo.SaveSession(ctx, &domain.Session{
			ID:          domain.OfflineSessionID(testShop),
			Shop:        testShop,
			Scope:       "read_products",
			AccessToken: "shpat_offline",
		})
		if err != nil {
			mt.Fatalf("SaveSession() error = %v", err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "update" {
			mt.Fatalf("started event = %v, want update", evt)
		}
		if upsert, ok := evt.Command.Lookup("updates", "0", "upsert").BooleanOK(); !ok || !upsert {
			mt.Error("update was not an upsert")
		}
		if id, _ := evt.Command.Lookup("updates", "0", "q", "id").StringValueOK(); id != "offline_"+testShop {
			mt.Errorf("filter id = %q", id)
		}
	})

	mt.Run("get offline session", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		doc := entity.MongoSessionDocFromDomain(&domain.Session{
			ID:          domain.OfflineSessionID(testShop),
			Shop:        testShop,
			AccessToken: "shpat_offline",
		})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.shopify_sessions", mtest.FirstBatch, toDoc(mt.T, doc)))

		got, err := repo.GetOfflineSession(ctx, testShop)
		if err != nil {
			mt.Fatalf("GetOfflineSession() error = %v", err)
		}
		if got == nil || got.AccessToken != "shpat_offline" || got.IsOnline {
			mt.Errorf("GetOfflineSession() = %+v", got)
		}
	})

	mt.Run("no offline session", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.shopify_sessions", mtest.FirstBatch))

		got, err := repo.GetOfflineSession(ctx, testShop)
		if err != nil || got != nil {
			mt.Errorf("GetOfflineSession() = %v, %v; want nil, nil", got, err)
		}
	})

	mt.Run("delete by shop", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		n, err := repo.DeleteByShop(ctx, testShop)
		if err != nil || n != 2 {
			mt.Errorf("DeleteByShop() = %d, %v; want 2", n, err)
		}
	})

	mt.Run("log webhook", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		event := &domain.WebhookEvent{WebhookID: "wh-1", Topic: "app/uninstalled", Shop: testShop}
		if err := repo.LogWebhook(ctx, event); err != nil {
			mt.Fatalf("LogWebhook() error = %v", err)
		}
		if event.ID == "" {
			mt.Error("LogWebhook() did not assign an id")
		}
	})
}

func TestThemeOperationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	mt.Run("list newest first", func(mt *mtest.T) {
		repo := NewThemeOperationRepository(mt.DB)
		newer := entity.MongoThemeOperationDocFromDomain(&domain.ThemeOperation{
			ID: "op-2", Shop: testShop, Kind: domain.ThemeOperationRemove, Success: true, CreatedAt: now,
		})
		older := entity.MongoThemeOperationDocFromDomain(&domain.ThemeOperation{
			ID: "op-1", Shop: testShop, Kind: domain.ThemeOperationInject, Success: true, CreatedAt: now.Add(-time.Hour),
		})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.theme_operations", mtest.FirstBatch, toDoc(mt.T, newer), toDoc(mt.T, older)))

		ops, err := repo.ListByShop(ctx, testShop, 10)
		if err != nil {
			mt.Fatalf("ListByShop() error = %v", err)
		}
		if len(ops) != 2 || ops[0].ID != "op-2" || ops[1].ID != "op-1" {
			mt.Fatalf("ListByShop() = %+v", ops)
		}
		if !ops[0].CreatedAt.Equal(now) {
			mt.Errorf("CreatedAt = %v, want %v", ops[0].CreatedAt, now)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "find" {
			mt.Fatalf("started event = %v, want find", evt)
		}
		if limit, ok := evt.Command.Lookup("limit").AsInt64OK(); !ok || limit != 10 {
			mt.Errorf("limit = %d, want 10", limit)
		}
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := NewThemeOperationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.theme_operations", mtest.FirstBatch))

		ops, err := repo.ListByShop(ctx, testShop, 0)
		if err != nil || ops == nil || len(ops) != 0 {
			mt.Errorf("ListByShop() = %v, %v; want empty slice", ops, err)
		}
	})

	mt.Run("save stamps creation time", func(mt *mtest.T) {
		repo := NewThemeOperationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		op := &domain.ThemeOperation{ID: "op-3", Shop: testShop, Kind: domain.ThemeOperationInject}
		if err := repo.Save(ctx, op); err != nil {
			mt.Fatalf("Save() error = %v", err)
		}
		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "insert" {
			mt.Fatalf("started event = %v, want insert", evt)
		}
		if created, ok := evt.Command.Lookup("documents", "0", "createdAt").TimeOK(); !ok || created.IsZero() {
			mt.Error("saved document has no createdAt")
		}
	})
}
