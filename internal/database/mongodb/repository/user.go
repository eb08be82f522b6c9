package repository

import (
	"context"
	"time"

	"soundgate/internal/core"
	client "soundgate/internal/database/client"
	"soundgate/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(logger *zap.Logger, mongoClient *client.MongoClient) *UserRepository {
	repository := &UserRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionUsers)),
	}
	// 啟動時建立常用索引（冪等、存在即跳過）
	if err := repository.ensureIndexes(context.Background()); err != nil {
		logger.Warn("failed to ensure user indexes", zap.Error(err))
	}
	return repository
}

func (repository *UserRepository) ensureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{ // 依使用者狀態查詢
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
		{ // 外部登入平台 ID
			Keys:    bson.D{{Key: "externalID", Value: 1}},
			Options: options.Index().SetName("idx_externalID").SetSparse(true),
		},
	}
	_, err := repository.collection.Indexes().CreateMany(ctx, indexModels)
	return err
}

// GetByID：單文件讀取；找不到時回傳 mongo.ErrNoDocuments
func (repository *UserRepository) GetByID(
	ctx context.Context,
	userID primitive.ObjectID,
) (*model.User, error) {
	var user model.User
	if err := repository.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastSeen：單文件部分更新
func (repository *UserRepository) UpdateLastSeen(
	ctx context.Context,
	userID primitive.ObjectID,
	lastSeen time.Time,
) (int64, error) {
	update := bson.M{"$set": bson.M{"lastSeen": lastSeen.UTC()}}
	result, err := repository.collection.UpdateOne(ctx, bson.M{"_id": userID}, withUpdatedAt(update))
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}
