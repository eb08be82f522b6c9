package database

import (
	client "soundgate/internal/database/client"
	fluentdRepo "soundgate/internal/database/fluentd/repository"
	mongoRepo "soundgate/internal/database/mongodb/repository"
	redisRepo "soundgate/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 與 repository 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
