package service

import (
	mongoRepo "soundgate/internal/database/mongodb/repository"
	redisRepo "soundgate/internal/database/redis/repository"
	"soundgate/internal/service/credits"
	"soundgate/internal/service/session"
	"soundgate/internal/service/suno"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHealthService,
	suno.NewClient,
	wire.Bind(new(credits.Fetcher), new(*suno.Client)),
	session.NewService,
	wire.Bind(new(session.Resolver), new(*session.Service)),
	wire.Bind(new(session.UserStore), new(*mongoRepo.UserRepository)),
	wire.Bind(new(session.RevocationStore), new(*redisRepo.SessionRepository)),
)
