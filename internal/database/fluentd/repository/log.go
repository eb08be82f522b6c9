package repository

import (
	"context"
	"encoding/json"
	"time"

	"soundgate/config"
	"soundgate/internal/core"
	"soundgate/internal/database/client"
	"soundgate/internal/database/fluentd/model"
)

const LogTimeLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository 統一負責發送 Request/Response/CreditsFetch Log 到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	version       string
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, version: version}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if repository == nil {
		return nil
	}
	if req.LoggedAt == "" {
		req.LoggedAt = time.Now().UTC().Format(LogTimeLayout)
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if repository == nil {
		return nil
	}
	if resp.LoggedAt == "" {
		resp.LoggedAt = time.Now().UTC().Format(LogTimeLayout)
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

func (repository *LogRepository) LogCreditsFetch(ctx context.Context, fetch model.CreditsFetchLog) error {
	if repository == nil {
		return nil
	}
	if fetch.LoggedAt == "" {
		fetch.LoggedAt = time.Now().UTC().Format(LogTimeLayout)
	}
	if fetch.Version == "" {
		fetch.Version = repository.version
	}
	return repository.post(ctx, core.FluentdCreditsFetch, fetch)
}

// fluent-logger 以 msgpack 編碼 map 最穩定，先轉成 map[string]any
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	if repository.fluentdClient == nil {
		return nil
	}
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := json.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(tag), fluentdMessage)
}
