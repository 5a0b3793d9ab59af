package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"registry-service/internal/config"
	"registry-service/internal/editor"
	"registry-service/internal/metrics"
	"registry-service/internal/query"
	"registry-service/internal/repository"
	"registry-service/internal/services"
	"registry-service/internal/snapshot"
	"registry-service/internal/storage"
)

// App is the composition root: the configured stores, the entity cache and
// the editor session, wired once at startup.
type App struct {
	Config     *config.Config
	Designers  *services.DesignerService
	Controller *editor.SceneController
	AutoSaver  *editor.AutoSaver
	Cache      *query.Cache
	Snapshots  *snapshot.Store

	logger *zap.Logger
}

// New builds the application. The backend is selected here, at composition
// time; everything downstream sees only the store interfaces.
func New(cfg *config.Config, logger *zap.Logger, registry prometheus.Registerer) (*App, error) {
	storeMetrics := metrics.NewStoreMetrics(registry)
	cacheMetrics := metrics.NewCacheMetrics(registry)
	editorMetrics := metrics.NewEditorMetrics(registry)

	designerStore, objectStore, err := buildStores(cfg, logger)
	if err != nil {
		return nil, err
	}
	designerStore = repository.NewInstrumentedDesignerStore(designerStore, storeMetrics, cfg.Backend)
	objectStore = repository.NewInstrumentedObjectStore(objectStore, storeMetrics, cfg.Backend)

	cache := query.NewCache(designerStore, objectStore, cacheMetrics, logger)
	state := editor.NewState()

	a := &App{
		Config:     cfg,
		Designers:  services.NewDesignerService(designerStore, cache, logger),
		Controller: editor.NewSceneController(state, objectStore, cache, editorMetrics, logger),
		AutoSaver:  editor.NewAutoSaver(objectStore, cache, cfg.AutosaveDebounce, editorMetrics, logger),
		Cache:      cache,
		logger:     logger,
	}

	if cfg.SnapshotsEnabled() {
		minioClient, err := storage.NewMinioClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		a.Snapshots = snapshot.NewStore(minioClient, cfg.MinioBucket, logger)
	}
	return a, nil
}

func buildStores(cfg *config.Config, logger *zap.Logger) (repository.DesignerStore, repository.ObjectStore, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		kv, err := storage.OpenKVStore(cfg.LocalDBPath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewLocalDesignerRepository(kv), repository.NewLocalObjectRepository(kv), nil
	default:
		client := storage.NewDocumentClient(cfg.RemoteEndpoint, cfg.RemoteProjectID, cfg.RemoteAPIKey, cfg.RemoteDatabaseID, logger)
		designers := repository.NewRemoteDesignerRepository(client, cfg.DesignersCollectionID, cfg.ObjectsCollectionID, cfg.ObjectPageLimit, logger)
		objects := repository.NewRemoteObjectRepository(client, cfg.ObjectsCollectionID, logger)
		return designers, objects, nil
	}
}

// Warmup primes the entity cache and verifies the backend is reachable.
func (a *App) Warmup(ctx context.Context) error {
	designers, err := a.Cache.Designers(ctx)
	if err != nil {
		return err
	}
	objects, err := a.Cache.Objects(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("registry warmed up",
		zap.String("backend", a.Config.Backend),
		zap.Int("designers", len(designers)),
		zap.Int("objects", len(objects)),
	)
	return nil
}

// ExportSnapshot writes a point-in-time scene export to object storage.
func (a *App) ExportSnapshot(ctx context.Context) (string, error) {
	designers, err := a.Cache.Designers(ctx)
	if err != nil {
		return "", err
	}
	objects, err := a.Cache.Objects(ctx)
	if err != nil {
		return "", err
	}
	return a.Snapshots.Export(ctx, designers, objects)
}

// RunSnapshotLoop exports a scene snapshot on the configured interval until
// ctx is canceled. It returns immediately when snapshots are disabled.
func (a *App) RunSnapshotLoop(ctx context.Context) {
	if a.Snapshots == nil || a.Config.SnapshotInterval <= 0 {
		return
	}
	ticker := time.NewTicker(a.Config.SnapshotInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.ExportSnapshot(ctx); err != nil {
				a.logger.Error("scheduled snapshot failed", zap.Error(err))
			}
		}
	}
}
