package container

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/agrosphere-api/config"
	"github.com/oksasatya/agrosphere-api/internal/application"
	repo "github.com/oksasatya/agrosphere-api/internal/domain/repository"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/memory"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/realtime"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/search"
	"github.com/oksasatya/agrosphere-api/pkg/ai"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
)

// Collection keys served by the generic collection handlers.
const (
	Videos         = mongodb.VideosCollection
	Forum          = mongodb.ForumCollection
	Trainers       = mongodb.TrainersCollection
	SuccessStories = mongodb.SuccessStoryCollection
	Products       = mongodb.ProductsCollection
)

// searchable collections are mirrored into Elasticsearch.
var searchable = map[string]bool{Forum: true, Products: true}

// Stores are the repositories the services run on.
type Stores struct {
	Users     repo.UserRepository
	Tasks     repo.TaskRepository
	Documents func(collection string) repo.DocumentRepository
}

// MemoryStores returns process-local repositories.
func MemoryStores() Stores {
	return Stores{
		Users:     memory.NewUserRepository(),
		Tasks:     memory.NewTaskRepository(),
		Documents: func(string) repo.DocumentRepository { return memory.NewDocumentRepository() },
	}
}

// MongoStores returns repositories backed by db.
func MongoStores(db *mongo.Database) Stores {
	return Stores{
		Users:     mongodb.NewUserRepository(db),
		Tasks:     mongodb.NewTaskRepository(db),
		Documents: func(name string) repo.DocumentRepository { return mongodb.NewDocumentRepository(db, name) },
	}
}

// Infra holds the optional external clients. Any of them may be nil.
type Infra struct {
	Redis     *redis.Client
	ES        *elasticsearch.Client
	GCS       *storage.Client
	Publisher *helpers.RabbitPublisher
	Model     ai.TextGenerator
}

// Container owns every long-lived component of the API process.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Hub     *realtime.Hub
	Infra

	Users       *application.UserService
	Tasks       *application.TaskService
	Recovery    *application.RecoveryService
	Assistant   *application.AssistantService
	Media       *application.MediaService
	Collections map[string]*application.CollectionService

	mongo *mongo.Client
}

// New wires services over the given stores and clients.
func New(cfg *config.Config, logger *logrus.Logger, stores Stores, infra Infra) *Container {
	c := &Container{
		Config:      cfg,
		Logger:      logger,
		JWT:         helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Cookies:     helpers.NewCookie(cfg.CookieDomain, cfg.IsProduction()),
		Hub:         realtime.NewHub(logger, 16),
		Infra:       infra,
		Collections: map[string]*application.CollectionService{},
	}

	c.Users = application.NewUserService(stores.Users, logger)
	c.Tasks = application.NewTaskService(stores.Tasks, c.Hub, logger)

	var pub helpers.JSONPublisher
	if infra.Publisher != nil {
		pub = infra.Publisher
	}
	c.Recovery = application.NewRecoveryService(cfg, infra.Redis, stores.Users, pub, logger)
	c.Assistant = application.NewAssistantService(infra.Model, logger)

	for _, name := range []string{Videos, Forum, Trainers, SuccessStories, Products} {
		var index application.SearchIndex
		if infra.ES != nil && searchable[name] {
			index = search.NewIndex(infra.ES, cfg.ESIndexPrefix+name)
		}
		c.Collections[name] = application.NewCollectionService(name, stores.Documents(name), index, logger)
	}

	var uploader application.ObjectUploader
	if infra.GCS != nil && cfg.GCSBucket != "" {
		uploader = &application.GCSUploader{Client: infra.GCS, Bucket: cfg.GCSBucket}
	}
	c.Media = application.NewMediaService(uploader, c.Collections[Videos])
	return c
}

// Build connects to the configured backends and wires the container.
// The document store is required; every other backend is optional and
// disabled with a warning when it cannot be reached.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	var (
		stores Stores
		client *mongo.Client
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		stores = MemoryStores()
	case config.StoreMongo:
		var err error
		client, err = mongodb.NewClient(ctx, cfg.MongoURI, cfg.MongoTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.MongoDB)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		stores = MongoStores(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	c := New(cfg, logger, stores, buildInfra(ctx, cfg, logger))
	c.mongo = client
	return c, nil
}

func buildInfra(ctx context.Context, cfg *config.Config, logger *logrus.Logger) Infra {
	var infra Infra

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unavailable; rate limiting and password recovery disabled")
			_ = rdb.Close()
		} else {
			infra.Redis = rdb
		}
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	switch {
	case err != nil:
		logger.WithError(err).Warn("elasticsearch client init failed; search disabled")
	case es != nil:
		if err := helpers.PingES(ctx, es); err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; search disabled")
		} else {
			infra.ES = es
		}
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs client init failed; video upload disabled")
		} else {
			infra.GCS = gcs
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; emails will not be queued")
		} else {
			infra.Publisher = pub
		}
	}

	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			logger.WithError(err).Warn("gemini client init failed; assistant disabled")
		} else {
			infra.Model = ai.NewGeminiGenerator(client, cfg.GeminiModel)
		}
	}
	return infra
}

// Close releases every client the container opened.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.Publisher != nil {
		errs = append(errs, c.Publisher.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.GCS != nil {
		errs = append(errs, c.GCS.Close())
	}
	if c.mongo != nil {
		errs = append(errs, c.mongo.Disconnect(ctx))
	}
	return errors.Join(errs...)
}
