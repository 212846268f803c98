package store

import (
	"context"
	"fmt"

	"github.com/matzehuels/gridboard/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Options selects and configures a backend. It is decoded from the [store]
// section of the config file.
type Options struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	// Prefix scopes Redis keys, see [ScopedKeyer].
	Prefix string `toml:"prefix"`
}

// Backends lists the names accepted by [Open].
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}
}

// Open creates the backend named by opts.Backend (default "file") and wraps
// it with [Instrumented].
func Open(ctx context.Context, opts Options) (Store, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendFile
	}

	var (
		s   Store
		err error
	)
	switch backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile:
		s, err = NewFileStore(opts.Dir)
	case BackendRedis:
		var keyer Keyer
		if opts.Prefix != "" {
			keyer = NewScopedKeyer(nil, opts.Prefix)
		}
		s, err = NewRedisStore(ctx, RedisConfig{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Keyer:    keyer,
		})
	case BackendMongo:
		s, err = NewMongoStore(ctx, MongoConfig{URI: opts.MongoURI, Database: opts.MongoDatabase})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (want one of %v)", backend, Backends())
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open %s store", backend)
	}
	return NewInstrumented(s, backend), nil
}

// String returns a short description of the backend location.
func (o Options) String() string {
	switch o.Backend {
	case BackendMemory:
		return "memory"
	case BackendRedis:
		return fmt.Sprintf("redis://%s/%d", o.RedisAddr, o.RedisDB)
	case BackendMongo:
		db := o.MongoDatabase
		if db == "" {
			db = DefaultMongoDatabase
		}
		return "mongo:" + db
	default:
		if o.Dir == "" {
			if dir, err := DefaultDir(); err == nil {
				return dir
			}
		}
		return o.Dir
	}
}
