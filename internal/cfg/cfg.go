package cfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Minio *MinIOCfg
	Http  *HTTPConfig
	Grpc  *GRPCConfig
	Db    *PGDBCfg
	Redis *RedisCfg
	Kafka *KafkaCfg
	Shop  *ShopCfg
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	OutboxBatchSize   int
}

type MinIOCfg struct {
	MinioEndpoint     string        // Адрес конечной точки Minio
	BucketName        string        // Бакет с фотографиями продуктов
	MinioRootUser     string        // Имя пользователя для доступа к Minio
	MinioRootPassword string        // Пароль для доступа к Minio
	MinioUseSSL       bool          // Использовать ли TLS при подключении
	PresignTTL        time.Duration // Время жизни presigned-ссылки на фото
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	AdminToken   string // Пустой токен отключает проверку для /admin
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
	MaxConns       int32
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
	CartTTL     time.Duration
	Namespace   string // Префикс ключей корзин и кэша продуктов
}

type ShopCfg struct {
	ContactNumber string         // Номер WhatsApp, на который уходит заказ
	Location      *time.Location // Часовой пояс, в котором считается расписание
}

// Load читает конфигурацию из окружения. Все некорректные переменные
// попадают в одну ошибку, чтобы их можно было исправить за один запуск.
func Load(log logger.Logger) (*Config, error) {
	env := &envReader{}

	c := &Config{
		Minio: loadMinIOCfg(env),
		Http:  loadHTTPConfig(env),
		Grpc:  loadGRPCConfig(),
		Db:    loadPGDBCfg(env),
		Redis: loadRedisCfg(env),
		Kafka: loadKafkaCfg(env),
		Shop:  loadShopCfg(env),
	}

	if err := env.err(); err != nil {
		log.Errorf(err, "invalid configuration")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c, nil
}

func loadKafkaCfg(env *envReader) *KafkaCfg {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "orders.submitted"
		defaultOutboxBatchSize   = 10
	)

	return &KafkaCfg{
		Brokers:           env.list("KAFKA_BROKERS"),
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        env.positive("KAFKA_PARTITIONS", defaultPartitions),
		ReplicationFactor: env.positive("REPLICATION_FACTOR", defaultReplicationFactor),
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		OutboxBatchSize:   env.positive("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize),
	}
}

func loadMinIOCfg(env *envReader) *MinIOCfg {
	const (
		defaultEndpoint   = "minio:9000"
		defaultBucket     = "product-photos"
		defaultPresignTTL = 15 * time.Minute
	)

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       env.boolean("MINIO_USE_SSL", false),
		PresignTTL:        env.duration("MINIO_PRESIGN_TTL", defaultPresignTTL),
	}
}

func loadHTTPConfig(env *envReader) *HTTPConfig {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	return &HTTPConfig{
		Port:         getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  env.duration("HTTP_READ_TIMEOUT", defaultReadTimeout),
		WriteTimeout: env.duration("HTTP_WRITE_TIMEOUT", defaultWriteTimeout),
		IdleTimeout:  env.duration("KEEP_ALIVE", defaultIdleTimeout),
		AdminToken:   getEnv("ADMIN_TOKEN"),
	}
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(env *envReader) *PGDBCfg {
	const (
		defaultHost           = "localhost"
		defaultPort           = "5432"
		defaultSSLMode        = "disable"
		defaultMigrationsPath = "file://db/migrations"
		defaultMaxConns       = 10
	)

	return &PGDBCfg{
		Host:           getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:           getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:           env.required("POSTGRES_USER"),
		Password:       env.required("POSTGRES_PASSWORD"),
		DBName:         env.required("POSTGRES_DB"),
		SSLMode:        getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", defaultMigrationsPath),
		MaxConns:       int32(env.positive("POSTGRES_MAX_CONNS", defaultMaxConns)),
	}
}

func loadRedisCfg(env *envReader) *RedisCfg {
	const (
		defaultAddr         = "localhost:6379"
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProductTTL   = 3 * time.Minute
		defaultCartTTL      = 30 * 24 * time.Hour
		defaultNamespace    = "mediterranea-storage"
	)

	// go-redis принимает один таймаут на чтение и запись, берём больший
	timeout := max(
		env.duration("READ_TIMEOUT", defaultReadTimeout),
		env.duration("WRITE_TIMEOUT", defaultWriteTimeout),
	)

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          env.integer("REDIS_DB_ID", 0),
		MaxRetries:  env.integer("MAX_RETRIES", defaultMaxRetries),
		DialTimeout: env.duration("DIAL_TIMEOUT", defaultDialTimeout),
		Timeout:     timeout,
		ProductTTL:  env.duration("PRODUCT_TTL", defaultProductTTL),
		CartTTL:     env.duration("CART_TTL", defaultCartTTL),
		Namespace:   getEnvOrDefault("REDIS_NAMESPACE", getEnvOrDefault("CART_NAMESPACE", defaultNamespace)),
	}
}

func loadShopCfg(env *envReader) *ShopCfg {
	const (
		defaultContactNumber = "5511999999999"
		defaultTimezone      = "America/Sao_Paulo"
	)

	return &ShopCfg{
		ContactNumber: getEnvOrDefault("SHOP_WHATSAPP", defaultContactNumber),
		Location:      env.location("SHOP_TIMEZONE", defaultTimezone),
	}
}

// envReader разбирает переменные окружения и копит ошибки. При ошибке
// возвращается значение по умолчанию, а сама ошибка попадает в err().
type envReader struct {
	errs []error
}

func (r *envReader) fail(key string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}

func (r *envReader) required(key string) string {
	v := getEnv(key)
	if v == "" {
		r.fail(key, e.ErrMissingEnvVariable)
	}

	return v
}

// list читает обязательный список через запятую, пустые элементы отбрасываются.
func (r *envReader) list(key string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		r.fail(key, e.ErrMissingEnvVariable)
	}

	return items
}

func (r *envReader) integer(key string, def int) int {
	v, err := parseIntEnv(key, def)
	if err != nil {
		r.fail(key, err)
	}

	return v
}

func (r *envReader) positive(key string, def int) int {
	v := r.integer(key, def)
	if v <= 0 {
		r.fail(key, fmt.Errorf("%w: must be positive, got %d", e.ErrIncorrectEnvVariable, v))
		return def
	}

	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v, err := parseDurationEnv(key, def)
	if err != nil {
		r.fail(key, err)
		return def
	}

	return v
}

func (r *envReader) boolean(key string, def bool) bool {
	raw := getEnv(key)
	if raw == "" {
		return def
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail(key, e.ErrIncorrectEnvVariable)
		return def
	}

	return v
}

func (r *envReader) location(key, def string) *time.Location {
	loc, err := time.LoadLocation(getEnvOrDefault(key, def))
	if err != nil {
		r.fail(key, err)
		return time.UTC
	}

	return loc
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
