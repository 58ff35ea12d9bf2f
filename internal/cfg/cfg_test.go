package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("POSTGRES_USER", "pizza")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "orders")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("SHOP_TIMEZONE", "UTC")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	c, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, 5*time.Second, c.Http.ReadTimeout)
	assert.Equal(t, "localhost", c.Db.Host)
	assert.Equal(t, "file://db/migrations", c.Db.MigrationsPath)
	assert.Equal(t, int32(10), c.Db.MaxConns)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "orders.submitted", c.Kafka.Topic)
	assert.Equal(t, "mediterranea-storage", c.Redis.Namespace)
	assert.Equal(t, 30*24*time.Hour, c.Redis.CartTTL)
	assert.Equal(t, 3*time.Second, c.Redis.Timeout)
	assert.Equal(t, "5511999999999", c.Shop.ContactNumber)
	assert.Equal(t, time.UTC, c.Shop.Location)
	assert.Equal(t, "product-photos", c.Minio.BucketName)
}

func TestLoad_MissingPostgresUser(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(logger.NewNop())
	assert.Error(t, err)
}

func TestLoad_NamespaceOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CART_NAMESPACE", "legacy")

	c, err := Load(logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "legacy", c.Redis.Namespace)

	t.Setenv("REDIS_NAMESPACE", "shop")
	c, err = Load(logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "shop", c.Redis.Namespace)
}

func TestLoad_InvalidMaxConns(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_MAX_CONNS", "0")

	_, err := Load(logger.NewNop())
	assert.Error(t, err)
}

func TestLoad_ReportsAllInvalidVariables(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("CART_TTL", "forever")
	t.Setenv("MINIO_USE_SSL", "maybe")

	_, err := Load(logger.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrMissingEnvVariable)
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	assert.Contains(t, err.Error(), "POSTGRES_DB")
	assert.Contains(t, err.Error(), "CART_TTL")
	assert.Contains(t, err.Error(), "MINIO_USE_SSL")
}

func TestLoad_BrokerListIsTrimmed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")

	c, err := Load(logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
}

func TestLoad_MissingKafkaBrokers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_BROKERS", "")

	_, err := Load(logger.NewNop())
	assert.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CART_TTL", "forever")

	_, err := Load(logger.NewNop())
	assert.Error(t, err)
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("SOME_INT", "12")
	v, err := parseIntEnv("SOME_INT", 3)
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	t.Setenv("SOME_INT", "twelve")
	v, err = parseIntEnv("SOME_INT", 3)
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	assert.Equal(t, 3, v)
}
