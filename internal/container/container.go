package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-auth/config"
	"github.com/oksasatya/go-session-auth/internal/oauth"
	"github.com/oksasatya/go-session-auth/internal/session"
	"github.com/oksasatya/go-session-auth/pkg/helpers"
)

// app-level container to share constructed components across packages.
// The router auto-wires modules from these singletons; lifecycle is owned by
// cmd/main.go.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	sessions *session.Manager
	cookies  *helpers.CookieManager
	confirm  *helpers.ConfirmTokenManager
	twitter  oauth.Provider

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }

func SetSessions(m *session.Manager)            { sessions = m }
func GetSessions() *session.Manager             { return sessions }
func SetCookies(m *helpers.CookieManager)       { cookies = m }
func GetCookies() *helpers.CookieManager        { return cookies }
func SetConfirm(m *helpers.ConfirmTokenManager) { confirm = m }
func GetConfirm() *helpers.ConfirmTokenManager  { return confirm }
func SetTwitter(p oauth.Provider)               { twitter = p }
func GetTwitter() oauth.Provider                { return twitter }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
