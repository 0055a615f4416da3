package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"

	"patitas/internal/auth"
	"patitas/internal/db"
	"patitas/internal/domain/storage"
	"patitas/internal/ids"
	"patitas/internal/mailer"
	"patitas/internal/notifications"
	"patitas/internal/ratelimiter"
	"patitas/internal/realtime"

	"github.com/9ssi7/exponent"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

//	@title			Patitas Urbanas API
//	@description	API for Patitas Urbanas: pet care advice, recipes and daycare reviews.

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	// .env is optional; the environment wins
	_ = godotenv.Load()

	cfg := loadConfig()

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if err := cfg.validate(); err != nil {
		logger.Fatal(err)
	}

	schemaVersion, err := db.Migrate(cfg.db.addr)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infow("database migrated", "version", schemaVersion)

	pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	store := storage.NewContainer(pool)

	codec, err := ids.New(cfg.hashidsSalt, 6)
	if err != nil {
		logger.Fatal(err)
	}

	var mail mailer.Client
	if cfg.mail.smtp.host != "" {
		smtp, err := mailer.NewSMTPMailer(
			cfg.mail.smtp.host,
			cfg.mail.smtp.port,
			cfg.mail.smtp.username,
			cfg.mail.smtp.password,
			cfg.mail.fromEmail,
		)
		if err != nil {
			logger.Fatal(err)
		}
		mail = smtp
	} else {
		logger.Warn("SMTP_HOST not set, password reset mails are logged only")
		mail = mailer.NewLogMailer(logger)
	}

	var push notifications.PushSender
	if cfg.expoToken != "" {
		push = notifications.NewExpoAdapter(exponent.NewClient(exponent.WithAccessToken(cfg.expoToken)))
	}

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.refreshSecret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.accessTokenExp,
		cfg.auth.token.refreshTokenExp,
	)

	hub := realtime.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go realtime.NewListener(pool, hub, logger).Run(ctx)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		mailer:        mail,
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
		ids:           codec,
		hub:           hub,
		push:          push,
	}

	app.pruneStalePushTokensDaily(ctx)

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := pool.Stat()
		return map[string]any{
			"total_conns":    s.TotalConns(),
			"idle_conns":     s.IdleConns(),
			"acquired_conns": s.AcquiredConns(),
			"max_conns":      s.MaxConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("live_subscribers", expvar.Func(func() any {
		return hub.SubscriberCount()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
