package commands

import (
	"fmt"

	"github.com/tenkay/backend/internal/companies"
	"github.com/tenkay/backend/internal/content"
	"github.com/tenkay/backend/internal/earnings"
	"github.com/tenkay/backend/internal/events"
	"github.com/tenkay/backend/internal/external/edgar"
	"github.com/tenkay/backend/internal/external/finnhub"
	"github.com/tenkay/backend/internal/external/ir"
	"github.com/tenkay/backend/internal/filings"
	"github.com/tenkay/backend/internal/market"
	"github.com/tenkay/backend/internal/press"
	"github.com/tenkay/backend/internal/scheduler"
	"github.com/tenkay/backend/internal/scheduler/jobs"
	"github.com/tenkay/backend/internal/subscribers"
	"github.com/tenkay/backend/pkg/config"
	"github.com/tenkay/backend/pkg/database"
	"github.com/tenkay/backend/pkg/httputil"
	"github.com/tenkay/backend/pkg/logger"
	"github.com/tenkay/backend/pkg/redis"
)

// deps holds the wired application dependencies shared by the CLI
// commands
type deps struct {
	cfg   *config.Config
	log   *logger.Logger
	db    *database.DB
	redis *redis.Client
	cache *redis.Cache
	hub   *events.Hub

	companyRepo    *companies.Repository
	filingRepo     *filings.Repository
	contentRepo    *content.Repository
	earningsRepo   *earnings.Repository
	pressRepo      *press.Repository
	marketRepo     *market.Repository
	subscriberRepo *subscribers.Repository

	edgarClient   *edgar.Client
	finnhubClient *finnhub.Client
	feedReader    *press.FeedReader
	irScraper     *ir.Scraper
}

// initDeps loads config and wires the full dependency graph
func initDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	cache := redis.NewCache(redisClient, "tenkay")
	limiter := redis.NewRateLimiter(redisClient, "tenkay")

	// Finnhub calls from every process share the Redis quota
	finnhubHTTP := httputil.New(cfg, log).
		WithRateLimiter(limiter, redis.FinnhubRateLimit)

	scraperHTTP := httputil.New(cfg, log).
		WithUserAgent(cfg.SEC.UserAgent)

	d := &deps{
		cfg:   cfg,
		log:   log,
		db:    db,
		redis: redisClient,
		cache: cache,
		hub:   events.NewHub(log),

		companyRepo:    companies.NewRepository(db.Pool),
		filingRepo:     filings.NewRepository(db.Pool),
		contentRepo:    content.NewRepository(db.Pool),
		earningsRepo:   earnings.NewRepository(db.Pool),
		pressRepo:      press.NewRepository(db.Pool),
		marketRepo:     market.NewRepository(db.Pool),
		subscriberRepo: subscribers.NewRepository(db.Pool),

		edgarClient:   edgar.NewClient(cfg, log),
		finnhubClient: finnhub.NewClient(cfg, finnhubHTTP, log),
		feedReader:    press.NewFeedReader(log),
		irScraper:     ir.NewScraper(scraperHTTP, log),
	}

	return d, nil
}

// close releases connections
func (d *deps) close() {
	d.hub.Close()
	d.redis.Close()
	d.db.Close()
}

// buildScheduler registers all pipeline jobs
func (d *deps) buildScheduler() (*scheduler.Scheduler, error) {
	sched := scheduler.New(d.log)

	jobList := []scheduler.Job{
		jobs.NewFilingsSyncJob(d.companyRepo, d.filingRepo, d.edgarClient, d.hub, d.log),
		jobs.NewEarningsCalendarJob(d.companyRepo, d.earningsRepo, d.finnhubClient, d.hub, d.log),
		jobs.NewMarketDataJob(d.companyRepo, d.marketRepo, d.finnhubClient, d.log),
		jobs.NewPressSyncJob(d.companyRepo, d.pressRepo, d.finnhubClient, d.feedReader, d.irScraper, d.log),
		jobs.NewDigestJob(d.subscriberRepo, d.contentRepo, d.log),
	}

	for _, job := range jobList {
		if err := sched.AddJob(job); err != nil {
			return nil, err
		}
	}

	return sched, nil
}
