package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Vitolop1/azure-intelligent-support-bot/internal/analyze"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/config"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/dialog"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/store/rabbitmq"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/store/redisstore"
)

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	cfg := config.Load()
	cfg.MustValidate()

	// Analyzer registry (route by ANALYZE_PROVIDER)
	reg := analyze.NewRegistry()
	reg.Register("azure", func(ctx context.Context) (analyze.Analyzer, error) {
		_ = ctx
		return analyze.NewAzureProvider(cfg.AzureEndpoint, cfg.AzureKey, cfg.AnalyzeTimeout), nil
	})
	reg.Register("static", func(ctx context.Context) (analyze.Analyzer, error) {
		_ = ctx
		return analyze.NewStaticProvider(), nil
	})

	analyzer, err := reg.Get(context.Background(), cfg.AnalyzeProvider)
	if err != nil {
		log.Fatalf("analyzer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := dialog.NewStore()
	store.StartSweeper(ctx, cfg.SweepInterval, cfg.SessionTTL)

	bot := dialog.NewRouter(store, analyzer, cfg.IssueMaxLen)

	// Message dedup is optional; without redis, redeliveries replay the turn.
	var dedup *redisstore.Store
	if cfg.RedisAddr != "" {
		dedup = redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer dedup.Close()
	}

	bus, err := rabbitmq.NewBus(cfg.RabbitURL, cfg.RabbitInQueue, cfg.RabbitOutQueue)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer bus.Close()

	concurrency := workerConcurrency()

	msgs, err := bus.Consume(concurrency)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	log.Printf("worker started queue=%s concurrency=%d", cfg.RabbitInQueue, concurrency)

	// worker pool
	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var m rabbitmq.InboundMessage
				if err := json.Unmarshal(d.Body, &m); err != nil || m.ConversationID == "" {
					log.Printf("worker=%d bad message: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				start := time.Now()
				if err := handleTurn(ctx, bot, bus, dedup, m); err != nil {
					log.Printf("worker=%d conversation=%s failed cost=%s err=%v",
						workerID, m.ConversationID, time.Since(start), err)
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed conversation=%s err=%v", workerID, m.ConversationID, err)
				}
			}
		}(i)
	}

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			log.Printf("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}

// handleTurn runs one inbound message through the router and publishes the
// reply. Redelivered messages (same message id) are acked without replaying
// the turn when dedup is available.
func handleTurn(ctx context.Context, bot *dialog.Router, bus *rabbitmq.Bus, dedup *redisstore.Store, m rabbitmq.InboundMessage) error {
	if dedup != nil && m.MessageID != "" {
		seen, err := dedup.SeenMessage(ctx, m.MessageID, 24*time.Hour)
		if err != nil {
			// dedup is best-effort; a redis outage must not stop the bot
			log.Printf("dedup check failed message=%s err=%v", m.MessageID, err)
		} else if seen {
			log.Printf("skipping duplicate message=%s conversation=%s", m.MessageID, m.ConversationID)
			return nil
		}
	}

	reply := bot.Handle(ctx, m.ConversationID, m.Text)

	return bus.PublishReply(ctx, rabbitmq.ReplyMessage{
		ConversationID: m.ConversationID,
		Reply:          reply,
	})
}
