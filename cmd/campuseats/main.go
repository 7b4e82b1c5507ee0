package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	cartapp "github.com/campuseats/campuseats/internal/cart/application"
	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
	"github.com/campuseats/campuseats/internal/events"
	orderapp "github.com/campuseats/campuseats/internal/order/application"
	payment "github.com/campuseats/campuseats/internal/payment/domain"
	scheduleapp "github.com/campuseats/campuseats/internal/schedule/application"
	schedule "github.com/campuseats/campuseats/internal/schedule/domain"
	"github.com/campuseats/campuseats/internal/storage/memory"
	"github.com/campuseats/campuseats/internal/storage/redisstore"
	"github.com/campuseats/campuseats/pkg/config"
	"github.com/campuseats/campuseats/pkg/logging"
	"github.com/campuseats/campuseats/pkg/shutdown"

	account "github.com/campuseats/campuseats/internal/account/domain"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Stores. Carts move to redis when an address is configured; the
	// 5-minute expiry then rides on the key TTL.
	users := memory.NewUserStore()
	restaurants := memory.NewRestaurantStore()
	orders := memory.NewOrderStore()
	slots := memory.NewSlotStore()

	var carts cartapp.CartRepository = memory.NewCartStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		carts = redisstore.NewCartStore(rdb, cfg.CartTTL)
		log.Info("using redis cart store", "addr", cfg.RedisAddr)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		kp := events.NewKafkaPublisher(log, strings.Split(cfg.KafkaBrokers, ","), cfg.OrderTopic)
		defer kp.Close()
		publisher = kp
		log.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.OrderTopic)
	}

	cartSvc := cartapp.NewCartService(log, carts, restaurants)
	deliverySvc := scheduleapp.NewDeliveryService(log, slots, publisher)
	placeOrder := orderapp.NewPlaceOrderUseCase(log, users, restaurants, carts, orders, publisher)

	seedDemoData(ctx, log, users, restaurants, slots, cfg.SlotCapacity)

	go sweepExpiredCarts(ctx, log, carts, cfg.CartTTL, cfg.CartSweepInterval)

	runDemoScenario(ctx, log, cartSvc, deliverySvc, placeOrder)

	<-ctx.Done()
	log.Info("shutting down")
}

func seedDemoData(ctx context.Context, log *slog.Logger, users *memory.UserStore, restaurants *memory.RestaurantStore, slots *memory.SlotStore, capacity int) {
	_ = users.Save(ctx, account.NewUser("u-1", "Dana Ilves", "dana@campus.edu", 5000))

	restaurant := &catalog.Restaurant{
		ID:   "r-1",
		Name: "Campus Pizzeria",
		Hours: catalog.OpeningHours{
			Opens:  catalog.TimeOfDay{Hour: 10},
			Closes: catalog.TimeOfDay{Hour: 22},
		},
		Menu: []catalog.Dish{
			{ID: "d-1", RestaurantID: "r-1", Name: "Pizza Margherita", Description: "Tomato, mozzarella, basil", PriceCents: 850, Available: true},
			{ID: "d-2", RestaurantID: "r-1", Name: "Lasagne", Description: "House lasagne", PriceCents: 1050, Available: true},
		},
	}
	_ = restaurants.Save(ctx, restaurant)

	calendar := schedule.NewDeliverySchedule(restaurant.ID)
	week := calendar.GenerateWeeklySlots(time.Now().UTC().AddDate(0, 0, 1), restaurant.Hours, capacity)
	for _, slot := range week {
		_ = slots.Save(ctx, slot)
	}
	log.Info("seeded demo data", "restaurant", restaurant.Name, "slots", len(week))
}

// sweepExpiredCarts opportunistically drops abandoned carts. With the
// redis store this is a cheap no-op; the keys expire on their own.
func sweepExpiredCarts(ctx context.Context, log *slog.Logger, carts cartapp.CartRepository, ttl, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("cart sweeper stopping")
			return
		case <-t.C:
			removed, err := carts.DeleteExpired(ctx, ttl)
			if err != nil {
				log.Error("cart sweep failed", "err", err)
				continue
			}
			if removed > 0 {
				log.Info("expired carts removed", "count", removed)
			}
		}
	}
}

func runDemoScenario(ctx context.Context, log *slog.Logger, cartSvc *cartapp.CartService, deliverySvc *scheduleapp.DeliveryService, placeOrder *orderapp.PlaceOrderUseCase) {
	summary, err := cartSvc.AddDish(ctx, "u-1", "r-1", "d-1", 2)
	if err != nil {
		log.Error("demo: add dish failed", "err", err)
		return
	}
	log.Info("demo: cart", "cart_id", summary.CartID, "total_cents", summary.TotalCents)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	views, err := deliverySvc.AvailableSlots(ctx, tomorrow)
	if err != nil || len(views) == 0 {
		log.Error("demo: no delivery slots", "err", err)
		return
	}
	slot, err := deliverySvc.ReserveSlot(ctx, views[0].ID)
	if err != nil {
		log.Error("demo: slot reservation failed", "err", err)
		return
	}

	result, err := placeOrder.Execute(ctx, orderapp.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodStudentCredit,
		DeliveryTime:  &slot.StartTime,
	})
	if err != nil {
		log.Error("demo: order failed", "err", err)
		return
	}
	log.Info("demo: order placed",
		"order_id", result.OrderID,
		"customer", result.CustomerName,
		"restaurant", result.RestaurantName,
		"total_cents", result.TotalCents,
		"status", result.Status,
		"delivery", slot.StartTime,
	)
}
