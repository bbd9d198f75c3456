package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"medassist/api/internal/ai"
	"medassist/api/internal/ai/gemini"
	"medassist/api/internal/ai/openai"
	"medassist/api/internal/config"
	"medassist/api/internal/handle"
	"medassist/api/internal/pay"
	"medassist/api/internal/pay/paystack"
	"medassist/api/internal/shop"
	"medassist/api/internal/store"
)

func main() {
	cfg := config.Load()

	engines := &ai.Engines{
		OpenAI: openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	manager := ai.NewManager(engines, cfg.AIProvider)
	svc := ai.NewService(manager)

	var gateway pay.Gateway
	if cfg.PaystackSecretKey != "" {
		gateway = paystack.New(cfg.PaystackSecretKey)
		log.Printf("payment gateway: paystack")
	} else {
		gateway = pay.NewSimulator()
		log.Printf("payment gateway: simulator (demo mode)")
	}

	h := handle.New(svc, shop.NewSessions(), gateway)

	if cfg.DatabaseURL != "" {
		db, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := store.Migrate(ctx, db); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
		cancel()
		h.Reports = store.NewReportRepo(db)
		h.Orders = store.NewOrderRepo(db)
		log.Printf("persistence enabled")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/v1/ai/diagnose", h.Diagnose)
	mux.HandleFunc("/v1/ai/treatment", h.Treatment)
	mux.HandleFunc("/v1/ai/photo", h.Photo)
	mux.HandleFunc("/v1/ai/article", h.Article)
	mux.HandleFunc("/v1/ai/keys", h.SetKey)
	mux.HandleFunc("/v1/ai/status", h.Status)

	mux.HandleFunc("/v1/cart", h.Cart)
	mux.HandleFunc("/v1/cart/add", h.CartAdd)
	mux.HandleFunc("/v1/cart/remove", h.CartRemove)
	mux.HandleFunc("/v1/cart/quantity", h.CartQuantity)
	mux.HandleFunc("/v1/cart/clear", h.CartClear)

	mux.HandleFunc("/v1/checkout/start", h.CheckoutStart)
	mux.HandleFunc("/v1/checkout/shipping", h.CheckoutShipping)
	mux.HandleFunc("/v1/checkout/back", h.CheckoutBack)
	mux.HandleFunc("/v1/checkout/pay", h.CheckoutPay)
	mux.HandleFunc("/v1/checkout/close", h.CheckoutClose)

	addr := ":" + cfg.Port
	log.Printf("medassist listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
