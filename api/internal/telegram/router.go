package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"medassist/api/internal/ai"
	"medassist/api/internal/ai/gemini"
	"medassist/api/internal/ai/openai"
	"medassist/api/internal/pay"
	"medassist/api/internal/shop"
)

const aiTimeout = 30 * time.Second

type Router struct {
	Bot      *tgbotapi.BotAPI
	Token    string
	AI       *ai.Service
	Engines  *ai.Engines
	Sessions *shop.Sessions
	Gateway  pay.Gateway
	Pricer   ai.Pricer

	httpc *http.Client
}

func NewRouter(bot *tgbotapi.BotAPI, token string, svc *ai.Service, engines *ai.Engines, sessions *shop.Sessions, gw pay.Gateway) *Router {
	return &Router{
		Bot:      bot,
		Token:    token,
		AI:       svc,
		Engines:  engines,
		Sessions: sessions,
		Gateway:  gw,
		Pricer:   ai.RandomPricer,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Router) send(chatID int64, text string) {
	_, _ = r.Bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendKb(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, _ = r.Bot.Send(msg)
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}
	if len(upd.Message.Photo) > 0 {
		r.handlePhoto(upd)
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}
	if mode := getMode(cid); mode != "" {
		r.handleShippingAnswer(cid, mode, text)
		return
	}
	r.handleSymptoms(cid, text)
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Describe your symptoms in one message and I'll suggest a likely condition, remedies, foods and medications, and you can order them right here.\n"+
			"Send a photo of the affected area for a photo analysis.\n"+
			"Commands: /cart, /checkout, /provider, /key, /status, /cancel")
	case "status":
		s := sessionID(cid)
		eng := r.AI.Engines().Get(s)
		if r.AI.Configured(s) {
			r.send(cid, fmt.Sprintf("✅ Ready. Provider: %s (%s)", eng.Name(), eng.GetModel()))
		} else {
			r.send(cid, "⚠️ No AI provider configured. Set a key with:\n/key openai <api-key>\n/key gemini <api-key>")
		}
	case "provider":
		args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(upd.Message.Text, "/provider")))
		if len(args) == 0 {
			cur := r.AI.Engines().Get(sessionID(cid)).Name()
			r.send(cid, "Current provider: "+cur+"\nUsage:\n/provider openai [model]\n/provider gemini [model]")
			return
		}
		eng, err := r.Engines.ByName(args[0])
		if err != nil {
			r.send(cid, "Unknown provider. Available: openai | gemini")
			return
		}
		r.AI.Engines().Set(sessionID(cid), eng)
		r.send(cid, "✅ Provider: "+eng.Name())
	case "key":
		args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(upd.Message.Text, "/key")))
		if len(args) < 2 {
			r.send(cid, "Usage: /key openai <api-key> [model]\n       /key gemini <api-key> [model]")
			return
		}
		provider, key := strings.ToLower(args[0]), args[1]
		var model string
		if len(args) > 2 {
			model = args[2]
		}
		var eng ai.Engine
		switch provider {
		case "openai", "gpt":
			if model == "" {
				model = "gpt-4o-mini"
			}
			eng = openai.New(key, model)
		case "gemini":
			if model == "" {
				model = "gemini-2.5-flash"
			}
			eng = gemini.New(key, model)
		default:
			r.send(cid, "Unknown provider. Available: openai | gemini")
			return
		}
		r.AI.Engines().Set(sessionID(cid), eng)
		r.send(cid, fmt.Sprintf("✅ Key saved for this chat. Provider: %s (%s)", eng.Name(), eng.GetModel()))
	case "cart":
		s := r.Sessions.Get(sessionID(cid))
		cur := s.Currency()
		r.sendKb(cid, formatCart(s.Items(), s.TotalPrice(cur), cur), makeCartKeyboard())
	case "checkout":
		r.startCheckout(cid)
	case "cancel":
		clearMode(cid)
		shippingDraft.Delete(cid)
		s := r.Sessions.Get(sessionID(cid))
		for s.Step() != shop.StepCart {
			if err := s.Back(); err != nil {
				s.Close()
				break
			}
		}
		r.send(cid, "Checkout cancelled. Your cart is untouched, /cart to view it.")
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) handleSymptoms(cid int64, text string) {
	session := sessionID(cid)
	if !r.AI.Configured(session) {
		r.send(cid, "⚠️ No AI provider configured. Set a key with /key openai <api-key> or /key gemini <api-key>.")
		return
	}
	r.send(cid, "Analyzing your symptoms…")

	ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
	defer cancel()

	d, err := r.AI.GenerateSymptomDiagnosis(ctx, session, ai.SymptomQuery{Symptoms: text})
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			r.send(cid, "⚠️ Provider not configured. Use /key to set one up.")
		} else {
			r.send(cid, "Analysis failed, please try again: "+err.Error())
		}
		return
	}
	r.offerItems(cid, d)
}

func (r *Router) handlePhoto(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	session := sessionID(cid)
	if !r.AI.Configured(session) {
		r.send(cid, "⚠️ No AI provider configured. Set a key with /key first.")
		return
	}
	r.send(cid, "Got the photo, analyzing…")

	// Largest preview.
	ph := upd.Message.Photo[len(upd.Message.Photo)-1]
	tf, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.send(cid, "Could not fetch the file: "+err.Error())
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Token, tf.FilePath)
	img, err := r.download(url)
	if err != nil {
		r.send(cid, "Could not download the photo: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
	defer cancel()

	d, err := r.AI.AnalyzePhoto(ctx, session, ai.PhotoQuery{
		Image:     img,
		ImageType: "photo",
		BodyPart:  strings.TrimSpace(upd.Message.Caption),
	})
	if err != nil {
		r.send(cid, "Photo analysis failed, please try again: "+err.Error())
		return
	}
	r.offerItems(cid, d)
}

func (r *Router) offerItems(cid int64, d ai.Diagnosis) {
	items := ai.ExtractShoppingItems(d, r.Pricer)
	setLastDiagnosis(cid, d)
	setLastItems(cid, items)
	r.sendKb(cid, formatDiagnosis(d), makeDiagnosisKeyboard(len(d.Medications) > 0, len(d.Foods) > 0))
}

func (r *Router) download(url string) ([]byte, error) {
	resp, err := r.httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func (r *Router) startCheckout(cid int64) {
	s := r.Sessions.Get(sessionID(cid))
	if err := s.ProceedToShipping(); err != nil {
		if errors.Is(err, shop.ErrEmptyCart) {
			r.send(cid, "Your cart is empty. Add items from a diagnosis first.")
		} else {
			r.send(cid, "Checkout cannot start right now: "+err.Error())
		}
		return
	}
	shippingDraft.Store(cid, &shop.ShippingInfo{})
	setMode(cid, modeShipName)
	r.send(cid, "📦 Shipping details.\nWho is the receiver? (full name)")
}

func (r *Router) handleShippingAnswer(cid int64, mode, text string) {
	draft := draftFor(cid)
	switch mode {
	case modeShipName:
		draft.ReceiverName = text
		setMode(cid, modeShipPhone)
		r.send(cid, "Phone number?")
	case modeShipPhone:
		draft.PhoneNumber = text
		setMode(cid, modeShipAddress)
		r.send(cid, "Street address?")
	case modeShipAddress:
		draft.Address = text
		setMode(cid, modeShipCity)
		r.send(cid, "City?")
	case modeShipCity:
		draft.City = text
		setMode(cid, modeShipState)
		r.send(cid, "State?")
	case modeShipState:
		draft.State = text
		clearMode(cid)
		shippingDraft.Delete(cid)
		s := r.Sessions.Get(sessionID(cid))
		if err := s.SubmitShipping(*draft); err != nil {
			var ve *shop.ValidationError
			if errors.As(err, &ve) {
				r.send(cid, fmt.Sprintf("Some fields are still empty: %v. Run /checkout to start over.", ve.Fields))
			} else {
				r.send(cid, "Could not save shipping info: "+err.Error())
			}
			return
		}
		cur := s.Currency()
		r.sendKb(cid, fmt.Sprintf("💳 Payment.\nTotal: %s\nShipping to %s, %s.",
			formatAmount(s.TotalPrice(cur), cur), draft.City, draft.State), makePaymentKeyboard())
	default:
		clearMode(cid)
	}
}

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	cid := cb.Message.Chat.ID
	// Ack so the button stops spinning.
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, ""))

	s := r.Sessions.Get(sessionID(cid))
	switch cb.Data {
	case "add_meds":
		n := 0
		for _, it := range getLastItems(cid) {
			if it.Type == shop.Medicine {
				s.AddItem(it)
				n++
			}
		}
		r.send(cid, fmt.Sprintf("Added %d medication(s). /cart to review, /checkout to order.", n))
	case "add_foods":
		n := 0
		for _, it := range getLastItems(cid) {
			if it.Type == shop.Food {
				s.AddItem(it)
				n++
			}
		}
		r.send(cid, fmt.Sprintf("Added %d food item(s). /cart to review, /checkout to order.", n))
	case "clear_cart":
		s.ClearCart()
		r.send(cid, "Cart cleared.")
	case "checkout":
		r.startCheckout(cid)
	case "back":
		if err := s.Back(); err == nil && s.Step() == shop.StepShipping {
			// Re-collect shipping from the top.
			shippingDraft.Store(cid, &shop.ShippingInfo{})
			setMode(cid, modeShipName)
			r.send(cid, "📦 Shipping details.\nWho is the receiver? (full name)")
		} else {
			r.send(cid, "Back to cart. /cart to review.")
		}
	case "plan":
		r.handlePlan(cid)
	case "pay":
		r.handlePay(cid, s)
	case "close":
		s.Close()
		r.send(cid, "Thanks for your order! Describe new symptoms any time.")
	default:
		log.Printf("unknown callback: %s", cb.Data)
	}
}

func (r *Router) handlePlan(cid int64) {
	d, ok := getLastDiagnosis(cid)
	if !ok {
		r.send(cid, "No diagnosis yet. Describe your symptoms first.")
		return
	}
	r.send(cid, "Building a treatment plan…")

	ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
	defer cancel()

	severity := string(d.Severity)
	if severity == "" {
		severity = "moderate"
	}
	p, err := r.AI.GenerateTreatmentPlan(ctx, sessionID(cid), d.Condition, severity)
	if err != nil {
		r.send(cid, "Could not build a plan, please try again: "+err.Error())
		return
	}
	r.send(cid, formatPlan(d.Condition, p))
}

func (r *Router) handlePay(cid int64, s *shop.Session) {
	r.send(cid, "Processing payment…")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	order, err := s.Pay(ctx, r.Gateway, "user@example.com")
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrPaymentInFlight):
			r.send(cid, "A payment is already in progress, hold on.")
		case errors.Is(err, shop.ErrBadTransition):
			r.send(cid, "Nothing to pay for right now. /checkout to start.")
		default:
			r.sendKb(cid, "❌ Payment failed: "+err.Error(), makeRetryKeyboard())
		}
		return
	}
	r.sendKb(cid, formatOrder(order), makeSuccessKeyboard())
}
