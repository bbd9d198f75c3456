package telegram

import (
	"strconv"
	"sync"

	"medassist/api/internal/ai"
	"medassist/api/internal/shop"
)

// Chat input modes. Outside a mode, free text is a symptom description; in a
// mode it answers the current checkout prompt.
const (
	modeShipName    = "await_ship_name"
	modeShipPhone   = "await_ship_phone"
	modeShipAddress = "await_ship_address"
	modeShipCity    = "await_ship_city"
	modeShipState   = "await_ship_state"
)

var (
	chatMode      sync.Map // chatID -> string
	shippingDraft sync.Map // chatID -> *shop.ShippingInfo
	lastItems     sync.Map // chatID -> []shop.CartItem (latest extraction)
	lastDiagnosis sync.Map // chatID -> ai.Diagnosis
)

func setMode(chatID int64, mode string) { chatMode.Store(chatID, mode) }
func getMode(chatID int64) string {
	if v, ok := chatMode.Load(chatID); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}
func clearMode(chatID int64) { chatMode.Delete(chatID) }

func draftFor(chatID int64) *shop.ShippingInfo {
	if v, ok := shippingDraft.Load(chatID); ok {
		return v.(*shop.ShippingInfo)
	}
	d := &shop.ShippingInfo{}
	shippingDraft.Store(chatID, d)
	return d
}

func setLastItems(chatID int64, items []shop.CartItem) { lastItems.Store(chatID, items) }
func getLastItems(chatID int64) []shop.CartItem {
	if v, ok := lastItems.Load(chatID); ok {
		return v.([]shop.CartItem)
	}
	return nil
}

func setLastDiagnosis(chatID int64, d ai.Diagnosis) { lastDiagnosis.Store(chatID, d) }
func getLastDiagnosis(chatID int64) (ai.Diagnosis, bool) {
	if v, ok := lastDiagnosis.Load(chatID); ok {
		return v.(ai.Diagnosis), true
	}
	return ai.Diagnosis{}, false
}

// sessionID maps a chat to its shopping session.
func sessionID(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}
